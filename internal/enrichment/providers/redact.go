package providers

import (
	"regexp"
	"strings"
)

var (
	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)

	// key=value forms, including query strings echoed by url.Error.
	apiKeyKVRe = regexp.MustCompile(`(?i)\b(api[_-]?key|token|access[_-]?token)\b\s*[:=]\s*[^\s"'&]+`)
)

// Redact removes secret-bearing substrings from error and log text.
// Safe to call on any message.
func Redact(s string) string {
	if s == "" {
		return ""
	}
	out := bearerTokenRe.ReplaceAllString(s, "Bearer <redacted>")
	out = apiKeyKVRe.ReplaceAllString(out, "$1=<redacted>")
	return strings.TrimSpace(out)
}

// redactValue additionally scrubs a known secret wherever it appears.
func redactValue(s, secret string) string {
	if secret != "" {
		s = strings.ReplaceAll(s, secret, "<redacted>")
	}
	return Redact(s)
}
