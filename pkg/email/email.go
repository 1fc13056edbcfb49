// Package email holds small helpers for working with email addresses
// supplied by callers. None of them perform network lookups.
package email

import (
	"strings"
	"unicode"
)

// fallbackNamePart is used when a name component cannot be derived.
const fallbackNamePart = "User"

// DeriveNameFromEmail guesses a first and last name from the local part of an
// address, splitting on '.', '_', '-' and '+'. "ada.lovelace@x.io" yields
// ("Ada", "Lovelace"). Missing components come back as "User".
func DeriveNameFromEmail(address string) (string, string) {
	parts := strings.FieldsFunc(LocalPart(address), func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+' || unicode.IsDigit(r)
	})

	if len(parts) == 0 {
		return fallbackNamePart, fallbackNamePart
	}

	first := capitalize(parts[0])
	last := fallbackNamePart
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

// LocalPart returns everything before the last '@', or the whole input when
// there is no '@'.
func LocalPart(address string) string {
	address = strings.TrimSpace(address)
	if at := strings.LastIndexByte(address, '@'); at > 0 {
		return address[:at]
	}
	return address
}

// Domain returns the lowercased part after the last '@', or "" when the
// address has none.
func Domain(address string) string {
	address = strings.TrimSpace(address)
	at := strings.LastIndexByte(address, '@')
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return strings.ToLower(address[at+1:])
}

// LooksValid is a cheap shape check: one '@', non-empty local part, and a
// dotted domain. It is not an RFC 5322 validator.
func LooksValid(address string) bool {
	address = strings.TrimSpace(address)
	if strings.Count(address, "@") != 1 || strings.ContainsAny(address, " \t") {
		return false
	}
	local := LocalPart(address)
	domain := Domain(address)
	if local == "" || domain == "" {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
