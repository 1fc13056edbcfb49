// Package strings provides string helpers shared by providers and the fallback synthesizer.
package strings

import (
	"strings"
	"unicode"
)

// DedupeAndTrim drops empty and duplicate entries after trimming whitespace.
// Order is preserved; comparison is case-sensitive.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndTrimLower is DedupeAndTrim with lowercasing, for case-insensitive sets
// such as technology or skill tags.
func DedupeAndTrimLower(values []string) []string {
	return dedupe(values, func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}

// FirstNonEmpty returns the first argument that is not blank, trimmed.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

// Slug lowercases s and joins its letter/digit runs with sep.
//
//	Slug("Ada Lovelace", "-")   // "ada-lovelace"
//	Slug("Acme, Inc.", "")      // "acmeinc"
func Slug(s, sep string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, sep)
}

// TitleWord uppercases the first rune of s and leaves the rest untouched.
func TitleWord(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
