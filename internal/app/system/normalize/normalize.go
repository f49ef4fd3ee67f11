// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identity fields before they
// are stored or compared.
package normalize

import (
	"strings"
)

// Email lowercases and trims an email address. Email comparison and the
// unique index both operate on the normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace. Usernames are case-sensitive and
// stored as typed.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name trims and collapses internal runs of whitespace in a display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsValidEmail performs a light structural check: exactly one @, a non-empty
// local part, and a domain containing an interior dot.
func IsValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || strings.HasSuffix(domain, ".") {
		return false
	}
	return !strings.Contains(s, " ")
}
