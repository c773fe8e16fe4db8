// Package validate holds the input hygiene and credential policy checks shared
// by the auth endpoints. Sanitize is length/whitespace hygiene only, not an
// XSS defense.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxInputLength = 1000
	maxEmailLength = 254
	minPasswordLen = 8
	specialChars   = "@$!%*?&"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sanitize trims surrounding whitespace and truncates to the maximum accepted
// input length. Empty or absent input yields "".
func Sanitize(input string) string {
	trimmed := strings.TrimSpace(input)
	runes := []rune(trimmed)
	if len(runes) > maxInputLength {
		// Truncation can expose trailing whitespace; trim again so the result
		// is stable under repeated calls.
		return strings.TrimSpace(string(runes[:maxInputLength]))
	}
	return trimmed
}

// Email reports whether the input looks like local@domain.tld with no embedded
// whitespace and does not exceed 254 characters.
func Email(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	return emailPattern.MatchString(email)
}

// Password checks the fixed credential policy and returns every violated rule
// so callers can surface the full list at once.
func Password(password string) (bool, []string) {
	var problems []string

	if utf8.RuneCountInString(password) < minPasswordLen {
		problems = append(problems, "Password must be at least 8 characters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		problems = append(problems, "Password must contain a lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		problems = append(problems, "Password must contain an uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		problems = append(problems, "Password must contain a number")
	}
	if !strings.ContainsAny(password, specialChars) {
		problems = append(problems, "Password must contain a special character (@$!%*?&)")
	}

	return len(problems) == 0, problems
}
