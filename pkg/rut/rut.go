// Package rut formats and validates Chilean RUT numbers (NNNNNNNN-V).
package rut

import (
	"strings"
	"unicode"
)

// Clean strips every character that is not a digit or the K verifier and
// lowercases the result.
func Clean(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if unicode.IsDigit(r) || r == 'k' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format renders a RUT as 11.222.333-4. A single character is returned as the
// lowercased verifier alone.
func Format(raw string) string {
	clean := Clean(raw)
	if clean == "" {
		return ""
	}
	dv := clean[len(clean)-1:]
	body := clean[:len(clean)-1]
	if body == "" {
		return dv
	}
	return groupThousands(body) + "-" + dv
}

// Validate accepts RUTs whose cleaned form has 8 or 9 characters.
func Validate(raw string) bool {
	n := len(Clean(raw))
	return n == 8 || n == 9
}

func groupThousands(digits string) string {
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ".")
}
