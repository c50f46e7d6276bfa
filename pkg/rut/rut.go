// Package rut validates Chilean national IDs in the short form used as
// usernames across the system: 7 or 8 digits, a dash, one verifier digit.
package rut

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`^\d{7,8}-\d$`)

// Valid reports whether rut matches the 12345678-9 format.
func Valid(rut string) bool {
	return pattern.MatchString(rut)
}

// Normalize trims surrounding whitespace. Formatting beyond that is the
// caller's problem: dotted RUTs are rejected by Valid on purpose.
func Normalize(rut string) string {
	return strings.TrimSpace(rut)
}
