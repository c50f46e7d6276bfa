package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	valid := []string{"12345678-9", "1234567-8", "11111111-1"}
	for _, r := range valid {
		assert.True(t, Valid(r), "expected %q to be valid", r)
	}

	invalid := []string{
		"1234-9",        // too few digits
		"123456789",     // missing dash
		"12345678-99",   // two verifier digits
		"123456789-1",   // too many digits
		"12.345.678-9",  // dotted form
		"12345678-k",    // non-numeric verifier
		" 12345678-9",   // leading space
		"",
	}
	for _, r := range invalid {
		assert.False(t, Valid(r), "expected %q to be invalid", r)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "12345678-9", Normalize("  12345678-9 "))
	assert.True(t, Valid(Normalize(" 12345678-9")))
}
