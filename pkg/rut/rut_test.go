package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nine digits", "112223334", "11.222.333-4"},
		{"eight digits", "12345678", "1.234.567-8"},
		{"already formatted", "11.222.333-4", "11.222.333-4"},
		{"k verifier uppercase", "12345678K", "12.345.678-k"},
		{"empty", "", ""},
		{"single char", "K", "k"},
		{"single digit", "7", "7"},
		{"short body", "123", "12-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("12345678"))
	assert.True(t, Validate("11.222.333-4"))
	assert.True(t, Validate("12345678-k"))

	assert.False(t, Validate("1234567"), "7 chars")
	assert.False(t, Validate("1234567890"), "10 chars")
	assert.False(t, Validate(""))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "11222333k", Clean(" 11.222.333-K "))
}
