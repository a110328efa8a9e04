package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `validate:"required,email"`
	Password string `validate:"min=4"`
	Estado   string `validate:"oneof=aprobado rechazado"`
}

func TestParseError_ValidationErrors(t *testing.T) {
	err := validator.New().Struct(sample{Email: "", Password: "abc", Estado: "x"})
	fields := ParseError(err)

	assert.Equal(t, "El campo 'Email' es obligatorio", fields["Email"])
	assert.Equal(t, "El campo 'Password' debe tener al menos 4 caracteres", fields["Password"])
	assert.Contains(t, fields["Estado"], "aprobado rechazado")
}

func TestParseError_OtherErrors(t *testing.T) {
	fields := ParseError(errors.New("unexpected EOF"))
	assert.Equal(t, map[string]string{"error": "unexpected EOF"}, fields)

	assert.Empty(t, ParseError(nil))
}
