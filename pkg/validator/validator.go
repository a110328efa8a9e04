package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ParseError turns a binding error into a field -> message map.
func ParseError(err error) map[string]string {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = message(fe)
		}
	} else if err != nil { // Non-validator errors (malformed JSON, wrong types)
		fields["error"] = err.Error()
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es obligatorio", fe.Field())
	case "email":
		return fmt.Sprintf("El campo '%s' debe ser un email válido", fe.Field())
	case "min":
		return fmt.Sprintf("El campo '%s' debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo '%s' debe ser uno de: %s", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("El campo '%s' debe coincidir con '%s'", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
