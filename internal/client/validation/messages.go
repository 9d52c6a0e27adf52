package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// describe renders a failed tag as the tail of a human-readable sentence.
func describe(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "cpf":
		return "must be a valid CPF"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "numeric":
		return "must be numeric"
	case "e164":
		return "must be a valid phone number"
	default:
		if param != "" {
			return fmt.Sprintf("failed '%s=%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("failed '%s'", fe.Tag())
	}
}
