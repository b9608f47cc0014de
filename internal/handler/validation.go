package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validationMessage picks a client message for a validation failure. A missing
// field wins over any other rule.
func validationMessage(err error, messages map[string]string) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid request"
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			if msg, ok := messages["required"]; ok {
				return msg
			}
		}
	}
	if msg, ok := messages[fieldErrs[0].Tag()]; ok {
		return msg
	}
	return fieldErrs[0].Error()
}
