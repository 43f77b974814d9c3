package apperror

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MapValidationError turns a validator error into a single user-facing
// AppError. Only the first failing field is reported.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		e := errs[0]
		field := strings.ReplaceAll(e.Field(), "_", " ")

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		default:
			return InvalidField(field)
		}
	}

	return ErrInvalidInput
}
