// Package validation validates typed request bodies before any business
// logic runs. Every handler parses into a concrete struct and calls Struct;
// no ad hoc type coercion happens past this point.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 4-digit transaction PIN
	_ = v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return pinPattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct runs the validation tags of a request body.
func Struct(s any) error {
	return validate.Struct(s)
}

// IsPin reports whether raw is a well-formed 4-digit PIN.
func IsPin(raw string) bool {
	return pinPattern.MatchString(raw)
}
