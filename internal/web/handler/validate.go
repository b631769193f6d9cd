package handler

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns the form validator shared by the page handlers.
// It registers the "password" rule: at least 8 characters with one
// uppercase letter, one lowercase letter, one digit and one special
// character.
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	})

	return v
}

func validPassword(s string) bool {
	if len(s) < 8 {
		return false
	}

	var upper, lower, digit, special bool

	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	return upper && lower && digit && special
}

// ValidationMessages flattens validator errors into per-field messages
// suitable for re-rendering a form.
func ValidationMessages(err error) map[string]string {
	out := map[string]string{}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out[""] = "Invalid input"

		return out
	}

	for _, fe := range errs {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "email":
			out[field] = "Must be a valid email address"
		case "password":
			out[field] = "Password must be at least 8 characters and contain uppercase, lowercase, number and special character"
		case "min":
			out[field] = "Too short"
		case "max":
			out[field] = "Too long"
		case "eqfield":
			out[field] = "Passwords do not match"
		default:
			out[field] = "Invalid value"
		}
	}

	return out
}
