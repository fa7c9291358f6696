package validation

import (
	"strings"

	"profile-directory/internal/domain"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the directory's custom tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("no_digits", NoDigits)
	_ = v.RegisterValidation("valid_gender", ValidGender)
}

// NotBlank rejects strings that are empty after trimming whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// NoDigits rejects strings containing any ASCII decimal digit
func NoDigits(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), "0123456789")
}

// ValidGender validates membership of the closed gender set
func ValidGender(fl validator.FieldLevel) bool {
	return domain.IsValidGender(fl.Field().String())
}
