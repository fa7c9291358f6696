package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// User-facing rejection messages for a draft save
const (
	MsgFieldsRequired = "All fields must be filled."
	MsgCountryDigits  = "Country name cannot contain numbers."
	MsgInvalidGender  = "Gender must be one of: male, female, transgender, rather not say, other."
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"First":       "First name",
	"Last":        "Last name",
	"DOB":         "Date of birth",
	"Gender":      "Gender",
	"Country":     "Country",
	"Description": "Description",
}

// DraftRejection picks the single blocking message for a failed draft
// validation. Missing fields take precedence over format problems.
func DraftRejection(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msg := ""
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required", "not_blank":
			return MsgFieldsRequired
		case "no_digits":
			msg = MsgCountryDigits
		case "valid_gender":
			if msg == "" {
				msg = MsgInvalidGender
			}
		}
	}
	if msg == "" {
		return formatSingleError(validationErrors[0])
	}
	return msg
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: Required", label)
	case "no_digits":
		return fmt.Sprintf("%s: Must not contain numbers", label)
	case "valid_gender":
		return fmt.Sprintf("%s: Unknown value %q", label, e.Value())
	case "datetime":
		return fmt.Sprintf("%s: Must be a date formatted as %s", label, e.Param())
	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: Validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
