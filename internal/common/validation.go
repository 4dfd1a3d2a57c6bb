// File: internal/common/validation.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps validator.Validate so that reported field names are the JSON names the caller sent.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and turns any failure into a 400 APIError naming every failing field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return NewValidationAPIError(ve)
	}
	return ErrBadRequest.WithMessage(err.Error())
}

// NewValidationAPIError builds the 400 response for failed field validation.
func NewValidationAPIError(errs validator.ValidationErrors) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       KindValidation,
		Message:    ValidationMessage(errs),
		Details:    FormatValidationErrors(errs),
	}
}

// ValidationMessage renders a single sentence naming the missing fields first, then the invalid ones.
func ValidationMessage(errs validator.ValidationErrors) string {
	var missing []string
	var invalid []string
	for _, e := range errs {
		if isPresenceTag(e.Tag()) {
			missing = append(missing, e.Field())
			continue
		}
		invalid = append(invalid, fieldMessage(e))
	}

	var parts []string
	if len(missing) == 1 {
		parts = append(parts, fmt.Sprintf("Missing required field: %s.", missing[0]))
	} else if len(missing) > 1 {
		parts = append(parts, fmt.Sprintf("Missing required fields: %s.", strings.Join(missing, ", ")))
	}
	parts = append(parts, invalid...)
	return strings.Join(parts, " ")
}

// FormatValidationErrors converts validator.ValidationErrors into a field -> message map.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string, len(errs))
	for _, e := range errs {
		errorMap[e.Field()] = fieldMessage(e)
	}
	return errorMap
}

func isPresenceTag(tag string) bool {
	return tag == "required" || strings.HasPrefix(tag, "required_")
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required", "required_without", "required_if", "required_unless":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "eqfield":
		if e.Param() == "Password" || e.Param() == "NewPassword" {
			return "Passwords do not match."
		}
		return fmt.Sprintf("The %s field must match %s.", field, e.Param())
	case "len":
		return fmt.Sprintf("The %s field must be exactly %s characters long.", field, e.Param())
	case "numeric":
		return fmt.Sprintf("The %s field must contain only digits.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters long.", field, e.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s characters.", field, e.Param())
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
	}
}
