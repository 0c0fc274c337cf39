package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error with user-friendly message.
type ValidationError struct {
	Field   string      // Field name, e.g. "host"
	Tag     string      // Validation tag that failed, e.g. "required"
	Value   interface{} // Actual value that failed validation
	Message string      // User-friendly error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors. It renders on a
// single line because the message ends up in the check's status line.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return "invalid options: " + strings.Join(parts, "; ")
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("numeric_oid", validateNumericOID)
	_ = validate.RegisterValidation("snmp_host", validateSNMPHost)
}

// Validate checks the struct tags on v (an *Options or *Profile) and returns
// ValidationErrors when any rule fails.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, &ValidationError{
			Field:   formatFieldName(fe.Namespace()),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: translateError(fe),
		})
	}
	return out
}

// validateNumericOID accepts dotted-decimal OIDs with an optional leading dot.
func validateNumericOID(fl validator.FieldLevel) bool {
	oid := strings.TrimPrefix(fl.Field().String(), ".")
	if oid == "" {
		return false
	}
	for _, arc := range strings.Split(oid, ".") {
		if arc == "" {
			return false
		}
		for _, r := range arc {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// validateSNMPHost accepts anything usable as a single command-line address:
// names with underscores or a trailing dot, IPv6 literals with a zone, and so
// on. Whitespace and control characters are rejected.
func validateSNMPHost(fl validator.FieldLevel) bool {
	host := fl.Field().String()
	if host == "" {
		return false
	}
	for _, r := range host {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// formatFieldName converts the validator field namespace to a user-friendly format.
// Example: "Profile.CPU.OID" -> "cpu.oid"
func formatFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}

// translateError converts a validator.FieldError to a user-friendly message.
func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s (got %q)", fe.Param(), fe.Value())
	case "snmp_host":
		return fmt.Sprintf("%q is not a usable host address", fe.Value())
	case "numeric_oid":
		return fmt.Sprintf("%q is not a numeric OID", fe.Value())
	default:
		return fmt.Sprintf("failed on '%s' rule", fe.Tag())
	}
}
