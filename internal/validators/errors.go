package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrInvalidUsername = errors.New("invalid username format")
)

// ValidationError wraps validator.ValidationErrors with user-facing messages.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, msgForTag(fe))
	}
	return strings.Join(msgs, "; ")
}

// Message returns the message of the first failed field, in declaration
// order. It is the text shown to clients.
func (e *ValidationError) Message() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return msgForTag(e.Errors[0])
}

// Fields returns a map of JSON field names to error messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		fields[fe.Field()] = msgForTag(fe)
	}
	return fields
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "please provide a valid email address"
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", field)
	case "min":
		if isNumeric(fe) {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		if isNumeric(fe) {
			return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be in ISO format (YYYY-MM-DD)", field)
	case tagStrongPassword:
		return "password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	case tagPhone:
		return "phone number must be a valid international format with 10 to 15 digits"
	case tagGraduationYear:
		return fmt.Sprintf("graduation year must be between %d and %d", minGraduationYear, maxGraduationYear())
	default:
		return fmt.Sprintf("%s failed on '%s' validation", field, fe.Tag())
	}
}

func isNumeric(fe validator.FieldError) bool {
	switch fe.Kind().String() {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64":
		return true
	}
	return false
}
