package errors

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationMessages maps validator tags to client-facing messages.
type ValidationMessages map[string]string

// Format returns the message registered for the first failing tag in err.
// Unknown tags and non-validator errors yield fallback.
func (m ValidationMessages) Format(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fallback
	}

	if msg, ok := m[validationErrors[0].Tag()]; ok {
		return msg
	}

	return fallback
}

// NewValidationError converts a validator failure into an INVALID_REQUEST AppError.
func NewValidationError(err error, messages ValidationMessages, fallback string) *AppError {
	return NewInvalidRequestError(messages.Format(err, fallback), err)
}
