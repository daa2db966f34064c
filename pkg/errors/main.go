package errors

import (
	"errors"
	"fmt"
)

const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusRequestTimeout      = 408
	StatusConflict            = 409
	StatusRequestTooLarge     = 413
	StatusInternalServerError = 500
	StatusBadGateway          = 502
)

const (
	ErrorTypeDatabaseError       = "DATABASE_ERROR"
	ErrorTypeInvalidRequest      = "INVALID_REQUEST"
	ErrorTypeConflict            = "CONFLICT"
	ErrorTypeBadGateway          = "BAD_GATEWAY"
	ErrorTypeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorTypeUnknown             = "UNKNOWN_ERROR"
	ErrorTypeRequestTimeout      = "REQUEST_TIMEOUT"
	ErrorTypeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
)

// AppError carries a client-facing message plus optional diagnostics.
// Details and Code are surfaced to callers verbatim; Err never is.
type AppError struct {
	Type    string
	Message string
	Details string
	Code    string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func NewBadGatewayError(message string, err error) *AppError {
	return NewAppError(ErrorTypeBadGateway, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternalServerError, message, err)
}

func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	return ErrorTypeUnknown
}

// GetDetails returns the diagnostic details and code attached to err, if any.
func GetDetails(err error) (details string, code string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details, appErr.Code
	}
	return "", ""
}
