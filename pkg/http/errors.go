package http

import (
	"fmt"
	"net/http"
)

// AppError is an error with the HTTP status and client-facing message it maps to.
type AppError struct {
	Message string
	Status  int
	// Extra carries additional body fields, e.g. upstream status and details.
	Extra map[string]interface{}
	Err   error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(status int, message string) *AppError {
	return &AppError{Message: message, Status: status}
}

// WithExtra sets an additional body field.
func (e *AppError) WithExtra(key string, value interface{}) *AppError {
	if e.Extra == nil {
		e.Extra = make(map[string]interface{})
	}
	e.Extra[key] = value
	return e
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// BadRequestError creates a 400 error.
func BadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

// UnauthorizedError creates a 401 error.
func UnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message)
}

// TooManyRequestsError creates a 429 error.
func TooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message)
}
