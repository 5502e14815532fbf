package utils

import (
	"fmt"
	"net/http"
)

// AppError is a structured application error carrying the HTTP status
// that should be reported for it.
type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

// WrapInternal keeps the underlying cause available via errors.Unwrap
// while presenting a clean message to clients.
func WrapInternal(message string, cause error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Cause: cause}
}
