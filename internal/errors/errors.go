// Package errors defines the application error type shared by the backend client,
// the page services and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

// Error codes. Forbidden means the credential is valid but lacks the required role;
// Upstream means the backend answered with a non-2xx status; Unavailable means it
// could not be reached or the breaker is open.
const (
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeForbidden    ErrorCode = "forbidden"
	ErrCodeUpstream     ErrorCode = "upstream"
	ErrCodeUnavailable  ErrorCode = "unavailable"
	ErrCodeTimeout      ErrorCode = "timeout"
	ErrCodeCanceled     ErrorCode = "canceled"
)

// AppError is a categorised error. Message is safe to show to end users; Cause is not.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Status is the HTTP status reported by the backend (upstream errors only).
	Status int
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Validation creates a new Validation error. Form handlers show its message inline.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

// Forbidden creates a new Forbidden error.
func Forbidden(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message}
}

// Upstream creates an error for a non-2xx backend answer.
func Upstream(status int, message string) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: message, Status: status}
}

// Unavailable wraps a transport-level failure talking to the backend.
func Unavailable(err error, message string) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: message, Cause: err}
}

// Wrap wraps err with an AppError, preserving the cause. Wrap(nil, ...) is nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

func isCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }
func IsUnauthorized(err error) bool { return isCode(err, ErrCodeUnauthorized) }
func IsForbidden(err error) bool { return isCode(err, ErrCodeForbidden) }
func IsUpstream(err error) bool { return isCode(err, ErrCodeUpstream) }
func IsUnavailable(err error) bool { return isCode(err, ErrCodeUnavailable) }
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the upstream HTTP status carried by an AppError, or 0.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// UserMessage returns the message safe to show to an end user.
// The cause chain is dropped; non-AppErrors collapse to fallback.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
