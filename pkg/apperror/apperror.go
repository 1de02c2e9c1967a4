package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
	ErrUnavailable  = errors.New("service unavailable")
	ErrInternal     = errors.New("internal server error")
)

// AppError carries a sentinel base error for classification, a client-facing
// Message, and server-side Details/Cause that never leave the process in
// production.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

// NewValidation carries the first violated rule's message verbatim; it is the
// one error whose Message goes to the client untouched.
func NewValidation(reason string) *AppError {
	return NewAppError(ErrInvalidInput, reason, "", nil)
}

// NewConflict reports a duplicate identity. msg is the client-facing error,
// hint the accompanying "message" field.
func NewConflict(msg, hint string) *AppError {
	return NewAppError(ErrConflict, msg, hint, nil)
}

func NewUnavailable(msg string) *AppError {
	return NewAppError(ErrUnavailable, msg, "", nil)
}

// NewInternal wraps an unexpected failure. msg is the generic client-facing
// text; the cause is logged server-side and exposed only outside production.
func NewInternal(msg string, err error) *AppError {
	return NewAppError(ErrInternal, msg, "", err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
