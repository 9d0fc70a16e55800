package errors

import (
	"errors"
	"net/http"
)

// Standard error types
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("resource conflict")
	ErrInternal      = errors.New("internal server error")
	ErrNetwork       = errors.New("backend unreachable")
	ErrRequestFailed = errors.New("backend request failed")
)

// AppError represents a structured application error with context
type AppError struct {
	Err        error
	StatusCode int
	Message    string
	Context    map[string]interface{}
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext adds additional context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new AppError with the given parameters
func NewAppError(err error, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Context:    make(map[string]interface{}),
	}
}

// NewNotFoundError creates a not found error. Collection lookup misses are
// expected and should usually degrade to a placeholder row, not escalate.
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, http.StatusNotFound)
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	return NewAppError(ErrForbidden, message, http.StatusForbidden)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(ErrConflict, message, http.StatusConflict)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrInternal, message, http.StatusInternalServerError)
}

// NewNetworkError creates an error for a request that never reached the backend
func NewNetworkError(message string) *AppError {
	return NewAppError(ErrNetwork, message, http.StatusBadGateway)
}

// NewRequestFailedError creates an error for a non-2xx backend response,
// preserving the upstream status code
func NewRequestFailedError(status int, message string) *AppError {
	return NewAppError(ErrRequestFailed, message, status)
}

// StatusOf maps an error to the HTTP status the gateway should answer with
func StatusOf(err error) int {
	var appErr *AppError

	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a soft collection-lookup miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
