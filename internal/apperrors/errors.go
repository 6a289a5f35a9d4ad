package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeDuplicate  ErrorCode = "DUPLICATE_RESOURCE"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"

	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// FieldError describes a single failed field rule.
type FieldError struct {
	Field      string `json:"field"`
	Message    string `json:"message"`
	Value      any    `json:"value,omitempty"`
	Constraint string `json:"constraint"`
}

// AppError is the error type returned across the service boundary.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	Hint       string    `json:"hint,omitempty"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Extensions exposes the code and details to GraphQL clients.
func (e *AppError) Extensions() map[string]any {
	ext := map[string]any{"code": string(e.Code)}
	if e.Details != nil {
		ext["details"] = e.Details
	}
	if e.Hint != "" {
		ext["hint"] = e.Hint
	}
	return ext
}

// WithHint attaches a human hint for the client.
func (e *AppError) WithHint(hint string) *AppError {
	e.Hint = hint
	return e
}

// New creates an AppError with the default status for code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusFor(code),
	}
}

// Newf creates an AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an AppError that keeps err for logging.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Err = err
	return appErr
}

// Validation returns a 400 error carrying the field-level failures.
func Validation(fields []FieldError) *AppError {
	appErr := New(ErrCodeValidation, "Validation failed")
	appErr.Details = fields
	return appErr
}

// Duplicate returns a 422 error for a business uniqueness rule.
func Duplicate(field string, value any, message string) *AppError {
	appErr := New(ErrCodeDuplicate, message)
	appErr.Details = []FieldError{{
		Field:      field,
		Message:    message,
		Value:      value,
		Constraint: "unique",
	}}
	return appErr
}

// NotFound returns a 404 error for resource id.
func NotFound(resource string, id any) *AppError {
	return Newf(ErrCodeNotFound, "%s with ID %v not found", resource, id)
}

// Internal hides err behind a fixed message.
func Internal(err error) *AppError {
	return Wrap(err, ErrCodeInternal, "An unexpected error occurred")
}

// BadRequest returns a 400 error with message.
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message)
}

func statusFor(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeDuplicate:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError with code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// Normalize passes typed errors through and converts everything else to an
// internal error.
func Normalize(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return Internal(err)
}
