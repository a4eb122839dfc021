package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/zsiec/telecine/pkg/timecode"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "VALIDATION_ERROR"
	ErrorTypeInvalidRate       ErrorType = "INVALID_FRAMERATE"
	ErrorTypeMalformedTimecode ErrorType = "MALFORMED_TIMECODE"
	ErrorTypeFrameUnderflow    ErrorType = "FRAME_UNDERFLOW"
	ErrorTypeRateMismatch      ErrorType = "RATE_MISMATCH"
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
	ErrorTypeTimeout           ErrorType = "TIMEOUT"
	ErrorTypeRateLimit         ErrorType = "RATE_LIMIT"
)

// AppError represents an application error with additional context.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Err        error                  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCode adds an error code.
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// New creates a new AppError.
func New(errType ErrorType, message string, httpStatus int) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an existing error.
func Wrap(err error, errType ErrorType, message string, httpStatus int) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Common error constructors.

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(resource string) *AppError {
	return New(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *AppError {
	return New(ErrorTypeInternal, message, http.StatusInternalServerError)
}

// WrapInternalError wraps an error as internal server error.
func WrapInternalError(err error, message string) *AppError {
	return Wrap(err, ErrorTypeInternal, message, http.StatusInternalServerError)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(message string) *AppError {
	return New(ErrorTypeTimeout, message, http.StatusRequestTimeout)
}

// NewRateLimitError creates a rate limit error.
func NewRateLimitError(message string) *AppError {
	return New(ErrorTypeRateLimit, message, http.StatusTooManyRequests)
}

// FromTimecodeError maps errors returned by the timecode package to
// typed API errors. Unknown errors become internal errors.
func FromTimecodeError(err error) *AppError {
	switch {
	case stderrors.Is(err, timecode.ErrInvalidRate):
		return Wrap(err, ErrorTypeInvalidRate, err.Error(), http.StatusBadRequest)
	case stderrors.Is(err, timecode.ErrMalformedTimecode):
		return Wrap(err, ErrorTypeMalformedTimecode, err.Error(), http.StatusBadRequest)
	case stderrors.Is(err, timecode.ErrFrameUnderflow):
		return Wrap(err, ErrorTypeFrameUnderflow, err.Error(), http.StatusUnprocessableEntity)
	case stderrors.Is(err, timecode.ErrRateMismatch):
		return Wrap(err, ErrorTypeRateMismatch, err.Error(), http.StatusUnprocessableEntity)
	default:
		return WrapInternalError(err, "An unexpected error occurred")
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts AppError from an error.
func GetAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}
