package errors

import (
	"net/http"

	"campusnav/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches on the business error code so WithDetails copies still match the sentinel
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Matching outcomes surfaced at the API boundary
	ErrNoCommand = NewBaseError(
		http.StatusUnprocessableEntity,
		"NO_COMMAND",
		"No navigation command found",
		"",
	)

	ErrDestinationNotFound = NewBaseError(
		http.StatusNotFound,
		"DESTINATION_NOT_FOUND",
		"Could not find that location",
		"",
	)

	ErrAmbiguousDestination = NewBaseError(
		http.StatusConflict,
		"AMBIGUOUS_DESTINATION",
		"Destination needs confirmation",
		"",
	)

	ErrUnknownDestination = NewBaseError(
		http.StatusNotFound,
		"UNKNOWN_DESTINATION",
		"No point of interest with that key",
		"",
	)

	// Navigation session errors
	ErrInvalidCoordinate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATE",
		"Coordinate is outside valid bounds",
		"",
	)

	ErrSessionNotActive = NewBaseError(
		http.StatusConflict,
		"SESSION_NOT_ACTIVE",
		"No active navigation session",
		"",
	)

	ErrPositionUnavailable = NewBaseError(
		http.StatusConflict,
		"POSITION_UNAVAILABLE",
		"No live position received yet",
		"",
	)

	ErrNavigatorStopped = NewBaseError(
		http.StatusServiceUnavailable,
		"NAVIGATOR_STOPPED",
		"Navigation service is not running",
		"",
	)

	// Gazetteer errors
	ErrInvalidGazetteer = NewBaseError(
		http.StatusInternalServerError,
		"INVALID_GAZETTEER",
		"Gazetteer data is invalid",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// ProviderError reports a failed route geometry request. It never reaches users:
// the tracker recovers with a straight-line geometry.
type ProviderError struct {
	provider string
	err      error
}

// NewProviderError creates a route provider failure
func NewProviderError(provider string, err error) AppError {
	return &ProviderError{
		provider: provider,
		err:      err,
	}
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return errors.Wrapf(e.err, "route provider %s failed", e.provider).Error()
}

// Unwrap exposes the transport error
func (e *ProviderError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *ProviderError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *ProviderError) ErrorCode() string {
	return "PROVIDER_FAILURE"
}

// Message returns the user-friendly error message
func (e *ProviderError) Message() string {
	return "Route provider unavailable"
}

// Details returns detailed error information
func (e *ProviderError) Details() string {
	return e.provider
}
