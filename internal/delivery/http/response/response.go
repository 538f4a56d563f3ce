package response

import (
	"net/http"

	deliverycontext "campusnav/internal/delivery/context"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/errors"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure
type Response struct {
	Success   bool       `json:"success"`
	Code      int        `json:"code"`    // HTTP status code
	Message   string     `json:"message"` // User-friendly message
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "UNKNOWN_DESTINATION"
	Details string `json:"details,omitempty"` // Never set for 5xx responses
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		Data:      data,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// Error error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if statusCode >= http.StatusInternalServerError {
		details = ""
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, details string) error {
	return Error(c, http.StatusBadRequest, errorCode, "Invalid request", details)
}

// BindingError returns a 400 error for a body that could not be decoded
func BindingError(c echo.Context, details string) error {
	return Error(c, http.StatusBadRequest, "INVALID_INPUT", "Request body could not be decoded", details)
}

// ValidationError returns a 400 error for a body that failed validation
func ValidationError(c echo.Context, err error) error {
	return Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err.Error())
}

// AppError renders a domain error with its own status and business code.
// Anything that is not an AppError is returned with a stack for the central error handler.
func AppError(c echo.Context, err error) error {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
