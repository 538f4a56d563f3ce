package middleware

import (
	"log/slog"
	"net/http"

	"campusnav/internal/delivery/http/response"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	if validationErrs, ok := errors.AsType[validator.ValidationErrors](err); ok {
		_ = response.ValidationError(c, validationErrs)

		return
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	m.logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.ErrorCode(), "Internal server error", "")
}
