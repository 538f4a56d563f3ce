// Package context carries request-scoped values between middleware, handlers and use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeyLanguage  ContextKey = "language"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the request ID stored on the echo context, or "" when unset.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(string(KeyRequestID)).(string)

	return id
}

// SetRequestID stores the request ID on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from a standard context, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// WithLogger returns a new context with the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when none was set.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// SetLanguage stores the negotiated reply language on the echo context.
func SetLanguage(c echo.Context, language string) {
	c.Set(string(KeyLanguage), language)
}

// GetLanguage returns the negotiated reply language, or "" when negotiation did not run.
func GetLanguage(c echo.Context) string {
	language, _ := c.Get(string(KeyLanguage)).(string)

	return language
}
