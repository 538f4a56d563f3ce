package middleware

import (
	"context"
	"log/slog"
	"time"

	"campusnav/config"
	deliverycontext "campusnav/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// quietPaths are only logged in debug mode.
var quietPaths = map[string]bool{
	"/health": true,
}

// LoggerMiddleware writes one access log line per request
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug && quietPaths[c.Path()] {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, start, err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()
	latency := time.Since(start)

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Int64("bytes_out", res.Size),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
	}
	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	// Errors are rendered after the handler returns, so an error with a 200 still means a failure.
	level := slog.LevelInfo
	switch {
	case res.Status >= 500:
		level = slog.LevelError
	case res.Status >= 400 || err != nil:
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(context.Background(), level, "HTTP Request", fields...)
}
