package worker

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"campusnav/config"
	"campusnav/internal/delivery"
	"campusnav/internal/delivery/middleware"
	"campusnav/internal/delivery/worker/handler"
	"campusnav/internal/domain/lifecycle"
	"campusnav/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

type workerServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the worker server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
}

// NewServer creates the navigation event worker HTTP server
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &workerServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: NewEcho(params.Cfg, params.Logger, params.PushHandler),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho returns the worker's echo instance with its routes registered
func NewEcho(cfg *config.Config, logger *slog.Logger, pushHandler *handler.PushHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// 1. Recover middleware first (to catch panics early)
	e.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(logger)
	e.Use(requestIDMiddleware.Process)

	// 3. Logger middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(logger, cfg)
	e.Use(loggerMiddleware.Handle)

	e.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Pub/Sub push endpoint
	e.POST("/push", pushHandler.HandlePush)
	e.GET("/stats", pushHandler.Stats)

	return e
}

// Serve starts the worker HTTP server
func (s *workerServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.Worker.Port))
	s.logger.Info("Starting Worker HTTP server", slog.String("host_port", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

// stop gracefully shuts down the worker server
func (s *workerServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down Worker HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
