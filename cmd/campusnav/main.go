package main

import (
	"context"
	"log/slog"
	"os"

	"campusnav/config"
	"campusnav/internal/delivery"
	"campusnav/internal/delivery/http"
	"campusnav/internal/delivery/http/middleware"
	"campusnav/internal/delivery/http/router/handler"
	"campusnav/internal/errors"
	"campusnav/internal/infra/clock"
	"campusnav/internal/infra/gazetteer"
	logs "campusnav/internal/infra/log"
	"campusnav/internal/infra/pubsub"
	"campusnav/internal/infra/qrcode"
	"campusnav/internal/infra/routing"
	"campusnav/internal/usecase"
	"campusnav/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			runNavigator,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			gazetteer.New,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			routing.NewGeometryProvider,
			qrcode.New,
			clock.NewScheduler,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDestinationService,
			impl.NewNavigationService,
			impl.NewAssistantService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHealthHandler,
			handler.NewDestinationHandler,
			handler.NewNavigationHandler,
			handler.NewAssistantHandler,
			handler.NewStreamHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// runNavigator ties the navigation event loop to the application lifecycle.
func runNavigator(lc fx.Lifecycle, shutdowner fx.Shutdowner, navigation usecase.NavigationUsecase, logger *slog.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				err := navigation.Run(runCtx)
				if err != nil {
					logger.Error("Navigation loop failed", slog.Any("error", err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
				done <- err
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return errors.WithStack(ctx.Err())
			}
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
