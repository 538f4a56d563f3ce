package pubsub

import (
	"context"
	"log/slog"
	"net/url"

	"campusnav/config"
	"campusnav/internal/domain/constants"
	"campusnav/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher is a no-op implementation when Pub/Sub is disabled
type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that only logs at debug level
func NewNoopPublisher(logger *slog.Logger) service.EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) PublishNavigationEvent(ctx context.Context, event *service.NavigationEvent) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the publisher named by pubsub.provider and closes it on shutdown
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := newPublisher(params.Ctx, params.Config.PubSub, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing navigation event publisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.PubSubProviderNoop {
		logger.Info("Navigation events disabled, using no-op publisher")

		return NewNoopPublisher(logger), nil
	}

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		endpoint, err := url.Parse(cfg.LocalEndpoint)
		if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
			return nil, errors.Errorf("pubsub.localEndpoint must be an absolute URL, got %q", cfg.LocalEndpoint)
		}
		logger.Info("Pushing navigation events to the local worker",
			slog.String("endpoint", endpoint.String()),
		)

		return NewLocalHTTPPublisher(endpoint.String(), logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
