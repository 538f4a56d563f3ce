package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"campusnav/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"campusnav/internal/errors"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	publisher := client.Publisher(topicID)
	// Events of one session must arrive in order
	publisher.EnableMessageOrdering = true

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishNavigationEvent publishes an event to Google Pub/Sub, ordered by session
func (p *googlePubSubPublisher) PublishNavigationEvent(ctx context.Context, event *service.NavigationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := &pubsub.Message{
		Data:        data,
		Attributes:  eventAttributes(event),
		OrderingKey: event.SessionID.String(),
	}

	result := p.publisher.Publish(ctx, msg)

	serverID, err := result.Get(ctx)
	if err != nil {
		p.publisher.ResumePublish(msg.OrderingKey)

		return errors.WithStack(err)
	}

	p.logger.Debug("[GooglePubSub] Navigation event published",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}

// eventAttributes are the message attributes subscribers filter on
func eventAttributes(event *service.NavigationEvent) map[string]string {
	attributes := map[string]string{
		"event_id":   event.EventID,
		"type":       string(event.Type),
		"session_id": event.SessionID.String(),
		"generation": strconv.FormatUint(event.Generation, 10),
	}
	if event.DestinationKey != "" {
		attributes["destination_key"] = event.DestinationKey
	}

	return attributes
}
