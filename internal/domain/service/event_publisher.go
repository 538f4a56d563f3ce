package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NavigationEventType names a session lifecycle transition.
type NavigationEventType string

const (
	EventSessionStarted NavigationEventType = "session_started"
	EventRouteReady     NavigationEventType = "route_ready"
	EventArrived        NavigationEventType = "arrived"
	EventCancelled      NavigationEventType = "cancelled"
)

// NavigationEvent is a session lifecycle notification for downstream consumers (analytics, kiosks)
type NavigationEvent struct {
	EventID         string              `json:"event_id"`
	Type            NavigationEventType `json:"type"`
	SessionID       uuid.UUID           `json:"session_id"`
	Generation      uint64              `json:"generation"`
	DestinationKey  string              `json:"destination_key,omitempty"`
	DestinationName string              `json:"destination_name,omitempty"`
	Latitude        float64             `json:"latitude,omitempty"`
	Longitude       float64             `json:"longitude,omitempty"`
	Provider        string              `json:"provider,omitempty"`
	Fallback        bool                `json:"fallback,omitempty"`
	RouteMeters     float64             `json:"route_meters,omitempty"`
	OccurredAt      time.Time           `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishNavigationEvent publishes a navigation lifecycle event
	PublishNavigationEvent(ctx context.Context, event *NavigationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
