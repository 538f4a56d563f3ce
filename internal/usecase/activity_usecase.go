package usecase

import (
	"context"
	"time"

	"campusnav/internal/domain/service"
)

// DestinationActivity aggregates the sessions that targeted one destination
type DestinationActivity struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Sessions      int    `json:"sessions"`
	Arrivals      int    `json:"arrivals"`
	Cancellations int    `json:"cancellations"`
	// Fallbacks counts routes that were replaced by a straight line
	Fallbacks int `json:"fallbacks"`
}

// ActivitySummary is the aggregate of every navigation event recorded so far
type ActivitySummary struct {
	Events       int                                 `json:"events"`
	Duplicates   int                                 `json:"duplicates"`
	ByType       map[service.NavigationEventType]int `json:"by_type"`
	ByProvider   map[string]int                      `json:"by_provider"`
	Destinations []DestinationActivity               `json:"destinations"`
	FirstEventAt time.Time                           `json:"first_event_at,omitzero"`
	LastEventAt  time.Time                           `json:"last_event_at,omitzero"`
}

// ActivityUsecase consumes navigation lifecycle events pushed by the message queue
type ActivityUsecase interface {
	// Record stores one event. Redelivered events are reported with recorded=false.
	Record(ctx context.Context, event *service.NavigationEvent) (recorded bool, err error)
	// Summary returns the aggregate, destinations ordered by sessions then key
	Summary(ctx context.Context) *ActivitySummary
}
