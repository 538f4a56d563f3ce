package impl

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/service"
	"campusnav/internal/errors"
)

func navigationEvent(id string, eventType service.NavigationEventType, key string, at time.Time) *service.NavigationEvent {
	return &service.NavigationEvent{
		EventID:         id,
		Type:            eventType,
		SessionID:       uuid.New(),
		DestinationKey:  key,
		DestinationName: "name of " + key,
		Provider:        "osrm",
		OccurredAt:      at,
	}
}

func TestActivityService_Summary(t *testing.T) {
	svc := NewActivityService(slog.New(slog.DiscardHandler))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	fallback := navigationEvent("4", service.EventRouteReady, "cse", base.Add(3*time.Minute))
	fallback.Fallback = true

	events := []*service.NavigationEvent{
		navigationEvent("1", service.EventSessionStarted, "cse", base),
		navigationEvent("2", service.EventRouteReady, "cse", base.Add(time.Minute)),
		navigationEvent("3", service.EventSessionStarted, "cse", base.Add(2*time.Minute)),
		fallback,
		navigationEvent("5", service.EventArrived, "cse", base.Add(4*time.Minute)),
		navigationEvent("6", service.EventSessionStarted, "canteen", base.Add(-time.Minute)),
		navigationEvent("7", service.EventCancelled, "canteen", base.Add(5*time.Minute)),
		navigationEvent("8", service.EventSessionStarted, "acaudi", base.Add(6*time.Minute)),
	}
	for _, event := range events {
		recorded, err := svc.Record(ctx, event)
		require.NoError(t, err)
		assert.True(t, recorded)
	}

	recorded, err := svc.Record(ctx, events[0])
	require.NoError(t, err)
	assert.False(t, recorded, "redelivered events are ignored")

	summary := svc.Summary(ctx)
	assert.Equal(t, 8, summary.Events)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 4, summary.ByType[service.EventSessionStarted])
	assert.Equal(t, 2, summary.ByProvider["osrm"])
	assert.Equal(t, base.Add(-time.Minute), summary.FirstEventAt)
	assert.Equal(t, base.Add(6*time.Minute), summary.LastEventAt)

	require.Len(t, summary.Destinations, 3)
	assert.Equal(t, "cse", summary.Destinations[0].Key)
	assert.Equal(t, 2, summary.Destinations[0].Sessions)
	assert.Equal(t, 1, summary.Destinations[0].Arrivals)
	assert.Equal(t, 1, summary.Destinations[0].Fallbacks)
	assert.Equal(t, "acaudi", summary.Destinations[1].Key, "ties are ordered by key")
	assert.Equal(t, "canteen", summary.Destinations[2].Key)
	assert.Equal(t, 1, summary.Destinations[2].Cancellations)

	summary.ByType[service.EventArrived] = 100
	assert.Equal(t, 1, svc.Summary(ctx).ByType[service.EventArrived], "summaries are copies")
}

func TestActivityService_Validation(t *testing.T) {
	svc := NewActivityService(slog.New(slog.DiscardHandler))

	tests := []struct {
		name  string
		event *service.NavigationEvent
	}{
		{name: "nil", event: nil},
		{name: "missing id", event: &service.NavigationEvent{Type: service.EventArrived}},
		{name: "unknown type", event: &service.NavigationEvent{EventID: "x", Type: "teleported"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tt.event)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestActivityService_DedupeWindow(t *testing.T) {
	svc := newActivityService(3, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	for i := range 4 {
		recorded, err := svc.Record(ctx, navigationEvent(fmt.Sprint(i), service.EventArrived, "cse", time.Now()))
		require.NoError(t, err)
		require.True(t, recorded)
	}

	recorded, err := svc.Record(ctx, navigationEvent("3", service.EventArrived, "cse", time.Now()))
	require.NoError(t, err)
	assert.False(t, recorded)

	recorded, err = svc.Record(ctx, navigationEvent("0", service.EventArrived, "cse", time.Now()))
	require.NoError(t, err)
	assert.True(t, recorded, "ids older than the window are forgotten")
}
