package impl

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/service"
	"campusnav/internal/usecase"
)

// defaultDedupeWindow is how many recent event IDs are remembered for redelivery detection.
const defaultDedupeWindow = 4096

type activityService struct {
	logger *slog.Logger

	mu      sync.Mutex
	summary usecase.ActivitySummary
	byKey   map[string]*usecase.DestinationActivity
	// seen and order form a FIFO set of recent event IDs
	seen   map[string]struct{}
	order  []string
	window int
}

// NewActivityService creates the in-memory navigation activity aggregate
func NewActivityService(logger *slog.Logger) usecase.ActivityUsecase {
	return newActivityService(defaultDedupeWindow, logger)
}

func newActivityService(window int, logger *slog.Logger) *activityService {
	return &activityService{
		logger: logger.With(slog.String("component", "activity")),
		summary: usecase.ActivitySummary{
			ByType:     make(map[service.NavigationEventType]int),
			ByProvider: make(map[string]int),
		},
		byKey:  make(map[string]*usecase.DestinationActivity),
		seen:   make(map[string]struct{}, window),
		window: window,
	}
}

func validateEvent(event *service.NavigationEvent) error {
	if event == nil || event.EventID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("event id is required")
	}

	switch event.Type {
	case service.EventSessionStarted, service.EventRouteReady, service.EventArrived, service.EventCancelled:
		return nil
	default:
		return domainerrors.ErrValidationFailed.WithDetails("unknown event type " + string(event.Type))
	}
}

// Record implements usecase.ActivityUsecase
func (s *activityService) Record(ctx context.Context, event *service.NavigationEvent) (bool, error) {
	if err := validateEvent(event); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[event.EventID]; ok {
		s.summary.Duplicates++

		return false, nil
	}
	s.remember(event.EventID)

	s.summary.Events++
	s.summary.ByType[event.Type]++
	if event.Provider != "" && event.Type == service.EventRouteReady {
		s.summary.ByProvider[event.Provider]++
	}
	if s.summary.FirstEventAt.IsZero() || event.OccurredAt.Before(s.summary.FirstEventAt) {
		s.summary.FirstEventAt = event.OccurredAt
	}
	if event.OccurredAt.After(s.summary.LastEventAt) {
		s.summary.LastEventAt = event.OccurredAt
	}

	if event.DestinationKey != "" {
		destination := s.destination(event.DestinationKey, event.DestinationName)
		switch event.Type {
		case service.EventSessionStarted:
			destination.Sessions++
		case service.EventArrived:
			destination.Arrivals++
		case service.EventCancelled:
			destination.Cancellations++
		case service.EventRouteReady:
			if event.Fallback {
				destination.Fallbacks++
			}
		}
	}

	s.logger.DebugContext(ctx, "Recorded navigation event",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
		slog.String("destination_key", event.DestinationKey),
	)

	return true, nil
}

func (s *activityService) remember(eventID string) {
	if len(s.order) >= s.window {
		delete(s.seen, s.order[0])
		s.order = s.order[1:]
	}
	s.seen[eventID] = struct{}{}
	s.order = append(s.order, eventID)
}

func (s *activityService) destination(key, name string) *usecase.DestinationActivity {
	destination, ok := s.byKey[key]
	if !ok {
		destination = &usecase.DestinationActivity{Key: key}
		s.byKey[key] = destination
	}
	if name != "" {
		destination.Name = name
	}

	return destination
}

// Summary implements usecase.ActivityUsecase
func (s *activityService) Summary(_ context.Context) *usecase.ActivitySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := s.summary
	summary.ByType = maps.Clone(s.summary.ByType)
	summary.ByProvider = maps.Clone(s.summary.ByProvider)
	summary.Destinations = make([]usecase.DestinationActivity, 0, len(s.byKey))
	for _, destination := range s.byKey {
		summary.Destinations = append(summary.Destinations, *destination)
	}
	slices.SortFunc(summary.Destinations, func(a, b usecase.DestinationActivity) int {
		if c := cmp.Compare(b.Sessions, a.Sessions); c != 0 {
			return c
		}

		return cmp.Compare(a.Key, b.Key)
	})

	return &summary
}
