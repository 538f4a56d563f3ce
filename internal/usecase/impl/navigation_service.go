package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"campusnav/config"
	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/navigation"
	"campusnav/internal/domain/repository"
	"campusnav/internal/domain/service"
	"campusnav/internal/errors"
	"campusnav/internal/usecase"
)

const (
	defaultRequestTimeout   = 5 * time.Second
	defaultSubscriberBuffer = 16

	outboxSize     = 64
	publishTimeout = 10 * time.Second
)

// command runs on the loop goroutine and reports back through reply.
type command struct {
	apply func() error
	reply chan commandReply
}

type commandReply struct {
	state *usecase.NavigationState
	err   error
}

type navigationService struct {
	gazetteer    repository.GazetteerRepository
	provider     service.GeometryProvider
	providerName string
	publisher    service.EventPublisher
	scheduler    service.Scheduler
	logger       *slog.Logger

	requestTimeout   time.Duration
	subscriberBuffer int

	// Owned by the loop goroutine.
	tracker  *navigation.Tracker
	animator *navigation.Animator
	stopTick func() bool
	runCtx   context.Context

	commands chan command
	results  chan navigation.GeometryResult
	ticks    chan uint64
	outbox   chan *service.NavigationEvent
	stopped  chan struct{}
	started  atomic.Bool
	wg       sync.WaitGroup

	subMu       sync.Mutex
	subscribers map[int]chan usecase.NavigationUpdate
	nextSubID   int
	closed      bool
}

// NewNavigationService creates the navigation session owner. Nothing happens
// until Run is called.
func NewNavigationService(
	cfg *config.Config,
	gazetteer repository.GazetteerRepository,
	provider service.GeometryProvider,
	publisher service.EventPublisher,
	scheduler service.Scheduler,
	logger *slog.Logger,
) usecase.NavigationUsecase {
	var (
		threshold      float64
		animation      config.AnimationConfig
		buffer         int
		requestTimeout time.Duration
	)
	if cfg.Navigation != nil {
		threshold = cfg.Navigation.ArrivalThresholdMeters
		animation = cfg.Navigation.Animation
		buffer = cfg.Navigation.SubscriberBuffer
	}
	if cfg.Routing != nil {
		requestTimeout = cfg.Routing.RequestTimeout
	}
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &navigationService{
		gazetteer:        gazetteer,
		provider:         provider,
		providerName:     provider.Name(),
		publisher:        publisher,
		scheduler:        scheduler,
		logger:           logger.With(slog.String("component", "navigation")),
		requestTimeout:   requestTimeout,
		subscriberBuffer: buffer,
		tracker:          navigation.NewTracker(threshold, time.Now),
		animator:         navigation.NewAnimator(animation.Duration, animation.Steps),
		commands:         make(chan command),
		results:          make(chan navigation.GeometryResult),
		ticks:            make(chan uint64),
		outbox:           make(chan *service.NavigationEvent, outboxSize),
		stopped:          make(chan struct{}),
		subscribers:      make(map[int]chan usecase.NavigationUpdate),
	}
}

// Run processes commands, provider answers and animation ticks one at a time
// until ctx is cancelled.
func (s *navigationService) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errors.New("navigation service already started")
	}
	s.runCtx = ctx

	s.wg.Add(1)
	go s.drainOutbox(ctx)

	s.logger.InfoContext(ctx, "Navigation loop started",
		slog.String("provider", s.providerName),
		slog.Duration("request_timeout", s.requestTimeout),
	)

	defer func() {
		s.stopAnimation()
		close(s.stopped)
		close(s.outbox)
		s.closeSubscribers()
		s.wg.Wait()
		s.logger.Info("Navigation loop stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-s.commands:
			err := cmd.apply()
			cmd.reply <- commandReply{state: s.snapshot(), err: err}
		case result := <-s.results:
			s.handleGeometry(result)
		case generation := <-s.ticks:
			s.handleTick(generation)
		}
	}
}

func (s *navigationService) do(ctx context.Context, apply func() error) (*usecase.NavigationState, error) {
	cmd := command{apply: apply, reply: make(chan commandReply, 1)}

	select {
	case s.commands <- cmd:
	case <-s.stopped:
		return nil, domainerrors.ErrNavigatorStopped
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}

	// The loop always replies to a command it accepted.
	reply := <-cmd.reply
	if reply.err != nil {
		return nil, reply.err
	}

	return reply.state, nil
}

// SelectDestination starts a fresh session toward the point stored under key
func (s *navigationService) SelectDestination(ctx context.Context, key string) (*usecase.NavigationState, error) {
	return s.do(ctx, func() error {
		point, err := findDestination(s.gazetteer, key)
		if err != nil {
			return err
		}

		s.stopAnimation()
		if previous := s.tracker.Session(); isLive(previous) {
			s.publish(service.EventCancelled, previous)
		}

		request := s.tracker.Select(*point)
		session := s.tracker.Session()
		s.logger.InfoContext(ctx, "Navigation session started",
			slog.String("session_id", session.ID.String()),
			slog.String("destination", point.Key),
			slog.Bool("awaiting_position", request == nil),
		)
		s.publish(service.EventSessionStarted, session)

		if request != nil {
			s.fetch(*request)
		}
		s.broadcastState()

		return nil
	})
}

// UpdatePosition feeds a live position fix
func (s *navigationService) UpdatePosition(ctx context.Context, sample entity.PositionSample) (*usecase.NavigationState, error) {
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now()
	}

	return s.do(ctx, func() error {
		update, err := s.tracker.UpdatePosition(sample)
		if err != nil {
			return err
		}
		s.apply(update)

		return nil
	})
}

// Recompute requests a new route from the latest fix for the active session
func (s *navigationService) Recompute(ctx context.Context) (*usecase.NavigationState, error) {
	return s.do(ctx, func() error {
		request, err := s.tracker.Recompute()
		if err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "Recomputing route",
			slog.String("session_id", request.SessionID.String()),
			slog.Uint64("generation", request.Generation),
		)
		s.rebindAnimation(request.Generation)
		s.fetch(*request)
		s.broadcastState()

		return nil
	})
}

// Cancel ends the session, discarding any in-flight route request and animation
func (s *navigationService) Cancel(ctx context.Context) (*usecase.NavigationState, error) {
	return s.do(ctx, func() error {
		session := s.tracker.Session()
		if !s.tracker.Cancel() {
			return nil
		}

		s.stopAnimation()
		s.logger.InfoContext(ctx, "Navigation session cancelled", slog.String("session_id", session.ID.String()))
		s.publish(service.EventCancelled, session)
		s.broadcastState()

		return nil
	})
}

// Acknowledge closes an arrived session
func (s *navigationService) Acknowledge(ctx context.Context) (*usecase.NavigationState, error) {
	return s.do(ctx, func() error {
		if err := s.tracker.Acknowledge(); err != nil {
			return err
		}
		s.broadcastState()

		return nil
	})
}

// State returns the current snapshot
func (s *navigationService) State(ctx context.Context) (*usecase.NavigationState, error) {
	return s.do(ctx, func() error { return nil })
}

// RouteGeoJSON exports the current route, destination and position as a feature collection
func (s *navigationService) RouteGeoJSON(ctx context.Context) (*geojson.FeatureCollection, error) {
	state, err := s.State(ctx)
	if err != nil {
		return nil, err
	}

	session := state.Session
	if session.Geometry == nil {
		return nil, domainerrors.ErrSessionNotActive.WithDetails("no route geometry")
	}

	fc := geojson.NewFeatureCollection()

	route := geojson.NewFeature(session.Geometry.LineString())
	route.Properties["kind"] = "route"
	route.Properties["session_id"] = session.ID.String()
	route.Properties["generation"] = session.Generation
	route.Properties["provider"] = s.providerName
	route.Properties["fallback"] = session.Fallback
	route.Properties["length_m"] = session.Geometry.Length
	route.Properties["progress_percent"] = session.ProgressPercent
	fc.Append(route)

	if session.Destination != nil {
		destination := geojson.NewFeature(session.Destination.Coordinate.Point())
		destination.Properties["kind"] = "destination"
		destination.Properties["key"] = session.Destination.Key
		destination.Properties["name"] = session.Destination.Name
		fc.Append(destination)
	}

	if session.LastPosition != nil {
		position := geojson.NewFeature(session.LastPosition.Point())
		position.Properties["kind"] = "position"
		position.Properties["timestamp"] = session.LastPosition.Timestamp
		fc.Append(position)
	}

	return fc, nil
}

// Subscribe registers for updates
func (s *navigationService) Subscribe() (<-chan usecase.NavigationUpdate, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan usecase.NavigationUpdate, s.subscriberBuffer)
	if s.closed {
		close(ch)

		return ch, func() {}
	}

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()

			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		})
	}
}

func isLive(session entity.NavigationSession) bool {
	return session.Status == entity.SessionRequesting || session.Status == entity.SessionActive
}

// apply performs the effects a tracker update asks for.
func (s *navigationService) apply(update navigation.Update) {
	if update.Request != nil {
		s.fetch(*update.Request)
	}

	if update.Arrived {
		session := s.tracker.Session()
		s.stopAnimation()
		s.logger.Info("Destination reached",
			slog.String("session_id", session.ID.String()),
			slog.String("destination", session.DestinationKey),
		)
		s.publish(service.EventArrived, session)
	}

	if update.Changed {
		s.broadcastState()
	}
}

// fetch asks the provider for a route without blocking the loop. The answer is
// posted back tagged with the request generation.
func (s *navigationService) fetch(request navigation.GeometryRequest) {
	ctx := s.runCtx

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		routeCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()

		coords, err := s.provider.Route(routeCtx, request.Start, request.Destination)
		if err != nil {
			err = domainerrors.NewProviderError(s.providerName, err)
		}

		select {
		case s.results <- navigation.GeometryResult{Generation: request.Generation, Coordinates: coords, Err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *navigationService) handleGeometry(result navigation.GeometryResult) {
	update := s.tracker.ResolveGeometry(result)
	if !update.Changed {
		s.logger.Debug("Discarding stale route geometry", slog.Uint64("generation", result.Generation))

		return
	}

	session := s.tracker.Session()
	if update.Fallback {
		s.logger.Warn("Route provider failed, using straight line",
			slog.String("session_id", session.ID.String()),
			slog.Any("error", result.Err),
			slog.Int("points", len(result.Coordinates)),
		)
	}
	s.publish(service.EventRouteReady, session)

	if session.Status == entity.SessionActive {
		s.startAnimation(session)
	}
	s.apply(update)
}

func (s *navigationService) startAnimation(session entity.NavigationSession) {
	coords := session.Geometry.Coordinates

	s.stopAnimation()
	s.animator.Start(session.Generation, coords[0], coords[len(coords)-1])
	s.scheduleTick(session.Generation)
}

func (s *navigationService) scheduleTick(generation uint64) {
	s.stopTick = s.scheduler.AfterFunc(s.animator.Interval(), func() {
		select {
		case s.ticks <- generation:
		case <-s.stopped:
		}
	})
}

// rebindAnimation keeps a running reveal going under the session's new generation.
func (s *navigationService) rebindAnimation(generation uint64) {
	running := s.animator.State().Running
	s.animator.Rebind(generation)
	if !running {
		return
	}

	if s.stopTick != nil {
		s.stopTick()
	}
	s.scheduleTick(generation)
}

func (s *navigationService) stopAnimation() {
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}
	s.animator.Stop()
}

func (s *navigationService) handleTick(generation uint64) {
	frame, ok := s.animator.Advance(generation)
	if !ok {
		return
	}

	done := s.animator.Done()
	if done {
		s.stopTick = nil
	} else {
		s.scheduleTick(generation)
	}

	s.broadcast(usecase.NavigationUpdate{Kind: usecase.UpdateFrame, Frame: &frame})
	if done {
		s.broadcastState()
	}
}

func (s *navigationService) snapshot() *usecase.NavigationState {
	animation := s.animator.State()

	return &usecase.NavigationState{
		Session:   s.tracker.Session(),
		Animating: animation.Running,
		MapLocked: animation.Locked,
	}
}

func (s *navigationService) broadcastState() {
	s.broadcast(usecase.NavigationUpdate{Kind: usecase.UpdateState, State: s.snapshot()})
}

func (s *navigationService) broadcast(update usecase.NavigationUpdate) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for id, ch := range s.subscribers {
		select {
		case ch <- update:
		default:
			s.logger.Debug("Dropping update for slow subscriber", slog.Int("subscriber", id), slog.String("kind", string(update.Kind)))
		}
	}
}

func (s *navigationService) closeSubscribers() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
	s.closed = true
}

// publish queues a lifecycle event. Events are delivered in order by a single
// goroutine; when the queue is full the event is dropped.
func (s *navigationService) publish(eventType service.NavigationEventType, session entity.NavigationSession) {
	event := &service.NavigationEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		SessionID:      session.ID,
		Generation:     session.Generation,
		DestinationKey: session.DestinationKey,
		Provider:       s.providerName,
		Fallback:       session.Fallback,
		OccurredAt:     time.Now(),
	}
	if session.Destination != nil {
		event.DestinationName = session.Destination.Name
	}
	if session.LastPosition != nil {
		event.Latitude = session.LastPosition.Lat
		event.Longitude = session.LastPosition.Lng
	}
	if session.Geometry != nil {
		event.RouteMeters = session.Geometry.Length
	}

	select {
	case s.outbox <- event:
	default:
		s.logger.Warn("Event outbox full, dropping event",
			slog.String("type", string(eventType)),
			slog.String("session_id", session.ID.String()),
		)
	}
}

func (s *navigationService) drainOutbox(ctx context.Context) {
	defer s.wg.Done()

	// Events queued before shutdown are still delivered.
	publishCtx := context.WithoutCancel(ctx)
	for event := range s.outbox {
		ctx, cancel := context.WithTimeout(publishCtx, publishTimeout)
		if err := s.publisher.PublishNavigationEvent(ctx, event); err != nil {
			s.logger.Warn("Failed to publish navigation event",
				slog.String("type", string(event.Type)),
				slog.String("event_id", event.EventID),
				slog.Any("error", err),
			)
		}
		cancel()
	}
}
