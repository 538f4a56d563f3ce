// Package navigation holds the route progress state machine and the cosmetic
// route animator. Both are synchronous and single-owner: callers serialize
// access and perform any I/O the returned effects ask for.
package navigation

import (
	"math"
	"time"

	"github.com/google/uuid"

	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
)

// DefaultArrivalThresholdMeters is the proximity below which the destination counts as reached.
const DefaultArrivalThresholdMeters = 50.0

// GeometryRequest asks the caller to fetch a route and report it back with the same generation.
type GeometryRequest struct {
	Generation  uint64
	SessionID   uuid.UUID
	Start       entity.Coordinate
	Destination entity.Coordinate
}

// GeometryResult is the provider's answer to a GeometryRequest.
// A non-nil Err or fewer than two coordinates selects the straight-line fallback.
type GeometryResult struct {
	Generation  uint64
	Coordinates []entity.Coordinate
	Err         error
}

// Update describes what a tracker event changed.
type Update struct {
	// Request is set when the caller must start a geometry fetch.
	Request *GeometryRequest
	// Changed is set when the session snapshot differs from before the event.
	Changed bool
	// Arrived is set on the event that moved the session into Arrived.
	Arrived bool
	// Fallback is set when a geometry result was replaced by a straight line.
	Fallback bool
}

// Tracker owns the single navigation session.
type Tracker struct {
	arrivalThreshold float64
	now              func() time.Time

	generation   uint64
	session      entity.NavigationSession
	lastPosition *entity.PositionSample

	// pending is the request issued for the current generation, nil until one is issued.
	pending *GeometryRequest
}

// NewTracker creates an idle tracker. A non-positive threshold selects the default.
func NewTracker(arrivalThresholdMeters float64, now func() time.Time) *Tracker {
	if arrivalThresholdMeters <= 0 {
		arrivalThresholdMeters = DefaultArrivalThresholdMeters
	}
	if now == nil {
		now = time.Now
	}

	return &Tracker{
		arrivalThreshold: arrivalThresholdMeters,
		now:              now,
		session:          entity.NavigationSession{Status: entity.SessionIdle},
	}
}

// Session returns a snapshot of the current session.
func (t *Tracker) Session() entity.NavigationSession {
	return t.session
}

// Generation returns the tag carried by every effect of the current session.
func (t *Tracker) Generation() uint64 {
	return t.generation
}

// LastPosition returns the most recent fix, surviving across sessions.
func (t *Tracker) LastPosition() (entity.PositionSample, bool) {
	if t.lastPosition == nil {
		return entity.PositionSample{}, false
	}

	return *t.lastPosition, true
}

func (t *Tracker) advance() uint64 {
	t.generation++
	t.pending = nil

	return t.generation
}

// Select starts a fresh session toward destination, discarding whatever was live.
// The returned request is nil when no position fix is known yet; it is issued
// by the first UpdatePosition instead.
func (t *Tracker) Select(destination entity.PointOfInterest) *GeometryRequest {
	generation := t.advance()

	t.session = entity.NavigationSession{
		ID:             uuid.New(),
		Generation:     generation,
		Status:         entity.SessionRequesting,
		DestinationKey: destination.Key,
		Destination:    &destination,
		AwaitingRoute:  true,
		LastPosition:   t.lastPosition,
		StartedAt:      t.now(),
	}

	if t.lastPosition == nil {
		return nil
	}

	return t.issue(t.lastPosition.Coordinate)
}

func (t *Tracker) issue(start entity.Coordinate) *GeometryRequest {
	req := &GeometryRequest{
		Generation:  t.generation,
		SessionID:   t.session.ID,
		Start:       start,
		Destination: t.session.Destination.Coordinate,
	}
	t.pending = req

	return req
}

// UpdatePosition records a live fix and advances progress while Active.
func (t *Tracker) UpdatePosition(sample entity.PositionSample) (Update, error) {
	if !sample.IsValid() {
		return Update{}, domainerrors.ErrInvalidCoordinate
	}

	t.lastPosition = &sample
	t.session.LastPosition = &sample
	if t.session.Status == entity.SessionIdle {
		return Update{Changed: true}, nil
	}

	switch t.session.Status {
	case entity.SessionRequesting:
		if t.pending != nil {
			return Update{Changed: true}, nil
		}

		return Update{Request: t.issue(sample.Coordinate), Changed: true}, nil
	case entity.SessionActive:
		arrived := t.progress(sample)

		return Update{Changed: true, Arrived: arrived}, nil
	default:
		return Update{Changed: true}, nil
	}
}

// progress projects sample onto the nearest geometry vertex and checks arrival.
func (t *Tracker) progress(sample entity.PositionSample) bool {
	coords := t.session.Geometry.Coordinates

	closest := 0
	best := math.Inf(1)
	for i, c := range coords {
		if d := sample.DistanceTo(c); d < best {
			best = d
			closest = i
		}
	}

	t.session.ClosestIndex = closest
	t.session.ProgressPercent = min(100*float64(closest)/float64(len(coords)-1), 100)

	if sample.DistanceTo(t.session.Destination.Coordinate) < t.arrivalThreshold {
		t.session.Status = entity.SessionArrived
		t.session.ArrivedAt = t.now()

		return true
	}

	return false
}

// ResolveGeometry applies a provider answer. Answers tagged with any generation
// other than the outstanding request are ignored and leave the session untouched.
func (t *Tracker) ResolveGeometry(result GeometryResult) Update {
	if t.pending == nil || result.Generation != t.pending.Generation {
		return Update{}
	}
	req := t.pending
	t.pending = nil

	var (
		geometry entity.RouteGeometry
		fallback bool
	)
	if result.Err != nil || len(result.Coordinates) < 2 {
		geometry = entity.StraightLine(req.Start, req.Destination)
		fallback = true
	} else {
		geometry = entity.NewRouteGeometry(result.Coordinates)
	}

	t.session.Geometry = &geometry
	t.session.Fallback = fallback
	t.session.Status = entity.SessionActive
	t.session.AwaitingRoute = false
	t.session.ClosestIndex = 0
	t.session.ProgressPercent = 0

	update := Update{Changed: true, Fallback: fallback}
	if t.session.LastPosition != nil {
		update.Arrived = t.progress(*t.session.LastPosition)
	}

	return update
}

// Recompute requests a new route from the latest fix. The session stays Active
// on its current geometry until the new answer lands.
func (t *Tracker) Recompute() (*GeometryRequest, error) {
	if t.session.Status != entity.SessionActive {
		return nil, domainerrors.ErrSessionNotActive.WithDetails("status " + t.session.Status.String())
	}
	if t.lastPosition == nil {
		return nil, domainerrors.ErrPositionUnavailable
	}

	t.session.Generation = t.advance()
	t.session.AwaitingRoute = true

	return t.issue(t.lastPosition.Coordinate), nil
}

// Cancel resets to Idle. In-flight requests and animation ticks become stale.
// It reports whether a session was live.
func (t *Tracker) Cancel() bool {
	if t.session.Status == entity.SessionIdle {
		return false
	}
	t.reset()

	return true
}

// Acknowledge closes an Arrived session.
func (t *Tracker) Acknowledge() error {
	if t.session.Status != entity.SessionArrived {
		return domainerrors.ErrSessionNotActive.WithDetails("no arrival to acknowledge")
	}
	t.reset()

	return nil
}

func (t *Tracker) reset() {
	t.session = entity.NavigationSession{
		Generation:   t.advance(),
		Status:       entity.SessionIdle,
		LastPosition: t.lastPosition,
	}
}
