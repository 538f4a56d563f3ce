package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/errors"
)

var (
	gateCoord = entity.Coordinate{Lat: 12.1930, Lng: 79.0845}
	cseCoord  = entity.Coordinate{Lat: 12.1928, Lng: 79.0832}

	csePoint    = entity.PointOfInterest{Key: "cse", Name: "CSE Block", Coordinate: cseCoord}
	templePoint = entity.PointOfInterest{Key: "temple", Name: "Arunai Temple", Coordinate: entity.Coordinate{Lat: 12.192394, Lng: 79.082822}}
)

func fixedNow() time.Time {
	return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
}

func sampleAt(c entity.Coordinate) entity.PositionSample {
	return entity.PositionSample{Coordinate: c, Timestamp: fixedNow()}
}

func TestTracker_StraightRouteArrival(t *testing.T) {
	tracker := NewTracker(0, fixedNow)

	req := tracker.Select(csePoint)
	assert.Nil(t, req, "no fix yet, request is deferred")
	assert.True(t, tracker.Session().AwaitingPosition())

	update, err := tracker.UpdatePosition(sampleAt(gateCoord))
	require.NoError(t, err)
	require.NotNil(t, update.Request)
	assert.Equal(t, tracker.Generation(), update.Request.Generation)
	assert.Equal(t, gateCoord, update.Request.Start)
	assert.Equal(t, cseCoord, update.Request.Destination)

	update = tracker.ResolveGeometry(GeometryResult{
		Generation:  update.Request.Generation,
		Coordinates: []entity.Coordinate{gateCoord, cseCoord},
	})
	assert.True(t, update.Changed)
	assert.False(t, update.Arrived)
	assert.Equal(t, entity.SessionActive, tracker.Session().Status)
	assert.Zero(t, tracker.Session().ProgressPercent)

	update, err = tracker.UpdatePosition(sampleAt(cseCoord))
	require.NoError(t, err)
	assert.True(t, update.Arrived)

	session := tracker.Session()
	assert.Equal(t, entity.SessionArrived, session.Status)
	assert.InDelta(t, 100.0, session.ProgressPercent, 1e-9)
	assert.Equal(t, 1, session.ClosestIndex)
	assert.Equal(t, fixedNow(), session.ArrivedAt)

	update, err = tracker.UpdatePosition(sampleAt(gateCoord))
	require.NoError(t, err)
	assert.False(t, update.Arrived)
	assert.Equal(t, entity.SessionArrived, tracker.Session().Status)
	assert.InDelta(t, 100.0, tracker.Session().ProgressPercent, 1e-9, "progress frozen after arrival")
}

func TestTracker_ProgressFollowsClosestVertex(t *testing.T) {
	// vertices roughly 111 m apart along a meridian
	route := make([]entity.Coordinate, 5)
	for i := range route {
		route[i] = entity.Coordinate{Lat: 12.1900 + 0.001*float64(i), Lng: 79.0800}
	}
	destination := entity.PointOfInterest{Key: "north", Name: "North", Coordinate: route[4]}

	tests := []struct {
		name         string
		k            int
		wantProgress float64
		wantStatus   entity.SessionStatus
	}{
		{name: "first vertex", k: 0, wantProgress: 0, wantStatus: entity.SessionActive},
		{name: "second vertex", k: 1, wantProgress: 25, wantStatus: entity.SessionActive},
		{name: "middle vertex", k: 2, wantProgress: 50, wantStatus: entity.SessionActive},
		{name: "fourth vertex", k: 3, wantProgress: 75, wantStatus: entity.SessionActive},
		{name: "last vertex", k: 4, wantProgress: 100, wantStatus: entity.SessionArrived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
			_, err := tracker.UpdatePosition(sampleAt(route[0]))
			require.NoError(t, err)

			req := tracker.Select(destination)
			require.NotNil(t, req)
			tracker.ResolveGeometry(GeometryResult{Generation: req.Generation, Coordinates: route})

			// slightly east of the vertex so the sample is never exactly on the path
			sample := sampleAt(entity.Coordinate{Lat: route[tt.k].Lat, Lng: route[tt.k].Lng + 0.00005})
			_, err = tracker.UpdatePosition(sample)
			require.NoError(t, err)

			session := tracker.Session()
			assert.Equal(t, tt.k, session.ClosestIndex)
			assert.InDelta(t, tt.wantProgress, session.ProgressPercent, 1e-9)
			assert.Equal(t, tt.wantStatus, session.Status)
		})
	}
}

func TestTracker_ProgressMayDecreaseWhenWalkingBack(t *testing.T) {
	route := make([]entity.Coordinate, 5)
	for i := range route {
		route[i] = entity.Coordinate{Lat: 12.1900 + 0.001*float64(i), Lng: 79.0800}
	}
	destination := entity.PointOfInterest{Key: "north", Name: "North", Coordinate: route[4]}

	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
	_, err := tracker.UpdatePosition(sampleAt(route[0]))
	require.NoError(t, err)
	req := tracker.Select(destination)
	require.NotNil(t, req)
	tracker.ResolveGeometry(GeometryResult{Generation: req.Generation, Coordinates: route})

	_, err = tracker.UpdatePosition(sampleAt(route[3]))
	require.NoError(t, err)
	assert.Equal(t, 3, tracker.Session().ClosestIndex)
	assert.InDelta(t, 75.0, tracker.Session().ProgressPercent, 1e-9)

	_, err = tracker.UpdatePosition(sampleAt(route[1]))
	require.NoError(t, err)
	session := tracker.Session()
	assert.Equal(t, 1, session.ClosestIndex)
	assert.InDelta(t, 25.0, session.ProgressPercent, 1e-9)
	assert.Equal(t, entity.SessionActive, session.Status)
}

func TestTracker_ArrivalOnTwoPointGeometry(t *testing.T) {
	start := entity.Coordinate{Lat: 12.1930, Lng: 79.0845}
	end := entity.Coordinate{Lat: 12.1928, Lng: 79.0832}

	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
	_, err := tracker.UpdatePosition(sampleAt(start))
	require.NoError(t, err)
	req := tracker.Select(entity.PointOfInterest{Key: "end", Name: "End", Coordinate: end})
	require.NotNil(t, req)
	tracker.ResolveGeometry(GeometryResult{Generation: req.Generation, Coordinates: []entity.Coordinate{start, end}})
	require.Equal(t, entity.SessionActive, tracker.Session().Status)

	update, err := tracker.UpdatePosition(sampleAt(end))
	require.NoError(t, err)
	assert.True(t, update.Arrived)
	assert.InDelta(t, 100.0, tracker.Session().ProgressPercent, 1e-9)
	assert.Equal(t, entity.SessionArrived, tracker.Session().Status)
}

func TestTracker_FixWhileIdle(t *testing.T) {
	first := entity.Coordinate{Lat: 12.1930, Lng: 79.0845}
	second := entity.Coordinate{Lat: 12.1920, Lng: 79.0830}

	tests := []struct {
		name   string
		prime  func(t *testing.T, tracker *Tracker)
		sample entity.Coordinate
	}{
		{
			name:   "before any session",
			prime:  func(*testing.T, *Tracker) {},
			sample: first,
		},
		{
			name: "after a cancel",
			prime: func(t *testing.T, tracker *Tracker) {
				_, err := tracker.UpdatePosition(sampleAt(first))
				require.NoError(t, err)
				require.NotNil(t, tracker.Select(csePoint))
				require.True(t, tracker.Cancel())
			},
			sample: second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
			tt.prime(t, tracker)

			update, err := tracker.UpdatePosition(sampleAt(tt.sample))
			require.NoError(t, err)
			assert.True(t, update.Changed)
			assert.Nil(t, update.Request)

			session := tracker.Session()
			assert.Equal(t, entity.SessionIdle, session.Status)
			require.NotNil(t, session.LastPosition)
			assert.Equal(t, tt.sample, session.LastPosition.Coordinate)

			last, ok := tracker.LastPosition()
			require.True(t, ok)
			assert.Equal(t, tt.sample, last.Coordinate)
		})
	}
}

func TestTracker_CancelThenSelectStartsFresh(t *testing.T) {
	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
	_, err := tracker.UpdatePosition(sampleAt(gateCoord))
	require.NoError(t, err)

	req := tracker.Select(csePoint)
	require.NotNil(t, req)
	tracker.ResolveGeometry(GeometryResult{Generation: req.Generation, Coordinates: []entity.Coordinate{gateCoord, cseCoord}})
	first := tracker.Session()
	require.Equal(t, entity.SessionActive, first.Status)

	assert.True(t, tracker.Cancel())
	idle := tracker.Session()
	assert.Equal(t, entity.SessionIdle, idle.Status)
	assert.Nil(t, idle.Geometry)
	assert.Empty(t, idle.DestinationKey)
	assert.False(t, tracker.Cancel(), "cancelling idle is a no-op")

	next := tracker.Select(templePoint)
	require.NotNil(t, next, "last fix survives cancellation")
	session := tracker.Session()
	assert.Equal(t, entity.SessionRequesting, session.Status)
	assert.Nil(t, session.Geometry)
	assert.Equal(t, "temple", session.DestinationKey)
	assert.NotEqual(t, first.ID, session.ID)
	assert.Greater(t, session.Generation, first.Generation)
}

func TestTracker_StaleGeometryIsDiscarded(t *testing.T) {
	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
	_, err := tracker.UpdatePosition(sampleAt(gateCoord))
	require.NoError(t, err)

	staleReq := tracker.Select(csePoint)
	require.NotNil(t, staleReq)
	currentReq := tracker.Select(templePoint)
	require.NotNil(t, currentReq)

	update := tracker.ResolveGeometry(GeometryResult{
		Generation:  staleReq.Generation,
		Coordinates: []entity.Coordinate{gateCoord, cseCoord},
	})
	assert.False(t, update.Changed)
	session := tracker.Session()
	assert.Equal(t, entity.SessionRequesting, session.Status)
	assert.Nil(t, session.Geometry)
	assert.Equal(t, "temple", session.DestinationKey)

	update = tracker.ResolveGeometry(GeometryResult{
		Generation:  currentReq.Generation,
		Coordinates: []entity.Coordinate{gateCoord, templePoint.Coordinate},
	})
	assert.True(t, update.Changed)
	require.NotNil(t, tracker.Session().Geometry)
	assert.Equal(t, templePoint.Coordinate, tracker.Session().Geometry.Coordinates[1])

	// a duplicate answer for an already applied generation changes nothing
	update = tracker.ResolveGeometry(GeometryResult{Generation: currentReq.Generation, Err: errors.New("late")})
	assert.False(t, update.Changed)
	assert.False(t, tracker.Session().Fallback)
}

func TestTracker_ResponseAfterCancelIsDiscarded(t *testing.T) {
	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
	_, err := tracker.UpdatePosition(sampleAt(gateCoord))
	require.NoError(t, err)

	req := tracker.Select(csePoint)
	require.NotNil(t, req)
	tracker.Cancel()

	update := tracker.ResolveGeometry(GeometryResult{Generation: req.Generation, Coordinates: []entity.Coordinate{gateCoord, cseCoord}})
	assert.False(t, update.Changed)
	assert.Equal(t, entity.SessionIdle, tracker.Session().Status)
}

func TestTracker_ProviderFailureFallsBackToStraightLine(t *testing.T) {
	tests := []struct {
		name   string
		result func(gen uint64) GeometryResult
	}{
		{name: "provider error", result: func(gen uint64) GeometryResult {
			return GeometryResult{Generation: gen, Err: errors.New("upstream 502")}
		}},
		{name: "empty path", result: func(gen uint64) GeometryResult {
			return GeometryResult{Generation: gen}
		}},
		{name: "single point", result: func(gen uint64) GeometryResult {
			return GeometryResult{Generation: gen, Coordinates: []entity.Coordinate{cseCoord}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
			_, err := tracker.UpdatePosition(sampleAt(gateCoord))
			require.NoError(t, err)
			req := tracker.Select(csePoint)
			require.NotNil(t, req)

			update := tracker.ResolveGeometry(tt.result(req.Generation))
			assert.True(t, update.Changed)
			assert.True(t, update.Fallback)

			session := tracker.Session()
			assert.Equal(t, entity.SessionActive, session.Status)
			assert.True(t, session.Fallback)
			require.NotNil(t, session.Geometry)
			assert.Equal(t, []entity.Coordinate{gateCoord, cseCoord}, session.Geometry.Coordinates)
		})
	}
}

func TestTracker_RecomputeKeepsGeometryUntilAnswer(t *testing.T) {
	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)

	_, err := tracker.Recompute()
	assert.True(t, errors.Is(err, domainerrors.ErrSessionNotActive))

	_, err = tracker.UpdatePosition(sampleAt(gateCoord))
	require.NoError(t, err)
	req := tracker.Select(csePoint)
	require.NotNil(t, req)
	tracker.ResolveGeometry(GeometryResult{Generation: req.Generation, Err: errors.New("offline")})
	require.True(t, tracker.Session().Fallback)

	recompute, err := tracker.Recompute()
	require.NoError(t, err)
	assert.Greater(t, recompute.Generation, req.Generation)
	assert.Equal(t, tracker.Session().ID, recompute.SessionID)

	session := tracker.Session()
	assert.Equal(t, entity.SessionActive, session.Status)
	assert.True(t, session.AwaitingRoute)
	require.NotNil(t, session.Geometry)
	assert.Len(t, session.Geometry.Coordinates, 2)

	mid := entity.Coordinate{Lat: 12.1931, Lng: 79.0838}
	update := tracker.ResolveGeometry(GeometryResult{
		Generation:  recompute.Generation,
		Coordinates: []entity.Coordinate{gateCoord, mid, cseCoord},
	})
	assert.True(t, update.Changed)
	session = tracker.Session()
	assert.False(t, session.AwaitingRoute)
	assert.False(t, session.Fallback)
	assert.Len(t, session.Geometry.Coordinates, 3)
}

func TestTracker_Acknowledge(t *testing.T) {
	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)
	assert.True(t, errors.Is(tracker.Acknowledge(), domainerrors.ErrSessionNotActive))

	_, err := tracker.UpdatePosition(sampleAt(cseCoord))
	require.NoError(t, err)
	req := tracker.Select(csePoint)
	require.NotNil(t, req)

	update := tracker.ResolveGeometry(GeometryResult{Generation: req.Generation, Coordinates: []entity.Coordinate{cseCoord, cseCoord}})
	assert.True(t, update.Arrived, "already standing at the destination")

	require.NoError(t, tracker.Acknowledge())
	assert.Equal(t, entity.SessionIdle, tracker.Session().Status)
}

func TestTracker_RejectsInvalidSamples(t *testing.T) {
	tracker := NewTracker(DefaultArrivalThresholdMeters, fixedNow)

	_, err := tracker.UpdatePosition(sampleAt(entity.Coordinate{Lat: 91, Lng: 0}))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCoordinate))

	_, ok := tracker.LastPosition()
	assert.False(t, ok)
}
