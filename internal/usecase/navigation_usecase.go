package usecase

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"campusnav/internal/domain/entity"
)

// NavigationState is the session snapshot returned by every navigation command
type NavigationState struct {
	Session entity.NavigationSession `json:"session"`

	// Animating is set while the route reveal is still running
	Animating bool `json:"animating"`

	// MapLocked is set once the reveal completed; map pan and zoom stay locked until the session ends
	MapLocked bool `json:"map_locked"`
}

// UpdateKind tells subscribers which field of a NavigationUpdate is populated
type UpdateKind string

const (
	UpdateState UpdateKind = "state"
	UpdateFrame UpdateKind = "frame"
)

// NavigationUpdate is pushed to subscribers on every state change and animation frame
type NavigationUpdate struct {
	Kind  UpdateKind             `json:"kind"`
	State *NavigationState       `json:"state,omitempty"`
	Frame *entity.AnimationFrame `json:"frame,omitempty"`
}

// NavigationUsecase defines the interface for the single live navigation session
type NavigationUsecase interface {
	// Run owns the session until ctx is cancelled. Commands issued while Run is
	// not active fail with ErrNavigatorStopped once it has exited.
	Run(ctx context.Context) error

	// SelectDestination starts a fresh session toward the point stored under key
	SelectDestination(ctx context.Context, key string) (*NavigationState, error)

	// UpdatePosition feeds a live position fix
	UpdatePosition(ctx context.Context, sample entity.PositionSample) (*NavigationState, error)

	// Recompute requests a new route from the latest fix for the active session
	Recompute(ctx context.Context) (*NavigationState, error)

	// Cancel ends the session, discarding any in-flight route request and animation
	Cancel(ctx context.Context) (*NavigationState, error)

	// Acknowledge closes an arrived session
	Acknowledge(ctx context.Context) (*NavigationState, error)

	// State returns the current snapshot
	State(ctx context.Context) (*NavigationState, error)

	// RouteGeoJSON exports the current route, destination and position as a feature collection
	RouteGeoJSON(ctx context.Context) (*geojson.FeatureCollection, error)

	// Subscribe registers for updates. Slow subscribers miss updates rather than
	// stall the session. The returned func unsubscribes and closes the channel.
	Subscribe() (<-chan NavigationUpdate, func())
}
