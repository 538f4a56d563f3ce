package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of the navigation session.
type SessionStatus string

const (
	SessionIdle       SessionStatus = "idle"
	SessionRequesting SessionStatus = "requesting"
	SessionActive     SessionStatus = "active"
	SessionArrived    SessionStatus = "arrived"
)

// String returns the string representation of the SessionStatus.
func (s SessionStatus) String() string {
	return string(s)
}

// NavigationSession is the single live navigation attempt.
// While Active, Geometry always holds at least two coordinates.
type NavigationSession struct {
	ID              uuid.UUID        `json:"id"`
	Generation      uint64           `json:"generation"`
	Status          SessionStatus    `json:"status"`
	DestinationKey  string           `json:"destination_key,omitempty"`
	Destination     *PointOfInterest `json:"destination,omitempty"`
	Geometry        *RouteGeometry   `json:"geometry,omitempty"`
	Fallback        bool             `json:"fallback"`
	ClosestIndex    int              `json:"closest_index"`
	ProgressPercent float64          `json:"progress_percent"`
	AwaitingRoute   bool             `json:"awaiting_route"`
	LastPosition    *PositionSample  `json:"last_position,omitempty"`
	StartedAt       time.Time        `json:"started_at,omitzero"`
	ArrivedAt       time.Time        `json:"arrived_at,omitzero"`
}

// AwaitingPosition reports whether the session is stuck waiting for a first fix.
func (s NavigationSession) AwaitingPosition() bool {
	return s.Status == SessionRequesting && s.LastPosition == nil
}

// AnimationFrame is one step of the cosmetic route reveal.
type AnimationFrame struct {
	Generation uint64       `json:"generation"`
	Step       int          `json:"step"`
	Steps      int          `json:"steps"`
	Revealed   []Coordinate `json:"revealed"`
	Locked     bool         `json:"locked"`
}
