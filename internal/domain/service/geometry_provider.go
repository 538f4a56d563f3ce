package service

import (
	"context"

	"campusnav/internal/domain/entity"
)

// GeometryProvider computes a walking path between two coordinates.
// Implementations are best effort; callers substitute a straight line on failure.
type GeometryProvider interface {
	// Name identifies the backend in logs and events
	Name() string

	// Route returns an ordered coordinate sequence from start to end
	Route(ctx context.Context, start, end entity.Coordinate) ([]entity.Coordinate, error)
}
