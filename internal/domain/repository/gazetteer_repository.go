// Package repository defines the interfaces for the data access layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"campusnav/internal/domain/entity"
	"campusnav/internal/errors"
)

// ErrPointNotFound is returned when no point of interest has the requested key.
var ErrPointNotFound = errors.New("point of interest not found")

// GazetteerRepository is the read-only table of campus points of interest.
// Contents never change after construction.
type GazetteerRepository interface {
	// List returns every point ordered by key.
	List() []entity.PointOfInterest

	// FindByKey returns the point with the given key or ErrPointNotFound.
	FindByKey(key string) (entity.PointOfInterest, error)

	// Len returns the number of points.
	Len() int
}
