// Package entity contains the core business objects of the project.
package entity

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// CoordinateFromPoint converts an orb point (lng, lat order) into a Coordinate.
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Lat: p.Lat(), Lng: p.Lon()}
}

// Point returns the coordinate as an orb point.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// DistanceTo returns the geodesic distance in meters.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return geo.Distance(c.Point(), other.Point())
}

// IsValid rejects NaN, infinities and values outside Earth bounds.
func (c Coordinate) IsValid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) ||
		math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}

	return c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180
}

// Interpolate returns the point at fraction t (0..1) on the straight segment c→to.
func (c Coordinate) Interpolate(to Coordinate, t float64) Coordinate {
	return Coordinate{
		Lat: c.Lat + (to.Lat-c.Lat)*t,
		Lng: c.Lng + (to.Lng-c.Lng)*t,
	}
}

// PositionSample is one live location fix pushed by the device.
type PositionSample struct {
	Coordinate
	Timestamp time.Time `json:"timestamp"`
}
