package entity

import (
	"github.com/paulmach/orb"
)

// RouteGeometry is an ordered path with its total length in meters.
// It is replaced wholesale, never mutated.
type RouteGeometry struct {
	Coordinates []Coordinate `json:"coordinates"`
	Length      float64      `json:"length"`
}

// NewRouteGeometry copies coords and sums consecutive pairwise distances.
func NewRouteGeometry(coords []Coordinate) RouteGeometry {
	copied := make([]Coordinate, len(coords))
	copy(copied, coords)

	var length float64
	for i := 1; i < len(copied); i++ {
		length += copied[i-1].DistanceTo(copied[i])
	}

	return RouteGeometry{Coordinates: copied, Length: length}
}

// StraightLine is the two-point fallback geometry.
func StraightLine(start, end Coordinate) RouteGeometry {
	return NewRouteGeometry([]Coordinate{start, end})
}

// LineString returns the geometry as an orb line string.
func (g RouteGeometry) LineString() orb.LineString {
	ls := make(orb.LineString, len(g.Coordinates))
	for i, c := range g.Coordinates {
		ls[i] = c.Point()
	}

	return ls
}
