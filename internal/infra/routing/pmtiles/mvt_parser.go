package pmtiles

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
)

// Road classes pedestrians cannot use.
var nonWalkableClasses = map[string]bool{
	"motorway":      true,
	"motorway_link": true,
	"trunk":         true,
	"trunk_link":    true,
	"rail":          true,
	"transit":       true,
	"ferry":         true,
	"aerialway":     true,
}

// FootpathSegment represents a walkable line extracted from MVT data
type FootpathSegment struct {
	Points    []orb.Point
	Class     string // e.g. "path", "footway", "service"
	Name      string
	FeatureID uint64
}

// MVTParser handles parsing of MVT tiles to extract the walking network
type MVTParser struct {
	layerName string
}

// NewMVTParser creates a new MVT parser
func NewMVTParser(layerName string) *MVTParser {
	return &MVTParser{
		layerName: layerName,
	}
}

// ParseTile parses MVT tile data and extracts walkable segments
func (p *MVTParser) ParseTile(data []byte, tile maptile.Tile) ([]FootpathSegment, error) {
	// Try to decode as gzipped first, then as regular MVT
	layers, err := mvt.UnmarshalGzipped(data)
	if err != nil {
		layers, err = mvt.Unmarshal(data)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	var layer *mvt.Layer
	for _, l := range layers {
		if l.Name == p.layerName {
			layer = l

			break
		}
	}

	if layer == nil {
		return []FootpathSegment{}, nil
	}

	layer.ProjectToWGS84(tile)

	segments := make([]FootpathSegment, 0, len(layer.Features))
	for _, feature := range layer.Features {
		segments = append(segments, p.extractSegments(feature)...)
	}

	return segments, nil
}

// extractSegments returns one segment per line part; parts of a
// MultiLineString are not joined since they need not touch.
func (p *MVTParser) extractSegments(feature *geojson.Feature) []FootpathSegment {
	class := p.getStringProperty(feature, "class", "highway", "type")
	if nonWalkableClasses[class] {
		return nil
	}

	var segments []FootpathSegment
	for _, line := range p.extractLines(feature) {
		segments = append(segments, FootpathSegment{
			Points:    line,
			Class:     class,
			Name:      p.getStringProperty(feature, "name"),
			FeatureID: p.parseFeatureID(feature.ID),
		})
	}

	return segments
}

func (p *MVTParser) extractLines(feature *geojson.Feature) [][]orb.Point {
	var lines []orb.LineString

	switch geom := feature.Geometry.(type) {
	case orb.LineString:
		lines = []orb.LineString{geom}
	case orb.MultiLineString:
		lines = geom
	default:
		return nil
	}

	out := make([][]orb.Point, 0, len(lines))
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		out = append(out, append([]orb.Point(nil), line...))
	}

	return out
}

func (p *MVTParser) parseFeatureID(id any) uint64 {
	switch fid := id.(type) {
	case float64:
		return uint64(fid)
	case int:
		return uint64(fid)
	case int64:
		return uint64(fid)
	case uint64:
		return fid
	default:
		return 0
	}
}

// getStringProperty returns the first string property found among keys
func (p *MVTParser) getStringProperty(feature *geojson.Feature, keys ...string) string {
	for _, key := range keys {
		if val, ok := feature.Properties[key]; ok {
			if str, ok := val.(string); ok {
				return str
			}
		}
	}

	return ""
}
