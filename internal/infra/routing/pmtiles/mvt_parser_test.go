package pmtiles

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var campusTile = maptile.At(orb.Point{79.0838, 12.1929}, 16)

// encodeTile builds a version 2 tile with the default 4096 extent from features in WGS84.
func encodeTile(t *testing.T, tile maptile.Tile, features map[string][]*geojson.Feature) []byte {
	t.Helper()

	collections := make(map[string]*geojson.FeatureCollection, len(features))
	for name, fs := range features {
		fc := geojson.NewFeatureCollection()
		fc.Features = fs
		collections[name] = fc
	}

	layers := mvt.NewLayers(collections)
	layers.ProjectToTile(tile)
	data, err := mvt.Marshal(layers)
	require.NoError(t, err)

	return data
}

func TestMVTParser_ParseTile(t *testing.T) {
	footway := geojson.NewFeature(orb.LineString{{79.0845, 12.1930}, {79.0840, 12.1933}})
	footway.ID = float64(7)
	footway.Properties["class"] = "path"
	footway.Properties["name"] = "Library Walk"

	motorway := geojson.NewFeature(orb.LineString{{79.0845, 12.1930}, {79.0832, 12.1929}})
	motorway.Properties["class"] = "motorway"

	split := geojson.NewFeature(orb.MultiLineString{
		{{79.0832, 12.1929}, {79.0835, 12.1931}},
		{{79.0836, 12.1925}, {79.0838, 12.1924}},
	})
	split.Properties["highway"] = "footway"

	building := geojson.NewFeature(orb.Point{79.0838, 12.1928})

	data := encodeTile(t, campusTile, map[string][]*geojson.Feature{
		"transportation": {footway, motorway, split, building},
	})

	segments, err := NewMVTParser("transportation").ParseTile(data, campusTile)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, uint64(7), segments[0].FeatureID)
	assert.Equal(t, "path", segments[0].Class)
	assert.Equal(t, "Library Walk", segments[0].Name)
	assert.InDelta(t, 79.0845, segments[0].Points[0].Lon(), 1e-5)
	assert.InDelta(t, 12.1930, segments[0].Points[0].Lat(), 1e-5)

	assert.Equal(t, "footway", segments[1].Class)
	assert.Len(t, segments[1].Points, 2)
	assert.Len(t, segments[2].Points, 2, "multi line parts are kept apart")
}

func TestMVTParser_ParseTile_LayerNotFound(t *testing.T) {
	data := encodeTile(t, campusTile, map[string][]*geojson.Feature{
		"buildings": {geojson.NewFeature(orb.LineString{{79.08, 12.19}, {79.081, 12.19}})},
	})

	segments, err := NewMVTParser("transportation").ParseTile(data, campusTile)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestMVTParser_ParseTile_InvalidData(t *testing.T) {
	_, err := NewMVTParser("transportation").ParseTile([]byte("not a tile"), campusTile)
	assert.Error(t, err)
}

func TestMVTParser_parseFeatureID(t *testing.T) {
	parser := NewMVTParser("transportation")

	assert.Equal(t, uint64(12), parser.parseFeatureID(float64(12)))
	assert.Equal(t, uint64(12), parser.parseFeatureID(int64(12)))
	assert.Equal(t, uint64(12), parser.parseFeatureID(uint64(12)))
	assert.Equal(t, uint64(0), parser.parseFeatureID("12"))
	assert.Equal(t, uint64(0), parser.parseFeatureID(nil))
}
