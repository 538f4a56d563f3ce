// Package pmtiles routes walking paths over a footpath network read from a
// PMTiles archive of Mapbox vector tiles.
package pmtiles

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"campusnav/config"
	"campusnav/internal/domain/entity"
	"campusnav/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
	"github.com/protomaps/go-pmtiles/pmtiles"
)

// Provider name reported in logs and events
const ProviderName = "pmtiles"

const (
	defaultLayer         = "transportation"
	defaultZoom          = 15
	defaultMaxSnapMeters = 200.0
	tileCacheSize        = 64
	// bboxPadding widens the tile search area by roughly 200 m
	bboxPadding = 0.002
)

var (
	// ErrOffNetwork is returned when start or end is farther than the snap limit from any footpath.
	ErrOffNetwork = errors.New("point is off the footpath network")
	// ErrUnreachable is returned when start and end lie on disconnected parts of the network.
	ErrUnreachable = errors.New("destination unreachable on footpath network")
)

// TileFetcher returns the HTTP-like status and body for a tile path of the form /{tileset}/{z}/{x}/{y}.mvt
type TileFetcher func(ctx context.Context, path string) (int, []byte)

// Provider implements service.GeometryProvider on PMTiles tile data
type Provider struct {
	tilesetName   string
	zoomLevel     int
	maxSnapMeters float64
	logger        *slog.Logger
	fetch         TileFetcher
	parser        *MVTParser

	tileCache   map[string]*FootpathGraph
	tileCacheMu sync.RWMutex
}

var _ service.GeometryProvider = (*Provider)(nil)

// NewProvider opens the configured archive through a pmtiles.Server.
func NewProvider(cfg *config.PMTilesConfig, logger *slog.Logger) (*Provider, error) {
	if cfg == nil || cfg.Source == "" {
		return nil, errors.New("PMTiles source is required")
	}

	// The server expects a bucket (directory) and looks up {name}.pmtiles inside it
	bucketPath, tilesetName := parseSourcePath(cfg.Source)

	server, err := pmtiles.NewServer(bucketPath, "", log.New(io.Discard, "", 0), tileCacheSize, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PMTiles server")
	}
	server.Start()

	fetch := func(ctx context.Context, path string) (int, []byte) {
		status, _, data := server.Get(ctx, path)

		return status, data
	}

	p := NewProviderWithFetcher(cfg, tilesetName, fetch, logger)

	logger.Info("PMTiles routing provider initialized",
		slog.String("source", cfg.Source),
		slog.String("tileset", tilesetName),
		slog.String("layer", p.parser.layerName),
		slog.Int("zoom_level", p.zoomLevel),
	)

	return p, nil
}

// NewProviderWithFetcher builds a provider over an arbitrary tile source.
func NewProviderWithFetcher(cfg *config.PMTilesConfig, tilesetName string, fetch TileFetcher, logger *slog.Logger) *Provider {
	layer, zoom, maxSnap := defaultLayer, defaultZoom, defaultMaxSnapMeters
	if cfg != nil {
		if cfg.RoadLayer != "" {
			layer = cfg.RoadLayer
		}
		if cfg.ZoomLevel > 0 {
			zoom = cfg.ZoomLevel
		}
		if cfg.MaxSnapMeters > 0 {
			maxSnap = cfg.MaxSnapMeters
		}
	}

	return &Provider{
		tilesetName:   tilesetName,
		zoomLevel:     zoom,
		maxSnapMeters: maxSnap,
		logger:        logger,
		fetch:         fetch,
		parser:        NewMVTParser(layer),
		tileCache:     make(map[string]*FootpathGraph),
	}
}

// Name implements service.GeometryProvider
func (p *Provider) Name() string {
	return ProviderName
}

// Route snaps start and end to the footpath network and returns the shortest
// walking path, bracketed by the original start and end coordinates.
func (p *Provider) Route(ctx context.Context, start, end entity.Coordinate) ([]entity.Coordinate, error) {
	graph := p.buildGraphForArea(ctx, start, end)

	sourceID, sourceSnap, found := graph.FindNearestNode(start.Point())
	if !found || sourceSnap > p.maxSnapMeters {
		return nil, errors.Wrapf(ErrOffNetwork, "start snap %.0fm", sourceSnap)
	}
	targetID, targetSnap, found := graph.FindNearestNode(end.Point())
	if !found || targetSnap > p.maxSnapMeters {
		return nil, errors.Wrapf(ErrOffNetwork, "end snap %.0fm", targetSnap)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	result := NewPathfinder(graph).ShortestPath(sourceID, targetID)
	if !result.IsReachable {
		return nil, errors.WithStack(ErrUnreachable)
	}

	coords := make([]entity.Coordinate, 0, len(result.Nodes)+2)
	coords = appendDistinct(coords, start)
	for _, point := range graph.Points(result) {
		coords = appendDistinct(coords, entity.CoordinateFromPoint(point))
	}
	coords = appendDistinct(coords, end)

	p.logger.Debug("PMTiles route computed",
		slog.Int("vertices", len(coords)),
		slog.Float64("network_meters", result.Distance),
		slog.Float64("snap_meters", sourceSnap+targetSnap),
	)

	return coords, nil
}

func appendDistinct(coords []entity.Coordinate, c entity.Coordinate) []entity.Coordinate {
	if n := len(coords); n > 0 && coords[n-1] == c {
		return coords
	}

	return append(coords, c)
}

// tileKey creates a string key for a tile
func tileKey(tile maptile.Tile) string {
	return fmt.Sprintf("%d/%d/%d", tile.Z, tile.X, tile.Y)
}

// parseSourcePath extracts the bucket directory and tileset name from a source path.
// Examples:
//   - "file:///data/campus.pmtiles" -> ("file:///data", "campus")
//   - "/data/campus.pmtiles" -> ("file:///data", "campus")
//   - "https://example.com/tiles/campus.pmtiles" -> ("https://example.com/tiles", "campus")
func parseSourcePath(source string) (bucketPath, tilesetName string) {
	if path, ok := strings.CutPrefix(source, "file://"); ok {
		return "file://" + filepath.Dir(path), strings.TrimSuffix(filepath.Base(path), ".pmtiles")
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if lastSlash := strings.LastIndex(source, "/"); lastSlash > 0 {
			return source[:lastSlash], strings.TrimSuffix(source[lastSlash+1:], ".pmtiles")
		}
	}

	return "file://" + filepath.Dir(source), strings.TrimSuffix(filepath.Base(source), ".pmtiles")
}

// buildGraphForArea merges the tiles covering the padded start/end bounding box
func (p *Provider) buildGraphForArea(ctx context.Context, start, end entity.Coordinate) *FootpathGraph {
	bound := orb.MultiPoint{start.Point(), end.Point()}.Bound().Pad(bboxPadding)

	graph := NewFootpathGraph()
	for _, tile := range getTilesForBound(bound, maptile.Zoom(p.zoomLevel)) {
		tileGraph, err := p.loadTileGraph(ctx, tile)
		if err != nil {
			p.logger.Debug("Failed to load tile",
				slog.String("tile", tileKey(tile)),
				slog.Any("error", err),
			)

			continue
		}
		mergeGraphs(graph, tileGraph)
	}

	return graph
}

// loadTileGraph loads and parses a single tile into a graph
func (p *Provider) loadTileGraph(ctx context.Context, tile maptile.Tile) (*FootpathGraph, error) {
	cacheKey := tileKey(tile)

	p.tileCacheMu.RLock()
	if graph, ok := p.tileCache[cacheKey]; ok {
		p.tileCacheMu.RUnlock()

		return graph, nil
	}
	p.tileCacheMu.RUnlock()

	tilePath := fmt.Sprintf("/%s/%d/%d/%d.mvt", p.tilesetName, tile.Z, tile.X, tile.Y)
	status, data := p.fetch(ctx, tilePath)
	switch {
	case status == http.StatusNotFound || status == http.StatusNoContent:
		return nil, errors.New("tile not found")
	case status != http.StatusOK:
		return nil, errors.Errorf("unexpected status code: %d", status)
	}

	segments, err := p.parser.ParseTile(data, tile)
	if err != nil {
		return nil, err
	}

	graph := NewFootpathGraph()
	for idx := range segments {
		graph.AddSegment(&segments[idx])
	}

	p.tileCacheMu.Lock()
	p.tileCache[cacheKey] = graph
	p.tileCacheMu.Unlock()

	return graph, nil
}

// getTilesForBound returns all tiles that cover the given bound
func getTilesForBound(bound orb.Bound, zoom maptile.Zoom) []maptile.Tile {
	minTile := maptile.At(orb.Point{bound.Min.Lon(), bound.Max.Lat()}, zoom)
	maxTile := maptile.At(orb.Point{bound.Max.Lon(), bound.Min.Lat()}, zoom)

	tiles := make([]maptile.Tile, 0)
	for x := minTile.X; x <= maxTile.X; x++ {
		for y := minTile.Y; y <= maxTile.Y; y++ {
			tiles = append(tiles, maptile.Tile{X: x, Y: y, Z: zoom})
		}
	}

	return tiles
}

// mergeGraphs merges source graph into target graph by remapping node IDs
// to avoid collisions between tiles with independent ID spaces
func mergeGraphs(target, source *FootpathGraph) {
	idMapping := make(map[NodeID]NodeID, len(source.Nodes))
	for sourceID, point := range source.Nodes {
		idMapping[sourceID] = target.getOrCreateNode(point)
	}

	for sourceFromID, edges := range source.Edges {
		targetFromID := idMapping[sourceFromID]
		for _, edge := range edges {
			target.Edges[targetFromID] = append(target.Edges[targetFromID], Edge{
				To:       idMapping[edge.To],
				Distance: edge.Distance,
			})
		}
	}
}
