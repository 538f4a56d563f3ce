// Package osrm fetches walking geometry from an OSRM routing server.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"campusnav/config"
	"campusnav/internal/domain/entity"
	"campusnav/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Provider name reported in logs and events
const ProviderName = "osrm"

const maxResponseBytes = 4 << 20

// ErrNoRoute is returned when OSRM answers without a usable route.
var ErrNoRoute = errors.New("osrm returned no route")

// Provider implements service.GeometryProvider against the OSRM route service
type Provider struct {
	baseURL string
	profile string
	client  *http.Client
	limiter *rate.Limiter
}

var _ service.GeometryProvider = (*Provider)(nil)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64           `json:"distance"`
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// NewProvider creates an OSRM provider. Requests are throttled client side to
// cfg.RequestsPerSecond with a burst of one.
func NewProvider(cfg config.OSRMConfig, client *http.Client) *Provider {
	if client == nil {
		client = http.DefaultClient
	}

	return &Provider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: cfg.Profile,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Name implements service.GeometryProvider
func (p *Provider) Name() string {
	return ProviderName
}

// Route requests the full-overview GeoJSON geometry of the first route.
func (p *Provider) Route(ctx context.Context, start, end entity.Coordinate) ([]entity.Coordinate, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "osrm rate limit")
	}

	url := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		p.baseURL, p.profile, start.Lng, start.Lat, end.Lng, end.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "osrm request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read osrm response")
	}

	var parsed routeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("osrm returned %d", resp.StatusCode)
		}

		return nil, errors.Wrap(err, "decode osrm response")
	}

	if resp.StatusCode != http.StatusOK || parsed.Code != "Ok" {
		return nil, errors.Errorf("osrm returned %d %s: %s", resp.StatusCode, parsed.Code, parsed.Message)
	}

	if len(parsed.Routes) == 0 || parsed.Routes[0].Geometry == nil {
		return nil, errors.WithStack(ErrNoRoute)
	}

	line, ok := parsed.Routes[0].Geometry.Geometry().(orb.LineString)
	if !ok || len(line) == 0 {
		return nil, errors.Wrapf(ErrNoRoute, "unexpected geometry %s", parsed.Routes[0].Geometry.Type)
	}

	coords := make([]entity.Coordinate, len(line))
	for i, point := range line {
		coords[i] = entity.CoordinateFromPoint(point)
	}

	return coords, nil
}
