// Package routing selects the route geometry provider named in configuration.
package routing

import (
	"log/slog"
	"net/http"

	"campusnav/config"
	"campusnav/internal/domain/service"
	"campusnav/internal/infra/routing/osrm"
	"campusnav/internal/infra/routing/pmtiles"
	"campusnav/internal/infra/routing/straight"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProviderParams holds dependencies for geometry provider selection
type ProviderParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	HTTPClient *http.Client `optional:"true"`
}

// NewGeometryProvider returns the provider for routing.provider. PMTiles
// requires pmtiles.enabled; a disabled archive is a configuration error.
func NewGeometryProvider(params ProviderParams) (service.GeometryProvider, error) {
	cfg := params.Config

	var provider service.GeometryProvider
	switch cfg.Routing.Provider {
	case config.ProviderOSRM:
		provider = osrm.NewProvider(cfg.Routing.OSRM, params.HTTPClient)
	case config.ProviderPMTiles:
		if cfg.PMTiles == nil || !cfg.PMTiles.Enabled {
			return nil, errors.New("routing.provider is pmtiles but pmtiles.enabled is false")
		}
		p, err := pmtiles.NewProvider(cfg.PMTiles, params.Logger)
		if err != nil {
			return nil, err
		}
		provider = p
	case config.ProviderStraight:
		provider = straight.NewProvider()
	default:
		return nil, errors.Errorf("unknown routing provider %q", cfg.Routing.Provider)
	}

	params.Logger.Info("Route geometry provider selected",
		slog.String("provider", provider.Name()),
		slog.Duration("request_timeout", cfg.Routing.RequestTimeout),
	)

	return provider, nil
}
