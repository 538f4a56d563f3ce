package routing

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/config"
)

func testConfig(provider string) *config.Config {
	cfg := &config.Config{Routing: &config.RoutingConfig{Provider: provider}}
	cfg.ApplyDefaults()

	return cfg
}

func TestNewGeometryProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{provider: config.ProviderOSRM, wantName: "osrm"},
		{provider: config.ProviderStraight, wantName: "straight"},
		{provider: config.ProviderPMTiles, wantErr: true},
		{provider: "graphhopper", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			provider, err := NewGeometryProvider(ProviderParams{Config: testConfig(tt.provider), Logger: logger})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, provider.Name())
		})
	}
}
