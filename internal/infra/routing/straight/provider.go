// Package straight is the offline geometry provider: a direct two-point line.
package straight

import (
	"context"

	"campusnav/internal/domain/entity"
	"campusnav/internal/domain/service"
)

// ProviderName is reported in logs and events
const ProviderName = "straight"

// Provider implements service.GeometryProvider without any network access
type Provider struct{}

var _ service.GeometryProvider = Provider{}

// NewProvider creates a straight-line provider
func NewProvider() Provider {
	return Provider{}
}

// Name implements service.GeometryProvider
func (Provider) Name() string {
	return ProviderName
}

// Route returns start and end
func (Provider) Route(ctx context.Context, start, end entity.Coordinate) ([]entity.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return []entity.Coordinate{start, end}, nil
}
