package usecase

import (
	"context"

	"campusnav/internal/domain/entity"
)

// DestinationUsecase defines the interface for looking up and resolving campus destinations
type DestinationUsecase interface {
	// ListDestinations returns every point of interest ordered by key
	ListDestinations(ctx context.Context) []entity.PointOfInterest

	// GetDestination returns the point of interest stored under key
	GetDestination(ctx context.Context, key string) (*entity.PointOfInterest, error)

	// ResolveTranscript extracts a navigation command from free text and matches it against the gazetteer
	ResolveTranscript(ctx context.Context, transcript string) entity.Resolution

	// GenerateQRCode returns a PNG QR code deep-linking to the destination
	GenerateQRCode(ctx context.Context, key string) ([]byte, error)

	// ResolveQRCode returns the destination a scanned QR payload points at
	ResolveQRCode(ctx context.Context, payload string) (*entity.PointOfInterest, error)

	// Suggestions returns example phrases the matcher understands
	Suggestions() []string
}
