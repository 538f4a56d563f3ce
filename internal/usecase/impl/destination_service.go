package impl

import (
	"context"
	"log/slog"

	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/matcher"
	"campusnav/internal/domain/repository"
	"campusnav/internal/domain/service"
	"campusnav/internal/errors"
	"campusnav/internal/usecase"
)

type destinationService struct {
	gazetteer repository.GazetteerRepository
	matcher   *matcher.Matcher
	qrCodes   service.QRCodeService
	logger    *slog.Logger
}

// NewDestinationService creates a new destination service instance
func NewDestinationService(
	gazetteer repository.GazetteerRepository,
	qrCodes service.QRCodeService,
	logger *slog.Logger,
) usecase.DestinationUsecase {
	return &destinationService{
		gazetteer: gazetteer,
		matcher:   matcher.New(gazetteer.List()),
		qrCodes:   qrCodes,
		logger:    logger,
	}
}

// ListDestinations returns every point of interest ordered by key
func (s *destinationService) ListDestinations(_ context.Context) []entity.PointOfInterest {
	return s.gazetteer.List()
}

// GetDestination returns the point of interest stored under key
func (s *destinationService) GetDestination(_ context.Context, key string) (*entity.PointOfInterest, error) {
	return findDestination(s.gazetteer, key)
}

// ResolveTranscript extracts a navigation command from free text and matches it
func (s *destinationService) ResolveTranscript(ctx context.Context, transcript string) entity.Resolution {
	resolution := s.matcher.Resolve(transcript)

	attrs := []any{
		slog.String("outcome", resolution.Outcome.String()),
		slog.String("command", resolution.Command),
	}
	if resolution.Result != nil {
		attrs = append(attrs,
			slog.String("key", resolution.Result.Key),
			slog.Float64("confidence", resolution.Result.Confidence),
		)
	}
	s.logger.DebugContext(ctx, "Resolved transcript", attrs...)

	return resolution
}

// GenerateQRCode returns a PNG QR code deep-linking to the destination
func (s *destinationService) GenerateQRCode(_ context.Context, key string) ([]byte, error) {
	point, err := findDestination(s.gazetteer, key)
	if err != nil {
		return nil, err
	}

	png, err := s.qrCodes.GenerateDestinationQR(point.Key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate QR code for %s", point.Key)
	}

	return png, nil
}

// ResolveQRCode returns the destination a scanned QR payload points at
func (s *destinationService) ResolveQRCode(_ context.Context, payload string) (*entity.PointOfInterest, error) {
	key, err := s.qrCodes.ParseDestinationQR(payload)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return findDestination(s.gazetteer, key)
}

// Suggestions returns example phrases the matcher understands
func (s *destinationService) Suggestions() []string {
	return matcher.Suggestions()
}

func findDestination(gazetteer repository.GazetteerRepository, key string) (*entity.PointOfInterest, error) {
	point, err := gazetteer.FindByKey(key)
	if err != nil {
		if errors.Is(err, repository.ErrPointNotFound) {
			return nil, domainerrors.ErrUnknownDestination.WithDetails(key)
		}

		return nil, errors.Wrapf(err, "failed to look up destination %s", key)
	}

	return &point, nil
}
