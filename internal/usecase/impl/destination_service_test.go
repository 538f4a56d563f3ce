package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/errors"
	"campusnav/internal/infra/gazetteer"
	mockService "campusnav/internal/mocks/service"
	"campusnav/internal/usecase"
)

func newDestinationService(t *testing.T) (usecase.DestinationUsecase, *mockService.MockQRCodeService) {
	t.Helper()

	repo, err := gazetteer.NewRepository(gazetteer.Builtin())
	require.NoError(t, err)

	qr := mockService.NewMockQRCodeService(t)

	return NewDestinationService(repo, qr, slog.New(slog.DiscardHandler)), qr
}

func TestDestinationService_ListAndGet(t *testing.T) {
	svc, _ := newDestinationService(t)
	ctx := context.Background()

	points := svc.ListDestinations(ctx)
	require.Len(t, points, 24)
	assert.Equal(t, "acaudi", points[0].Key)

	point, err := svc.GetDestination(ctx, "cse")
	require.NoError(t, err)
	assert.Equal(t, "CSE Block", point.Name)

	_, err = svc.GetDestination(ctx, "library")
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownDestination))
}

func TestDestinationService_ResolveTranscript(t *testing.T) {
	svc, _ := newDestinationService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		transcript string
		outcome    entity.MatchOutcome
		key        string
	}{
		{name: "exact name", transcript: "Navigate to CSE Block", outcome: entity.MatchConfident, key: "cse"},
		{name: "keyword", transcript: "take me to the canteen", outcome: entity.MatchAmbiguous, key: "canteen"},
		{name: "unknown place", transcript: "go to the moon", outcome: entity.MatchNotFound},
		{name: "prefix only", transcript: "Navigate to ", outcome: entity.MatchNoCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolution := svc.ResolveTranscript(ctx, tt.transcript)
			assert.Equal(t, tt.outcome, resolution.Outcome)
			if tt.key == "" {
				assert.Nil(t, resolution.Result)

				return
			}
			require.NotNil(t, resolution.Result)
			assert.Equal(t, tt.key, resolution.Result.Key)
		})
	}
}

func TestDestinationService_GenerateQRCode(t *testing.T) {
	svc, qr := newDestinationService(t)
	ctx := context.Background()

	qr.EXPECT().GenerateDestinationQR("temple").Return([]byte("png"), nil).Once()

	png, err := svc.GenerateQRCode(ctx, "temple")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = svc.GenerateQRCode(ctx, "library")
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownDestination), "unknown keys never reach the encoder")
}

func TestDestinationService_ResolveQRCode(t *testing.T) {
	svc, qr := newDestinationService(t)
	ctx := context.Background()

	qr.EXPECT().ParseDestinationQR("campusnav://destination/mech").Return("mech", nil).Once()
	qr.EXPECT().ParseDestinationQR("https://example.com").Return("", errors.New("unexpected prefix")).Once()

	point, err := svc.ResolveQRCode(ctx, "campusnav://destination/mech")
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Dept", point.Name)

	_, err = svc.ResolveQRCode(ctx, "https://example.com")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
