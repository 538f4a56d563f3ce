package errors

import (
	"net/http"
	"testing"

	"campusnav/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsStillMatchesSentinel(t *testing.T) {
	err := ErrUnknownDestination.WithDetails("library")

	assert.True(t, errors.Is(err, ErrUnknownDestination))
	assert.False(t, errors.Is(err, ErrDestinationNotFound))
	assert.Equal(t, "No point of interest with that key: library", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPCode())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	wrapped := ErrInvalidCoordinate.WrapMessage("position sample")

	appErr, ok := errors.AsType[AppError](wrapped)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_COORDINATE", appErr.ErrorCode())
}

func TestProviderError_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProviderError("osrm", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "PROVIDER_FAILURE", err.ErrorCode())
	assert.Contains(t, err.Error(), "route provider osrm failed")
}
