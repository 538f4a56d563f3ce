package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusnav/internal/delivery/http/response"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	type payload struct {
		Key string `validate:"required"`
	}
	validationErr := validator.New().Struct(payload{})
	require.Error(t, validationErr)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "app error keeps details",
			err:        errors.Wrap(domainerrors.ErrUnknownDestination.WithDetails("moon"), "lookup"),
			wantStatus: http.StatusNotFound,
			wantCode:   "UNKNOWN_DESTINATION",
			wantDetail: "moon",
		},
		{
			name:       "validation errors",
			err:        validationErr,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "echo error",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "echo error with non-string message",
			err:        echo.NewHTTPError(http.StatusTeapot, map[string]string{"a": "b"}),
			wantStatus: http.StatusTeapot,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error hides details",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	m := NewErrorMiddleware(slog.New(slog.DiscardHandler))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body.Error.Details)
			}
			assert.NotContains(t, rec.Body.String(), "disk on fire")
		})
	}
}
