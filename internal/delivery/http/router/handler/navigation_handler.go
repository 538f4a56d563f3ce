package handler

import (
	"log/slog"
	"net/http"
	"time"

	"campusnav/internal/delivery/http/response"
	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/errors"
	"campusnav/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const geoJSONContentType = "application/geo+json"

// NavigationHandlerParams holds dependencies for NavigationHandler, injected by Fx.
type NavigationHandlerParams struct {
	fx.In

	NavigationUC  usecase.NavigationUsecase
	DestinationUC usecase.DestinationUsecase
	Logger        *slog.Logger
}

// NavigationHandler drives the live navigation session
type NavigationHandler struct {
	navigationUC  usecase.NavigationUsecase
	destinationUC usecase.DestinationUsecase
	logger        *slog.Logger
}

// NewNavigationHandler is the constructor for NavigationHandler
func NewNavigationHandler(params NavigationHandlerParams) *NavigationHandler {
	return &NavigationHandler{
		navigationUC:  params.NavigationUC,
		destinationUC: params.DestinationUC,
		logger:        params.Logger,
	}
}

// SelectDestinationRequest picks a destination by key or by a spoken transcript
type SelectDestinationRequest struct {
	Key        string `json:"key" validate:"required_without=Transcript,omitempty,max=64"`
	Transcript string `json:"transcript" validate:"required_without=Key,omitempty,max=500"`
}

// PositionRequest represents one live position fix
type PositionRequest struct {
	entity.Coordinate
	// Timestamp defaults to the time the server received the fix
	Timestamp time.Time `json:"timestamp"`
}

// GetState handles GET /navigation
func (h *NavigationHandler) GetState(c echo.Context) error {
	state, err := h.navigationUC.State(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

// GetRouteGeoJSON handles GET /navigation/route.geojson
func (h *NavigationHandler) GetRouteGeoJSON(c echo.Context) error {
	collection, err := h.navigationUC.RouteGeoJSON(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	body, err := collection.MarshalJSON()
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, geoJSONContentType, body)
}

// SelectDestination handles POST /navigation/destination
func (h *NavigationHandler) SelectDestination(c echo.Context) error {
	var req SelectDestinationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid destination input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.Request().Context()

	key := req.Key
	if key == "" {
		resolution := h.destinationUC.ResolveTranscript(ctx, req.Transcript)
		if err := resolutionError(resolution); err != nil {
			return response.AppError(c, err)
		}
		key = resolution.Result.Key
	}

	state, err := h.navigationUC.SelectDestination(ctx, key)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, state, "Navigation started")
}

// UpdatePosition handles POST /navigation/position
func (h *NavigationHandler) UpdatePosition(c echo.Context) error {
	var req PositionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid position input")
	}
	if err := c.Validate(&req); err != nil {
		return response.AppError(c, domainerrors.ErrInvalidCoordinate.WithDetails(err.Error()))
	}

	state, err := h.navigationUC.UpdatePosition(c.Request().Context(), entity.PositionSample{
		Coordinate: req.Coordinate,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

// Recompute handles POST /navigation/recompute
func (h *NavigationHandler) Recompute(c echo.Context) error {
	state, err := h.navigationUC.Recompute(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, state, "Route recompute requested")
}

// Acknowledge handles POST /navigation/acknowledge
func (h *NavigationHandler) Acknowledge(c echo.Context) error {
	state, err := h.navigationUC.Acknowledge(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

// Cancel handles DELETE /navigation
func (h *NavigationHandler) Cancel(c echo.Context) error {
	state, err := h.navigationUC.Cancel(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, state, "Navigation cancelled")
}

// resolutionError maps every outcome that cannot start navigation on its own to an AppError.
func resolutionError(resolution entity.Resolution) error {
	switch resolution.Outcome {
	case entity.MatchConfident:
		return nil
	case entity.MatchAmbiguous:
		return domainerrors.ErrAmbiguousDestination.WithDetails(resolution.Result.Point.Name)
	case entity.MatchNoCommand:
		return domainerrors.ErrNoCommand.WithDetails(resolution.Transcript)
	default:
		return domainerrors.ErrDestinationNotFound.WithDetails(resolution.Command)
	}
}
