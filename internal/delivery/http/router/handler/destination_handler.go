package handler

import (
	"log/slog"
	"net/http"

	"campusnav/internal/delivery/http/response"
	"campusnav/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DestinationHandlerParams holds dependencies for DestinationHandler, injected by Fx.
type DestinationHandlerParams struct {
	fx.In

	DestinationUC usecase.DestinationUsecase
	Logger        *slog.Logger
}

// DestinationHandler serves the gazetteer, transcript matching and destination QR codes
type DestinationHandler struct {
	destinationUC usecase.DestinationUsecase
	logger        *slog.Logger
}

// NewDestinationHandler is the constructor for DestinationHandler
func NewDestinationHandler(params DestinationHandlerParams) *DestinationHandler {
	return &DestinationHandler{
		destinationUC: params.DestinationUC,
		logger:        params.Logger,
	}
}

// MatchRequest represents the request body for matching a transcript
type MatchRequest struct {
	Transcript string `json:"transcript" validate:"required,max=500"`
}

// ScanRequest represents the request body for resolving a scanned QR payload
type ScanRequest struct {
	Payload string `json:"payload" validate:"required,max=2048"`
}

// ListDestinations handles GET /destinations
func (h *DestinationHandler) ListDestinations(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.destinationUC.ListDestinations(c.Request().Context()), "")
}

// GetDestination handles GET /destinations/:key
func (h *DestinationHandler) GetDestination(c echo.Context) error {
	point, err := h.destinationUC.GetDestination(c.Request().Context(), c.Param("key"))
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, point, "")
}

// GetQRCode handles GET /destinations/:key/qrcode and returns a PNG
func (h *DestinationHandler) GetQRCode(c echo.Context) error {
	png, err := h.destinationUC.GenerateQRCode(c.Request().Context(), c.Param("key"))
	if err != nil {
		return response.AppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ScanQRCode handles POST /destinations/scan
func (h *DestinationHandler) ScanQRCode(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid scan input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	point, err := h.destinationUC.ResolveQRCode(c.Request().Context(), req.Payload)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, point, "")
}

// Match handles POST /destinations/match. Every outcome is a 200: the
// resolution tells the client whether to act, confirm or re-prompt.
func (h *DestinationHandler) Match(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid match input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	resolution := h.destinationUC.ResolveTranscript(c.Request().Context(), req.Transcript)

	return response.Success(c, http.StatusOK, resolution, "")
}

// Suggestions handles GET /destinations/suggestions
func (h *DestinationHandler) Suggestions(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.destinationUC.Suggestions(), "")
}
