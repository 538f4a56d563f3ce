package handler

import (
	"net/http"

	"campusnav/internal/delivery/http/response"
	"campusnav/internal/domain/repository"
	"campusnav/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Gazetteer repository.GazetteerRepository
	Provider  service.GeometryProvider
}

// HealthHandler reports liveness along with what the server loaded
type HealthHandler struct {
	gazetteer repository.GazetteerRepository
	provider  service.GeometryProvider
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		gazetteer: params.Gazetteer,
		provider:  params.Provider,
	}
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status       string `json:"status"`
	Destinations int    `json:"destinations"`
	Provider     string `json:"provider"`
}

// Check handles GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return response.Success(c, http.StatusOK, HealthStatus{
		Status:       "ok",
		Destinations: h.gazetteer.Len(),
		Provider:     h.provider.Name(),
	}, "")
}
