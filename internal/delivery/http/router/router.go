// Package router contains routing setup for the HTTP delivery.
package router

import (
	"campusnav/internal/delivery/http/router/handler"
	"campusnav/internal/delivery/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler      *handler.HealthHandler
	DestinationHandler *handler.DestinationHandler
	NavigationHandler  *handler.NavigationHandler
	AssistantHandler   *handler.AssistantHandler
	StreamHandler      *handler.StreamHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler      *handler.HealthHandler
	destinationHandler *handler.DestinationHandler
	navigationHandler  *handler.NavigationHandler
	assistantHandler   *handler.AssistantHandler
	streamHandler      *handler.StreamHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:      params.HealthHandler,
		destinationHandler: params.DestinationHandler,
		navigationHandler:  params.NavigationHandler,
		assistantHandler:   params.AssistantHandler,
		streamHandler:      params.StreamHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)

	destinationsGroup := e.Group("/destinations")
	{
		destinationsGroup.GET("", r.destinationHandler.ListDestinations)
		destinationsGroup.GET("/suggestions", r.destinationHandler.Suggestions)
		destinationsGroup.POST("/match", r.destinationHandler.Match)
		destinationsGroup.POST("/scan", r.destinationHandler.ScanQRCode)
		destinationsGroup.GET("/:key", r.destinationHandler.GetDestination)
		destinationsGroup.GET("/:key/qrcode", r.destinationHandler.GetQRCode)
	}

	assistantGroup := e.Group("/assistant")
	assistantGroup.Use(middleware.Language)
	{
		assistantGroup.GET("/greeting", r.assistantHandler.Greet)
		assistantGroup.POST("/messages", r.assistantHandler.Respond)
	}

	navigationGroup := e.Group("/navigation")
	{
		navigationGroup.GET("", r.navigationHandler.GetState)
		navigationGroup.DELETE("", r.navigationHandler.Cancel)
		navigationGroup.GET("/route.geojson", r.navigationHandler.GetRouteGeoJSON)
		navigationGroup.POST("/destination", r.navigationHandler.SelectDestination)
		navigationGroup.POST("/position", r.navigationHandler.UpdatePosition)
		navigationGroup.POST("/recompute", r.navigationHandler.Recompute)
		navigationGroup.POST("/acknowledge", r.navigationHandler.Acknowledge)
		navigationGroup.GET("/stream", r.streamHandler.Stream)
	}
}
