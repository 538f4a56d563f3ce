package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "campusnav/internal/delivery/context"
	"campusnav/internal/delivery/http/response"
	"campusnav/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AssistantHandlerParams holds dependencies for AssistantHandler, injected by Fx.
type AssistantHandlerParams struct {
	fx.In

	AssistantUC usecase.AssistantUsecase
	Logger      *slog.Logger
}

// AssistantHandler exposes the chat and voice assistant
type AssistantHandler struct {
	assistantUC usecase.AssistantUsecase
	logger      *slog.Logger
}

// NewAssistantHandler is the constructor for AssistantHandler
func NewAssistantHandler(params AssistantHandlerParams) *AssistantHandler {
	return &AssistantHandler{
		assistantUC: params.AssistantUC,
		logger:      params.Logger,
	}
}

// MessageRequest is one chat message or voice transcript
type MessageRequest struct {
	Text string `json:"text" validate:"required,max=500"`
	// Language overrides the negotiated language when set
	Language string `json:"language" validate:"omitempty,oneof=en ta"`
}

// Greet handles GET /assistant/greeting
func (h *AssistantHandler) Greet(c echo.Context) error {
	reply, err := h.assistantUC.Greet(c.Request().Context(), deliverycontext.GetLanguage(c))
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, reply, "")
}

// Respond handles POST /assistant/messages
func (h *AssistantHandler) Respond(c echo.Context) error {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid message input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	language := req.Language
	if language == "" {
		language = deliverycontext.GetLanguage(c)
	}

	reply, err := h.assistantUC.Respond(c.Request().Context(), req.Text, language)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, reply, "")
}
