package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"campusnav/config"
	deliverycontext "campusnav/internal/delivery/context"
	"campusnav/internal/domain/constants"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/service"
	"campusnav/internal/errors"
	"campusnav/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// TokenValidator checks the OIDC token Pub/Sub attaches to authenticated push requests
type TokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler handles Pub/Sub push messages carrying navigation events
type PushHandler struct {
	verifyPushAuth bool
	validateToken  TokenValidator
	logger         *slog.Logger
	activityUC     usecase.ActivityUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	ActivityUC usecase.ActivityUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google-delivered pushes outside development carry a token
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validateToken:  idtoken.Validate,
		logger:         params.Logger,
		activityUC:     params.ActivityUC,
	}
}

// WithTokenValidator replaces the Google token validator and forces verification on
func (h *PushHandler) WithTokenValidator(validate TokenValidator) *PushHandler {
	h.verifyPushAuth = true
	h.validateToken = validate

	return h
}

// HandlePush handles POST /push. A 2xx acknowledges the message, anything else makes Pub/Sub redeliver it.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := decodeEvent(&pushMsg)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode navigation event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	recorded, err := h.activityUC.Record(ctx, event)
	if err != nil {
		// Retrying a message that fails validation can never succeed, so it is acknowledged
		if _, ok := errors.AsType[domainerrors.AppError](err); ok {
			reqLogger.Warn("[Worker] Dropping invalid navigation event",
				slog.String("event_id", event.EventID),
				slog.Any("error", err),
			)

			return c.NoContent(http.StatusOK)
		}

		reqLogger.Error("[Worker] Failed to record navigation event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Info("[Worker] Navigation event processed",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
		slog.String("destination_key", event.DestinationKey),
		slog.Bool("duplicate", !recorded),
	)

	return c.NoContent(http.StatusOK)
}

// Stats handles GET /stats
func (h *PushHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.activityUC.Summary(c.Request().Context()))
}

func decodeEvent(pushMsg *PubSubMessage) (*service.NavigationEvent, error) {
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event service.NavigationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "unmarshal navigation event")
	}

	return &event, nil
}

// extractRequestID prefers the message attribute, then the X-Request-Id of the push, then a new ID
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
