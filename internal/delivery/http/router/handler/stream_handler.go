package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	deliverycontext "campusnav/internal/delivery/context"
	"campusnav/internal/domain/entity"
	"campusnav/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	// Time allowed to write a message to the client.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the client.
	pongWait = 60 * time.Second

	// Send pings to client with this period. Must be less than pongWait.
	pingPeriod = 15 * time.Second

	// Maximum message size allowed from client.
	maxMessageSize = 1024
)

// Client message types
const (
	StreamMessagePosition = "position"
	StreamMessageError    = "error"
)

// StreamHandlerParams holds dependencies for StreamHandler, injected by Fx.
type StreamHandlerParams struct {
	fx.In

	NavigationUC usecase.NavigationUsecase
	Logger       *slog.Logger
}

// StreamHandler pushes navigation updates over a websocket and accepts position fixes on it
type StreamHandler struct {
	navigationUC usecase.NavigationUsecase
	logger       *slog.Logger
	upgrader     websocket.Upgrader
}

// NewStreamHandler is the constructor for StreamHandler
func NewStreamHandler(params StreamHandlerParams) *StreamHandler {
	return &StreamHandler{
		navigationUC: params.NavigationUC,
		logger:       params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// kiosks and phones on the campus network are served from other origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ClientMessage is sent by the client over the stream
type ClientMessage struct {
	Type      string    `json:"type"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// StreamError is pushed to the client when one of its messages was rejected
type StreamError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Stream handles GET /navigation/stream
func (h *StreamHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already wrote the HTTP error
		h.logger.Warn("Websocket upgrade failed", slog.Any("error", err))

		return nil
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
	updates, unsubscribe := h.navigationUC.Subscribe()

	s := &stream{
		conn:       conn,
		navigation: h.navigationUC,
		updates:    updates,
		replies:    make(chan any, 1),
		logger:     logger,
	}

	logger.Info("Navigation stream opened")
	s.run(c.Request().Context())
	unsubscribe()
	logger.Info("Navigation stream closed")

	return nil
}

type stream struct {
	conn       *websocket.Conn
	navigation usecase.NavigationUsecase
	updates    <-chan usecase.NavigationUpdate
	// replies carries rejections from the read loop to the single writer
	replies chan any
	logger  *slog.Logger
}

func (s *stream) run(ctx context.Context) {
	defer s.conn.Close()

	stopCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(2)

	go s.clientToServerLoop(stopCtx, cancel, &wg)
	go s.serverToClientLoop(stopCtx, cancel, &wg)
	wg.Wait()
}

func (s *stream) clientToServerLoop(ctx context.Context, cancel context.CancelFunc, wg *sync.WaitGroup) {
	defer func() {
		cancel()
		wg.Done()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Navigation stream read failed", slog.Any("error", err))
			}

			return
		}

		if reply := s.handleClientMessage(ctx, data); reply != nil {
			select {
			case s.replies <- reply:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleClientMessage returns a message for the client when the input was rejected.
func (s *stream) handleClientMessage(ctx context.Context, data []byte) any {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return StreamError{Kind: StreamMessageError, Message: "malformed message"}
	}

	switch msg.Type {
	case StreamMessagePosition:
		sample := entity.PositionSample{
			Coordinate: entity.Coordinate{Lat: msg.Lat, Lng: msg.Lng},
			Timestamp:  msg.Timestamp,
		}
		if _, err := s.navigation.UpdatePosition(ctx, sample); err != nil {
			return StreamError{Kind: StreamMessageError, Message: err.Error()}
		}

		return nil
	default:
		return StreamError{Kind: StreamMessageError, Message: "unknown message type " + msg.Type}
	}
}

func (s *stream) serverToClientLoop(ctx context.Context, cancel context.CancelFunc, wg *sync.WaitGroup) {
	defer func() {
		// unblocks ReadMessage in the other loop
		_ = s.conn.Close()
		cancel()
		wg.Done()
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if state, err := s.navigation.State(ctx); err == nil {
		if err := s.write(usecase.NavigationUpdate{Kind: usecase.UpdateState, State: state}); err != nil {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))

			return
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reply := <-s.replies:
			if err := s.write(reply); err != nil {
				return
			}
		case update, ok := <-s.updates:
			if !ok {
				// navigator stopped
				_ = s.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "navigation stopped"), time.Now().Add(writeWait))

				return
			}
			if err := s.write(update); err != nil {
				return
			}
		}
	}
}

func (s *stream) write(v any) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))

	return s.conn.WriteJSON(v)
}
