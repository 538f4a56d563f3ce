package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusnav/internal/delivery/http/router/handler"
	"campusnav/internal/domain/entity"
	"campusnav/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStream(t *testing.T, f *apiFixture) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(f.echo)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/navigation/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// readUntil reads updates until match accepts one.
func readUntil(t *testing.T, conn *websocket.Conn, match func(usecase.NavigationUpdate) bool) usecase.NavigationUpdate {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var update usecase.NavigationUpdate
		require.NoError(t, conn.ReadJSON(&update))
		if match(update) {
			return update
		}
	}
}

func TestStreamHandler(t *testing.T) {
	f := newAPIFixture(t)
	conn := dialStream(t, f)

	initial := readUntil(t, conn, func(u usecase.NavigationUpdate) bool { return u.Kind == usecase.UpdateState })
	assert.Equal(t, entity.SessionIdle, initial.State.Session.Status)

	require.NoError(t, conn.WriteJSON(handler.ClientMessage{
		Type: handler.StreamMessagePosition,
		Lat:  gateCoord.Lat,
		Lng:  gateCoord.Lng,
	}))
	positioned := readUntil(t, conn, func(u usecase.NavigationUpdate) bool {
		return u.Kind == usecase.UpdateState && u.State.Session.LastPosition != nil
	})
	assert.InDelta(t, gateCoord.Lat, positioned.State.Session.LastPosition.Lat, 1e-9)

	rec := f.do(t, http.MethodPost, "/navigation/destination", handler.SelectDestinationRequest{Key: "cse"})
	require.Equal(t, http.StatusAccepted, rec.Code)

	active := readUntil(t, conn, func(u usecase.NavigationUpdate) bool {
		return u.Kind == usecase.UpdateState && u.State.Session.Status == entity.SessionActive
	})
	require.NotNil(t, active.State.Session.Geometry)
	assert.Equal(t, "cse", active.State.Session.DestinationKey)
}

func TestStreamHandler_RejectsBadMessages(t *testing.T) {
	f := newAPIFixture(t)
	conn := dialStream(t, f)

	readUntil(t, conn, func(u usecase.NavigationUpdate) bool { return u.Kind == usecase.UpdateState })

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "malformed", message: "{", want: "malformed message"},
		{name: "unknown type", message: `{"type":"teleport"}`, want: "unknown message type teleport"},
		{name: "invalid coordinate", message: `{"type":"position","lat":120,"lng":0}`, want: "Coordinate is outside valid bounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.message)))
			require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

			var reply handler.StreamError
			require.NoError(t, conn.ReadJSON(&reply))
			assert.Equal(t, handler.StreamMessageError, reply.Kind)
			assert.Contains(t, reply.Message, tt.want)
		})
	}
}
