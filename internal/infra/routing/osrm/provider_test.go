package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/config"
	"campusnav/internal/domain/entity"
	"campusnav/internal/errors"
)

var (
	gate = entity.Coordinate{Lat: 12.1931, Lng: 79.084515}
	cse  = entity.Coordinate{Lat: 12.192838, Lng: 79.08323}
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value) {
	t.Helper()

	var lastPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath.Store(r.URL.Path + "?" + r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &lastPath
}

func newProvider(baseURL string) *Provider {
	return NewProvider(config.OSRMConfig{BaseURL: baseURL + "/", Profile: "foot", RequestsPerSecond: 1000}, nil)
}

func TestProvider_Route(t *testing.T) {
	server, lastPath := newServer(t, http.StatusOK, `{
		"code": "Ok",
		"routes": [{
			"distance": 162.4,
			"geometry": {"type": "LineString", "coordinates": [[79.084515, 12.1931], [79.0840, 12.1933], [79.08323, 12.192838]]}
		}]
	}`)

	provider := newProvider(server.URL)
	assert.Equal(t, ProviderName, provider.Name())

	coords, err := provider.Route(context.Background(), gate, cse)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.Equal(t, gate, coords[0])
	assert.Equal(t, entity.Coordinate{Lat: 12.1933, Lng: 79.0840}, coords[1])
	assert.Equal(t, cse, coords[2])

	assert.Equal(t,
		"/route/v1/foot/79.084515,12.193100;79.083230,12.192838?overview=full&geometries=geojson",
		lastPath.Load())
}

func TestProvider_RouteFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "no route", status: http.StatusBadRequest, body: `{"code":"NoRoute","message":"Impossible route"}`, want: "NoRoute"},
		{name: "empty routes", status: http.StatusOK, body: `{"code":"Ok","routes":[]}`, want: "no route"},
		{name: "server error", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, want: "502"},
		{name: "garbage", status: http.StatusOK, body: `not json`, want: "decode"},
		{name: "point geometry", status: http.StatusOK, body: `{"code":"Ok","routes":[{"geometry":{"type":"Point","coordinates":[79.08,12.19]}}]}`, want: "unexpected geometry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newServer(t, tt.status, tt.body)

			_, err := newProvider(server.URL).Route(context.Background(), gate, cse)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProvider_RespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newProvider(server.URL).Route(ctx, gate, cse)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestProvider_RateLimited(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, `{"code":"Ok","routes":[{"geometry":{"type":"LineString","coordinates":[[79.08,12.19],[79.09,12.19]]}}]}`)
	provider := NewProvider(config.OSRMConfig{BaseURL: server.URL, Profile: "foot", RequestsPerSecond: 0.001}, server.Client())

	_, err := provider.Route(context.Background(), gate, cse)
	require.NoError(t, err, "first request uses the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = provider.Route(ctx, gate, cse)
	assert.Error(t, err)
}
