package geo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"plateful/config"
	"plateful/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overpassServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.PostForm.Get("data"), "out:json")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func testLocator(t *testing.T, srv *httptest.Server) service.StoreLocator {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewOverpassLocator(&config.Config{
		Overpass: &config.OverpassConfig{Endpoint: srv.URL},
	}, logger)
}

func TestOverpassLocator_Nearby(t *testing.T) {
	// Two nodes and one way around Alexanderplatz. The way carries its
	// coordinate under "center", and the unnamed node must be dropped.
	body := `{
		"elements": [
			{
				"type": "node", "id": 101,
				"lat": 52.5230, "lon": 13.4110,
				"tags": {"shop": "supermarket", "name": "Edeka Center"}
			},
			{
				"type": "node", "id": 102,
				"lat": 52.5215, "lon": 13.4105,
				"tags": {"shop": "convenience"}
			},
			{
				"type": "way", "id": 103,
				"center": {"lat": 52.5221, "lon": 13.4061},
				"tags": {"shop": "greengrocer", "name": "Obst und Gemüse Yilmaz"}
			},
			{
				"type": "node", "id": 104,
				"lat": 52.5301, "lon": 13.4250,
				"tags": {"amenity": "marketplace", "name": "Wochenmarkt"}
			}
		]
	}`
	srv := overpassServer(t, http.StatusOK, body)
	locator := testLocator(t, srv)

	stores, err := locator.Nearby(context.Background(), 52.5219, 13.4062, 2000, 10)

	require.NoError(t, err)
	require.Len(t, stores, 3)

	// Sorted by distance from the origin: the greengrocer way sits almost on
	// top of it, the supermarket a few hundred meters east, the market last.
	assert.Equal(t, int64(103), stores[0].OSMID)
	assert.Equal(t, "Obst und Gemüse Yilmaz", stores[0].Name)
	assert.Equal(t, "greengrocer", stores[0].Kind)
	assert.Equal(t, int64(101), stores[1].OSMID)
	assert.Equal(t, int64(104), stores[2].OSMID)
	assert.Equal(t, "marketplace", stores[2].Kind)

	assert.Less(t, stores[0].DistanceM, stores[1].DistanceM)
	assert.Less(t, stores[1].DistanceM, stores[2].DistanceM)
	assert.Greater(t, stores[1].DistanceM, 100.0)
}

func TestOverpassLocator_Nearby_LimitApplied(t *testing.T) {
	body := `{
		"elements": [
			{"type": "node", "id": 1, "lat": 52.5230, "lon": 13.4110, "tags": {"shop": "supermarket", "name": "A"}},
			{"type": "node", "id": 2, "lat": 52.5240, "lon": 13.4120, "tags": {"shop": "supermarket", "name": "B"}},
			{"type": "node", "id": 3, "lat": 52.5250, "lon": 13.4130, "tags": {"shop": "supermarket", "name": "C"}}
		]
	}`
	srv := overpassServer(t, http.StatusOK, body)
	locator := testLocator(t, srv)

	stores, err := locator.Nearby(context.Background(), 52.5219, 13.4062, 2000, 2)

	require.NoError(t, err)
	assert.Len(t, stores, 2)
}

func TestOverpassLocator_Nearby_EmptyResult(t *testing.T) {
	srv := overpassServer(t, http.StatusOK, `{"elements": []}`)
	locator := testLocator(t, srv)

	stores, err := locator.Nearby(context.Background(), 52.5219, 13.4062, 500, 10)

	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestOverpassLocator_Nearby_UpstreamError(t *testing.T) {
	srv := overpassServer(t, http.StatusTooManyRequests, "rate limited")
	locator := testLocator(t, srv)

	stores, err := locator.Nearby(context.Background(), 52.5219, 13.4062, 2000, 10)

	assert.Nil(t, stores)
	assert.Error(t, err)
}

func TestOverpassLocator_Nearby_MalformedJSON(t *testing.T) {
	srv := overpassServer(t, http.StatusOK, "<html>not json</html>")
	locator := testLocator(t, srv)

	stores, err := locator.Nearby(context.Background(), 52.5219, 13.4062, 2000, 10)

	assert.Nil(t, stores)
	assert.Error(t, err)
}
