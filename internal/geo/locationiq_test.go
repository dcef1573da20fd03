package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverytrack/internal/apperr"
)

func TestResolveCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "1 Main St", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`[{"lat":"32.0853","lon":"34.7818"}]`))
	}))
	defer srv.Close()

	c := NewLocationIQ(srv.URL, "test-key")
	lat, lon, err := c.ResolveCoordinates(context.Background(), "1 Main St")
	require.NoError(t, err)
	assert.InDelta(t, 32.0853, lat, 1e-9)
	assert.InDelta(t, 34.7818, lon, 1e-9)
}

func TestResolveCoordinatesNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewLocationIQ(srv.URL, "test-key")
	_, _, err := c.ResolveCoordinates(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestResolveCoordinatesRequiresKey(t *testing.T) {
	c := NewLocationIQ("http://unused", "")
	_, _, err := c.ResolveCoordinates(context.Background(), "1 Main St")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestResolveCoordinatesEmptyAddress(t *testing.T) {
	c := NewLocationIQ("http://unused", "test-key")
	_, _, err := c.ResolveCoordinates(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRouteDistance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Directions takes lon,lat pairs.
		assert.Equal(t, "/directions/driving/34.7818,32.0853;35.2137,31.7683", r.URL.Path)
		w.Write([]byte(`{"routes":[{"distance":66500}]}`))
	}))
	defer srv.Close()

	c := NewLocationIQ(srv.URL, "test-key")
	km, err := c.RouteDistance(context.Background(), 32.0853, 34.7818, 31.7683, 35.2137, "driving")
	require.NoError(t, err)
	assert.InDelta(t, 66.5, km, 1e-9)
}

func TestRouteDistanceNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[]}`))
	}))
	defer srv.Close()

	c := NewLocationIQ(srv.URL, "test-key")
	_, err := c.RouteDistance(context.Background(), 1, 2, 3, 4, "cycling")
	assert.Error(t, err)
}

func TestRouteDistanceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewLocationIQ(srv.URL, "test-key")
	_, err := c.RouteDistance(context.Background(), 1, 2, 3, 4, "driving")
	assert.Error(t, err)
}
