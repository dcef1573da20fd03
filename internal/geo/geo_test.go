package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"deliverytrack/internal/model"
)

// Tel Aviv and Jerusalem are roughly 54 km apart as the crow flies.
const (
	telAvivLat   = 32.0853
	telAvivLon   = 34.7818
	jerusalemLat = 31.7683
	jerusalemLon = 35.2137
)

func TestAirDistanceIdentity(t *testing.T) {
	assert.Zero(t, AirDistanceKm(telAvivLat, telAvivLon, telAvivLat, telAvivLon))
}

func TestAirDistanceSymmetry(t *testing.T) {
	there := AirDistanceKm(telAvivLat, telAvivLon, jerusalemLat, jerusalemLon)
	back := AirDistanceKm(jerusalemLat, jerusalemLon, telAvivLat, telAvivLon)
	assert.InDelta(t, there, back, 1e-9)
}

func TestAirDistanceKnownValue(t *testing.T) {
	km := AirDistanceKm(telAvivLat, telAvivLon, jerusalemLat, jerusalemLon)
	assert.InDelta(t, 54.0, km, 2.0)
}

func TestProfile(t *testing.T) {
	tests := []struct {
		in   model.DeliveryType
		want string
	}{
		{model.ByCar, "driving"},
		{model.ByMotorcycle, "driving"},
		{model.ByBicycle, "cycling"},
		{model.OnFoot, "foot"},
		{model.DeliveryType("hoverboard"), "driving"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Profile(tt.in))
	}
}

type failingRouter struct{}

func (failingRouter) RouteDistance(context.Context, float64, float64, float64, float64, string) (float64, error) {
	return 0, errors.New("network down")
}

type fixedRouter struct{ km float64 }

func (r fixedRouter) RouteDistance(context.Context, float64, float64, float64, float64, string) (float64, error) {
	return r.km, nil
}

func TestActualDistanceUsesRouter(t *testing.T) {
	km := ActualDistanceKm(context.Background(), fixedRouter{km: 66.5},
		telAvivLat, telAvivLon, jerusalemLat, jerusalemLon, model.ByCar)
	assert.Equal(t, 66.5, km)
}

func TestActualDistanceFallsBackOnError(t *testing.T) {
	km := ActualDistanceKm(context.Background(), failingRouter{},
		telAvivLat, telAvivLon, jerusalemLat, jerusalemLon, model.ByBicycle)
	air := AirDistanceKm(telAvivLat, telAvivLon, jerusalemLat, jerusalemLon)
	assert.Equal(t, air, km)
}

func TestActualDistanceWithoutRouter(t *testing.T) {
	km := ActualDistanceKm(context.Background(), nil,
		telAvivLat, telAvivLon, jerusalemLat, jerusalemLon, model.OnFoot)
	air := AirDistanceKm(telAvivLat, telAvivLon, jerusalemLat, jerusalemLon)
	assert.Equal(t, air, km)
}
