//go:generate mockgen -source ./geo.go -destination=./mocks/geo.go -package=geo_mocks
package geo

import (
	"context"
	"math"

	"deliverytrack/internal/metrics"
	"deliverytrack/internal/model"
)

// EarthRadiusKm is Earth's radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	ResolveCoordinates(ctx context.Context, address string) (lat, lon float64, err error)
}

// Router returns the length of a real route between two points for a given
// routing profile.
type Router interface {
	RouteDistance(ctx context.Context, fromLat, fromLon, toLat, toLon float64, profile string) (km float64, err error)
}

// AirDistanceKm is the great-circle distance between two coordinates in
// kilometers, ignoring roads.
func AirDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Profile maps a transport capability to a routing profile.
func Profile(t model.DeliveryType) string {
	switch t {
	case model.ByCar, model.ByMotorcycle:
		return "driving"
	case model.ByBicycle:
		return "cycling"
	case model.OnFoot:
		return "foot"
	default:
		return "driving"
	}
}

// ActualDistanceKm asks the router for a real route distance and falls back
// to air distance on any failure. The fallback never returns an error.
func ActualDistanceKm(ctx context.Context, router Router, fromLat, fromLon, toLat, toLon float64, t model.DeliveryType) float64 {
	if router != nil {
		km, err := router.RouteDistance(ctx, fromLat, fromLon, toLat, toLon, Profile(t))
		if err == nil {
			return km
		}
		metrics.RouteFallbacksTotal.Inc()
	}
	return AirDistanceKm(fromLat, fromLon, toLat, toLon)
}
