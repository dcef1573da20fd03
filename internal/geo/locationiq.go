package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"deliverytrack/internal/apperr"
)

// DefaultLocationIQBaseURL is the public LocationIQ endpoint.
const DefaultLocationIQBaseURL = "https://us1.locationiq.com/v1"

// LocationIQ talks to the LocationIQ geocoding and directions API. It
// implements both Geocoder and Router.
type LocationIQ struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewLocationIQ(baseURL, apiKey string) *LocationIQ {
	if baseURL == "" {
		baseURL = DefaultLocationIQBaseURL
	}
	return &LocationIQ{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// ResolveCoordinates geocodes a free-text address. An unresolvable address
// or a missing API key is a validation failure.
func (l *LocationIQ) ResolveCoordinates(ctx context.Context, address string) (float64, float64, error) {
	if address == "" {
		return 0, 0, apperr.Validation("address cannot be empty")
	}
	if l.apiKey == "" {
		return 0, 0, apperr.Validation("geocoding API key is not configured")
	}

	u := fmt.Sprintf("%s/search?key=%s&q=%s&format=json",
		l.baseURL, url.QueryEscape(l.apiKey), url.QueryEscape(address))

	var results []searchResult
	if err := l.getJSON(ctx, u, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, apperr.Validation("address %q not found by geocoding service", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, apperr.Validation("invalid latitude from geocoding service")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, apperr.Validation("invalid longitude from geocoding service")
	}
	return lat, lon, nil
}

type directionsResult struct {
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// RouteDistance returns the route length in kilometers. The directions API
// takes coordinates as lon,lat pairs.
func (l *LocationIQ) RouteDistance(ctx context.Context, fromLat, fromLon, toLat, toLon float64, profile string) (float64, error) {
	if l.apiKey == "" {
		return 0, apperr.Validation("routing API key is not configured")
	}

	coords := fmt.Sprintf("%s,%s;%s,%s",
		formatCoord(fromLon), formatCoord(fromLat),
		formatCoord(toLon), formatCoord(toLat))
	u := fmt.Sprintf("%s/directions/%s/%s?key=%s&overview=false",
		l.baseURL, profile, coords, url.QueryEscape(l.apiKey))

	var result directionsResult
	if err := l.getJSON(ctx, u, &result); err != nil {
		return 0, err
	}
	if len(result.Routes) == 0 {
		return 0, fmt.Errorf("no route found by routing service")
	}
	return result.Routes[0].Distance / 1000.0, nil
}

func (l *LocationIQ) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geo service returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
