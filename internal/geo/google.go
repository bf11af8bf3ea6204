package geo

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"service-dispatch/internal/domain"
)

type geocodingClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleGeocoder resolves addresses with the Google Geocoding API.
type GoogleGeocoder struct {
	client geocodingClient
	region string
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API key.
func NewGoogleGeocoder(apiKey, region string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client, region: region}, nil
}

// Geocode returns the location of the first result.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	res, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address, Region: g.region})
	if err != nil {
		if isTransientStatus(err) {
			return domain.Coordinates{}, fmt.Errorf("%w: %s", ErrTransient, err.Error())
		}
		return domain.Coordinates{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(res) == 0 {
		return domain.Coordinates{}, ErrNoResult
	}
	loc := res[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// isTransientStatus matches the API statuses that may succeed on retry.
func isTransientStatus(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "OVER_QUERY_LIMIT") ||
		strings.Contains(msg, "UNKNOWN_ERROR") ||
		strings.Contains(msg, "context deadline exceeded")
}
