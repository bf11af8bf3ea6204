package geo

import (
	"context"
	"errors"

	"service-dispatch/internal/domain"
)

// ErrNoResult is returned by a Geocoder that cannot place an address.
var ErrNoResult = errors.New("geocode: no result")

// ErrTransient marks provider failures that are worth retrying.
var ErrTransient = errors.New("geocode: transient failure")

// Geocoder turns an address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Cache persists resolved coordinates by exact address string.
// Get reports false on a miss.
type Cache interface {
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	Set(ctx context.Context, address string, c domain.Coordinates) error
}

type lookupCounter interface {
	Inc(result string)
}

type counter interface {
	Inc()
}
