package geo

import (
	"context"
	"hash/fnv"
	"strings"

	"service-dispatch/internal/domain"
)

// BoundingBox limits where HashGeocoder places points.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// HashGeocoder derives a stable pseudo-location from the address text.
// It is used when no geocoding provider is configured.
type HashGeocoder struct {
	box BoundingBox
}

// NewHashGeocoder creates a HashGeocoder over box.
func NewHashGeocoder(box BoundingBox) *HashGeocoder {
	return &HashGeocoder{box: box}
}

// Geocode maps the normalised address into the bounding box.
func (g *HashGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	norm := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	if norm == "" {
		return domain.Coordinates{}, ErrNoResult
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(norm))
	sum := h.Sum64()

	// high and low halves drive latitude and longitude independently
	fLat := float64(sum>>32) / float64(1<<32)
	fLng := float64(sum&0xffffffff) / float64(1<<32)
	return domain.Coordinates{
		Lat: g.box.MinLat + fLat*(g.box.MaxLat-g.box.MinLat),
		Lng: g.box.MinLng + fLng*(g.box.MaxLng-g.box.MinLng),
	}, nil
}
