package geo

import (
	"context"
	"errors"
	"strings"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Lookup results reported to the lookup counter.
const (
	LookupHit      = "hit"
	LookupMiss     = "miss"
	LookupNoResult = "no_result"
	LookupError    = "error"
)

// Resolver maps addresses to coordinates through a cache in front of a geocoder.
// Once an address is cached it always resolves to the same point.
type Resolver struct {
	cache    Cache
	geocoder Geocoder
	logger   logx.Logger
	lookups  lookupCounter
}

// NewResolver creates a Resolver. lookups may be nil.
func NewResolver(cache Cache, geocoder Geocoder, logger logx.Logger, lookups lookupCounter) *Resolver {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Resolver{cache: cache, geocoder: geocoder, logger: logger, lookups: lookups}
}

// Resolve returns the coordinates of address. It reports false when no point can be computed;
// errors are logged and never surfaced.
func (r *Resolver) Resolve(ctx context.Context, address string) (domain.Coordinates, bool) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, false
	}

	c, ok, err := r.cache.Get(ctx, address)
	if err != nil {
		r.count(LookupError)
		r.logger.Warn("geocode cache read failed", logx.String("address", address), logx.Err(err))
		return domain.Coordinates{}, false
	}
	if ok {
		r.count(LookupHit)
		return c, true
	}

	c, err = r.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			r.count(LookupNoResult)
			r.logger.Debug("address not geocodable", logx.String("address", address))
		} else {
			r.count(LookupError)
			r.logger.Warn("geocode failed", logx.String("address", address), logx.Err(err))
		}
		return domain.Coordinates{}, false
	}
	r.count(LookupMiss)

	if err := r.cache.Set(ctx, address, c); err != nil {
		// an uncached point may drift on the next lookup
		r.logger.Warn("geocode cache write failed", logx.String("address", address), logx.Err(err))
		return domain.Coordinates{}, false
	}
	// a concurrent resolver may have cached its point first
	if cached, ok, err := r.cache.Get(ctx, address); err == nil && ok {
		return cached, true
	}
	return c, true
}

// DistanceKm resolves both addresses and returns their distance. It reports false when
// either side is unresolvable.
func (r *Resolver) DistanceKm(ctx context.Context, from, to string) (float64, bool) {
	a, ok := r.Resolve(ctx, from)
	if !ok {
		return 0, false
	}
	b, ok := r.Resolve(ctx, to)
	if !ok {
		return 0, false
	}
	return DistanceKm(a, b), true
}

func (r *Resolver) count(result string) {
	if r.lookups != nil {
		r.lookups.Inc(result)
	}
}
