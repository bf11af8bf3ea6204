package geo

import (
	"context"
	"errors"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// RetryConfig describes the backoff of RetryingGeocoder.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGeocoder retries transient geocoder failures with capped exponential backoff.
type RetryingGeocoder struct {
	next    Geocoder
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGeocoder wraps next. It returns nil when next is nil.
func NewRetryingGeocoder(next Geocoder, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGeocoder {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingGeocoder{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Geocode calls the wrapped geocoder until it succeeds, fails permanently or attempts run out.
func (g *RetryingGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		c, err := g.next.Geocode(ctx, address)
		if err == nil {
			return c, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !errors.Is(err, ErrTransient) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("geocoder retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return domain.Coordinates{}, lastErr
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	if base <= 0 || shift >= 63 || base > max>>shift {
		return max
	}
	return base << shift
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
