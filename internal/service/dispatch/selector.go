package dispatch

import (
	"context"
	"fmt"
	"math"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

// Criteria describes the order a driver is sought for.
type Criteria struct {
	Pickup      domain.Coordinates
	Window      domain.Window
	MinCapacity domain.Capacity
	// Zone restricts candidates to one zone; empty matches every zone.
	Zone string
	// OrderID, when set, lets the order's own assignment be ignored by the time check.
	OrderID string
}

// Selector picks the closest eligible driver.
type Selector struct {
	store            dispatchtx.Runner
	evaluator        *Evaluator
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewSelector creates a Selector.
func NewSelector(store dispatchtx.Runner, timeout time.Duration, logger logx.Logger) *Selector {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	// candidate screening is not a rejection of an explicit request
	return &Selector{store: store, evaluator: NewEvaluator(nil), operationTimeout: timeout, logger: logger}
}

// SelectNearest returns the eligible driver whose last known location is closest to the pickup,
// or nil when nobody qualifies. Equal distances keep the lowest driver id.
func (s *Selector) SelectNearest(ctx context.Context, c Criteria) (*domain.Driver, error) {
	if !c.Window.Valid() {
		return nil, fmt.Errorf("window end must be after start: %w", apperr.ErrInvalid)
	}
	if !c.Pickup.Valid() {
		return nil, fmt.Errorf("pickup coordinates out of range: %w", apperr.ErrInvalid)
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	target := domain.Order{ID: c.OrderID, Zone: c.Zone, Window: c.Window}

	var (
		best     *domain.Driver
		bestDist = math.Inf(1)
	)
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		drivers, err := tx.ListDrivers(ctx)
		if err != nil {
			return err
		}
		for i := range drivers {
			d := drivers[i]
			if !d.Workable() || !d.Capacity.Fits(c.MinCapacity) {
				continue
			}
			loc, ok := d.LastLocation.Get()
			if !ok || !loc.Valid() {
				continue
			}
			dist := geo.DistanceKm(c.Pickup, loc)
			if math.IsNaN(dist) || dist >= bestDist {
				continue
			}
			v, err := s.evaluator.Evaluate(ctx, tx, d, target)
			if err != nil {
				return err
			}
			if !v.Assignable {
				continue
			}
			best, bestDist = &d, dist
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if best != nil {
		s.logger.Debug("nearest driver selected",
			logx.String("driver_id", best.ID),
			logx.Float64("distance_km", bestDist),
		)
	}
	return best, nil
}
