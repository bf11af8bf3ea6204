package dispatch

import (
	"context"
	"fmt"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// Verdict is the outcome of an eligibility evaluation.
type Verdict struct {
	Assignable      bool
	Reason          string
	Code            apperr.RejectCode
	ConflictOrderID string
}

// Err converts a negative verdict into a *apperr.NotAssignableError, or nil.
func (v Verdict) Err() error {
	if v.Assignable {
		return nil
	}
	return &apperr.NotAssignableError{Code: v.Code, Reason: v.Reason, ConflictOrderID: v.ConflictOrderID}
}

// Evaluator decides whether a driver may take an order.
// Checks run in order and the first failing one is reported:
// availability, zone, then time conflicts.
type Evaluator struct {
	conflicts ConflictChecker
	metrics   recorder
}

// NewEvaluator creates an Evaluator. m may be nil.
func NewEvaluator(m recorder) *Evaluator {
	if m == nil {
		m = nopRecorder{}
	}
	return &Evaluator{metrics: m}
}

// Evaluate runs inside tx so the time check sees the same state the caller writes to.
// An empty order zone matches every driver zone.
func (e *Evaluator) Evaluate(ctx context.Context, tx dispatchtx.Repository, driver domain.Driver, order domain.Order) (Verdict, error) {
	if !driver.Workable() {
		return e.reject(apperr.RejectUnavailable, "driver unavailable/paused", ""), nil
	}
	if order.Zone != "" && driver.Zone != order.Zone {
		return e.reject(apperr.RejectZoneMismatch, "zone mismatch", ""), nil
	}

	ok, conflict, err := e.conflicts.IsDriverAvailable(ctx, tx, driver.ID, order.Window, order.ID)
	if err != nil {
		return Verdict{}, fmt.Errorf("check availability of %s: %w", driver.ID, err)
	}
	if !ok {
		if conflict != nil {
			return e.reject(apperr.RejectTimeConflict, "time conflict with order "+conflict.OrderID, conflict.OrderID), nil
		}
		return e.reject(apperr.RejectTimeConflict, "time conflict", ""), nil
	}

	for _, u := range driver.Unavailability {
		if HasOverlap(u.Window, order.Window) {
			reason := "driver unavailable during window"
			if u.Reason != "" {
				reason += ": " + u.Reason
			}
			return e.reject(apperr.RejectTimeConflict, reason, ""), nil
		}
	}
	return Verdict{Assignable: true}, nil
}

func (e *Evaluator) reject(code apperr.RejectCode, reason, conflictOrderID string) Verdict {
	e.metrics.IncRejection(string(code))
	return Verdict{Code: code, Reason: reason, ConflictOrderID: conflictOrderID}
}
