package dispatch

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// HasOverlap reports whether two half-open windows intersect. Both windows must be valid.
func HasOverlap(a, b domain.Window) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ConflictChecker answers availability questions against active assignments.
type ConflictChecker struct{}

// IsDriverAvailable reports whether no active assignment of the driver overlaps window.
// Assignments of ignoreOrderID are skipped. The first conflict by window start is returned.
func (ConflictChecker) IsDriverAvailable(ctx context.Context, tx dispatchtx.Repository, driverID string, window domain.Window, ignoreOrderID string) (bool, *domain.Assignment, error) {
	active, err := tx.ActiveAssignmentsByDriver(ctx, driverID)
	if err != nil {
		return false, nil, err
	}
	for i := range active {
		a := active[i]
		if ignoreOrderID != "" && a.OrderID == ignoreOrderID {
			continue
		}
		if HasOverlap(a.Window, window) {
			return false, &a, nil
		}
	}
	return true, nil, nil
}
