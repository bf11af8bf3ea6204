package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// txRepo stages writes over the locked store.
type txRepo struct {
	s           *Store
	orders      map[string]domain.Order
	assignments map[string]domain.Assignment
	activity    []domain.ActivityLogEntry
}

func (t *txRepo) order(id string) (domain.Order, bool) {
	if o, ok := t.orders[id]; ok {
		return o, true
	}
	o, ok := t.s.orders[id]
	return o, ok
}

func (t *txRepo) eachAssignment(fn func(a domain.Assignment)) {
	for id, a := range t.s.assignments {
		if staged, ok := t.assignments[id]; ok {
			a = staged
		}
		fn(a)
	}
	for id, a := range t.assignments {
		if _, ok := t.s.assignments[id]; !ok {
			fn(a)
		}
	}
}

// GetOrderForUpdate returns the staged or committed order.
func (t *txRepo) GetOrderForUpdate(_ context.Context, id string) (*domain.Order, error) {
	o, ok := t.order(id)
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// GetDriverForUpdate returns the driver; the store lock already serializes writers.
func (t *txRepo) GetDriverForUpdate(_ context.Context, id string) (*domain.Driver, error) {
	d, ok := t.s.drivers[id]
	if !ok {
		return nil, nil
	}
	d = cloneDriver(d)
	return &d, nil
}

// ListDrivers returns every driver ordered by id.
func (t *txRepo) ListDrivers(_ context.Context) ([]domain.Driver, error) {
	out := make([]domain.Driver, 0, len(t.s.drivers))
	for _, d := range t.s.drivers {
		out = append(out, cloneDriver(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ActiveAssignmentsByDriver lists open assignments of a driver.
func (t *txRepo) ActiveAssignmentsByDriver(_ context.Context, driverID string) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0)
	t.eachAssignment(func(a domain.Assignment) {
		if a.DriverID == driverID && a.Active() {
			out = append(out, a)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Window.Start.Equal(out[j].Window.Start) {
			return out[i].Window.Start.Before(out[j].Window.Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ActiveAssignmentByOrder returns the order's open assignment or nil.
func (t *txRepo) ActiveAssignmentByOrder(_ context.Context, orderID string) (*domain.Assignment, error) {
	var found *domain.Assignment
	t.eachAssignment(func(a domain.Assignment) {
		if found == nil && a.OrderID == orderID && a.Active() {
			cp := a
			found = &cp
		}
	})
	return found, nil
}

// InsertAssignment stages a new assignment.
func (t *txRepo) InsertAssignment(_ context.Context, a *domain.Assignment) error {
	if _, ok := t.s.assignments[a.ID]; ok {
		return fmt.Errorf("assignment %s: %w", a.ID, apperr.ErrConflict)
	}
	if _, ok := t.assignments[a.ID]; ok {
		return fmt.Errorf("assignment %s: %w", a.ID, apperr.ErrConflict)
	}
	t.assignments[a.ID] = *a
	return nil
}

// EndAssignment stages the end timestamp of an assignment.
func (t *txRepo) EndAssignment(_ context.Context, id string, at time.Time) error {
	a, ok := t.assignments[id]
	if !ok {
		a, ok = t.s.assignments[id]
	}
	if !ok {
		return fmt.Errorf("assignment %s not found", id)
	}
	a.EndedAt = domain.Some(at)
	t.assignments[id] = a
	return nil
}

// SetOrderDriver stages the order's driver fields.
func (t *txRepo) SetOrderDriver(_ context.Context, orderID string, driverID domain.Optional[string], assignedAt domain.Optional[time.Time], now time.Time) error {
	o, ok := t.order(orderID)
	if !ok {
		return fmt.Errorf("order %q not found", orderID)
	}
	o.DriverID = driverID
	o.DriverAssignedAt = assignedAt
	o.UpdatedAt = now
	t.orders[orderID] = o
	return nil
}

// SetOrderDelivered stages the deliverer and clears the driver fields.
func (t *txRepo) SetOrderDelivered(_ context.Context, orderID, driverID string, now time.Time) error {
	o, ok := t.order(orderID)
	if !ok {
		return fmt.Errorf("order %q not found", orderID)
	}
	o.DriverID = domain.None[string]()
	o.DriverAssignedAt = domain.None[time.Time]()
	o.DeliveredBy = domain.Some(driverID)
	o.UpdatedAt = now
	t.orders[orderID] = o
	return nil
}

// SetOrderStatus stages the denormalized status.
func (t *txRepo) SetOrderStatus(_ context.Context, orderID string, status domain.OrderStatus, now time.Time) error {
	o, ok := t.order(orderID)
	if !ok {
		return fmt.Errorf("order %q not found", orderID)
	}
	o.Status = status
	o.UpdatedAt = now
	t.orders[orderID] = o
	return nil
}

// InsertOrder stages a new order.
func (t *txRepo) InsertOrder(_ context.Context, o *domain.Order) error {
	if _, ok := t.order(o.ID); ok {
		return fmt.Errorf("order %s: %w", o.ID, apperr.ErrConflict)
	}
	t.orders[o.ID] = *o
	return nil
}

// AppendActivity stages an activity entry.
func (t *txRepo) AppendActivity(_ context.Context, e domain.ActivityLogEntry) error {
	t.activity = append(t.activity, e)
	return nil
}

func (t *txRepo) commit() {
	for id, o := range t.orders {
		t.s.orders[id] = o
	}
	for id, a := range t.assignments {
		t.s.assignments[id] = a
	}
	t.s.activity = append(t.s.activity, t.activity...)
}

var _ dispatchtx.Repository = (*txRepo)(nil)
