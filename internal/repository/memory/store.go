// Package memory is an in-process implementation of the dispatch store.
// A transaction holds the write lock for its whole duration and stages its
// writes; they become visible only when the callback returns nil.
package memory

import (
	"context"
	"sort"
	"sync"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// Store keeps every collection in maps guarded by one RWMutex.
type Store struct {
	mu            sync.RWMutex
	orders        map[string]domain.Order
	drivers       map[string]domain.Driver
	assignments   map[string]domain.Assignment
	activity      []domain.ActivityLogEntry
	notifications []domain.NotificationEntry
}

// New returns an empty store.
func New() *Store {
	return &Store{
		orders:      make(map[string]domain.Order),
		drivers:     make(map[string]domain.Driver),
		assignments: make(map[string]domain.Assignment),
	}
}

// PutDriver inserts or replaces a driver. Fleet management owns drivers, so this is a seeding hook.
func (s *Store) PutDriver(d domain.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers[d.ID] = cloneDriver(d)
}

// PutOrder inserts or replaces an order as the order-creation flow would.
func (s *Store) PutOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// PutAssignment inserts or replaces an assignment.
func (s *Store) PutAssignment(a domain.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.ID] = a
}

// Assignments returns a snapshot of every assignment, ordered by creation then id.
func (s *Store) Assignments() []domain.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// WithTx runs fn against a staged view and commits it atomically when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txRepo{
		s:           s,
		orders:      make(map[string]domain.Order),
		assignments: make(map[string]domain.Assignment),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// GetOrder returns a committed order or nil.
func (s *Store) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// GetDriver returns a driver or nil.
func (s *Store) GetDriver(_ context.Context, id string) (*domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, nil
	}
	d = cloneDriver(d)
	return &d, nil
}

// ListOrders returns matching orders ordered by creation time, then id.
func (s *Store) ListOrders(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListActivity returns the order's activity log in append order.
func (s *Store) ListActivity(_ context.Context, orderID string) ([]domain.ActivityLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ActivityLogEntry, 0)
	for _, e := range s.activity {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// AppendActivity appends an entry outside any transaction.
func (s *Store) AppendActivity(_ context.Context, e domain.ActivityLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, e)
	return nil
}

// AppendNotification appends a notification.
func (s *Store) AppendNotification(_ context.Context, n domain.NotificationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return nil
}

// ListNotifications returns matching notifications in append order.
func (s *Store) ListNotifications(_ context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.NotificationEntry, 0)
	for _, n := range s.notifications {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkNotificationRead flips the read flag. It reports false when the id is unknown.
func (s *Store) MarkNotificationRead(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func cloneDriver(d domain.Driver) domain.Driver {
	if d.Unavailability != nil {
		d.Unavailability = append([]domain.UnavailabilityWindow(nil), d.Unavailability...)
	}
	return d
}

var _ dispatchtx.Runner = (*Store)(nil)
