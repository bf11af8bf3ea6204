package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/repository/memory"
	"service-dispatch/internal/service/audit"
	testlog "service-dispatch/internal/testutil"
)

// at returns 2025-03-10 hh:mm UTC.
func at(hh, mm int) time.Time {
	return time.Date(2025, 3, 10, hh, mm, 0, 0, time.UTC)
}

func window(sh, sm, eh, em int) domain.Window {
	return domain.Window{Start: at(sh, sm), End: at(eh, em)}
}

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

type eventLog struct {
	mu     sync.Mutex
	events []audit.Event
}

func (l *eventLog) EmitOrderEvent(_ context.Context, e audit.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) all() []audit.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]audit.Event(nil), l.events...)
}

func (l *eventLog) kinds() []domain.ActivityType {
	out := make([]domain.ActivityType, 0)
	for _, e := range l.all() {
		out = append(out, e.Kind)
	}
	return out
}

func driver(id, zone string) domain.Driver {
	return domain.Driver{
		ID:       id,
		Name:     "Driver " + id,
		Zone:     zone,
		Status:   domain.DriverAvailable,
		Active:   true,
		Capacity: domain.Capacity{WeightKg: 100, VolumeM3: 2},
	}
}

func order(id, zone string, w domain.Window) domain.Order {
	return domain.Order{
		ID:              id,
		CustomerID:      "cust-1",
		PickupAddress:   "1 Rue A",
		DeliveryAddress: "2 Rue B",
		Window:          w,
		Zone:            zone,
		Status:          domain.StatusPendingAssignment,
		CreatedAt:       at(8, 0),
		UpdatedAt:       at(8, 0),
	}
}

type fixture struct {
	store  *memory.Store
	events *eventLog
	logs   *testlog.Recorder
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.New(), events: &eventLog{}, logs: testlog.New()}
	f.svc = NewService(f.store, f.events, nil, time.Second, f.logs.Logger())
	f.svc.now = func() time.Time { return at(9, 0) }
	var n int64
	f.svc.newID = func() string { return fmt.Sprintf("id-%d", atomic.AddInt64(&n, 1)) }
	return f
}

func (f *fixture) order(t *testing.T, id string) domain.Order {
	t.Helper()
	o, err := f.store.GetOrder(context.Background(), id)
	if err != nil || o == nil {
		t.Fatalf("order %s: %v", id, err)
	}
	return *o
}

func (f *fixture) activeAssignments(driverID string) []domain.Assignment {
	out := make([]domain.Assignment, 0)
	for _, a := range f.store.Assignments() {
		if a.Active() && (driverID == "" || a.DriverID == driverID) {
			out = append(out, a)
		}
	}
	return out
}
