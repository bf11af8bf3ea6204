//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders

package orders

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/dispatch"
)

// DispatchPort is the subset of the dispatch service driven by commands and reorders.
type DispatchPort interface {
	Assign(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, error)
	Unassign(ctx context.Context, orderID, actor string) (domain.UnassignResult, error)
	Cancel(ctx context.Context, orderID, actor, note string) (domain.Order, error)
}

// ReorderPort creates a new order from an existing one.
type ReorderPort interface {
	Reorder(ctx context.Context, req ReorderRequest) (ReorderResult, error)
}

type readStore interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	ListActivity(ctx context.Context, orderID string) ([]domain.ActivityLogEntry, error)
	ListNotifications(ctx context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error)
	MarkNotificationRead(ctx context.Context, id string) (bool, error)
}

type driverSelector interface {
	SelectNearest(ctx context.Context, c dispatch.Criteria) (*domain.Driver, error)
}

type routeEstimator interface {
	DistanceKm(ctx context.Context, from, to string) (float64, bool)
}

type coordResolver interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, bool)
}
