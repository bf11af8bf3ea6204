package dispatchtx

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
)

// Repository is the transactional view of the dispatch store.
// Get* methods return (nil, nil) when the record does not exist.
type Repository interface {
	GetOrderForUpdate(ctx context.Context, id string) (*domain.Order, error)
	GetDriverForUpdate(ctx context.Context, id string) (*domain.Driver, error)
	// ListDrivers returns the whole pool ordered by driver id.
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	// ActiveAssignmentsByDriver returns assignments with no end, ordered by window start then id.
	ActiveAssignmentsByDriver(ctx context.Context, driverID string) ([]domain.Assignment, error)
	ActiveAssignmentByOrder(ctx context.Context, orderID string) (*domain.Assignment, error)
	InsertAssignment(ctx context.Context, a *domain.Assignment) error
	EndAssignment(ctx context.Context, id string, at time.Time) error
	SetOrderDriver(ctx context.Context, orderID string, driverID domain.Optional[string], assignedAt domain.Optional[time.Time], now time.Time) error
	// SetOrderDelivered clears the order's driver fields and records driverID as the deliverer.
	SetOrderDelivered(ctx context.Context, orderID, driverID string, now time.Time) error
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, now time.Time) error
	InsertOrder(ctx context.Context, o *domain.Order) error
	AppendActivity(ctx context.Context, e domain.ActivityLogEntry) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
