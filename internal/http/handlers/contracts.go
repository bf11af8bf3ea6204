package handlers

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
)

type dispatchUsecase interface {
	Assign(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, error)
	Unassign(ctx context.Context, orderID, actor string) (domain.UnassignResult, error)
	Reassign(ctx context.Context, orderID, newDriverID, actor string) (domain.AssignResult, error)
	Transition(ctx context.Context, orderID string, to domain.OrderStatus, actor, note string) (domain.Order, error)
	Cancel(ctx context.Context, orderID, actor, note string) (domain.Order, error)
	ReportIncident(ctx context.Context, orderID, actor, note string) (domain.Order, error)
}

type queryUsecase interface {
	ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	GetOrderDetail(ctx context.Context, id string) (orders.OrderDetail, error)
	ListNotifications(ctx context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

type reorderUsecase interface {
	Reorder(ctx context.Context, req orders.ReorderRequest) (orders.ReorderResult, error)
}

type nearestUsecase interface {
	SelectNearest(ctx context.Context, c dispatch.Criteria) (*domain.Driver, error)
}
