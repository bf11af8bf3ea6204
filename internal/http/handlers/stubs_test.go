package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
)

type stubDispatch struct {
	assignFn     func(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, error)
	unassignFn   func(ctx context.Context, orderID, actor string) (domain.UnassignResult, error)
	reassignFn   func(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, error)
	transitionFn func(ctx context.Context, orderID string, to domain.OrderStatus, actor, note string) (domain.Order, error)
	cancelFn     func(ctx context.Context, orderID, actor, note string) (domain.Order, error)
	incidentFn   func(ctx context.Context, orderID, actor, note string) (domain.Order, error)
}

func (s *stubDispatch) Assign(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, error) {
	if s.assignFn == nil {
		panic("Assign not expected in this test")
	}
	return s.assignFn(ctx, orderID, driverID, actor)
}

func (s *stubDispatch) Unassign(ctx context.Context, orderID, actor string) (domain.UnassignResult, error) {
	if s.unassignFn == nil {
		panic("Unassign not expected in this test")
	}
	return s.unassignFn(ctx, orderID, actor)
}

func (s *stubDispatch) Reassign(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, error) {
	if s.reassignFn == nil {
		panic("Reassign not expected in this test")
	}
	return s.reassignFn(ctx, orderID, driverID, actor)
}

func (s *stubDispatch) Transition(ctx context.Context, orderID string, to domain.OrderStatus, actor, note string) (domain.Order, error) {
	if s.transitionFn == nil {
		panic("Transition not expected in this test")
	}
	return s.transitionFn(ctx, orderID, to, actor, note)
}

func (s *stubDispatch) Cancel(ctx context.Context, orderID, actor, note string) (domain.Order, error) {
	if s.cancelFn == nil {
		panic("Cancel not expected in this test")
	}
	return s.cancelFn(ctx, orderID, actor, note)
}

func (s *stubDispatch) ReportIncident(ctx context.Context, orderID, actor, note string) (domain.Order, error) {
	if s.incidentFn == nil {
		panic("ReportIncident not expected in this test")
	}
	return s.incidentFn(ctx, orderID, actor, note)
}

type stubQuery struct {
	listFn     func(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	detailFn   func(ctx context.Context, id string) (orders.OrderDetail, error)
	notesFn    func(ctx context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error)
	markReadFn func(ctx context.Context, id string) error
}

func (s *stubQuery) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	if s.listFn == nil {
		panic("ListOrders not expected in this test")
	}
	return s.listFn(ctx, f)
}

func (s *stubQuery) GetOrderDetail(ctx context.Context, id string) (orders.OrderDetail, error) {
	if s.detailFn == nil {
		panic("GetOrderDetail not expected in this test")
	}
	return s.detailFn(ctx, id)
}

func (s *stubQuery) ListNotifications(ctx context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error) {
	if s.notesFn == nil {
		panic("ListNotifications not expected in this test")
	}
	return s.notesFn(ctx, f)
}

func (s *stubQuery) MarkNotificationRead(ctx context.Context, id string) error {
	if s.markReadFn == nil {
		panic("MarkNotificationRead not expected in this test")
	}
	return s.markReadFn(ctx, id)
}

type reorderFunc func(ctx context.Context, req orders.ReorderRequest) (orders.ReorderResult, error)

func (f reorderFunc) Reorder(ctx context.Context, req orders.ReorderRequest) (orders.ReorderResult, error) {
	return f(ctx, req)
}

type nearestFunc func(ctx context.Context, c dispatch.Criteria) (*domain.Driver, error)

func (f nearestFunc) SelectNearest(ctx context.Context, c dispatch.Criteria) (*domain.Driver, error) {
	return f(ctx, c)
}

// newRequest builds a request whose chi route carries the given id.
func newRequest(method, target, id, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}
