package handlers

import (
	"net/http"
	"strings"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/orders"
)

// OrderHandler handles HTTP requests for order resources.
type OrderHandler struct {
	dispatch dispatchUsecase
	query    queryUsecase
	reorder  reorderUsecase
	logger   logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, dispatch dispatchUsecase, query queryUsecase, reorder reorderUsecase) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OrderHandler{dispatch: dispatch, query: query, reorder: reorder, logger: logger}
}

// List handles GET /orders?customer_id=&driver_id=&status=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.OrderFilter{
		CustomerID: strings.TrimSpace(q.Get("customer_id")),
		DriverID:   strings.TrimSpace(q.Get("driver_id")),
		Status:     domain.OrderStatus(strings.TrimSpace(q.Get("status"))),
	}

	list, err := h.query.ListOrders(r.Context(), f)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.query.GetOrderDetail(r.Context(), orderIDFromURL(r))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, detailToResponse(d))
}

// Assign handles POST /orders/{id}/assign.
func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.dispatch.Assign(r.Context(), orderIDFromURL(r), req.DriverID, actorOf(r, req.Actor))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignResultToResponse(res))
}

// Reassign handles POST /orders/{id}/reassign.
func (h *OrderHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.dispatch.Reassign(r.Context(), orderIDFromURL(r), req.DriverID, actorOf(r, req.Actor))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignResultToResponse(res))
}

// Unassign handles POST /orders/{id}/unassign.
func (h *OrderHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.dispatch.Unassign(r.Context(), orderIDFromURL(r), actorOf(r, req.Actor))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, unassignResultToResponse(res))
}

// Cancel handles POST /orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.dispatch.Cancel(r.Context(), orderIDFromURL(r), actorOf(r, req.Actor), req.Note)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
}

// Incident handles POST /orders/{id}/incident.
func (h *OrderHandler) Incident(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.dispatch.ReportIncident(r.Context(), orderIDFromURL(r), actorOf(r, req.Actor), req.Note)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
}

// SetStatus handles POST /orders/{id}/status.
func (h *OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	to := domain.OrderStatus(strings.TrimSpace(req.Status))
	o, err := h.dispatch.Transition(r.Context(), orderIDFromURL(r), to, actorOf(r, req.Actor), req.Note)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
}

// Reorder handles POST /orders/{id}/reorder. It answers 201 whether or not a driver was found.
func (h *OrderHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.reorder.Reorder(r.Context(), orders.ReorderRequest{
		SourceOrderID: orderIDFromURL(r),
		Window:        domain.Window{Start: req.PickupStart.UTC(), End: req.PickupEnd.UTC()},
		Actor:         actorOf(r, req.Actor),
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, reorderResultToResponse(res))
}
