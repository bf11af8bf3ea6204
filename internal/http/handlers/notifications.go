package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// NotificationHandler serves the per-audience notification feeds.
type NotificationHandler struct {
	query  queryUsecase
	logger logx.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(logger logx.Logger, query queryUsecase) *NotificationHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &NotificationHandler{query: query, logger: logger}
}

// List handles GET /notifications?channel=&customer_id=&driver_id=&order_id=&unread=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.NotificationFilter{
		Channel:    domain.Channel(strings.TrimSpace(q.Get("channel"))),
		CustomerID: strings.TrimSpace(q.Get("customer_id")),
		DriverID:   strings.TrimSpace(q.Get("driver_id")),
		OrderID:    strings.TrimSpace(q.Get("order_id")),
	}
	if raw := strings.TrimSpace(q.Get("unread")); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid unread")
			return
		}
		f.UnreadOnly = unread
	}

	list, err := h.query.ListNotifications(r.Context(), f)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, notificationsToResponse(list))
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.query.MarkNotificationRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
