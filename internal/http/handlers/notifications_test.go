package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

func decodeBody(rr *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rr.Body).Decode(v)
}

func TestNotificationHandler_List(t *testing.T) {
	t.Parallel()

	q := &stubQuery{
		notesFn: func(_ context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error) {
			require.Equal(t, domain.NotificationFilter{Channel: domain.ChannelDriver, DriverID: "D1", UnreadOnly: true}, f)
			return []domain.NotificationEntry{{ID: "n1", Channel: domain.ChannelDriver, OrderID: "O1", DriverID: domain.Some("D1"), Message: "hi", CreatedAt: t0}}, nil
		},
	}
	h := NewNotificationHandler(nil, q)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/notifications?channel=driver&driver_id=D1&unread=true", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{
		"id": "n1",
		"channel": "driver",
		"order_id": "O1",
		"driver_id": "D1",
		"message": "hi",
		"created_at": "2025-03-10T10:00:00Z",
		"read": false
	}]`, rr.Body.String())
}

func TestNotificationHandler_List_BadUnread(t *testing.T) {
	t.Parallel()

	h := NewNotificationHandler(nil, &stubQuery{})

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/notifications?unread=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Parallel()

	q := &stubQuery{
		markReadFn: func(_ context.Context, id string) error {
			if id == "n1" {
				return nil
			}
			return apperr.ErrNotFound
		},
	}
	h := NewNotificationHandler(nil, q)

	r := chi.NewRouter()
	r.Post("/notifications/{id}/read", h.MarkRead)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/notifications/n1/read", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/notifications/n2/read", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
