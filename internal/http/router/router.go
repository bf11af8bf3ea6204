package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-dispatch/internal/http/handlers"
)

// Handlers groups the route handlers of the dispatch API.
type Handlers struct {
	Base          *handlers.Handlers
	Orders        *handlers.OrderHandler
	Notifications *handlers.NotificationHandler
	Drivers       *handlers.DriverHandler
}

// New constructs a chi-based http.Handler with base middleware and routes.
// extra middlewares run after the base ones, in order.
func New(h Handlers, extra ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	for _, mw := range extra {
		r.Use(mw)
	}

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Orders.List)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Orders.Get)
			r.Post("/assign", h.Orders.Assign)
			r.Post("/unassign", h.Orders.Unassign)
			r.Post("/reassign", h.Orders.Reassign)
			r.Post("/cancel", h.Orders.Cancel)
			r.Post("/status", h.Orders.SetStatus)
			r.Post("/incident", h.Orders.Incident)
			r.Post("/reorder", h.Orders.Reorder)
		})
	})
	r.Get("/notifications", h.Notifications.List)
	r.Post("/notifications/{id}/read", h.Notifications.MarkRead)
	r.Get("/drivers/nearest", h.Drivers.Nearest)

	r.NotFound(http.HandlerFunc(h.Base.NotFound))

	return r
}
