package app

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/http/middleware"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/http/pprofserver"
	"service-dispatch/internal/http/router"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
)

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

type routerIn struct {
	dig.In

	Logger        logx.Logger
	RateLimit     *ratelimit.Middleware
	Base          *handlers.Handlers
	Orders        *handlers.OrderHandler
	Notifications *handlers.NotificationHandler
	Drivers       *handlers.DriverHandler
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		handlers.New,
		func(logger logx.Logger, svc *dispatch.Service, query *orders.QueryService, reorderer *orders.Reorderer) *handlers.OrderHandler {
			return handlers.NewOrderHandler(logger, svc, query, reorderer)
		},
		func(logger logx.Logger, query *orders.QueryService) *handlers.NotificationHandler {
			return handlers.NewNotificationHandler(logger, query)
		},
		func(logger logx.Logger, selector *dispatch.Selector) *handlers.DriverHandler {
			return handlers.NewDriverHandler(logger, selector)
		},
		newMux,
		newServer,
		newPprofServer,
	)
}

func newMux(in routerIn) http.Handler {
	return router.New(router.Handlers{
		Base:          in.Base,
		Orders:        in.Orders,
		Notifications: in.Notifications,
		Drivers:       in.Drivers,
	},
		middleware.Observability(in.Logger),
		in.RateLimit.Handler(),
	)
}

func newServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// newPprofServer returns a nil server when profiling is disabled.
func newPprofServer(cfg *config.Config, logger logx.Logger) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: &http.Server{
		Addr: cfg.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}
