package ratelimit

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"service-dispatch/internal/logx"
)

// ActorHeader carries the caller identity used as the rate-limit key.
const ActorHeader = "X-Actor-ID"

// Middleware limits requests per actor, or per client IP for anonymous callers.
// Reads cost one token; every other method costs writeCost.
type Middleware struct {
	logger    logx.Logger
	counter   prometheus.Counter
	limiter   Limiter
	writeCost float64
}

// New creates a new Middleware. counter may be nil; a non-positive writeCost means 1.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, writeCost float64) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if writeCost <= 0 {
		writeCost = 1
	}
	return &Middleware{
		logger:    logger,
		counter:   counter,
		limiter:   limiter,
		writeCost: writeCost,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limitKey(r)

			if !m.limiter.Allow(key, m.cost(r)) {
				if m.counter != nil {
					m.counter.Inc()
				}
				m.logger.Warn("rate limit exceeded",
					logx.String("key", key),
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
					// client went away
					m.logger.Debug("rate limit response write failed",
						logx.String("key", key),
						logx.Err(err),
					)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) cost(r *http.Request) float64 {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return 1
	default:
		return m.writeCost
	}
}

func limitKey(r *http.Request) string {
	if actor := strings.TrimSpace(r.Header.Get(ActorHeader)); actor != "" {
		return "actor:" + actor
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
