package ratelimit

// Limiter admits or rejects a request of the given token cost for a caller key.
type Limiter interface {
	Allow(key string, cost float64) bool
}
