package ratelimit

import (
	"sync"
	"time"
)

const minSweepInterval = time.Minute

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens refilled per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped; 0 keeps them
	MaxBuckets int           // 0 means unbounded; when full the idlest caller is evicted
}

// TokenBucketLimiter keeps one token bucket per caller key.
type TokenBucketLimiter struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
}

type bucket struct {
	tokens  float64
	updated time.Time
}

// NewTokenBucketLimiter creates a limiter. A nil clock reads the wall clock.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow takes cost tokens from key's bucket. Costs above the burst are clamped to it,
// so any request can pass on a full bucket.
func (l *TokenBucketLimiter) Allow(key string, cost float64) bool {
	burst := float64(l.cfg.Burst)
	if cost <= 0 {
		cost = 1
	}
	if cost > burst {
		cost = burst
	}

	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
			l.evictIdlest()
		}
		b = &bucket{tokens: burst, updated: now}
		l.buckets[key] = b
	}

	b.refill(now, l.cfg.Rate, burst)
	if b.tokens < cost {
		return false
	}
	b.tokens -= cost
	return true
}

// Len reports the number of tracked callers.
func (l *TokenBucketLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (b *bucket) refill(now time.Time, rate, burst float64) {
	dt := now.Sub(b.updated)
	if dt <= 0 {
		return
	}
	b.tokens += dt.Seconds() * rate
	if b.tokens > burst {
		b.tokens = burst
	}
	b.updated = now
}

// sweep drops idle buckets at most once per interval. Caller holds l.mu.
func (l *TokenBucketLimiter) sweep(now time.Time) {
	if l.cfg.TTL <= 0 || now.Before(l.nextSweep) {
		return
	}
	interval := max(l.cfg.TTL/2, minSweepInterval)
	l.nextSweep = now.Add(interval)

	for k, b := range l.buckets {
		if now.Sub(b.updated) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}

// evictIdlest removes the bucket refilled longest ago. Caller holds l.mu.
func (l *TokenBucketLimiter) evictIdlest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, b := range l.buckets {
		if !found || b.updated.Before(oldest) {
			oldestKey, oldest, found = k, b.updated, true
		}
	}
	if found {
		delete(l.buckets, oldestKey)
	}
}
