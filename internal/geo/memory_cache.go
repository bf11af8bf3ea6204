package geo

import (
	"context"
	"sync"

	"service-dispatch/internal/domain"
)

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu     sync.RWMutex
	points map[string]domain.Coordinates
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{points: make(map[string]domain.Coordinates)}
}

// Get returns the cached point for address.
func (c *MemoryCache) Get(_ context.Context, address string) (domain.Coordinates, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.points[address]
	return p, ok, nil
}

// Set stores a point. The first stored point for an address wins.
func (c *MemoryCache) Set(_ context.Context, address string, p domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.points[address]; !ok {
		c.points[address] = p
	}
	return nil
}
