package cache

import (
	"context"
	"sync"

	"cart_service/internal/core/domain"
)

// MemoryCache memoises catalog product details. Stock is never stored here.
type MemoryCache struct {
	mu    sync.RWMutex
	store map[int]domain.Product
	stats *Stats
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: make(map[int]domain.Product),
		stats: NewStats(),
	}
}

func (c *MemoryCache) Get(_ context.Context, productID int) (domain.Product, bool) {
	c.mu.RLock()
	p, ok := c.store[productID]
	c.mu.RUnlock()

	if ok {
		c.stats.IncHit()
		return p, true
	}

	c.stats.IncMiss()
	return domain.Product{}, false
}

func (c *MemoryCache) Set(_ context.Context, product domain.Product) {
	if product.ID <= 0 {
		return
	}
	c.mu.Lock()
	c.store[product.ID] = product
	c.mu.Unlock()
}

func (c *MemoryCache) Len(_ context.Context) int {
	c.mu.RLock()
	n := len(c.store)
	c.mu.RUnlock()
	return n
}

func (c *MemoryCache) Stats() (hits uint64, misses uint64) {
	return c.stats.Snapshot()
}
