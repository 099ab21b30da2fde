package cache

import (
	"context"
	"sync"
	"time"

	"github.com/elevatedliving/storefront/internal/domain"
)

const defaultCleanupInterval = 10 * time.Minute

// cacheItem represents a single item in the cache with expiration
type cacheItem[V any] struct {
	Value      V
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support
type MemoryCache[V any] struct {
	data  map[string]cacheItem[V]
	mutex sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

var _ domain.CacheRepository[int] = (*MemoryCache[int])(nil)

// NewMemoryCache creates a new in-memory cache that sweeps expired entries
// every cleanupInterval (10 minutes when zero or negative)
func NewMemoryCache[V any](cleanupInterval time.Duration) *MemoryCache[V] {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	cache := &MemoryCache[V]{
		data: make(map[string]cacheItem[V]),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go cache.cleanupExpired(cleanupInterval)

	return cache
}

// GetOrCreate returns the live value under key, or stores and returns the
// result of create. Either way the entry's TTL is refreshed, so keys that
// keep being used never expire.
func (c *MemoryCache[V]) GetOrCreate(ctx context.Context, key string, ttl time.Duration, create func() V) V {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	item, exists := c.data[key]
	if !exists || now.After(item.Expiration) {
		item.Value = create()
	}
	item.Expiration = now.Add(ttl)
	c.data[key] = item

	return item.Value
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache[V]) cleanupExpired(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.deleteExpired()
		}
	}
}

func (c *MemoryCache[V]) deleteExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
		}
	}
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *MemoryCache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

// Size returns the current number of items in the cache, expired or not
func (c *MemoryCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}
