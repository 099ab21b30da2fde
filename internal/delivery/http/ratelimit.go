package http

import (
	"context"
	"time"

	"github.com/elevatedliving/storefront/internal/domain"
	"github.com/elevatedliving/storefront/internal/infrastructure/cache"
	"golang.org/x/time/rate"
)

const defaultIdleTTL = 15 * time.Minute

// ClientRateLimiter hands out one token bucket per client key. Buckets of
// clients that stay idle for idleTTL are evicted by the cache sweeper.
type ClientRateLimiter struct {
	store   domain.CacheRepository[*rate.Limiter]
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
}

// NewClientRateLimiter allows perMinute requests per client with the given
// burst, keeping buckets in an in-memory cache
func NewClientRateLimiter(perMinute, burst int, idleTTL time.Duration) *ClientRateLimiter {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return NewClientRateLimiterWithStore(cache.NewMemoryCache[*rate.Limiter](idleTTL), perMinute, burst, idleTTL)
}

// NewClientRateLimiterWithStore is NewClientRateLimiter over a caller-supplied
// bucket store. The limiter takes ownership of store and closes it.
func NewClientRateLimiterWithStore(store domain.CacheRepository[*rate.Limiter], perMinute, burst int, idleTTL time.Duration) *ClientRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}

	return &ClientRateLimiter{
		store:   store,
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idleTTL: idleTTL,
	}
}

// Allow reports whether the client identified by key may proceed now
func (l *ClientRateLimiter) Allow(ctx context.Context, key string) bool {
	limiter := l.store.GetOrCreate(ctx, key, l.idleTTL, func() *rate.Limiter {
		return rate.NewLimiter(l.limit, l.burst)
	})
	return limiter.Allow()
}

// Clients returns the number of tracked clients
func (l *ClientRateLimiter) Clients() int {
	return l.store.Size()
}

// Close stops the eviction goroutine
func (l *ClientRateLimiter) Close() {
	l.store.Close()
}
