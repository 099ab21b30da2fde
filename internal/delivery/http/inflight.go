package http

import (
	"sync"

	"github.com/elevatedliving/storefront/internal/domain"
)

// InFlightGuard is the busy flag of the concierge widget, kept per client:
// a client may have at most one outstanding concierge request.
type InFlightGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// NewInFlightGuard creates an empty guard
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{busy: make(map[string]struct{})}
}

// Acquire marks key busy. It fails with domain.ErrRequestInFlight when key is
// already busy. The returned release func must be called exactly once.
func (g *InFlightGuard) Acquire(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return nil, domain.ErrRequestInFlight
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, nil
}
