package domain

import (
	"context"
	"time"
)

// CacheRepository is a TTL store of lazily created values. Entries not
// touched for ttl are evicted.
type CacheRepository[V any] interface {
	GetOrCreate(ctx context.Context, key string, ttl time.Duration, create func() V) V
	Size() int
	Close()
}

// CatalogRepository exposes the read-only seed data
type CatalogRepository interface {
	Products() []CatalogItem
	Collections() []CollectionEntry
	Occasions() []OccasionEntry
}

// TextGenerator defines the interface for the remote text-generation service
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
