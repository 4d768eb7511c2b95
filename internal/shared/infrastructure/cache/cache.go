// Package cache provides a small byte-oriented cache used to serve
// owner-scoped task lists without hitting the store on every read.
package cache

import (
	"context"
	"time"
)

// Cache is a best-effort key/value cache. Implementations must never
// fail a request: a miss and a backend error look the same to callers.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Noop is a Cache that stores nothing. It is used when no Redis is
// configured so callers never have to nil-check the cache.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}

func (Noop) Delete(ctx context.Context, key string) {}
