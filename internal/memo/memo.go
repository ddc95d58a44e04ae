// Package memo provides small memoization helpers: a keyed result cache
// and a typed singleflight wrapper for deduplicating concurrent loads of
// shared reference data.
//
// Caches here are always explicitly owned by a caller (one request, one
// service instance); nothing in this package is process-global, so
// per-profile results can never leak across concurrent requests.
package memo

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a keyed result cache scoped to a single request or service
// lifecycle. GetOrLoad runs the loader on a miss and stores the result;
// errors are not cached, so a failed load retries on the next call.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

// NewCache creates an empty cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// GetOrLoad returns the cached value for key, loading and storing it on
// a miss. The loader runs outside the cache lock, so a slow load does
// not block unrelated keys; two concurrent misses on the same key may
// both run the loader (use Flight when that matters).
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load func(context.Context) (V, error)) (V, error) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops a single key.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Flight deduplicates concurrent loads for the same key: while one load
// is in flight, additional callers wait for and share its result
// instead of issuing their own. Nothing is retained after the load
// completes, so Flight is not a cache.
type Flight[T any] struct {
	group singleflight.Group
}

// Do executes load under the given key, sharing the in-flight result
// with concurrent callers for the same key.
func (f *Flight[T]) Do(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	v, err, _ := f.group.Do(key, func() (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
