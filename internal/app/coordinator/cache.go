package coordinator

import (
	"context"
	"sync"
	"time"
)

// Collection is a cached copy of one entity list. Each Collection has its own
// lock; nothing locks across entities.
//
// The cached slice is only replaced after a fetch succeeds and its context is
// still live, so a failed or abandoned refresh leaves the previous contents
// exactly as they were.
type Collection[T any] struct {
	name  string
	fetch func(context.Context) ([]T, error)
	now   func() time.Time

	mu        sync.RWMutex
	items     []T
	loaded    bool
	fetchedAt time.Time
}

// NewCollection returns an empty cache that loads through fetch.
func NewCollection[T any](name string, fetch func(context.Context) ([]T, error)) *Collection[T] {
	return &Collection[T]{name: name, fetch: fetch, now: time.Now}
}

func (c *Collection[T]) Name() string { return c.name }

// Get returns the cached list, fetching it first if the cache is empty or
// was invalidated. The result is a copy.
func (c *Collection[T]) Get(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	if c.loaded {
		out := append([]T(nil), c.items...)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	items, _ := c.Snapshot()
	return items, nil
}

// Refresh refetches the list and replaces the cache on success.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.loaded = true
	c.fetchedAt = c.now()
	c.mu.Unlock()
	return nil
}

// Invalidate makes the next Get refetch. The current contents stay visible
// to Snapshot until then.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}

// Snapshot returns a copy of the cached list without fetching, and whether
// the cache holds a fresh load.
func (c *Collection[T]) Snapshot() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...), c.loaded
}

// FetchedAt is when the cache was last loaded successfully.
func (c *Collection[T]) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
