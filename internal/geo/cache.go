package geo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// Source is anything that can resolve a place query, normally a *Client.
type Source interface {
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}

// Cache memoizes successful lookups from an underlying Source. City and
// landmark coordinates do not move, so a long TTL mostly serves to bound
// memory on long-running processes. Failed lookups are not cached; a flaky
// upstream gets retried on the next request.
type Cache struct {
	next Source
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	coords  domain.Coordinates
	expires time.Time
}

// NewCache wraps next in an in-memory TTL cache. A ttl of zero or less means
// entries never expire. A nil now falls back to time.Now; tests inject a
// fake clock through it.
func NewCache(next Source, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		next:    next,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Geocode returns the cached coordinates for query when present and fresh,
// delegating to the underlying Source otherwise. Lookups for the same place
// differing only in case and surrounding space share one entry.
func (c *Cache) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if e.expires.IsZero() || c.now().Before(e.expires) {
			c.mu.Unlock()
			return e.coords, nil
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	// Not held across the network call. Concurrent misses for the same key
	// each hit the upstream and store the same value, which is harmless.
	coords, err := c.next.Geocode(ctx, query)
	if err != nil {
		return domain.Coordinates{}, err
	}

	e := cacheEntry{coords: coords}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return coords, nil
}
