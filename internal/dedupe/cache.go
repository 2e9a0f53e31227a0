// Package dedupe remembers recently ingested post identifiers so replays
// from the broker do not reach the store twice.
package dedupe

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type entry struct {
	key string
	ts  time.Time
}

// Cache is a bounded set of post IDs with a time-to-live. The oldest
// entries go first when capacity is exceeded.
type Cache struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	items    map[string]time.Time
	order    []entry
	capacity int
	ttl      time.Duration
}

// NewCache creates a cache. A nil clock uses wall time.
func NewCache(capacity int, ttl time.Duration, clock clockwork.Clock) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		clock:    clock,
		items:    make(map[string]time.Time, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// IsSeen reports whether key was marked within the ttl window.
func (c *Cache) IsSeen(key string) bool {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.items[key]
	return ok && now.Sub(ts) <= c.ttl
}

// MarkSeen records key. Call it only once the post has been stored.
func (c *Cache) MarkSeen(key string) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = now
	c.order = append(c.order, entry{key: key, ts: now})
	c.compact(now)
}

// Len returns the number of tracked keys, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) compact(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.order) > 0 && (len(c.items) > c.capacity || c.order[0].ts.Before(cutoff)) {
		oldest := c.order[0]
		c.order = c.order[1:]

		// a re-marked key has a newer timestamp and stays
		if ts, ok := c.items[oldest.key]; ok && ts.Equal(oldest.ts) {
			delete(c.items, oldest.key)
		}
	}
}
