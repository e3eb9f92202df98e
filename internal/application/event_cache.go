package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/room-booking/internal/booking"
)

// eventCache stores recently projected calendar events so repeated display
// queries skip the projection while the stores remain unchanged. Entries are
// keyed by the store version, so any mutation makes cached projections
// unreachable; the TTL bounds how long dead entries linger.
type eventCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]eventCacheEntry
}

type eventCacheEntry struct {
	events    []booking.DisplayEvent
	expiresAt time.Time
}

func newEventCache(ttl time.Duration, maxEntries int, now func() time.Time) *eventCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 16
	}
	if now == nil {
		now = time.Now
	}
	return &eventCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]eventCacheEntry),
	}
}

func eventCacheKey(version uint64) string {
	return fmt.Sprintf("events:%d", version)
}

func (c *eventCache) Get(key string) ([]booking.DisplayEvent, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cloneEvents(entry.events), true
}

func (c *eventCache) Set(key string, events []booking.DisplayEvent) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = eventCacheEntry{
		events:    cloneEvents(events),
		expiresAt: c.now().Add(c.ttl),
	}
}

// evictLocked drops expired entries, falling back to clearing everything
// when all entries are still live. Caller holds the write lock.
func (c *eventCache) evictLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]eventCacheEntry)
	}
}

func cloneEvents(events []booking.DisplayEvent) []booking.DisplayEvent {
	if events == nil {
		return nil
	}
	out := make([]booking.DisplayEvent, len(events))
	copy(out, events)
	return out
}
