// Package calendar holds the per-day mood cache and the views derived from it.
package calendar

import (
	"sort"
	"sync"

	"tableflip.dev/moodlog/pkg/emotion"
)

// Cache is an in-memory, date keyed collection of day records built by
// merging fetched history pages. It holds at most one entry per date. A cache
// that has never received data is absent, which callers distinguish from a
// populated cache that happens to be empty.
//
// Every Merge and Upsert runs under the write lock, so no reader or merge ever
// observes a half-applied page.
type Cache struct {
	mu        sync.RWMutex
	populated bool
	entries   map[string]emotion.Entry
}

// New creates an absent cache.
func New() *Cache {
	return &Cache{entries: make(map[string]emotion.Entry)}
}

// Populated reports whether the cache has received any data.
func (c *Cache) Populated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.populated
}

// Merge applies a fetched page. Entries for dates already cached replace the
// cached copy; unseen dates are added. When a page repeats a date the later
// entry wins. It returns the number of dates that were not cached before. An
// empty page is a no-op and does not populate an absent cache.
func (c *Cache) Merge(page []emotion.Entry) int {
	if len(page) == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	added := 0
	for _, e := range page {
		key := e.Date.String()
		if key == "" {
			continue
		}
		if _, ok := c.entries[key]; !ok {
			added++
		}
		c.entries[key] = e.Clone()
	}
	c.populated = true
	return added
}

// Upsert inserts or replaces the entry for e.Date.
func (c *Cache) Upsert(e emotion.Entry) {
	key := e.Date.String()
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e.Clone()
	c.populated = true
}

// Get returns the entry cached for day.
func (c *Cache) Get(day emotion.Date) (emotion.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[day.String()]
	if !ok {
		return emotion.Entry{}, false
	}
	return e.Clone(), true
}

// Entries returns a copy of every cached entry in ascending date order, or
// nil and false when the cache is absent.
func (c *Cache) Entries() ([]emotion.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.populated {
		return nil, false
	}
	out := make([]emotion.Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, true
}

// Len returns the number of cached days.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset returns the cache to the absent state.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]emotion.Entry)
	c.populated = false
}
