package engine

import (
	"sync"
	"time"

	"github.com/hstrade/harmonize/internal/model"
)

// cacheEntry represents a cached classification result.
type cacheEntry struct {
	insertedAt time.Time
	result     *model.ClassificationResult
	key        string
}

// resultCache provides thread-safe caching of classification results with
// read-time expiry and coarse bulk eviction. Expiry is checked on get, not
// swept proactively; when the entry count exceeds maxEntries the
// oldest-inserted half is dropped in one pass.
type resultCache struct {
	entries    map[string]*cacheEntry
	order      []*cacheEntry
	ttl        time.Duration
	maxEntries int
	mu         sync.RWMutex
}

// newResultCache creates a cache with the given TTL and size bound.
func newResultCache(ttl time.Duration, maxEntries int) *resultCache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1000
	}

	return &resultCache{
		entries:    make(map[string]*cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// get retrieves a result if it exists and hasn't expired.
func (c *resultCache) get(key string) (*model.ClassificationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if time.Since(entry.insertedAt) >= c.ttl {
		return nil, false
	}

	return entry.result, true
}

// set stores a result, evicting the oldest-inserted half of the cache when
// the size bound is exceeded.
func (c *resultCache) set(key string, result *model.ClassificationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		existing.result = result
		existing.insertedAt = time.Now()
		return
	}

	entry := &cacheEntry{
		key:        key,
		result:     result,
		insertedAt: time.Now(),
	}
	c.entries[key] = entry
	c.order = append(c.order, entry)

	if len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
}

// evictOldest drops the older half of the insertion order. Caller must
// hold the write lock.
func (c *resultCache) evictOldest() {
	cut := len(c.order) / 2
	for _, entry := range c.order[:cut] {
		delete(c.entries, entry.key)
	}
	c.order = append([]*cacheEntry(nil), c.order[cut:]...)
}

// size returns the number of entries in the cache.
func (c *resultCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
