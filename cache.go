package flagpost

import (
	"sync"
	"time"
)

type cachePartition int

const (
	// Single-flag and multi-flag results are cached separately: the same
	// environment/user key holds a Flag in one partition and a []Flag in
	// the other, and the two must never collide.
	partitionSingle cachePartition = iota
	partitionMulti
)

const cacheKeySeparator = ":"

type cacheEntry struct {
	value     any
	expiresAt time.Time // zero means no expiry
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// evaluationCache holds the last successful result per environment/user
// key. Expiry is lazy: entries are stamped with a deadline on write and
// checked on lookup, so there are no timers to cancel.
type evaluationCache struct {
	mu      sync.RWMutex
	entries map[cachePartition]map[string]cacheEntry
}

func newEvaluationCache() *evaluationCache {
	return &evaluationCache{
		entries: map[cachePartition]map[string]cacheEntry{
			partitionSingle: {},
			partitionMulti:  {},
		},
	}
}

func cacheKey(req EvaluationRequest) string {
	return req.Environment + cacheKeySeparator + req.User.ID
}

func (c *evaluationCache) get(p cachePartition, key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[p][key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if entry.expired(time.Now()) {
		c.mu.Lock()
		// Re-check under the write lock; a fresh entry may have landed.
		if current, ok := c.entries[p][key]; ok && current.expired(time.Now()) {
			delete(c.entries[p], key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (c *evaluationCache) set(p cachePartition, key string, value any, ttl time.Duration) {
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[p][key] = entry
	c.mu.Unlock()
}

func (c *evaluationCache) clear() {
	c.mu.Lock()
	for p := range c.entries {
		c.entries[p] = map[string]cacheEntry{}
	}
	c.mu.Unlock()
}
