package flagpost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyDerivation(t *testing.T) {
	req := EvaluationRequest{
		Environment: "production",
		User:        User{ID: "user-1"},
		Flag:        "new_checkout",
	}
	assert.Equal(t, "production:user-1", cacheKey(req))
}

func TestCachePartitionsDoNotCollide(t *testing.T) {
	cache := newEvaluationCache()

	cache.set(partitionSingle, "production:user-1", Flag{Name: "a", Enabled: true}, 0)
	cache.set(partitionMulti, "production:user-1", []Flag{{Name: "a"}, {Name: "b"}}, 0)

	single, ok := cache.get(partitionSingle, "production:user-1")
	assert.True(t, ok)
	assert.Equal(t, Flag{Name: "a", Enabled: true}, single)

	multi, ok := cache.get(partitionMulti, "production:user-1")
	assert.True(t, ok)
	assert.Len(t, multi, 2)
}

func TestCacheOverwritesExistingEntry(t *testing.T) {
	cache := newEvaluationCache()

	cache.set(partitionSingle, "k", Flag{Name: "a", Enabled: false}, 0)
	cache.set(partitionSingle, "k", Flag{Name: "a", Enabled: true}, 0)

	value, ok := cache.get(partitionSingle, "k")
	assert.True(t, ok)
	assert.Equal(t, Flag{Name: "a", Enabled: true}, value)
}

func TestCacheEntryWithoutTTLDoesNotExpire(t *testing.T) {
	cache := newEvaluationCache()
	cache.set(partitionSingle, "k", Flag{Name: "a"}, 0)

	entry := cache.entries[partitionSingle]["k"]
	assert.True(t, entry.expiresAt.IsZero())
	assert.False(t, entry.expired(time.Now().Add(24*time.Hour)))
}

func TestCacheExpiryIsLazy(t *testing.T) {
	cache := newEvaluationCache()
	cache.set(partitionSingle, "k", Flag{Name: "a"}, 10*time.Millisecond)

	_, ok := cache.get(partitionSingle, "k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	// The stale entry is still stored until the next lookup removes it.
	cache.mu.RLock()
	_, stored := cache.entries[partitionSingle]["k"]
	cache.mu.RUnlock()
	assert.True(t, stored)

	_, ok = cache.get(partitionSingle, "k")
	assert.False(t, ok)

	cache.mu.RLock()
	_, stored = cache.entries[partitionSingle]["k"]
	cache.mu.RUnlock()
	assert.False(t, stored)
}

func TestCacheClearEmptiesAllPartitions(t *testing.T) {
	cache := newEvaluationCache()
	cache.set(partitionSingle, "k", Flag{Name: "a"}, 0)
	cache.set(partitionMulti, "k", []Flag{{Name: "a"}}, 0)

	cache.clear()

	_, ok := cache.get(partitionSingle, "k")
	assert.False(t, ok)
	_, ok = cache.get(partitionMulti, "k")
	assert.False(t, ok)
}
