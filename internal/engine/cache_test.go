package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hstrade/harmonize/internal/model"
)

func TestResultCacheGetSet(t *testing.T) {
	cache := newResultCache(time.Minute, 100)

	result := &model.ClassificationResult{Query: "insulated wire", Success: true}
	cache.set("key", result)

	cached, hit := cache.get("key")
	require.True(t, hit)
	assert.Same(t, result, cached)

	_, hit = cache.get("missing")
	assert.False(t, hit)
}

func TestResultCacheExpiry(t *testing.T) {
	cache := newResultCache(10*time.Millisecond, 100)
	cache.set("key", &model.ClassificationResult{Query: "insulated wire"})

	_, hit := cache.get("key")
	require.True(t, hit)

	time.Sleep(20 * time.Millisecond)

	_, hit = cache.get("key")
	assert.False(t, hit)
}

func TestResultCacheUpdateInPlace(t *testing.T) {
	cache := newResultCache(time.Minute, 100)

	first := &model.ClassificationResult{Query: "first"}
	second := &model.ClassificationResult{Query: "second"}
	cache.set("key", first)
	cache.set("key", second)

	assert.Equal(t, 1, cache.size())

	cached, hit := cache.get("key")
	require.True(t, hit)
	assert.Same(t, second, cached)
}

func TestResultCacheEviction(t *testing.T) {
	t.Run("drops the oldest-inserted half", func(t *testing.T) {
		cache := newResultCache(time.Minute, 4)

		for i := 0; i < 5; i++ {
			cache.set(fmt.Sprintf("key%d", i), &model.ClassificationResult{})
		}

		assert.Equal(t, 3, cache.size())

		_, hit := cache.get("key0")
		assert.False(t, hit)
		_, hit = cache.get("key1")
		assert.False(t, hit)
		_, hit = cache.get("key4")
		assert.True(t, hit)
	})

	t.Run("default bound stays well under capacity after eviction", func(t *testing.T) {
		cache := newResultCache(time.Minute, 1000)

		for i := 0; i < 1001; i++ {
			cache.set(fmt.Sprintf("key%d", i), &model.ClassificationResult{})
		}

		assert.Equal(t, 501, cache.size())
	})
}
