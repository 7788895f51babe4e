package resolvers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTTLCache_MinimumSize(t *testing.T) {
	assert.Equal(t, 100, NewTTLCache[string, int](100).maxEntries)
	assert.Equal(t, 1, NewTTLCache[string, int](0).maxEntries)
	assert.Equal(t, 1, NewTTLCache[string, int](-5).maxEntries)
}

func TestCache_SetGet(t *testing.T) {
	cache := NewTTLCache[string, string](10)

	cache.Set("example.com", "keys", time.Hour, CachePositive)
	val, age, found, kind := cache.Get("example.com")
	require.True(t, found)
	assert.Equal(t, "keys", val)
	assert.Less(t, age, time.Second)
	assert.Equal(t, CachePositive, kind)

	_, _, found, _ = cache.Get("missing.example")
	assert.False(t, found)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
}

func TestCache_Expiration(t *testing.T) {
	cache := NewTTLCache[string, string](10)
	cache.Set("k", "v", time.Millisecond, CachePositive)

	time.Sleep(5 * time.Millisecond)

	_, _, found, _ := cache.Get("k")
	assert.False(t, found)
	assert.Zero(t, cache.Stats().Entries, "expired entry is dropped on read")
}

func TestCache_NonPositiveTTLNotStored(t *testing.T) {
	cache := NewTTLCache[string, string](10)
	cache.Set("zero", "v", 0, CachePositive)
	cache.Set("negative", "v", -time.Second, CachePositive)
	assert.Zero(t, cache.Stats().Entries)
}

func TestCache_LRUEviction(t *testing.T) {
	cache := NewTTLCache[string, string](3)
	cache.Set("key1", "value1", time.Hour, CachePositive)
	cache.Set("key2", "value2", time.Hour, CachePositive)
	cache.Set("key3", "value3", time.Hour, CachePositive)

	cache.Get("key1")
	cache.Set("key4", "value4", time.Hour, CachePositive)

	for key, want := range map[string]bool{"key1": true, "key2": false, "key3": true, "key4": true} {
		_, _, found, _ := cache.Get(key)
		assert.Equal(t, want, found, key)
	}
}

func TestCache_UpdateAndDelete(t *testing.T) {
	cache := NewTTLCache[string, string](10)
	cache.Set("k", "v1", time.Hour, CachePositive)
	cache.Set("k", "v2", time.Hour, CacheNODATA)

	val, _, found, kind := cache.Get("k")
	require.True(t, found)
	assert.Equal(t, "v2", val)
	assert.Equal(t, CacheNODATA, kind)
	assert.Equal(t, 1, cache.Stats().NegativeHits)

	cache.Delete("k")
	cache.Delete("never-set")
	_, _, found, _ = cache.Get("k")
	assert.False(t, found)
}

func TestCapTTL(t *testing.T) {
	cache := NewTTLCache[string, string](10)
	cache.maxTTL = time.Hour
	cache.maxNegativeTTL = 30 * time.Minute

	tests := []struct {
		name string
		ttl  time.Duration
		kind CacheEntryType
		want time.Duration
	}{
		{"positive under max", 30 * time.Minute, CachePositive, 30 * time.Minute},
		{"positive over max", 2 * time.Hour, CachePositive, time.Hour},
		{"nxdomain under max", 10 * time.Minute, CacheNXDOMAIN, 10 * time.Minute},
		{"nxdomain over max", time.Hour, CacheNXDOMAIN, 30 * time.Minute},
		{"nodata over max", time.Hour, CacheNODATA, 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cache.capTTL(tt.ttl, tt.kind))
		})
	}
}

func TestCacheEntryType_String(t *testing.T) {
	assert.Equal(t, "positive", CachePositive.String())
	assert.Equal(t, "nodata", CacheNODATA.String())
	assert.Equal(t, "nxdomain", CacheNXDOMAIN.String())
}
