package resolvers

import (
	"container/list"
	"sync"
	"time"
)

// CacheEntryType categorizes cached key sets for TTL handling.
type CacheEntryType int

const (
	CachePositive CacheEntryType = iota // Zone returned at least one DNSKEY
	CacheNODATA                         // Zone exists but publishes no DNSKEY
	CacheNXDOMAIN                       // Zone does not exist (RCODE=3)
)

func (t CacheEntryType) String() string {
	switch t {
	case CacheNODATA:
		return "nodata"
	case CacheNXDOMAIN:
		return "nxdomain"
	default:
		return "positive"
	}
}

// cacheEntry holds a cached value with expiration and LRU tracking.
type cacheEntry[V any] struct {
	value     V
	storedAt  time.Time
	expiresAt time.Time
	kind      CacheEntryType
	elem      *list.Element // Position in LRU list
}

// CacheStats is a point-in-time view of cache counters.
type CacheStats struct {
	Entries      int `json:"entries"`
	Hits         int `json:"hits"`
	Misses       int `json:"misses"`
	NegativeHits int `json:"negative_hits"`
}

// TTLCache is a thread-safe, TTL-aware LRU cache.
//
// Entries expire after the TTL given to Set, capped per entry type. When
// full, the least recently used entry is evicted.
type TTLCache[K comparable, V any] struct {
	mu sync.Mutex

	maxTTL         time.Duration // Cap for positive entries
	maxNegativeTTL time.Duration // Cap for NODATA and NXDOMAIN entries
	maxEntries     int

	lru  *list.List // front = oldest, back = newest
	data map[K]*cacheEntry[V]

	hits, misses, negativeHits int
}

// NewTTLCache creates a cache holding at most maxEntries entries.
func NewTTLCache[K comparable, V any](maxEntries int) *TTLCache[K, V] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &TTLCache[K, V]{
		maxTTL:         24 * time.Hour,
		maxNegativeTTL: 1 * time.Hour,
		maxEntries:     maxEntries,
		lru:            list.New(),
		data:           map[K]*cacheEntry[V]{},
	}
}

// Get returns the value for key, how long it has been cached, and its
// entry type. Expired entries are removed and count as misses.
func (c *TTLCache[K, V]) Get(key K) (V, time.Duration, bool, CacheEntryType) {
	var zero V
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.data[key]
	if e == nil || !e.expiresAt.After(now) {
		if e != nil {
			c.lru.Remove(e.elem)
			delete(c.data, key)
		}
		c.misses++
		return zero, 0, false, CachePositive
	}

	c.lru.MoveToBack(e.elem)
	c.hits++
	if e.kind != CachePositive {
		c.negativeHits++
	}
	return e.value, now.Sub(e.storedAt), true, e.kind
}

// Set stores val under key. Entries with ttl <= 0 are not stored.
func (c *TTLCache[K, V]) Set(key K, val V, ttl time.Duration, kind CacheEntryType) {
	ttl = c.capTTL(ttl, kind)
	if ttl <= 0 {
		return
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing := c.data[key]; existing != nil {
		existing.value = val
		existing.storedAt = now
		existing.expiresAt = now.Add(ttl)
		existing.kind = kind
		c.lru.MoveToBack(existing.elem)
		return
	}

	e := &cacheEntry[V]{value: val, storedAt: now, expiresAt: now.Add(ttl), kind: kind}
	e.elem = c.lru.PushBack(key)
	c.data[key] = e

	for len(c.data) > c.maxEntries {
		front := c.lru.Front()
		if front == nil {
			break
		}
		c.lru.Remove(front)
		delete(c.data, front.Value.(K))
	}
}

// Delete removes key if present.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.data[key]; e != nil {
		c.lru.Remove(e.elem)
		delete(c.data, key)
	}
}

// Stats returns a snapshot of the cache counters.
func (c *TTLCache[K, V]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Entries: len(c.data), Hits: c.hits, Misses: c.misses, NegativeHits: c.negativeHits}
}

func (c *TTLCache[K, V]) capTTL(ttl time.Duration, kind CacheEntryType) time.Duration {
	limit := c.maxTTL
	if kind != CachePositive {
		limit = c.maxNegativeTTL
	}
	return min(ttl, limit)
}
