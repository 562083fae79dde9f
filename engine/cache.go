package engine

import (
	"strconv"
	"sync"

	"github.com/patrickmn/go-cache"
)

// ============================================================================
// PROJECTION CACHE — Memoized projections keyed by payload fingerprint
// ============================================================================
// Projections are pure, so a (payload, mode, percent) triple always maps to
// the same result. Entries never expire; once max entries are held the oldest
// one is evicted. Cached projections are shared: callers must treat them as
// read-only.
// ============================================================================

const defaultCacheSize = 256

// Cache memoizes projections. The zero value is not usable; call NewCache.
type Cache struct {
	c *cache.Cache

	// mu serializes eviction bookkeeping and the counters.
	mu     sync.Mutex
	max    int
	order  []string
	hits   int
	misses int
}

// NewCache creates a cache holding at most max projections. max <= 0 selects
// the default size.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = defaultCacheSize
	}
	return &Cache{
		c:   cache.New(cache.NoExpiration, 0), // no janitor: entries never expire
		max: max,
	}
}

func cacheKey(fingerprint uint64, mode ViewMode, percent bool) string {
	return strconv.FormatUint(fingerprint, 16) + ":" + string(mode) + ":" + strconv.FormatBool(percent)
}

// Get returns the cached projection for the key, computing and storing it
// with build on a miss.
func (c *Cache) Get(fingerprint uint64, mode ViewMode, percent bool, build func() *Projection) *Projection {
	key := cacheKey(fingerprint, mode, percent)

	if v, ok := c.c.Get(key); ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return v.(*Projection)
	}
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	p := build()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have stored the same key while build ran.
	if err := c.c.Add(key, p, cache.NoExpiration); err != nil {
		if v, ok := c.c.Get(key); ok {
			return v.(*Projection)
		}
		c.c.Set(key, p, cache.NoExpiration)
	}
	c.order = append(c.order, key)
	for len(c.order) > c.max {
		c.c.Delete(c.order[0])
		c.order = c.order[1:]
	}
	return p
}

// Len returns the number of cached projections.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
