package chartcache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
)

// defaultMaxEntries bounds the in-process cache.
const defaultMaxEntries = 10000

type entry struct {
	chart     natal.ChartResult
	expiresAt time.Time
}

// MemoryCache keeps computed charts in process memory. Useful for tests and local dev.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry), maxEntries: defaultMaxEntries, now: time.Now}
}

// Get implements chart.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (natal.ChartResult, bool, error) {
	c.mu.RLock()
	item, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return natal.ChartResult{}, false, nil
	}
	if c.expired(item.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return natal.ChartResult{}, false, nil
	}
	result := item.chart
	result.Planets = slices.Clone(result.Planets)
	return result, true, nil
}

// Save caches the chart with optional TTL. When the cache is full, expired
// entries are swept first and then the entry closest to expiry is evicted.
func (c *MemoryCache) Save(_ context.Context, key string, result natal.ChartResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 {
		if len(c.entries) >= c.maxEntries {
			c.sweepLocked()
		}
		for len(c.entries) >= c.maxEntries {
			c.evictLocked()
		}
	}
	result.Planets = slices.Clone(result.Planets)
	c.entries[key] = entry{chart: result, expiresAt: exp}
	return nil
}

func (c *MemoryCache) sweepLocked() {
	for key, item := range c.entries {
		if c.expired(item.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// evictLocked drops the entry that expires soonest. Entries without a TTL go last.
func (c *MemoryCache) evictLocked() {
	var victim string
	var victimExp time.Time
	found := false
	for key, item := range c.entries {
		if !found || expiresBefore(item.expiresAt, victimExp) || (item.expiresAt.Equal(victimExp) && key < victim) {
			victim, victimExp, found = key, item.expiresAt, true
		}
	}
	if found {
		delete(c.entries, victim)
	}
}

func expiresBefore(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	default:
		return a.Before(b)
	}
}

func (c *MemoryCache) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(c.now())
}

var _ chart.Cache = (*MemoryCache)(nil)
