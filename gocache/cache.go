// Package gocache provides an in-memory nport.HoldingsCache backed by
// patrickmn/go-cache.
package gocache

import (
	"math"
	"sync"
	"time"

	nport "github.com/ChipDale729/nport-viewer"
	gocache "github.com/patrickmn/go-cache"
)

// Defaults matching the reference deployment: reports are good for half
// an hour and the cache holds at most 128 filers.
const (
	DefaultTTL        = 30 * time.Minute
	DefaultMaxEntries = 128
)

// Ensure Cache implements nport.HoldingsCache at compile time.
var _ nport.HoldingsCache = (*Cache)(nil)

// Cache is an in-memory HoldingsCache with TTL expiry and a soft entry
// cap. When the cap is reached, the entry nearest expiry is evicted to
// make room.
type Cache struct {
	mu         sync.Mutex
	cache      *gocache.Cache
	maxEntries int
}

// New creates a Cache. Non-positive ttl or maxEntries fall back to the
// defaults.
func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		cache:      gocache.New(ttl, ttl/2),
		maxEntries: maxEntries,
	}
}

// Get returns the cached report for cik, if present and fresh.
func (c *Cache) Get(cik nport.CIK) (*nport.HoldingsReport, bool) {
	v, ok := c.cache.Get(string(cik))
	if !ok {
		return nil, false
	}
	return v.(*nport.HoldingsReport), true
}

// Set stores the report for cik, evicting the entry nearest expiry when
// the cache is full.
func (c *Cache) Set(cik nport.CIK, report *nport.HoldingsReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := string(cik)
	if _, exists := c.cache.Get(key); !exists && c.cache.ItemCount() >= c.maxEntries {
		c.evictNearestExpiry()
	}
	c.cache.Set(key, report, gocache.DefaultExpiration)
}

func (c *Cache) evictNearestExpiry() {
	var victim string
	soonest := int64(math.MaxInt64)
	for key, item := range c.cache.Items() {
		exp := item.Expiration
		if exp == 0 {
			exp = math.MaxInt64
		}
		if victim == "" || exp < soonest {
			victim = key
			soonest = exp
		}
	}
	if victim != "" {
		c.cache.Delete(victim)
	}
}
