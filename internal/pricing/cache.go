package pricing

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a cached quote stays fresh.
const DefaultCacheTTL = 300 * time.Second

type cacheEntry struct {
	quote     Quote
	fetchedAt time.Time
}

// QuoteCache is an in-memory quote store with lazy TTL expiry. Entries are
// keyed by upper-cased symbol and expire on read; there is no background
// sweep and no size bound, which is fine at tens of distinct symbols.
type QuoteCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry

	now func() time.Time // injectable for tests
}

// NewQuoteCache creates a quote cache with the given TTL.
// A non-positive TTL falls back to DefaultCacheTTL.
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &QuoteCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached quote for symbol, or false when the symbol is
// absent or its entry has outlived the TTL. Stale entries are dropped.
func (c *QuoteCache) Get(symbol string) (Quote, bool) {
	key := strings.ToUpper(symbol)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Quote{}, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		delete(c.entries, key)
		return Quote{}, false
	}
	return entry.quote, true
}

// Put stores a quote for symbol, overwriting any existing entry with a
// fresh timestamp.
func (c *QuoteCache) Put(symbol string, quote Quote) {
	key := strings.ToUpper(symbol)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{quote: quote, fetchedAt: c.now()}
}
