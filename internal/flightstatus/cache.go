package flightstatus

import (
	"sync"
	"time"

	"github.com/flightshare/flight-share/pkg/logger"
)

// cacheEntry is a stored lookup result with its storage instant
type cacheEntry struct {
	value    []*FlightStatus
	storedAt time.Time
}

// Cache is a time-bounded in-memory store of normalized lookup results,
// keyed by Query.CacheKey. Expiry is logical: an entry whose age has reached
// the TTL behaves as absent on Get but is only physically replaced by the
// next Put on the same key. There is no background sweep, so key cardinality
// grows with distinct queries over the process lifetime.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *logger.Logger
}

// NewCache creates a new lookup cache with the given TTL
func NewCache(ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
		logger:  log.Named("lookup-cache"),
	}
}

// Get returns the cached value for the key, or false when the key is absent
// or its entry has logically expired
func (c *Cache) Get(key string) ([]*FlightStatus, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.logger.Debug("Cache entry expired", logger.String("key", key))
		return nil, false
	}
	return entry.value, true
}

// Put stores the value for the key with storedAt = now, overwriting any
// previous entry (expired or not)
func (c *Cache) Put(key string, value []*FlightStatus) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
	c.mu.Unlock()

	c.logger.Debug("Cached lookup result",
		logger.String("key", key),
		logger.Int("flight_count", len(value)),
	)
}

// Len returns the number of physically stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
