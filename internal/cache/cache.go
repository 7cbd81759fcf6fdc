package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"offer-proxy/internal/device"
	"offer-proxy/internal/offers"
)

// DefaultTTL governs entry freshness unless config overrides it.
const DefaultTTL = 10 * time.Minute

// Key identifies one cached offer list by the request's classification
// dimensions. Country is uppercased, or "*" when no filter was requested.
type Key struct {
	Country    string
	FormFactor device.FormFactor
	OS         device.OS
}

func NewKey(country string, prof device.Profile) Key {
	c := strings.ToUpper(strings.TrimSpace(country))
	if c == "" {
		c = "*"
	}
	return Key{Country: c, FormFactor: prof.FormFactor, OS: prof.OS}
}

func (k Key) String() string {
	return k.Country + "|" + string(k.FormFactor) + "|" + string(k.OS)
}

type entry struct {
	offers    []offers.Offer
	expiresAt time.Time
}

// Cache is an in-memory TTL cache of ranked offer lists. Entries are
// replaced wholesale on Store and expire lazily on Lookup; there is no
// proactive sweep. Safe for concurrent use.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[Key]entry
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Key]entry),
	}
}

// Lookup returns the cached list when an entry exists and its expiry is
// strictly after the current time. An expired entry is a miss; it is left in
// place for the next Store to overwrite.
func (c *Cache) Lookup(_ context.Context, key Key) ([]offers.Offer, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.offers, true, nil
}

// Store unconditionally overwrites any entry for key. No merging with prior
// contents; last writer wins under concurrent misses.
func (c *Cache) Store(_ context.Context, key Key, list []offers.Offer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{offers: list, expiresAt: c.now().Add(c.ttl)}
	return nil
}
