package tado

import (
	"strconv"
	"sync"
	"time"
)

// Cache stores slow-changing API responses, such as home details and zone
// capabilities. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value and true if present and not expired.
	Get(key string) (any, bool)

	// Set stores value for ttl. A non-positive ttl never expires.
	Set(key string, value any, ttl time.Duration)

	Delete(key string)
	Clear()
}

type cacheEntry struct {
	value     any
	expiresAt time.Time // zero means the entry never expires
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is an in-memory Cache. Expired entries are dropped lazily on
// Get, or all at once by Cleanup.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the value stored under key unless it has expired.
func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if entry.expired(c.now()) {
		c.Delete(key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key for ttl. A non-positive ttl never expires.
func (c *MemoryCache) Set(key string, value any, ttl time.Duration) {
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Delete removes key.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Size returns the number of entries, expired ones included.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup drops expired entries and returns how many were removed.
func (c *MemoryCache) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// CacheConfig configures the caching behavior for a Client.
type CacheConfig struct {
	// Cache is the cache implementation to use.
	Cache Cache

	// HomeTTL is how long to cache home details.
	// Defaults to 15 minutes if zero.
	HomeTTL time.Duration

	// CapabilityTTL is how long to cache zone capabilities.
	// Defaults to 1 hour if zero.
	CapabilityTTL time.Duration
}

const (
	defaultHomeTTL       = 15 * time.Minute
	defaultCapabilityTTL = 1 * time.Hour
)

// DefaultCacheConfig returns a CacheConfig with sensible defaults.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Cache:         NewMemoryCache(),
		HomeTTL:       defaultHomeTTL,
		CapabilityTTL: defaultCapabilityTTL,
	}
}

// cacheKey generates a cache key for the given resource type and identifiers.
func cacheKey(resourceType string, ids ...string) string {
	key := resourceType
	for _, id := range ids {
		key += ":" + id
	}
	return key
}

// WithCache enables response caching for the client.
// Cached resources are home details and zone capabilities, which rarely change.
//
// Example:
//
//	client, _ := tado.NewClient(
//	    tado.WithCache(tado.DefaultCacheConfig()),
//	)
func WithCache(config *CacheConfig) Option {
	return func(c *Client) {
		if config == nil {
			config = DefaultCacheConfig()
		}
		if config.Cache == nil {
			config.Cache = NewMemoryCache()
		}
		if config.HomeTTL == 0 {
			config.HomeTTL = defaultHomeTTL
		}
		if config.CapabilityTTL == 0 {
			config.CapabilityTTL = defaultCapabilityTTL
		}
		c.cacheConfig = config
	}
}

func (c *Client) homeTTL() time.Duration {
	if c.cacheConfig == nil {
		return 0
	}
	return c.cacheConfig.HomeTTL
}

func (c *Client) capabilityTTL() time.Duration {
	if c.cacheConfig == nil {
		return 0
	}
	return c.cacheConfig.CapabilityTTL
}

// cachedGet returns a cached value or runs fetch and caches a non-nil result.
// Empty results are not cached so a later call can retry.
func cachedGet[T any](c *Client, key string, ttl time.Duration, fetch func() (*T, error)) (*T, error) {
	if c.cacheConfig == nil || c.cacheConfig.Cache == nil {
		return fetch()
	}

	if cached, ok := c.cacheConfig.Cache.Get(key); ok {
		if v, ok := cached.(*T); ok {
			return v, nil
		}
	}

	result, err := fetch()
	if err != nil || result == nil {
		return result, err
	}

	c.cacheConfig.Cache.Set(key, result, ttl)
	return result, nil
}

// ClearCache removes all cached entries.
func (c *Client) ClearCache() {
	if c.cacheConfig != nil && c.cacheConfig.Cache != nil {
		c.cacheConfig.Cache.Clear()
	}
}

// InvalidateHome removes the cached details of a home.
func (c *Client) InvalidateHome(homeID int) {
	c.InvalidateCache("home", strconv.Itoa(homeID))
}

// InvalidateCache removes a specific entry from the cache.
func (c *Client) InvalidateCache(resourceType string, ids ...string) {
	if c.cacheConfig != nil && c.cacheConfig.Cache != nil {
		c.cacheConfig.Cache.Delete(cacheKey(resourceType, ids...))
	}
}
