package user

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// CacheConfig sizes the user cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedUserEntry wraps a user with version metadata for cache invalidation
type cachedUserEntry struct {
	Version  string       `json:"version"`
	User     *domain.User `json:"user"`
	CachedAt time.Time    `json:"cached_at"`
}

// userCache provides an in-memory LRU cache for user lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type userCache struct {
	lru    *expirable.LRU[uuid.UUID, *cachedUserEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newUserCache(config CacheConfig) *userCache {
	if config.Size <= 0 {
		config.Size = DefaultCacheSize
	}
	return &userCache{
		lru: expirable.NewLRU[uuid.UUID, *cachedUserEntry](config.Size, nil, config.TTL),
	}
}

// Get retrieves a copy of a user from the cache.
// Returns (nil, false) if not in cache, expired, or version mismatch.
func (c *userCache) Get(id uuid.UUID) (*domain.User, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	// Check version - auto-invalidate if mismatch
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	u := *entry.User
	return &u, true
}

// Set stores a copy of the user in the cache with current schema version.
func (c *userCache) Set(user *domain.User) {
	u := *user
	c.lru.Add(user.ID, &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     &u,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a user from the cache.
func (c *userCache) Invalidate(id uuid.UUID) {
	c.lru.Remove(id)
}

// Clear removes all entries from the cache.
func (c *userCache) Clear() {
	c.lru.Purge()
}

// GetStats returns hit/miss counters and the current size
func (c *userCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
