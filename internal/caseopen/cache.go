package caseopen

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

const listKey = "cases"

// cachedCatalogEntry wraps catalog data with version metadata for cache invalidation
type cachedCatalogEntry struct {
	Version  string
	Cases    []domain.Case
	CachedAt time.Time
}

// catalogCache keeps case lists and case pools in memory. Entries are shared and must not be mutated.
type catalogCache struct {
	lru *expirable.LRU[string, *cachedCatalogEntry]
}

func newCatalogCache(size int, ttl time.Duration) *catalogCache {
	return &catalogCache{
		lru: expirable.NewLRU[string, *cachedCatalogEntry](size, nil, ttl),
	}
}

func caseKey(id int) string {
	return "case:" + strconv.Itoa(id)
}

func (c *catalogCache) get(key string) ([]domain.Case, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.Cases, true
}

func (c *catalogCache) set(key string, cases []domain.Case) {
	c.lru.Add(key, &cachedCatalogEntry{
		Version:  CacheSchemaVersion,
		Cases:    cases,
		CachedAt: time.Now(),
	})
}

// GetCase returns a cached case with its pool.
func (c *catalogCache) GetCase(id int) (*domain.Case, bool) {
	cases, ok := c.get(caseKey(id))
	if !ok || len(cases) != 1 {
		return nil, false
	}
	return &cases[0], true
}

// SetCase caches a case with its pool.
func (c *catalogCache) SetCase(cs *domain.Case) {
	c.set(caseKey(cs.ID), []domain.Case{*cs})
}

// GetList returns the cached case list.
func (c *catalogCache) GetList() ([]domain.Case, bool) {
	return c.get(listKey)
}

// SetList caches the case list.
func (c *catalogCache) SetList(cases []domain.Case) {
	c.set(listKey, cases)
}

// Clear removes all entries from the cache.
func (c *catalogCache) Clear() {
	c.lru.Purge()
}
