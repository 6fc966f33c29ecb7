package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GoCache is an in-memory Cache backed by go-cache with a fixed TTL.
//
// The janitor is disabled (cleanup interval 0), so expired entries are only
// detected at read time and stay in memory until overwritten. Memory grows
// with the number of distinct fingerprints seen; acceptable for a
// low-traffic proxy where the fingerprint space is small.
type GoCache struct {
	cache *gocache.Cache
}

// NewGoCache creates a cache whose entries go stale after ttl
func NewGoCache(ttl time.Duration) *GoCache {
	return &GoCache{
		cache: gocache.New(ttl, 0),
	}
}

// Get returns the value for key if the entry is younger than the TTL
func (gc *GoCache) Get(key string) ([]byte, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, false
	}
	return data, true
}

// Set stores value under key, replacing any prior entry
func (gc *GoCache) Set(key string, value []byte) {
	gc.cache.Set(key, value, gocache.DefaultExpiration)
}

// ItemCount returns the number of entries, including stale ones
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}

// Clear removes all entries
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}
