package config

import "time"

// CacheConfig configures the in-memory response cache
type CacheConfig struct {
	// TTL is how long a cached response stays fresh. Entries older than
	// this are treated as missing on lookup
	TTL time.Duration `yaml:"ttl"`
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL: 30 * time.Second,
	}
}

// GetTTL returns the configured TTL with fallback to the default
func (c *CacheConfig) GetTTL() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return 30 * time.Second
}
