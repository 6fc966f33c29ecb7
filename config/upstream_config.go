package config

import (
	"fmt"
	"time"
)

// UpstreamConfig configures outbound requests to the CoinGecko API
type UpstreamConfig struct {
	// RequestTimeout is the total deadline for one upstream request,
	// including reading the response body
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RateLimitPerMinute caps keyless requests to the public API.
	// Zero disables client-side rate limiting
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`

	// Burst allows short bursts above the steady rate
	Burst int `yaml:"burst"`
}

// DefaultUpstreamConfig returns the default upstream configuration
func DefaultUpstreamConfig() UpstreamConfig {
	return UpstreamConfig{
		RequestTimeout:     20 * time.Second,
		RateLimitPerMinute: 30, // public API budget without a key
		Burst:              5,
	}
}

// GetRequestTimeout returns the configured timeout with fallback to the default
func (c *UpstreamConfig) GetRequestTimeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return 20 * time.Second
}

// Validate checks the upstream configuration for invalid values
func (c *UpstreamConfig) Validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("upstream: request_timeout must not be negative, got %v", c.RequestTimeout)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("upstream: rate_limit_per_minute must not be negative, got %d", c.RateLimitPerMinute)
	}
	if c.Burst < 0 {
		return fmt.Errorf("upstream: burst must not be negative, got %d", c.Burst)
	}
	return nil
}
