package config

import (
	"fmt"
	"time"
)

// TopCoinsConfig configures the top coins snapshot service and its
// background warm refresh
type TopCoinsConfig struct {
	// WarmEnabled turns the periodic warm refresh on
	WarmEnabled bool `yaml:"warm_enabled"`

	// WarmCurrency is the vs currency kept warm (the UI datalist currency)
	WarmCurrency string `yaml:"warm_currency"`

	// WarmPageSize is the snapshot page size kept warm (1-250)
	WarmPageSize int `yaml:"warm_page_size"`

	// UpdateInterval is how often the warm page is refreshed
	UpdateInterval time.Duration `yaml:"update_interval"`
}

// DefaultTopCoinsConfig returns the default top coins configuration
func DefaultTopCoinsConfig() TopCoinsConfig {
	return TopCoinsConfig{
		WarmEnabled:    true,
		WarmCurrency:   "usd",
		WarmPageSize:   250,
		UpdateInterval: 25 * time.Second, // just inside the cache TTL
	}
}

// Validate checks the top coins configuration for invalid values
func (c *TopCoinsConfig) Validate() error {
	if !c.WarmEnabled {
		return nil
	}
	if c.WarmPageSize < 1 || c.WarmPageSize > 250 {
		return fmt.Errorf("top_coins: warm_page_size must be within [1,250], got %d", c.WarmPageSize)
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("top_coins: update_interval must be greater than 0, got %v", c.UpdateInterval)
	}
	return nil
}
