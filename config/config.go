package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration
type Config struct {
	// Port the HTTP server listens on
	Port string `yaml:"port"`

	// OverrideCoingeckoURL replaces the public CoinGecko base URL,
	// used by tests and local mock servers
	OverrideCoingeckoURL string `yaml:"override_coingecko_url"`

	Cache    CacheConfig    `yaml:"cache"`
	Upstream UpstreamConfig `yaml:"upstream"`
	TopCoins TopCoinsConfig `yaml:"top_coins"`
}

// DefaultConfig returns a configuration with all defaults applied
func DefaultConfig() *Config {
	return &Config{
		Port:     "8061",
		Cache:    DefaultCacheConfig(),
		Upstream: DefaultUpstreamConfig(),
		TopCoins: DefaultTopCoinsConfig(),
	}
}

// LoadConfig reads and parses a YAML config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if err := c.Upstream.Validate(); err != nil {
		return err
	}
	return c.TopCoins.Validate()
}
