package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
port: "9000"
override_coingecko_url: "http://localhost:1234"
cache:
  ttl: 45s
upstream:
  request_timeout: 10s
  rate_limit_per_minute: 10
  burst: 2
top_coins:
  warm_enabled: true
  warm_currency: eur
  warm_page_size: 100
  update_interval: 20s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://localhost:1234", cfg.OverrideCoingeckoURL)
	assert.Equal(t, 45*time.Second, cfg.Cache.GetTTL())
	assert.Equal(t, 10*time.Second, cfg.Upstream.GetRequestTimeout())
	assert.Equal(t, 10, cfg.Upstream.RateLimitPerMinute)
	assert.Equal(t, "eur", cfg.TopCoins.WarmCurrency)
	assert.Equal(t, 100, cfg.TopCoins.WarmPageSize)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	path := writeConfigFile(t, `port: "8061"`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Cache.GetTTL())
	assert.Equal(t, 20*time.Second, cfg.Upstream.GetRequestTimeout())
	assert.Equal(t, "usd", cfg.TopCoins.WarmCurrency)
	assert.Equal(t, 250, cfg.TopCoins.WarmPageSize)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "port: [broken")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestTopCoinsConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  TopCoinsConfig
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			config: DefaultTopCoinsConfig(),
		},
		{
			name: "disabled skips validation",
			config: TopCoinsConfig{
				WarmEnabled:  false,
				WarmPageSize: 9999,
			},
		},
		{
			name: "page size above limit",
			config: TopCoinsConfig{
				WarmEnabled:    true,
				WarmPageSize:   251,
				UpdateInterval: time.Minute,
			},
			wantErr: true,
		},
		{
			name: "zero update interval",
			config: TopCoinsConfig{
				WarmEnabled:  true,
				WarmPageSize: 100,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpstreamConfig_Validate(t *testing.T) {
	cfg := DefaultUpstreamConfig()
	assert.NoError(t, cfg.Validate())

	cfg.RateLimitPerMinute = -1
	assert.Error(t, cfg.Validate())
}
