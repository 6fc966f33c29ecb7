package topcoins

import (
	"context"
	"testing"
	"time"

	"github.com/cgweb/market-proxy/cache"
	"github.com/cgweb/market-proxy/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPeriodicUpdater_WarmsCache(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TopCoins = config.TopCoinsConfig{
		WarmEnabled:    true,
		WarmCurrency:   "usd",
		WarmPageSize:   100,
		UpdateInterval: time.Hour, // only the immediate first run matters here
	}

	goCache := cache.NewGoCache(30 * time.Second)
	service := NewService(goCache, cfg)

	mockClient := new(MockAPIClient)
	warmParams := TopParams{Currency: "usd", PerPage: 100, Page: 1}
	mockClient.On("FetchMarkets", mock.Anything, warmParams).Return(sampleRecords(), nil)
	service.apiClient = mockClient

	sub := service.SubscribeUpdate()
	defer sub.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, service.Start(ctx))
	defer service.Stop()

	select {
	case <-sub.Chan():
	case <-time.After(time.Second):
		t.Fatal("expected warm refresh notification")
	}

	// The warm page is now served from cache
	snapshot, err := service.Top(context.Background(), warmParams)
	require.NoError(t, err)
	assert.True(t, snapshot.Cached)

	mockClient.AssertNumberOfCalls(t, "FetchMarkets", 1)
}

func TestPeriodicUpdater_RewritesFreshEntry(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TopCoins.WarmEnabled = false

	service := NewService(cache.NewGoCache(30*time.Second), cfg)

	mockClient := new(MockAPIClient)
	warmParams := TopParams{Currency: "usd", PerPage: 250, Page: 1}
	mockClient.On("FetchMarkets", mock.Anything, warmParams).Return(sampleRecords(), nil)
	service.apiClient = mockClient

	warmCfg := config.DefaultTopCoinsConfig()
	updater := NewPeriodicUpdater(&warmCfg, service)

	// Two consecutive runs both hit upstream: the refresh bypasses the cache
	updater.update(context.Background())
	updater.update(context.Background())

	mockClient.AssertNumberOfCalls(t, "FetchMarkets", 2)
}
