package topcoins

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cgweb/market-proxy/cache"
	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/events"
	"github.com/cgweb/market-proxy/metrics"
)

// Service provides market snapshot fetching with caching
type Service struct {
	cache               cache.Cache
	config              *config.Config
	metricsWriter       *metrics.MetricsWriter
	apiClient           APIClient
	subscriptionManager *events.SubscriptionManager
	periodicUpdater     *PeriodicUpdater
}

// NewService creates a new snapshot service with the given cache and config
func NewService(cache cache.Cache, config *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceTop)

	service := &Service{
		cache:               cache,
		config:              config,
		metricsWriter:       metricsWriter,
		apiClient:           NewCoinGeckoClient(config, metricsWriter),
		subscriptionManager: events.NewSubscriptionManager(),
	}

	if config.TopCoins.WarmEnabled {
		service.periodicUpdater = NewPeriodicUpdater(&config.TopCoins, service)
	}

	return service
}

// Start validates dependencies and launches the warm refresh if enabled
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}

	if s.periodicUpdater != nil {
		s.periodicUpdater.Start(ctx)
	}

	return nil
}

// Stop terminates the warm refresh
func (s *Service) Stop() {
	if s.periodicUpdater != nil {
		s.periodicUpdater.Stop()
	}
}

// Top returns one page of ranked coin records, from cache when fresh
func (s *Service) Top(ctx context.Context, params TopParams) (*Snapshot, error) {
	params = params.Normalize()
	key := params.CacheKey()

	if data, found := s.cache.Get(key); found {
		var snapshot Snapshot
		if err := json.Unmarshal(data, &snapshot); err == nil {
			s.metricsWriter.RecordCacheHit()
			snapshot.Cached = true
			return &snapshot, nil
		}
		log.Printf("TopCoins: dropping unreadable cache entry for %s", key)
	}

	s.metricsWriter.RecordCacheMiss()
	return s.refresh(ctx, params)
}

// refresh fetches a snapshot from upstream unconditionally and caches it
func (s *Service) refresh(ctx context.Context, params TopParams) (*Snapshot, error) {
	fetchStart := time.Now()

	items, err := s.apiClient.FetchMarkets(ctx, params)
	if err != nil {
		// Upstream failures propagate verbatim; this fetcher adds no
		// validation beyond clamping
		return nil, err
	}

	snapshot := &Snapshot{
		Currency: params.Currency,
		Page:     params.Page,
		PerPage:  params.PerPage,
		Count:    len(items),
		Items:    items,
	}

	if data, err := json.Marshal(snapshot); err == nil {
		s.cache.Set(params.CacheKey(), data)
	} else {
		log.Printf("TopCoins: failed to marshal snapshot for caching: %v", err)
	}

	s.metricsWriter.RecordFetchDuration(time.Since(fetchStart))
	s.subscriptionManager.Emit(ctx)

	return snapshot, nil
}

// Healthy checks if the service is operational
func (s *Service) Healthy() bool {
	if s.apiClient != nil {
		return s.apiClient.Healthy()
	}
	return false
}

// SubscribeUpdate subscribes to snapshot refresh notifications
func (s *Service) SubscribeUpdate() *events.Subscription {
	return s.subscriptionManager.Subscribe()
}
