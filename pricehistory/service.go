package pricehistory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cgweb/market-proxy/cache"
	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/metrics"
)

// Service provides day-aggregated price history fetching with caching
type Service struct {
	cache         cache.Cache
	config        *config.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     APIClient
}

// NewService creates a new history service with the given cache and config
func NewService(cache cache.Cache, config *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceHistory)

	return &Service{
		cache:         cache,
		config:        config,
		metricsWriter: metricsWriter,
		apiClient:     NewCoinGeckoClient(config, metricsWriter),
	}
}

// Start validates dependencies
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	return nil
}

// Stop implements the service lifecycle; nothing to shut down
func (s *Service) Stop() {}

// HistoryRange returns one aggregated point per calendar day between the
// requested dates, both days inclusive, from cache when fresh
func (s *Service) HistoryRange(ctx context.Context, params HistoryParams) (*Series, error) {
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	unixFrom, unixTo, err := timeBounds(params.DateFrom, params.DateTo)
	if err != nil {
		return nil, err
	}

	key := params.cacheKey(unixFrom, unixTo)
	if data, found := s.cache.Get(key); found {
		var series Series
		if err := json.Unmarshal(data, &series); err == nil {
			s.metricsWriter.RecordCacheHit()
			series.Cached = true
			return &series, nil
		}
		log.Printf("PriceHistory: dropping unreadable cache entry for %s", key)
	}

	s.metricsWriter.RecordCacheMiss()
	fetchStart := time.Now()

	samples, err := s.apiClient.FetchRange(ctx, params.CoinID, params.Currency, unixFrom, unixTo)
	if err != nil {
		return nil, err
	}

	points := aggregateDaily(samples)

	series := &Series{
		CoinID:   params.CoinID,
		Currency: params.Currency,
		From:     params.DateFrom,
		To:       params.DateTo,
		Points:   points,
		Count:    len(points),
	}

	if data, err := json.Marshal(series); err == nil {
		s.cache.Set(key, data)
	} else {
		log.Printf("PriceHistory: failed to marshal series for caching: %v", err)
	}

	s.metricsWriter.RecordFetchDuration(time.Since(fetchStart))
	return series, nil
}

// Healthy checks if the service is operational
func (s *Service) Healthy() bool {
	if s.apiClient != nil {
		return s.apiClient.Healthy()
	}
	return false
}
