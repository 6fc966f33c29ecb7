package simpleprice

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cgweb/market-proxy/cache"
	"github.com/cgweb/market-proxy/coingecko"
	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/metrics"
)

// Service provides spot price fetching with caching, plus conversion
type Service struct {
	cache         cache.Cache
	config        *config.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     APIClient
}

// NewService creates a new price service with the given cache and config
func NewService(cache cache.Cache, config *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServicePrice)

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

// SimplePrice returns the spot price for one coin/currency pair, from cache
// when fresh
func (s *Service) SimplePrice(ctx context.Context, params PriceParams) (*Quote, error) {
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key := params.CacheKey()
	if data, found := s.cache.Get(key); found {
		var quote Quote
		if err := json.Unmarshal(data, &quote); err == nil {
			s.metricsWriter.RecordCacheHit()
			quote.Cached = true
			return &quote, nil
		}
		log.Printf("SimplePrice: dropping unreadable cache entry for %s", key)
	}

	s.metricsWriter.RecordCacheMiss()
	fetchStart := time.Now()

	prices, err := s.apiClient.FetchSimplePrice(ctx, params)
	if err != nil {
		return nil, err
	}

	coinData, found := prices[params.CoinID]
	if !found {
		return nil, &coingecko.NotFoundError{CoinID: params.CoinID, Currency: params.Currency}
	}
	price, found := coinData[params.Currency]
	if !found {
		return nil, &coingecko.NotFoundError{CoinID: params.CoinID, Currency: params.Currency}
	}

	quote := &Quote{
		CoinID:   params.CoinID,
		Currency: params.Currency,
		Price:    price,
	}
	if ts, ok := coinData["last_updated_at"]; ok {
		lastUpdated := int64(ts)
		quote.LastUpdatedAt = &lastUpdated
	}
	if params.Include24hChange {
		if change, ok := coinData[params.Currency+"_24h_change"]; ok {
			quote.Change24h = &change
		}
	}

	if data, err := json.Marshal(quote); err == nil {
		s.cache.Set(key, data)
	} else {
		log.Printf("SimplePrice: failed to marshal quote for caching: %v", err)
	}

	s.metricsWriter.RecordFetchDuration(time.Since(fetchStart))
	return quote, nil
}

// Convert multiplies a fetched rate by amount. Price fetcher errors are
// forwarded unchanged.
func (s *Service) Convert(ctx context.Context, coinID, currency string, amount float64) (*Conversion, error) {
	quote, err := s.SimplePrice(ctx, PriceParams{CoinID: coinID, Currency: currency})
	if err != nil {
		return nil, err
	}

	return &Conversion{
		CoinID:        quote.CoinID,
		Amount:        amount,
		Currency:      quote.Currency,
		Rate:          quote.Price,
		Result:        amount * quote.Price,
		LastUpdatedAt: quote.LastUpdatedAt,
		Cached:        quote.Cached,
	}, nil
}

// Healthy checks if the service is operational
func (s *Service) Healthy() bool {
	if s.apiClient != nil {
		return s.apiClient.Healthy()
	}
	return false
}
