package simpleprice

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/cgweb/market-proxy/coingecko"
	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/metrics"
)

// APIClient defines the upstream operations used by the price service
type APIClient interface {
	// FetchSimplePrice fetches the price payload for one coin/currency pair.
	// The returned map is coin id -> field name -> numeric value, mirroring
	// the upstream simple price shape
	FetchSimplePrice(ctx context.Context, params PriceParams) (map[string]map[string]float64, error)
	// Healthy checks if at least one fetch has succeeded
	Healthy() bool
}

// CoinGeckoClient implements APIClient against the simple price endpoint
type CoinGeckoClient struct {
	config          *config.Config
	httpClient      *coingecko.Client
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new simple price API client
func NewCoinGeckoClient(cfg *config.Config, metricsWriter *metrics.MetricsWriter) *CoinGeckoClient {
	return &CoinGeckoClient{
		config:     cfg,
		httpClient: coingecko.NewClient(cfg, metricsWriter, "SimplePrice"),
	}
}

// Healthy reports whether at least one fetch has succeeded
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchSimplePrice fetches a spot price with last-updated timestamp and,
// when requested, the 24h change
func (c *CoinGeckoClient) FetchSimplePrice(ctx context.Context, params PriceParams) (map[string]map[string]float64, error) {
	request, err := NewPricesRequestBuilder(coingecko.GetBaseURL(c.config)).
		WithParams(params).
		Build()
	if err != nil {
		return nil, err
	}

	body, err := c.httpClient.DoJSON(request.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var prices map[string]map[string]float64
	if err := json.Unmarshal(body, &prices); err != nil {
		log.Printf("SimplePrice: error parsing price response: %v", err)
		return nil, &coingecko.ContentTypeError{
			ContentType: "application/json",
			Snippet:     coingecko.Snippet(body),
		}
	}

	c.successfulFetch.Store(true)
	return prices, nil
}
