package topcoins

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/cgweb/market-proxy/coingecko"
	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/metrics"
)

// APIClient defines the upstream operations used by the snapshot service
type APIClient interface {
	// FetchMarkets fetches one page of ranked coin records
	FetchMarkets(ctx context.Context, params TopParams) ([]CoinRecord, error)
	// Healthy checks if at least one fetch has succeeded
	Healthy() bool
}

// CoinGeckoClient implements APIClient against the coins markets endpoint
type CoinGeckoClient struct {
	config          *config.Config
	httpClient      *coingecko.Client
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new markets API client
func NewCoinGeckoClient(cfg *config.Config, metricsWriter *metrics.MetricsWriter) *CoinGeckoClient {
	return &CoinGeckoClient{
		config:     cfg,
		httpClient: coingecko.NewClient(cfg, metricsWriter, "TopCoins"),
	}
}

// Healthy reports whether at least one fetch has succeeded
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchMarkets fetches one page of ranked markets data, ordered by
// descending market cap
func (c *CoinGeckoClient) FetchMarkets(ctx context.Context, params TopParams) ([]CoinRecord, error) {
	request, err := NewMarketsRequestBuilder(coingecko.GetBaseURL(c.config)).
		WithParams(params).
		Build()
	if err != nil {
		return nil, err
	}

	body, err := c.httpClient.DoJSON(request.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var records []CoinRecord
	if err := json.Unmarshal(body, &records); err != nil {
		log.Printf("TopCoins: error parsing markets response: %v", err)
		return nil, &coingecko.ContentTypeError{
			ContentType: "application/json",
			Snippet:     coingecko.Snippet(body),
		}
	}

	c.successfulFetch.Store(true)
	return records, nil
}
