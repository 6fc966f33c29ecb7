package pricehistory

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/cgweb/market-proxy/coingecko"
	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/metrics"
)

// APIClient defines the upstream operations used by the history service
type APIClient interface {
	// FetchRange fetches raw [ms, price] samples between unix-second bounds
	FetchRange(ctx context.Context, coinID, currency string, unixFrom, unixTo int64) ([][]float64, error)
	// Healthy checks if at least one fetch has succeeded
	Healthy() bool
}

// rangeResponse is the upstream market chart payload; only prices are used
type rangeResponse struct {
	Prices [][]float64 `json:"prices"`
}

// CoinGeckoClient implements APIClient against the market chart range endpoint
type CoinGeckoClient struct {
	config          *config.Config
	httpClient      *coingecko.Client
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new history API client
func NewCoinGeckoClient(cfg *config.Config, metricsWriter *metrics.MetricsWriter) *CoinGeckoClient {
	return &CoinGeckoClient{
		config:     cfg,
		httpClient: coingecko.NewClient(cfg, metricsWriter, "PriceHistory"),
	}
}

// Healthy reports whether at least one fetch has succeeded
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchRange fetches the price series for one coin between the given bounds
func (c *CoinGeckoClient) FetchRange(ctx context.Context, coinID, currency string, unixFrom, unixTo int64) ([][]float64, error) {
	request, err := NewRangeRequestBuilder(coingecko.GetBaseURL(c.config), coinID).
		WithRange(currency, unixFrom, unixTo).
		Build()
	if err != nil {
		return nil, err
	}

	body, err := c.httpClient.DoJSON(request.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var response rangeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		log.Printf("PriceHistory: error parsing range response: %v", err)
		return nil, &coingecko.ContentTypeError{
			ContentType: "application/json",
			Snippet:     coingecko.Snippet(body),
		}
	}

	c.successfulFetch.Store(true)
	return response.Prices, nil
}
