package topcoins

import (
	"strconv"

	"github.com/cgweb/market-proxy/coingecko"
)

const (
	// Complete path for the coins markets API endpoint
	MARKETS_API_PATH = "/api/v3/coins/markets"
)

// MarketsRequestBuilder builds requests for the coins markets endpoint
type MarketsRequestBuilder struct {
	*coingecko.RequestBuilder
}

// NewMarketsRequestBuilder creates a request builder for the markets endpoint,
// preset to ranked order without sparkline data and with 24h change included
func NewMarketsRequestBuilder(baseURL string) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{
		RequestBuilder: coingecko.NewRequestBuilder(baseURL, MARKETS_API_PATH),
	}

	rb.With("order", "market_cap_desc")
	rb.With("sparkline", "false")
	rb.With("price_change_percentage", "24h")

	return rb
}

// WithParams adds vs_currency and paging parameters
func (rb *MarketsRequestBuilder) WithParams(params TopParams) *MarketsRequestBuilder {
	rb.WithCurrency(params.Currency)
	rb.With("per_page", strconv.Itoa(params.PerPage))
	rb.With("page", strconv.Itoa(params.Page))
	return rb
}
