package simpleprice

import (
	"strconv"

	"github.com/cgweb/market-proxy/coingecko"
)

const (
	// Complete path for the simple price API endpoint
	PRICES_API_PATH = "/api/v3/simple/price"
)

// PricesRequestBuilder builds requests for the simple price endpoint
type PricesRequestBuilder struct {
	*coingecko.RequestBuilder
}

// NewPricesRequestBuilder creates a request builder for the simple price
// endpoint with the last-updated timestamp always included
func NewPricesRequestBuilder(baseURL string) *PricesRequestBuilder {
	rb := &PricesRequestBuilder{
		RequestBuilder: coingecko.NewRequestBuilder(baseURL, PRICES_API_PATH),
	}

	rb.With("include_last_updated_at", "true")
	return rb
}

// WithParams adds the coin id, vs currency and 24h change flag
func (rb *PricesRequestBuilder) WithParams(params PriceParams) *PricesRequestBuilder {
	rb.With("ids", params.CoinID)
	rb.With("vs_currencies", params.Currency)
	rb.With("include_24hr_change", strconv.FormatBool(params.Include24hChange))
	return rb
}
