package pricehistory

import (
	"fmt"
	"strconv"

	"github.com/cgweb/market-proxy/coingecko"
)

const (
	// Path template for the ranged market chart endpoint
	RANGE_API_PATH_TEMPLATE = "/api/v3/coins/%s/market_chart/range"
)

// RangeRequestBuilder builds requests for the ranged market chart endpoint
type RangeRequestBuilder struct {
	*coingecko.RequestBuilder
}

// NewRangeRequestBuilder creates a request builder for the given coin
func NewRangeRequestBuilder(baseURL, coinID string) *RangeRequestBuilder {
	apiPath := fmt.Sprintf(RANGE_API_PATH_TEMPLATE, coinID)
	return &RangeRequestBuilder{
		RequestBuilder: coingecko.NewRequestBuilder(baseURL, apiPath),
	}
}

// WithRange adds the vs currency and unix-second bounds
func (rb *RangeRequestBuilder) WithRange(currency string, unixFrom, unixTo int64) *RangeRequestBuilder {
	rb.WithCurrency(currency)
	rb.With("from", strconv.FormatInt(unixFrom, 10))
	rb.With("to", strconv.FormatInt(unixTo, 10))
	return rb
}
