package simpleprice

import (
	"fmt"
	"strings"

	"github.com/cgweb/market-proxy/coingecko"
)

// PriceParams represents parameters for a spot price request
type PriceParams struct {
	// CoinID is the CoinGecko coin id (e.g. "bitcoin"), required
	CoinID string

	// Currency is the vs currency (e.g. "usd"), defaults to usd
	Currency string

	// Include24hChange requests the 24h percentage change alongside the price
	Include24hChange bool
}

// Normalize trims and lowercases identifiers and applies the currency default
func (p PriceParams) Normalize() PriceParams {
	p.CoinID = strings.ToLower(strings.TrimSpace(p.CoinID))
	p.Currency = strings.ToLower(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = "usd"
	}
	return p
}

// Validate checks required fields after normalization
func (p PriceParams) Validate() error {
	if p.CoinID == "" {
		return &coingecko.ValidationError{Msg: "coin_id is required"}
	}
	return nil
}

// CacheKey returns the fingerprint for normalized params
func (p PriceParams) CacheKey() string {
	changeFlag := 0
	if p.Include24hChange {
		changeFlag = 1
	}
	return fmt.Sprintf("price:%s:%s:%d", p.CoinID, p.Currency, changeFlag)
}

// Quote is a normalized spot price for one coin/currency pair
type Quote struct {
	Cached        bool     `json:"cached"`
	CoinID        string   `json:"coin_id"`
	Currency      string   `json:"vs"`
	Price         float64  `json:"price"`
	LastUpdatedAt *int64   `json:"last_updated_at"`
	Change24h     *float64 `json:"change_24h,omitempty"`
}

// Conversion is the result of multiplying a fetched rate by an amount
type Conversion struct {
	CoinID        string  `json:"coin_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"vs"`
	Rate          float64 `json:"rate"`
	Result        float64 `json:"result"`
	LastUpdatedAt *int64  `json:"last_updated_at"`
	Cached        bool    `json:"cached"`
}
