package pricehistory

import (
	"fmt"
	"strings"

	"github.com/cgweb/market-proxy/coingecko"
)

// HistoryParams represents parameters for a ranged history request
type HistoryParams struct {
	// CoinID is the CoinGecko coin id, required
	CoinID string

	// Currency is the vs currency, defaults to usd
	Currency string

	// DateFrom and DateTo bound the range, both required, format YYYY-MM-DD.
	// A reversed range is swapped internally
	DateFrom string
	DateTo   string
}

// Normalize trims and lowercases identifiers and applies the currency default
func (p HistoryParams) Normalize() HistoryParams {
	p.CoinID = strings.ToLower(strings.TrimSpace(p.CoinID))
	p.Currency = strings.ToLower(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = "usd"
	}
	return p
}

// Validate checks required fields after normalization
func (p HistoryParams) Validate() error {
	if p.CoinID == "" {
		return &coingecko.ValidationError{Msg: "coin_id is required"}
	}
	if p.DateFrom == "" || p.DateTo == "" {
		return &coingecko.ValidationError{Msg: "date_from and date_to are required (YYYY-MM-DD)"}
	}
	return nil
}

// cacheKey returns the fingerprint for the normalized unix time bounds
func (p HistoryParams) cacheKey(unixFrom, unixTo int64) string {
	return fmt.Sprintf("hist:%s:%s:%d:%d", p.CoinID, p.Currency, unixFrom, unixTo)
}

// Point is one aggregated day of price history
type Point struct {
	// Date is the UTC calendar day in YYYY-MM-DD format
	Date string `json:"date"`

	// Price is the last sample observed on that day
	Price float64 `json:"price"`
}

// Series is a day-aggregated price history for one coin/currency pair
type Series struct {
	Cached   bool   `json:"cached"`
	CoinID   string `json:"coin_id"`
	Currency string `json:"vs"`

	// From and To echo the caller's original date strings, unswapped
	From string `json:"from"`
	To   string `json:"to"`

	Points []Point `json:"points"`
	Count  int     `json:"count"`
}
