package topcoins

import (
	"fmt"
	"strings"
)

const (
	// MaxPerPage is CoinGecko's API max per_page value
	MaxPerPage = 250
)

// TopParams represents parameters for a market snapshot request
type TopParams struct {
	// Currency is the vs currency (e.g. "usd", "eur")
	Currency string

	// PerPage is the requested page size (clamped to [1,250])
	PerPage int

	// Page is the requested page number (1-based)
	Page int
}

// Normalize applies defaults and clamps paging values so logically identical
// requests share one fingerprint
func (p TopParams) Normalize() TopParams {
	p.Currency = strings.ToLower(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = "usd"
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// CacheKey returns the fingerprint for normalized params
func (p TopParams) CacheKey() string {
	return fmt.Sprintf("top:%s:%d:%d", p.Currency, p.PerPage, p.Page)
}

// CoinRecord is one normalized row of a market snapshot. Fields the upstream
// may omit are pointers so absent values stay absent instead of becoming zero.
type CoinRecord struct {
	Rank      *int     `json:"market_cap_rank"`
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Price     *float64 `json:"current_price"`
	MarketCap *float64 `json:"market_cap"`
	Change24h *float64 `json:"price_change_percentage_24h"`
}

// Snapshot is one page of ranked coin records for a given currency
type Snapshot struct {
	Cached   bool         `json:"cached"`
	Currency string       `json:"vs"`
	Page     int          `json:"page"`
	PerPage  int          `json:"per_page"`
	Count    int          `json:"count"`
	Items    []CoinRecord `json:"items"`
}
