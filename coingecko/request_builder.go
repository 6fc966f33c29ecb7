package coingecko

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cgweb/market-proxy/config"
)

const (
	// PublicURL is the base URL of the keyless public API
	PublicURL = "https://api.coingecko.com"
)

// GetBaseURL returns the upstream base URL, honoring the config override
func GetBaseURL(cfg *config.Config) string {
	if cfg != nil && cfg.OverrideCoingeckoURL != "" {
		return cfg.OverrideCoingeckoURL
	}
	return PublicURL
}

// joinURL safely combines a base URL with a path
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// RequestBuilder builds GET requests against CoinGecko API endpoints
type RequestBuilder struct {
	baseURL   string
	apiPath   string
	params    map[string]string
	userAgent string
	headers   map[string]string
}

// NewRequestBuilder creates a request builder for the given endpoint path
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:   baseURL,
		apiPath:   apiPath,
		params:    make(map[string]string),
		headers:   make(map[string]string),
		userAgent: "Mozilla/5.0 Market-Proxy",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a query parameter
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	rb.params[key] = value
	return rb
}

// WithCurrency adds the vs_currency parameter
func (rb *RequestBuilder) WithCurrency(currency string) *RequestBuilder {
	if currency != "" {
		rb.params["vs_currency"] = currency
	}
	return rb
}

// WithHeader adds a custom HTTP header
func (rb *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	rb.headers[name] = value
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *RequestBuilder) BuildURL() string {
	fullPath := joinURL(rb.baseURL, rb.apiPath)

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	queryString := query.Encode()
	if queryString == "" {
		return fullPath
	}
	return fmt.Sprintf("%s?%s", fullPath, queryString)
}

// Build creates the http.Request
func (rb *RequestBuilder) Build() (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
