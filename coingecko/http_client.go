package coingecko

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cgweb/market-proxy/config"
	"golang.org/x/time/rate"
)

// StatusHandler receives the outcome of each upstream request
type StatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
}

// Client performs single-attempt requests against the CoinGecko API.
//
// No retries: a failed attempt is classified and surfaced to the caller
// immediately. The only pacing is a client-side rate limiter that keeps
// keyless calls inside the public API budget.
type Client struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	statusHandler StatusHandler
	logPrefix     string
}

// NewClient creates an upstream client with the configured deadline and
// rate limit
func NewClient(cfg *config.Config, handler StatusHandler, logPrefix string) *Client {
	var limiter *rate.Limiter
	if rpm := cfg.Upstream.RateLimitPerMinute; rpm > 0 {
		burst := cfg.Upstream.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Upstream.GetRequestTimeout(),
		},
		limiter:       limiter,
		statusHandler: handler,
		logPrefix:     logPrefix,
	}
}

// DoJSON executes the request and returns the response body, verifying the
// upstream answered 200 with a JSON content type
func (c *Client) DoJSON(req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			c.report("error")
			return nil, &NetworkError{Err: err}
		}
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		log.Printf("%s: request failed after %.2fs: %v", c.logPrefix, requestDuration.Seconds(), err)
		c.report("error")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.report("error")
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("%s: upstream returned status %d after %.2fs", c.logPrefix, resp.StatusCode, requestDuration.Seconds())
		if resp.StatusCode == http.StatusTooManyRequests {
			c.report("rate_limited")
		} else {
			c.report("error")
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Snippet: Snippet(body)}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "json") {
		log.Printf("%s: unexpected content type %q", c.logPrefix, contentType)
		c.report("error")
		return nil, &ContentTypeError{ContentType: contentType, Snippet: Snippet(body)}
	}

	c.report("success")
	return body, nil
}

func (c *Client) report(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}
