package coingecko

import "fmt"

// SnippetLimit caps how much of an upstream response body is kept in error
// details, enough for diagnostics without leaking whole payloads
const SnippetLimit = 300

// Snippet truncates an upstream response body for error details
func Snippet(body []byte) string {
	if len(body) > SnippetLimit {
		return string(body[:SnippetLimit])
	}
	return string(body)
}

// NetworkError is a transport-level failure: DNS, connection refused,
// or the request deadline expiring
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is a response with an HTTP status other than 200
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("coingecko returned status %d", e.StatusCode)
}

// ContentTypeError is a 200 response whose content type is not JSON
type ContentTypeError struct {
	ContentType string
	Snippet     string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("not a JSON response from coingecko (content-type %q)", e.ContentType)
}

// NotFoundError means a successful upstream response did not contain the
// requested coin/currency pair
type NotFoundError struct {
	CoinID   string
	Currency string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no price found for coin %q in currency %q", e.CoinID, e.Currency)
}

// ValidationError is malformed or missing caller input
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
