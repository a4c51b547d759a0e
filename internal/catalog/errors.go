package catalog

import "fmt"

// The catalog client maps every failure to one of four error kinds so call
// sites can handle the taxonomy exhaustively with errors.As. No error is
// retried by the client; surfacing the failure is the caller's job.

// AuthError indicates the proxy forwarded a request with a bad or missing
// upstream credential (HTTP 401).
type AuthError struct{}

func (e *AuthError) Error() string {
	return "Invalid API key or authentication failed"
}

// RateLimitError indicates the upstream catalog throttled the request
// (HTTP 429).
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "Rate limit exceeded, please slow down and retry"
}

// HTTPError is any other non-2xx response. Message, when set, replaces the
// generic status text.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Status)
}

// NetworkError is a transport-level failure (connection refused, DNS,
// proxy down). It carries the attempted URL for diagnostics.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
