// Package fetcher performs rate-limited, retrying HTTP fetches against the
// upstream OSINT sources. It is the single network path shared by every
// collector.
package fetcher

import (
	"context"
	"net/http"
)

// Fetcher is the capability collectors depend on for network access.
type Fetcher interface {
	// Get fetches the URL and returns the response body. Transient failures
	// (429, 503, timeouts, resets) are retried with exponential backoff;
	// any other HTTP error status fails immediately.
	Get(ctx context.Context, url string) ([]byte, error)

	// Do performs an arbitrary request with the same retry policy and
	// returns the successful response. The caller owns the body.
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}
