// Package censys is a thin client for the Censys hosts search API.
package censys

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://search.censys.io"

// maxPerPage is the largest per_page value the hosts search API accepts.
const maxPerPage = 100

// Client performs Censys search operations.
type Client interface {
	// SearchHosts runs a hosts search and returns up to perPage hits.
	SearchHosts(ctx context.Context, query string, perPage int) (*HostsSearchResponse, error)
}

// HostsSearchResponse is the subset of the Censys payload this tool consumes.
type HostsSearchResponse struct {
	Result HostsResult `json:"result"`
}

// HostsResult holds the hit list.
type HostsResult struct {
	Hits []Host `json:"hits"`
}

// Host is one host returned by the search.
type Host struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
}

// Doer executes HTTP requests. The harvester injects its resilient fetcher
// here so Censys calls share the retry and rate-limit policy.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithDoer overrides the default HTTP executor.
func WithDoer(d Doer) Option {
	return func(c *httpClient) {
		c.doer = d
	}
}

type httpClient struct {
	apiID     string
	apiSecret string
	baseURL   string
	doer      Doer
}

// NewClient creates a Censys client authenticated with an API id/secret pair.
func NewClient(apiID, apiSecret string, opts ...Option) Client {
	c := &httpClient{
		apiID:     apiID,
		apiSecret: apiSecret,
		baseURL:   defaultBaseURL,
		doer:      plainDoer{client: &http.Client{Timeout: 20 * time.Second}},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchHosts(ctx context.Context, query string, perPage int) (*HostsSearchResponse, error) {
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2/hosts/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "censys: create request")
	}
	req.SetBasicAuth(c.apiID, c.apiSecret)

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "censys: search hosts")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, eris.Errorf("censys: search returned %d: %s", resp.StatusCode, string(body))
	}

	var out HostsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, eris.Wrap(err, "censys: decode response")
	}
	return &out, nil
}

// plainDoer executes requests with a bare http.Client.
type plainDoer struct {
	client *http.Client
}

func (d plainDoer) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return d.client.Do(req.Clone(ctx))
}
