// Package serpapi is a thin client for the SerpAPI Google search endpoint.
package serpapi

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

const defaultBaseURL = "https://serpapi.com"

// maxResultsPerPage is the largest num value SerpAPI accepts for Google.
const maxResultsPerPage = 100

// Client performs SerpAPI search operations.
type Client interface {
	// Search runs a Google search and returns up to num organic results.
	Search(ctx context.Context, query string, num int) (*SearchResponse, error)
}

// SearchResponse is the subset of the SerpAPI payload this tool consumes.
type SearchResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
}

// OrganicResult is one organic search hit.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Doer executes HTTP requests. The harvester injects its resilient fetcher
// here so SerpAPI calls share the retry and rate-limit policy.
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
	apiKey  string
	baseURL string
	doer    Doer
}

// NewClient creates a SerpAPI client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		doer:    plainDoer{client: &http.Client{Timeout: 20 * time.Second}},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, num int) (*SearchResponse, error) {
	if num > maxResultsPerPage {
		num = maxResultsPerPage
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: search")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, eris.Errorf("serpapi: search returned %d: %s", resp.StatusCode, string(body))
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, eris.Wrap(err, "serpapi: decode response")
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
