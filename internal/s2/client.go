// Package s2 is a client for the Semantic Scholar Graph API, used as a
// secondary metadata source for citation discovery.
package s2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Semantic Scholar Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 1 request per second per S2 unauthenticated guidance.
	RateLimit = 1.0

	// DefaultPaperFields are the fields requested for paper lookups.
	DefaultPaperFields = "paperId,externalIds,title,year"

	// DefaultCitationsLimit bounds one page of citing papers.
	DefaultCitationsLimit = 100
)

// Client is a rate-limited HTTP client for the Semantic Scholar API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new Semantic Scholar API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	// Check for API key in environment
	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs one GET against the API and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// GetPaper fetches a paper by Semantic Scholar id or "arXiv:<id>".
func (c *Client) GetPaper(ctx context.Context, paperID string) (*Paper, error) {
	q := url.Values{"fields": {DefaultPaperFields}}

	var p Paper
	if err := c.get(ctx, "/paper/"+url.PathEscape(paperID), q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Citations fetches one page of papers citing the given paper.
func (c *Client) Citations(ctx context.Context, paperID string, limit, offset int) (*CitationsPage, error) {
	if limit <= 0 {
		limit = DefaultCitationsLimit
	}

	q := url.Values{
		"fields": {DefaultPaperFields},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	var page CitationsPage
	if err := c.get(ctx, "/paper/"+url.PathEscape(paperID)+"/citations", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Recommendations fetches papers related to the given paper.
func (c *Client) Recommendations(ctx context.Context, paperID string, limit int) ([]Paper, error) {
	if limit <= 0 {
		limit = 20
	}

	q := url.Values{
		"fields": {DefaultPaperFields},
		"limit":  {strconv.Itoa(limit)},
	}

	var resp struct {
		Data []Paper `json:"data"`
	}
	if err := c.get(ctx, "/paper/"+url.PathEscape(paperID)+"/recommendations", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
