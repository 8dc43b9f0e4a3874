// Package arxiv resolves arXiv identifiers to paper metadata through the
// Atom export API.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"citegraph/internal/paper"
)

const (
	// BaseURL is the arXiv Atom export API endpoint.
	BaseURL = "https://export.arxiv.org/api/query"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// requestInterval follows arXiv's guidance of no more than one
	// request every three seconds.
	requestInterval = 3 * time.Second

	// MaxBatchSize caps the ids sent in one id_list request.
	MaxBatchSize = 100

	defaultUserAgent = "citegraph/0.1"
)

// Client is a rate-limited HTTP client for the arXiv export API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

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

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new arXiv export API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
		baseURL:    BaseURL,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ResolveMany fetches metadata for all ids, preserving input order in
// the result. Inputs beyond MaxBatchSize split into successive
// rate-limited requests. Resolution is all-or-nothing: one entry that
// fails to decode (most commonly a missing pdf link) fails the whole
// batch. Callers on the enrichment path are expected to tolerate that
// by degrading rather than aborting.
func (c *Client) ResolveMany(ctx context.Context, ids []string) ([]paper.Paper, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var papers []paper.Paper
	for start := 0; start < len(ids); start += MaxBatchSize {
		batch, err := c.resolveBatch(ctx, ids[start:min(start+MaxBatchSize, len(ids))])
		if err != nil {
			return nil, err
		}
		papers = append(papers, batch...)
	}
	return papers, nil
}

func (c *Client) resolveBatch(ctx context.Context, ids []string) ([]paper.Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	queryURL := fmt.Sprintf("%s?id_list=%s&max_results=%d",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")), len(ids))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	papers := make([]paper.Paper, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		p, err := paperFromEntry(e)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}

	return papers, nil
}

// ResolveOne resolves a single identifier. An empty batch result maps
// to ErrNotFound.
func (c *Client) ResolveOne(ctx context.Context, id string) (paper.Paper, error) {
	papers, err := c.ResolveMany(ctx, []string{id})
	if err != nil {
		return paper.Paper{}, err
	}
	if len(papers) == 0 {
		return paper.Paper{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return papers[0], nil
}
