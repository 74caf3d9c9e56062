package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karimhaddad/estate-scout/internal/metrics"
)

const (
	defaultBaseURL = "https://api.firecrawl.dev"
	searchPath     = "/v1/search"
)

// FirecrawlClient implements Client using the Firecrawl search API.
type FirecrawlClient struct {
	apiKey      string
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
}

// FirecrawlOption configures the FirecrawlClient.
type FirecrawlOption func(*FirecrawlClient)

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(u string) FirecrawlOption {
	return func(c *FirecrawlClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) FirecrawlOption {
	return func(c *FirecrawlClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every Search() call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) FirecrawlOption {
	return func(c *FirecrawlClient) {
		c.rateLimiter = r
	}
}

// NewFirecrawlClient creates a new Firecrawl search client.
func NewFirecrawlClient(apiKey string, opts ...FirecrawlOption) *FirecrawlClient {
	c := &FirecrawlClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type firecrawlSearchRequest struct {
	Query         string            `json:"query"`
	Limit         int               `json:"limit,omitempty"`
	ScrapeOptions *firecrawlScrape  `json:"scrapeOptions,omitempty"`
}

type firecrawlScrape struct {
	Formats []string `json:"formats"`
}

type firecrawlSearchResponse struct {
	Success bool     `json:"success"`
	Data    []Result `json:"data"`
	Warning string   `json:"warning,omitempty"`
}

type firecrawlErrorBody struct {
	Error string `json:"error"`
}

// Search implements Client.Search by querying the Firecrawl search API.
func (c *FirecrawlClient) Search(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.SearchDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.SearchDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}
	metrics.SearchCallsTotal.Inc()

	body := firecrawlSearchRequest{
		Query: req.Query,
		Limit: req.Limit,
	}
	if len(req.Formats) > 0 {
		body.ScrapeOptions = &firecrawlScrape{Formats: req.Formats}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+searchPath,
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.SearchErrorsTotal.Inc()
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.SearchErrorsTotal.Inc()
		return nil, &APIError{Kind: KindNetwork, Message: "reading response body: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		metrics.SearchErrorsTotal.Inc()
		return nil, &APIError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp.StatusCode, respBody),
		}
	}

	var apiResp firecrawlSearchResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		metrics.SearchErrorsTotal.Inc()
		return nil, &APIError{Kind: KindBadBody, Message: "parsing search response: " + err.Error()}
	}

	return &SearchResponse{Results: apiResp.Data}, nil
}

// statusMessage extracts the provider error message from a non-2xx body,
// falling back to a generic HTTP-status-derived message when the body is not
// the expected JSON shape.
func statusMessage(status int, body []byte) string {
	var eb firecrawlErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return fmt.Sprintf("request failed with status %d", status)
}
