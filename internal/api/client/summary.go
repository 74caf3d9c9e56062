package client

import (
	"context"
	"net/url"
)

// SummaryResponse wraps an article summary response.
type SummaryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// SummarizeArticle fetches and summarizes the article at the given URL.
func (c *Client) SummarizeArticle(ctx context.Context, articleURL string) (*SummaryResponse, error) {
	q := url.Values{}
	q.Set("url", articleURL)

	var resp SummaryResponse
	if err := c.get(ctx, "/api/article-summary?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
