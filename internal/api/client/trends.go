package client

import (
	"context"
	"fmt"
	"net/url"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// TrendsResponse wraps a price-analysis response. Either a cached detailed
// trend with analysis text or a list of fresh article links is populated.
type TrendsResponse struct {
	Success            bool              `json:"success"`
	Message            string            `json:"message,omitempty"`
	Error              string            `json:"error,omitempty"`
	Articles           []domain.Article  `json:"articles,omitempty"`
	DetailedPriceTrend *domain.TrendData `json:"detailedPriceTrend,omitempty"`
	Analysis           string            `json:"analysis,omitempty"`
}

// CityPriceAnalysis returns the price trend analysis for a city.
func (c *Client) CityPriceAnalysis(ctx context.Context, city string) (*TrendsResponse, error) {
	var resp TrendsResponse
	path := fmt.Sprintf("/api/locations/%s/price-analysis", url.PathEscape(city))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
