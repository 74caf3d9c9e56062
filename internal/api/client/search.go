package client

import (
	"context"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// SearchRequest defines the body for a property search.
type SearchRequest struct {
	City             string  `json:"city"`
	MaxPrice         float64 `json:"maxPrice"`
	Limit            int     `json:"limit,omitempty"`
	PropertyCategory string  `json:"propertyCategory,omitempty"`
	PropertyType     string  `json:"propertyType,omitempty"`
}

// SearchResponse wraps a property search response.
type SearchResponse struct {
	Success    bool                       `json:"success"`
	Message    string                     `json:"message,omitempty"`
	Error      string                     `json:"error,omitempty"`
	Properties []domain.NormalizedListing `json:"properties,omitempty"`
	Analysis   string                     `json:"analysis,omitempty"`
}

// SearchProperties runs a live property search with AI analysis.
func (c *Client) SearchProperties(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.post(ctx, "/api/properties/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
