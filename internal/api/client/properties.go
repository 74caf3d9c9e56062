package client

import (
	"context"
	"net/url"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// PropertiesResponse wraps a catalog property listing response.
type PropertiesResponse struct {
	Success    bool                     `json:"success"`
	Message    string                   `json:"message,omitempty"`
	Error      string                   `json:"error,omitempty"`
	Properties []domain.CatalogProperty `json:"properties"`
}

// ListPropertiesParams defines query parameters for catalog filtering.
type ListPropertiesParams struct {
	Type     string
	Location string
}

// ListAllProperties returns every property in the catalog.
func (c *Client) ListAllProperties(ctx context.Context) (*PropertiesResponse, error) {
	var resp PropertiesResponse
	if err := c.get(ctx, "/api/properties/all", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProperties returns catalog properties matching the given filters.
func (c *Client) ListProperties(
	ctx context.Context,
	params *ListPropertiesParams,
) (*PropertiesResponse, error) {
	q := url.Values{}
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	if params.Location != "" {
		q.Set("location", params.Location)
	}

	path := "/api/properties"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp PropertiesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
