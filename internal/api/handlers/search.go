// Package handlers implements HTTP handlers for the estate-scout API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// SearchHandler handles the live property search endpoint.
type SearchHandler struct {
	pipeline Orchestrator
	logger   *slog.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(p Orchestrator, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{pipeline: p, logger: logger}
}

// --- Input/Output types ---

// SearchInput is the property search request. Field validation happens in the
// handler so missing parameters produce the documented 400 body instead of a
// schema error.
type SearchInput struct {
	Body struct {
		City             string  `json:"city,omitempty"             doc:"City to search in"`
		MaxPrice         float64 `json:"maxPrice,omitempty"         doc:"Budget ceiling in millions of AED"`
		Limit            int     `json:"limit,omitempty"            doc:"Maximum listings to return (capped at 6)"`
		PropertyCategory string  `json:"propertyCategory,omitempty" doc:"residential or commercial"`
		PropertyType     string  `json:"propertyType,omitempty"     doc:"flat, villa, penthouse, or townhouse"`
	}
}

// SearchOutput is the property search response.
type SearchOutput struct {
	Status int
	Body   struct {
		Success    bool                       `json:"success"`
		Message    string                     `json:"message,omitempty"`
		Error      string                     `json:"error,omitempty"`
		Properties []domain.NormalizedListing `json:"properties,omitempty"`
		Analysis   string                     `json:"analysis,omitempty"`
	}
}

// --- Handlers ---

// Search runs the live search-and-analyze pipeline for the requested city
// and budget.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	out := &SearchOutput{}

	q := domain.ListingQuery{
		City:             input.Body.City,
		MaxPriceMillions: input.Body.MaxPrice,
		Limit:            input.Body.Limit,
		Category:         domain.PropertyCategory(input.Body.PropertyCategory),
		Type:             domain.PropertyType(input.Body.PropertyType),
	}

	if err := q.Validate(); err != nil {
		out.Status = http.StatusBadRequest
		out.Body.Message = "City and maxPrice are required"
		return out, nil
	}

	result, err := h.pipeline.SearchProperties(ctx, q)
	if err != nil {
		h.logger.Error("property search failed", "city", q.City, "error", err)
		out.Status = failureStatus(err)
		out.Body.Message = failureMessage(err, "Failed to search properties")
		out.Body.Error = failureMessage(err, "upstream search unavailable")
		return out, nil
	}

	out.Status = http.StatusOK
	out.Body.Success = true
	out.Body.Properties = result.Listings
	out.Body.Analysis = result.Analysis
	return out, nil
}

// RegisterSearchRoutes registers the property search endpoint with the Huma
// API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-properties",
		Method:      http.MethodPost,
		Path:        "/api/properties/search",
		Summary:     "Search properties with AI analysis",
		Description: "Runs a live provider search, filters the results, and returns them with an LLM market analysis.",
		Tags:        []string{"properties"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Search)
}
