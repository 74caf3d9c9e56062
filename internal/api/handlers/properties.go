package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/karimhaddad/estate-scout/internal/store"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// PropertiesHandler serves the catalog browse endpoints. These read the
// catalog store directly and never touch the live pipeline.
type PropertiesHandler struct {
	store  store.Store
	logger *slog.Logger
}

// NewPropertiesHandler creates a new PropertiesHandler.
func NewPropertiesHandler(s store.Store, logger *slog.Logger) *PropertiesHandler {
	return &PropertiesHandler{store: s, logger: logger}
}

// --- Input/Output types ---

// ListPropertiesInput is the filtered catalog query.
type ListPropertiesInput struct {
	Type     string `query:"type"     doc:"buy or rent"`
	Location string `query:"location" doc:"Location substring, case-insensitive"`
}

// PropertiesOutput is the catalog browse response.
type PropertiesOutput struct {
	Status int
	Body   struct {
		Success    bool                     `json:"success"`
		Message    string                   `json:"message,omitempty"`
		Error      string                   `json:"error,omitempty"`
		Properties []domain.CatalogProperty `json:"properties"`
	}
}

// --- Handlers ---

// ListAll returns every catalog property.
func (h *PropertiesHandler) ListAll(ctx context.Context, _ *struct{}) (*PropertiesOutput, error) {
	out := &PropertiesOutput{}

	properties, err := h.store.ListProperties(ctx)
	if err != nil {
		h.logger.Error("listing catalog properties failed", "error", err)
		out.Status = http.StatusInternalServerError
		out.Body.Message = "Failed to fetch all properties"
		return out, nil
	}

	out.Status = http.StatusOK
	out.Body.Success = true
	out.Body.Properties = ensureProperties(properties)
	return out, nil
}

// ListFiltered returns catalog properties matching the availability and
// location filters. An unknown type token simply applies no availability
// filter.
func (h *PropertiesHandler) ListFiltered(ctx context.Context, input *ListPropertiesInput) (*PropertiesOutput, error) {
	out := &PropertiesOutput{}

	properties, err := h.store.FilterProperties(ctx, store.PropertyFilter{
		Availability: domain.ParseAvailabilityToken(input.Type),
		Location:     input.Location,
	})
	if err != nil {
		h.logger.Error("filtering catalog properties failed", "error", err)
		out.Status = http.StatusInternalServerError
		out.Body.Message = "Failed to fetch properties by filters"
		return out, nil
	}

	out.Status = http.StatusOK
	out.Body.Success = true
	out.Body.Properties = ensureProperties(properties)
	return out, nil
}

// ensureProperties keeps the wire field a JSON array, never null.
func ensureProperties(p []domain.CatalogProperty) []domain.CatalogProperty {
	if p == nil {
		return []domain.CatalogProperty{}
	}
	return p
}

// RegisterPropertyRoutes registers the catalog browse endpoints with the
// Huma API.
func RegisterPropertyRoutes(api huma.API, h *PropertiesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-properties",
		Method:      http.MethodGet,
		Path:        "/api/properties",
		Summary:     "Browse catalog properties with filters",
		Tags:        []string{"properties"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListFiltered)

	huma.Register(api, huma.Operation{
		OperationID: "list-all-properties",
		Method:      http.MethodGet,
		Path:        "/api/properties/all",
		Summary:     "List all catalog properties",
		Tags:        []string{"properties"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListAll)
}
