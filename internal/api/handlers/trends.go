package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/karimhaddad/estate-scout/internal/store"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// TrendsHandler handles the city price-analysis endpoint.
type TrendsHandler struct {
	pipeline Orchestrator
	store    store.Store
	logger   *slog.Logger
}

// NewTrendsHandler creates a new TrendsHandler.
func NewTrendsHandler(p Orchestrator, s store.Store, logger *slog.Logger) *TrendsHandler {
	return &TrendsHandler{pipeline: p, store: s, logger: logger}
}

// --- Input/Output types ---

// TrendsInput identifies the city to analyze.
type TrendsInput struct {
	City string `path:"city" doc:"City name, e.g. Dubai"`
}

// TrendsOutput is the price-analysis response. When a cached detailed trend
// analysis exists it is returned; otherwise the response carries fresh
// article hits for the city.
type TrendsOutput struct {
	Status int
	Body   struct {
		Success            bool              `json:"success"`
		Message            string            `json:"message,omitempty"`
		Error              string            `json:"error,omitempty"`
		Articles           []domain.Article  `json:"articles,omitempty"`
		DetailedPriceTrend *domain.TrendData `json:"detailedPriceTrend,omitempty"`
		Analysis           string            `json:"analysis,omitempty"`
	}
}

// --- Handlers ---

// PriceAnalysis serves a city's market trend view. A cached analysis from the
// scheduled refresh takes priority; without one the handler falls back to a
// live article search.
func (h *TrendsHandler) PriceAnalysis(ctx context.Context, input *TrendsInput) (*TrendsOutput, error) {
	out := &TrendsOutput{}

	if h.store != nil {
		cached, err := h.store.GetTrendAnalysis(ctx, input.City)
		if err == nil {
			out.Status = http.StatusOK
			out.Body.Success = true
			out.Body.DetailedPriceTrend = &cached.Trend
			out.Body.Analysis = cached.Analysis
			return out, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Warn("trend cache lookup failed", "city", input.City, "error", err)
		}
	}

	articles, err := h.pipeline.CityTrends(ctx, input.City)
	if err != nil {
		h.logger.Error("city trend search failed", "city", input.City, "error", err)
		out.Status = failureStatus(err)
		out.Body.Message = failureMessage(err, "Failed to get city price analysis")
		return out, nil
	}

	out.Status = http.StatusOK
	out.Body.Success = true
	out.Body.Articles = articles
	return out, nil
}

// RegisterTrendRoutes registers the price-analysis endpoint with the Huma
// API.
func RegisterTrendRoutes(api huma.API, h *TrendsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "city-price-analysis",
		Method:      http.MethodGet,
		Path:        "/api/locations/{city}/price-analysis",
		Summary:     "City market trend analysis",
		Description: "Returns a cached detailed price trend analysis for the city, or fresh market article hits when no cache exists.",
		Tags:        []string{"trends"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.PriceAnalysis)
}
