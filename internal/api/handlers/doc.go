package handlers

import (
	"context"

	"github.com/karimhaddad/estate-scout/internal/pipeline"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// Orchestrator is the slice of the pipeline the HTTP layer depends on.
// Narrowed to an interface so handlers can be tested with doubles.
type Orchestrator interface {
	SearchProperties(ctx context.Context, q domain.ListingQuery) (*pipeline.SearchResult, error)
	CityTrends(ctx context.Context, city string) ([]domain.Article, error)
	AnalyzeTrendData(ctx context.Context, city string, trend domain.TrendData) (string, error)
	SummarizeArticle(ctx context.Context, url string) (string, error)
	Chat(ctx context.Context, userInput string) (string, error)
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"           example:"Failed to search properties"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
