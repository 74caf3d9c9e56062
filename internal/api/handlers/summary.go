package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// SummaryHandler handles the article summarization endpoint.
type SummaryHandler struct {
	pipeline Orchestrator
	logger   *slog.Logger
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(p Orchestrator, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{pipeline: p, logger: logger}
}

// --- Input/Output types ---

// SummaryInput identifies the article to summarize.
type SummaryInput struct {
	URL string `query:"url" doc:"Absolute article URL"`
}

// SummaryOutput is the summarization response.
type SummaryOutput struct {
	Status int
	Body   struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
		Summary string `json:"summary,omitempty"`
	}
}

// --- Handlers ---

// Summarize fetches the article in a per-request headless browser and
// returns an LLM summary of its content.
func (h *SummaryHandler) Summarize(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	out := &SummaryOutput{}

	summary, err := h.pipeline.SummarizeArticle(ctx, input.URL)
	if err != nil {
		h.logger.Error("article summarization failed", "url", input.URL, "error", err)
		out.Status = failureStatus(err)
		out.Body.Message = failureMessage(err, "An error occurred while processing the article.")
		return out, nil
	}

	out.Status = http.StatusOK
	out.Body.Success = true
	out.Body.Summary = summary
	return out, nil
}

// RegisterSummaryRoutes registers the article summary endpoint with the Huma
// API.
func RegisterSummaryRoutes(api huma.API, h *SummaryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "article-summary",
		Method:      http.MethodGet,
		Path:        "/api/article-summary",
		Summary:     "Summarize a market article",
		Description: "Fetches the article in a headless browser, strips page chrome, and returns an LLM summary.",
		Tags:        []string{"articles"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Summarize)
}
