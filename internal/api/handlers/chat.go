package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/karimhaddad/estate-scout/internal/pipeline"
)

// ChatHandler handles the free-form chat endpoint. The wire contract carries
// no success flag: `{reply}` on success, `{error}` on failure.
type ChatHandler struct {
	pipeline Orchestrator
	logger   *slog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(p Orchestrator, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{pipeline: p, logger: logger}
}

// --- Input/Output types ---

// ChatInput is the chat request.
type ChatInput struct {
	Body struct {
		UserInput string `json:"userInput,omitempty" doc:"Free-form user message"`
	}
}

// ChatOutput is the chat response.
type ChatOutput struct {
	Status int
	Body   struct {
		Reply string `json:"reply,omitempty"`
		Error string `json:"error,omitempty"`
	}
}

// --- Handlers ---

// Chat answers a user message, greeting or analysis depending on the input.
func (h *ChatHandler) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	out := &ChatOutput{}

	reply, err := h.pipeline.Chat(ctx, input.Body.UserInput)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyInput) {
			out.Status = http.StatusBadRequest
			out.Body.Error = "User input is required"
			return out, nil
		}
		h.logger.Error("chat completion failed", "error", err)
		out.Status = http.StatusInternalServerError
		out.Body.Error = "Failed to get a response from the AI service."
		return out, nil
	}

	out.Status = http.StatusOK
	out.Body.Reply = reply
	return out, nil
}

// RegisterChatRoutes registers the chat endpoint with the Huma API.
func RegisterChatRoutes(api huma.API, h *ChatHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "chat",
		Method:      http.MethodPost,
		Path:        "/api/chat",
		Summary:     "Chat with the market assistant",
		Tags:        []string{"chat"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Chat)
}
