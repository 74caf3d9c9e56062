package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karimhaddad/estate-scout/internal/metrics"
)

const groqDefaultBaseURL = "https://api.groq.com/openai"

// GroqBackend implements Backend against Groq's OpenAI-compatible chat
// completions API.
type GroqBackend struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// GroqOption configures the GroqBackend.
type GroqOption func(*GroqBackend)

// WithGroqBaseURL overrides the default API endpoint.
func WithGroqBaseURL(u string) GroqOption {
	return func(b *GroqBackend) {
		b.baseURL = u
	}
}

// WithGroqHTTPClient overrides the default HTTP client.
func WithGroqHTTPClient(hc *http.Client) GroqOption {
	return func(b *GroqBackend) {
		b.client = hc
	}
}

// NewGroqBackend creates a backend for the given Groq-hosted model.
func NewGroqBackend(apiKey, model string, opts ...GroqOption) *GroqBackend {
	b := &GroqBackend{
		apiKey:  apiKey,
		baseURL: groqDefaultBaseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements Backend.
func (b *GroqBackend) Name() string { return "groq" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements Backend using the /v1/chat/completions endpoint.
func (b *GroqBackend) Generate(
	ctx context.Context,
	req GenerateRequest,
) (*GenerateResponse, error) {
	start := time.Now()
	defer func() {
		metrics.CompletionDuration.WithLabelValues(b.Name()).Observe(time.Since(start).Seconds())
	}()

	messages := make([]chatMessage, 0, 2)
	if req.SystemMsg != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemMsg})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:       b.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		b.baseURL+"/v1/chat/completions",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		return nil, &BackendError{Backend: b.Name(), Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		return nil, &BackendError{Backend: b.Name(), Message: "reading response body: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		var eb chatErrorBody
		msg := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		if jsonErr := json.Unmarshal(respBody, &eb); jsonErr == nil && eb.Error.Message != "" {
			msg = eb.Error.Message
		}
		return nil, &BackendError{Backend: b.Name(), StatusCode: resp.StatusCode, Message: msg}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		return nil, &BackendError{Backend: b.Name(), Message: "parsing chat response: " + err.Error()}
	}
	if len(chatResp.Choices) == 0 {
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		return nil, &BackendError{Backend: b.Name(), Message: "empty choices in chat response"}
	}

	model := chatResp.Model
	if model == "" {
		model = b.model
	}
	return &GenerateResponse{
		Content: chatResp.Choices[0].Message.Content,
		Model:   model,
	}, nil
}
