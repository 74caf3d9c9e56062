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

const hfDefaultBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceBackend implements Backend using the Hugging Face serverless
// inference API.
type HuggingFaceBackend struct {
	apiKey  string
	baseURL string
	model   string
	topP    float64
	client  *http.Client
}

// HuggingFaceOption configures the HuggingFaceBackend.
type HuggingFaceOption func(*HuggingFaceBackend)

// WithHFBaseURL overrides the default inference endpoint.
func WithHFBaseURL(u string) HuggingFaceOption {
	return func(b *HuggingFaceBackend) {
		b.baseURL = u
	}
}

// WithHFHTTPClient overrides the default HTTP client.
func WithHFHTTPClient(hc *http.Client) HuggingFaceOption {
	return func(b *HuggingFaceBackend) {
		b.client = hc
	}
}

// WithHFTopP sets nucleus sampling for generation.
func WithHFTopP(p float64) HuggingFaceOption {
	return func(b *HuggingFaceBackend) {
		b.topP = p
	}
}

// NewHuggingFaceBackend creates a backend for the given hosted model.
func NewHuggingFaceBackend(apiKey, model string, opts ...HuggingFaceOption) *HuggingFaceBackend {
	b := &HuggingFaceBackend{
		apiKey:  apiKey,
		baseURL: hfDefaultBaseURL,
		model:   model,
		topP:    0.95,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements Backend.
func (b *HuggingFaceBackend) Name() string { return "huggingface" }

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfErrorBody struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Generate implements Backend. A response carrying estimated_time means the
// hosted model is cold; that surfaces as ErrModelLoading rather than a hard
// failure.
func (b *HuggingFaceBackend) Generate(
	ctx context.Context,
	req GenerateRequest,
) (*GenerateResponse, error) {
	start := time.Now()
	defer func() {
		metrics.CompletionDuration.WithLabelValues(b.Name()).Observe(time.Since(start).Seconds())
	}()

	body := hfRequest{
		Inputs: buildChatPrompt(req.SystemMsg, req.Prompt),
		Parameters: hfParameters{
			MaxNewTokens:   req.MaxTokens,
			Temperature:    req.Temperature,
			TopP:           b.topP,
			ReturnFullText: false,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling generation request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", b.baseURL, b.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
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
		var eb hfErrorBody
		if jsonErr := json.Unmarshal(respBody, &eb); jsonErr == nil && eb.EstimatedTime > 0 {
			metrics.CompletionSoftFailuresTotal.Inc()
			return nil, fmt.Errorf("%w (estimated %.0fs)", ErrModelLoading, eb.EstimatedTime)
		}
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		msg := eb.Error
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, &BackendError{Backend: b.Name(), StatusCode: resp.StatusCode, Message: msg}
	}

	var generations []hfGeneration
	if err := json.Unmarshal(respBody, &generations); err != nil {
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		return nil, &BackendError{Backend: b.Name(), Message: "parsing generation response: " + err.Error()}
	}
	if len(generations) == 0 {
		metrics.CompletionFailuresTotal.WithLabelValues(b.Name()).Inc()
		return nil, &BackendError{Backend: b.Name(), Message: "empty generation response"}
	}

	return &GenerateResponse{
		Content: generations[0].GeneratedText,
		Model:   b.model,
	}, nil
}

// buildChatPrompt folds an optional system role into a single-string prompt
// for text-generation endpoints that take raw inputs.
func buildChatPrompt(system, user string) string {
	if system == "" {
		return user
	}
	return system + "\n\n" + user
}
