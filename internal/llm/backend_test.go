package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFaceBackend_Generate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantErr     bool
		wantLoading bool
		wantContent string
	}{
		{
			name: "successful generation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/models/HuggingFaceH4/zephyr-7b-beta", r.URL.Path)
				assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				params, ok := body["parameters"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, float64(800), params["max_new_tokens"])
				assert.Equal(t, false, params["return_full_text"])

				_, _ = w.Write([]byte(`[{"generated_text": "Villas in Dubai Hills offer the best value."}]`))
			},
			wantContent: "Villas in Dubai Hills offer the best value.",
		},
		{
			name: "model loading soft failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error": "Model is currently loading", "estimated_time": 20.5}`))
			},
			wantErr:     true,
			wantLoading: true,
		},
		{
			name: "hard provider error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": "invalid token"}`))
			},
			wantErr: true,
		},
		{
			name: "empty generation list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			wantErr: true,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"unexpected": "shape"}`))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			backend := NewHuggingFaceBackend(
				"hf-key",
				"HuggingFaceH4/zephyr-7b-beta",
				WithHFBaseURL(server.URL),
			)

			resp, err := backend.Generate(context.Background(), GenerateRequest{
				Prompt:      "Analyze these listings",
				SystemMsg:   "You are a real estate analyst.",
				MaxTokens:   800,
				Temperature: 0.7,
			})

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantLoading {
					assert.ErrorIs(t, err, ErrModelLoading)
				} else {
					assert.ErrorIs(t, err, ErrUnavailable)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, resp.Content)
			assert.Equal(t, "HuggingFaceH4/zephyr-7b-beta", resp.Model)
		})
	}
}

func TestGroqBackend_Generate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantErr     bool
		wantContent string
	}{
		{
			name: "successful chat completion",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer gq-key", r.Header.Get("Authorization"))

				var body chatRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "qwen/qwen3-32b", body.Model)
				require.Len(t, body.Messages, 2)
				assert.Equal(t, "system", body.Messages[0].Role)
				assert.Equal(t, "user", body.Messages[1].Role)

				_, _ = w.Write([]byte(`{
					"model": "qwen/qwen3-32b",
					"choices": [{"message": {"role": "assistant", "content": "The article covers Q2 price trends."}}]
				}`))
			},
			wantContent: "The article covers Q2 price trends.",
		},
		{
			name: "provider error with message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
			},
			wantErr: true,
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			backend := NewGroqBackend("gq-key", "qwen/qwen3-32b", WithGroqBaseURL(server.URL))
			resp, err := backend.Generate(context.Background(), GenerateRequest{
				Prompt:    "Summarize this article",
				SystemMsg: "You are a summarizer.",
				MaxTokens: 400,
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnavailable)

				var be *BackendError
				require.ErrorAs(t, err, &be)
				assert.Equal(t, "groq", be.Backend)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, resp.Content)
		})
	}
}

func TestBuildChatPrompt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user text", buildChatPrompt("", "user text"))
	assert.Equal(t, "sys\n\nuser text", buildChatPrompt("sys", "user text"))
}
