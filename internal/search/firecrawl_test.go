package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirecrawlClient_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		req        SearchRequest
		wantErr    bool
		wantKind   ErrorKind
		wantStatus int
		checkFunc  func(t *testing.T, resp *SearchResponse)
	}{
		{
			name: "successful search",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/search", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "apartments for sale in Dubai", body["query"])
				assert.Equal(t, float64(6), body["limit"])

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"success": true,
					"data": [
						{"url": "https://example.com/p/1", "title": "2BR Flat", "description": "Nice flat, AED 1.2M"},
						{"url": "https://example.com/p/2", "title": "Villa", "description": "Spacious villa"}
					]
				}`))
			},
			req: SearchRequest{Query: "apartments for sale in Dubai", Limit: 6},
			checkFunc: func(t *testing.T, resp *SearchResponse) {
				t.Helper()
				require.Len(t, resp.Results, 2)
				assert.Equal(t, "https://example.com/p/1", resp.Results[0].URL)
				assert.Equal(t, "2BR Flat", resp.Results[0].Title)
			},
		},
		{
			name: "scrape formats included when requested",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				opts, ok := body["scrapeOptions"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, []any{"html"}, opts["formats"])

				_, _ = w.Write([]byte(`{"success": true, "data": []}`))
			},
			req: SearchRequest{Query: "q", Limit: 3, Formats: []string{"html"}},
			checkFunc: func(t *testing.T, resp *SearchResponse) {
				t.Helper()
				assert.Empty(t, resp.Results)
			},
		},
		{
			name: "provider error status with message body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusPaymentRequired)
				_, _ = w.Write([]byte(`{"error": "insufficient credits"}`))
			},
			req:        SearchRequest{Query: "q"},
			wantErr:    true,
			wantKind:   KindStatus,
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name: "provider error status with opaque body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream exploded"))
			},
			req:        SearchRequest{Query: "q"},
			wantErr:    true,
			wantKind:   KindStatus,
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "malformed response body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json at all"))
			},
			req:      SearchRequest{Query: "q"},
			wantErr:  true,
			wantKind: KindBadBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewFirecrawlClient("test-key", WithBaseURL(server.URL))
			resp, err := client.Search(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnavailable)

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantKind, apiErr.Kind)
				if tt.wantStatus != 0 {
					assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				}
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, resp)
		})
	}
}

func TestFirecrawlClient_Search_NetworkError(t *testing.T) {
	t.Parallel()

	client := NewFirecrawlClient("test-key", WithBaseURL("http://127.0.0.1:1"))
	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
}

func TestFirecrawlClient_Search_DailyLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer server.Close()

	rl := NewRateLimiter(100, 10, 1)
	client := NewFirecrawlClient(
		"test-key",
		WithBaseURL(server.URL),
		WithRateLimiter(rl),
	)

	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyLimitReached)
}

func TestStatusMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "quota exceeded", statusMessage(429, []byte(`{"error": "quota exceeded"}`)))
	assert.Equal(t, "request failed with status 500", statusMessage(500, []byte("oops")))
	assert.Equal(t, "request failed with status 404", statusMessage(404, []byte(`{"error": ""}`)))
}
