package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListAllProperties(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Failed to search properties"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListAllProperties(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
}

func TestClient_SearchProperties(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/properties/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SearchRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "Dubai", req.City)
		assert.InDelta(t, 2.5, req.MaxPrice, 0.001)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			Success: true,
			Properties: []domain.NormalizedListing{
				{URL: "https://example.com/p1", Description: "2BR in Dubai Marina"},
			},
			Analysis: "**Property Overview:** strong value in Marina.",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.SearchProperties(context.Background(), &SearchRequest{
		City:     "Dubai",
		MaxPrice: 2.5,
		Limit:    4,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Properties, 1)
	assert.Contains(t, resp.Analysis, "Property Overview")
}

func TestClient_ListProperties(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties", r.URL.Path)
		assert.Equal(t, "rent", r.URL.Query().Get("type"))
		assert.Equal(t, "Marina", r.URL.Query().Get("location"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PropertiesResponse{
			Success:    true,
			Properties: []domain.CatalogProperty{{ID: "p1"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ListProperties(context.Background(), &ListPropertiesParams{
		Type:     "rent",
		Location: "Marina",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Properties, 1)
}

func TestClient_CityPriceAnalysis(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/locations/Abu%20Dhabi/price-analysis", r.URL.EscapedPath())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TrendsResponse{
			Success:  true,
			Articles: []domain.Article{{URL: "https://example.com/a1", Description: "Market report"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.CityPriceAnalysis(context.Background(), "Abu Dhabi")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Articles, 1)
}

func TestClient_SummarizeArticle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/article-summary", r.URL.Path)
		assert.Equal(t, "https://example.com/news?id=7", r.URL.Query().Get("url"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SummaryResponse{Success: true, Summary: "A short summary."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.SummarizeArticle(context.Background(), "https://example.com/news?id=7")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "A short summary.", resp.Summary)
}

func TestClient_Chat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)

		var body map[string]string
		err := json.NewDecoder(r.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "hello", body["userInput"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatResponse{Reply: "Hello! How can I help with UAE real estate today?"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Reply)
	assert.Empty(t, resp.Error)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
