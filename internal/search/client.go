// Package search provides a listing search provider client abstracted behind
// interfaces for testability.
package search

import (
	"context"
	"errors"
	"fmt"
)

// SearchRequest defines the parameters for a provider search.
type SearchRequest struct {
	Query   string
	Limit   int
	Formats []string // page formats to scrape alongside results, e.g. "html"
}

// Result is a single raw search hit. Untrusted: fields may be missing and
// titles/descriptions may carry provider error-page markers.
type Result struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Screenshot  string `json:"screenshot,omitempty"`
	HTML        string `json:"html,omitempty"`
}

// SearchResponse holds the results of a provider search.
type SearchResponse struct {
	Results []Result
}

// Client defines the interface for the listing search provider.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// ErrUnavailable is the base error for any failed provider call. Callers
// match it with errors.Is to map failures to the external SEARCH_UNAVAILABLE
// taxonomy.
var ErrUnavailable = errors.New("search provider unavailable")

// ErrorKind distinguishes provider failure modes.
type ErrorKind string

// Error kind constants.
const (
	KindNetwork ErrorKind = "network"
	KindStatus  ErrorKind = "status"
	KindBadBody ErrorKind = "bad_body"
)

// APIError carries the failure mode of a provider call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("search provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("search provider %s error: %s", e.Kind, e.Message)
}

// Unwrap makes every APIError match ErrUnavailable.
func (e *APIError) Unwrap() error {
	return ErrUnavailable
}
