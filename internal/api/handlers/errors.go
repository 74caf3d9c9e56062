package handlers

import (
	"errors"
	"net/http"

	"github.com/karimhaddad/estate-scout/internal/pipeline"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// failureStatus maps a pipeline error to an HTTP status. Caller mistakes are
// 400; everything upstream or internal is 500.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingSearchParams),
		errors.Is(err, pipeline.ErrInvalidURL),
		errors.Is(err, pipeline.ErrEmptyInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// failureMessage picks a user-safe message for a pipeline error. Raw provider
// errors never reach the wire; typed failures carry their own text.
func failureMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, pipeline.ErrNotConfigured):
		return "Service not configured"
	case errors.Is(err, pipeline.ErrContentInsufficient):
		return "Could not retrieve enough content to generate a summary."
	case errors.Is(err, pipeline.ErrDataMismatch):
		return "Retrieved market data does not match the requested city."
	case errors.Is(err, pipeline.ErrNoArticles):
		return "No relevant articles found."
	case errors.Is(err, pipeline.ErrInvalidURL):
		return "Invalid URL provided."
	default:
		return fallback
	}
}
