package pipeline

import (
	"context"
	"errors"

	"github.com/karimhaddad/estate-scout/internal/llm"
	"github.com/karimhaddad/estate-scout/internal/search"
)

// Typed failures the HTTP layer maps onto wire-format errors. Adapters raise
// provider-specific errors; the pipeline wraps them into this taxonomy and
// decides retry vs. fail. Only the HTTP layer turns them into status codes.
var (
	// ErrNotConfigured means a required provider API key was absent at
	// startup, so the dependent workflow fails fast without a network call.
	ErrNotConfigured = errors.New("service not configured")

	// ErrContentInsufficient means a fetched page was too short to
	// summarize. Not retried: the same page yields the same content.
	ErrContentInsufficient = errors.New("could not retrieve enough content to generate a summary")

	// ErrDataMismatch means extracted data does not belong to the requested
	// entity. Not retried: the same query yields the same mismatch.
	ErrDataMismatch = errors.New("extracted data does not match the requested city")

	// ErrNoArticles means the article search returned zero usable hits.
	ErrNoArticles = errors.New("no relevant articles found")

	// ErrInvalidURL rejects malformed article URLs before any fetch.
	ErrInvalidURL = errors.New("invalid URL provided")

	// ErrEmptyInput rejects blank chat input.
	ErrEmptyInput = errors.New("user input is required")
)

// ModelLoadingMessage is the user-facing placeholder returned when the
// completion provider reports its model is still loading. A soft failure:
// the request succeeds with this message instead of erroring.
const ModelLoadingMessage = "The AI model is currently loading, please try again in a moment."

// retriable reports whether an error is a transient upstream condition worth
// retrying. Validation failures, mismatches, soft failures, and caller
// cancellation are permanent for a given request.
func retriable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrContentInsufficient),
		errors.Is(err, ErrDataMismatch),
		errors.Is(err, ErrInvalidURL),
		errors.Is(err, ErrEmptyInput):
		return false
	case errors.Is(err, llm.ErrModelLoading):
		return false
	case errors.Is(err, search.ErrDailyLimitReached):
		return false
	}
	// Network failures, non-2xx statuses, malformed bodies, and timeouts
	// are all transient from the caller's perspective.
	return errors.Is(err, search.ErrUnavailable) ||
		errors.Is(err, llm.ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
