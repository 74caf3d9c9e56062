// Package llm provides text-generation backends for property analysis and
// article summarization.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrModelLoading signals a provider soft failure: the hosted model is cold
// and still loading. Callers degrade gracefully instead of retrying.
var ErrModelLoading = errors.New("model is loading")

// ErrUnavailable is the base error for any hard completion failure.
var ErrUnavailable = errors.New("completion backend unavailable")

// GenerateRequest describes a single completion call.
type GenerateRequest struct {
	Prompt      string
	SystemMsg   string
	MaxTokens   int
	Temperature float64
}

// GenerateResponse is the result of a completion call.
type GenerateResponse struct {
	Content string
	Model   string
}

// Backend defines the interface a text-generation provider implements.
type Backend interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Name() string
}

// BackendError carries the failure details of a completion call.
type BackendError struct {
	Backend    string
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s completion failed (status %d): %s", e.Backend, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s completion failed: %s", e.Backend, e.Message)
}

// Unwrap makes every BackendError match ErrUnavailable.
func (e *BackendError) Unwrap() error {
	return ErrUnavailable
}
