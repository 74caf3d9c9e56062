package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karimhaddad/estate-scout/internal/metrics"
)

// RetryPolicy retries transient upstream failures with exponential backoff.
// The delay doubles each attempt: base, 2x base, 4x base.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Logger     *slog.Logger
}

// Do runs fn up to 1+MaxRetries times. Non-retriable errors stop the loop
// immediately. The returned error wraps the last failure.
func (p RetryPolicy) Do(ctx context.Context, workflow string, fn func(context.Context) error) error {
	maxAttempts := p.MaxRetries + 1
	delay := p.BaseDelay

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !retriable(lastErr) || attempt == maxAttempts {
			break
		}

		if p.Logger != nil {
			p.Logger.Warn("retrying workflow",
				"workflow", workflow,
				"attempt", attempt,
				"delay", delay,
				"error", lastErr,
			)
		}
		metrics.PipelineRetriesTotal.WithLabelValues(workflow).Inc()

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s canceled during backoff: %w", workflow, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempt(s): %w", workflow, attempts, lastErr)
}
