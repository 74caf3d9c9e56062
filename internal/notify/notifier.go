// Package notify defines the notification interface and implementations
// for trend refresh reporting.
package notify

import (
	"context"
	"time"
)

// CityResult describes the outcome of one city's trend refresh.
type CityResult struct {
	City     string
	Points   int
	Cached   bool
	Duration time.Duration
	Err      string
}

// RefreshReport summarizes a complete trend refresh cycle.
type RefreshReport struct {
	StartedAt time.Time
	Duration  time.Duration
	Results   []CityResult
}

// Failures counts cities whose refresh failed.
func (r RefreshReport) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != "" {
			n++
		}
	}
	return n
}

// Notifier defines the interface for delivering refresh reports.
type Notifier interface {
	SendRefreshReport(ctx context.Context, report RefreshReport) error
}
