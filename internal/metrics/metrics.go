// Package metrics defines Prometheus metrics for estate-scout.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "escout"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Search provider metrics.
var (
	SearchCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_calls_total",
		Help:      "Total cumulative search provider API calls.",
	})

	SearchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_errors_total",
		Help:      "Total failed search provider API calls.",
	})

	SearchDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "search_daily_usage",
		Help:      "Current daily search provider call count within the rolling 24-hour window.",
	})

	SearchDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_daily_limit_hits_total",
		Help:      "Times a search call was rejected by the daily quota.",
	})
)

// Completion provider metrics.
var (
	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "completion_duration_seconds",
		Help:      "Duration of LLM completion calls in seconds.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"backend"})

	CompletionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_failures_total",
		Help:      "Total failed LLM completion calls.",
	}, []string{"backend"})

	CompletionSoftFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_soft_failures_total",
		Help:      "Completions degraded by provider soft failures (model loading).",
	})
)

// Pipeline metrics.
var (
	PipelineRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_retries_total",
		Help:      "Retry attempts performed by pipeline workflows.",
	}, []string{"workflow"})

	BrowserFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "browser_fetch_duration_seconds",
		Help:      "Duration of headless-browser page fetches in seconds.",
		Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 60},
	})

	ListingsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_dropped_total",
		Help:      "Raw search records dropped during normalization.",
	}, []string{"reason"})
)

// Catalog store metrics.
var (
	CatalogQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_queries_total",
		Help:      "Catalog store read queries served.",
	}, []string{"kind"})
)

// Trend refresh metrics.
var (
	TrendRefreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trend_refresh_total",
		Help:      "Completed trend-cache refresh cycles.",
	})

	TrendRefreshErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trend_refresh_errors_total",
		Help:      "Failed trend-cache refresh cycles.",
	})
)
