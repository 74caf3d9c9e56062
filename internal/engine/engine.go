// Package engine orchestrates the scheduled trend-cache refresh: pulling
// price series from the trend source, generating analyses, and persisting
// them so the price-analysis endpoint can serve cached results.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karimhaddad/estate-scout/internal/metrics"
	"github.com/karimhaddad/estate-scout/internal/notify"
	"github.com/karimhaddad/estate-scout/internal/store"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

const (
	defaultMaxAnalysisAge = 6 * time.Hour
	defaultStaggerOffset  = 10 * time.Second
)

// TrendAnalyzer produces an LLM analysis for a city's price series.
type TrendAnalyzer interface {
	AnalyzeTrendData(ctx context.Context, city string, trend domain.TrendData) (string, error)
}

// Engine orchestrates the trend-cache refresh cycle.
type Engine struct {
	store    store.Store
	analyzer TrendAnalyzer
	source   TrendSource
	notifier notify.Notifier
	log      *slog.Logger

	cities         []string
	maxAnalysisAge time.Duration
	staggerOffset  time.Duration
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	a TrendAnalyzer,
	src TrendSource,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:          s,
		analyzer:       a,
		source:         src,
		notifier:       n,
		log:            slog.Default(),
		maxAnalysisAge: defaultMaxAnalysisAge,
		staggerOffset:  defaultStaggerOffset,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithCities sets the cities refreshed each cycle.
func WithCities(cities []string) EngineOption {
	return func(e *Engine) {
		e.cities = cities
	}
}

// WithMaxAnalysisAge sets how old a cached analysis may be before it is
// regenerated.
func WithMaxAnalysisAge(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.maxAnalysisAge = d
	}
}

// WithStaggerOffset sets the delay between processing each city.
func WithStaggerOffset(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.staggerOffset = d
	}
}

// RunTrendRefresh regenerates stale cached analyses for all configured
// cities and reports the cycle outcome through the notifier.
func (eng *Engine) RunTrendRefresh(ctx context.Context) error {
	start := time.Now()
	report := notify.RefreshReport{StartedAt: start}

	for i, city := range eng.cities {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		res := eng.refreshCity(ctx, city)
		report.Results = append(report.Results, res)

		if res.Err != "" {
			eng.log.Error("city refresh failed", "city", city, "error", res.Err)
			metrics.TrendRefreshErrorsTotal.Inc()
		}

		// Stagger between cities to avoid completion-provider bursts.
		if i < len(eng.cities)-1 && eng.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(eng.staggerOffset):
			}
		}
	}

	report.Duration = time.Since(start)
	metrics.TrendRefreshTotal.Inc()

	if err := eng.notifier.SendRefreshReport(ctx, report); err != nil {
		eng.log.Error("sending refresh report failed", "error", err)
	}

	return nil
}

func (eng *Engine) refreshCity(ctx context.Context, city string) notify.CityResult {
	start := time.Now()
	res := notify.CityResult{City: city}

	cached, err := eng.store.GetTrendAnalysis(ctx, city)
	if err == nil && time.Since(cached.GeneratedAt) < eng.maxAnalysisAge {
		res.Cached = true
		return res
	}

	trend, err := eng.source.CityTrend(ctx, city)
	if err != nil {
		res.Err = fmt.Sprintf("loading trend series: %v", err)
		return res
	}

	analysis, err := eng.analyzer.AnalyzeTrendData(ctx, city, trend)
	if err != nil {
		res.Err = fmt.Sprintf("analyzing trend: %v", err)
		return res
	}

	if err := eng.store.SaveTrendAnalysis(ctx, &domain.TrendAnalysis{
		City:        city,
		Trend:       trend,
		Analysis:    analysis,
		GeneratedAt: time.Now(),
	}); err != nil {
		res.Err = fmt.Sprintf("saving analysis: %v", err)
		return res
	}

	res.Points = len(trend.Historical)
	res.Duration = time.Since(start)

	eng.log.Info("trend analysis refreshed",
		"city", city,
		"points", res.Points,
		"duration", res.Duration,
	)
	return res
}
