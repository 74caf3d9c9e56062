// Package pipeline orchestrates the live workflows: property search with AI
// analysis, city trend analysis, article summarization, and chat. Every
// workflow runs strictly in order: normalize, build prompt, complete,
// assemble. Dependencies are injected so each stage can be substituted in
// tests.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/karimhaddad/estate-scout/internal/browser"
	"github.com/karimhaddad/estate-scout/internal/llm"
	"github.com/karimhaddad/estate-scout/internal/normalize"
	"github.com/karimhaddad/estate-scout/internal/prompt"
	"github.com/karimhaddad/estate-scout/internal/search"
	"github.com/karimhaddad/estate-scout/internal/telemetry"
	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

const articleSearchLimit = 3

// Pipeline wires the upstream adapters together. Any of the provider fields
// may be nil when the corresponding API key is not configured; workflows that
// need them fail fast with ErrNotConfigured.
type Pipeline struct {
	search     search.Client
	analyst    llm.Backend
	summarizer llm.Backend
	fetcher    browser.Fetcher
	normalizer *normalize.Normalizer
	logger     *slog.Logger

	retry           RetryPolicy
	analystTokens   int
	analystTemp     float64
	minContentChars int
	maxContentChars int
}

// Config holds the pipeline's collaborators and tuning knobs.
type Config struct {
	Search     search.Client
	Analyst    llm.Backend
	Summarizer llm.Backend
	Fetcher    browser.Fetcher
	Normalizer *normalize.Normalizer
	Logger     *slog.Logger

	TrendRetries    int
	RetryBaseDelay  time.Duration
	AnalystTokens   int
	AnalystTemp     float64
	MinContentChars int
	MaxContentChars int
}

// New creates a Pipeline from its collaborators.
func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalize.New(nil)
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 2 * time.Second
	}
	if cfg.AnalystTokens <= 0 {
		cfg.AnalystTokens = 800
	}
	if cfg.AnalystTemp <= 0 {
		cfg.AnalystTemp = 0.7
	}
	if cfg.MinContentChars <= 0 {
		cfg.MinContentChars = 200
	}
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = 20000
	}

	return &Pipeline{
		search:     cfg.Search,
		analyst:    cfg.Analyst,
		summarizer: cfg.Summarizer,
		fetcher:    cfg.Fetcher,
		normalizer: cfg.Normalizer,
		logger:     cfg.Logger,
		retry: RetryPolicy{
			MaxRetries: cfg.TrendRetries,
			BaseDelay:  cfg.RetryBaseDelay,
			Logger:     cfg.Logger,
		},
		analystTokens:   cfg.AnalystTokens,
		analystTemp:     cfg.AnalystTemp,
		minContentChars: cfg.MinContentChars,
		maxContentChars: cfg.MaxContentChars,
	}
}

// SearchResult is the assembled output of the property search workflow.
type SearchResult struct {
	Listings []domain.NormalizedListing
	Analysis string
}

// SearchProperties runs the full live-search workflow: provider search,
// normalization, prompt build, completion, output cleaning. Zero surviving
// listings is not an error; the empty-result prompt produces advice instead
// of analysis.
func (p *Pipeline) SearchProperties(ctx context.Context, q domain.ListingQuery) (*SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "pipeline.search_properties")
	defer span.End()
	if p.search == nil {
		return nil, fmt.Errorf("search provider: %w", ErrNotConfigured)
	}
	if p.analyst == nil {
		return nil, fmt.Errorf("completion provider: %w", ErrNotConfigured)
	}

	resp, err := p.search.Search(ctx, search.SearchRequest{
		Query: searchQuery(q),
		Limit: q.EffectiveLimit(),
	})
	if err != nil {
		return nil, fmt.Errorf("property search: %w", err)
	}

	listings := p.normalizer.Normalize(resp.Results, q)
	p.logger.Info("normalized search results",
		"city", q.City,
		"raw", len(resp.Results),
		"kept", len(listings),
	)

	analysis, err := p.complete(ctx, p.analyst, llm.GenerateRequest{
		Prompt:      prompt.PropertyAnalysis(q, listings),
		SystemMsg:   prompt.ExpertSystemRole,
		MaxTokens:   p.analystTokens,
		Temperature: p.analystTemp,
	})
	if err != nil {
		return nil, fmt.Errorf("property analysis: %w", err)
	}

	return &SearchResult{Listings: listings, Analysis: analysis}, nil
}

// CityTrends searches for recent market articles about a city, retrying
// transient provider failures. Returns the surviving article hits.
func (p *Pipeline) CityTrends(ctx context.Context, city string) ([]domain.Article, error) {
	if strings.TrimSpace(city) == "" {
		return nil, domain.ErrMissingSearchParams
	}
	if p.search == nil {
		return nil, fmt.Errorf("search provider: %w", ErrNotConfigured)
	}

	ctx, span := telemetry.Tracer().Start(ctx, "pipeline.city_trends")
	defer span.End()

	var articles []domain.Article
	err := p.retry.Do(ctx, "city_trends", func(ctx context.Context) error {
		resp, err := p.search.Search(ctx, search.SearchRequest{
			Query: fmt.Sprintf("What's the real estate market trend of %s in UAE?", city),
			Limit: articleSearchLimit,
		})
		if err != nil {
			return err
		}
		articles = normalize.FilterArticles(resp.Results)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	return articles, nil
}

// AnalyzeTrendData produces an LLM analysis of a city's price trend series.
// Trend data that does not match the requested city fails with
// ErrDataMismatch before any completion call.
func (p *Pipeline) AnalyzeTrendData(ctx context.Context, city string, trend domain.TrendData) (string, error) {
	if strings.TrimSpace(city) == "" {
		return "", domain.ErrMissingSearchParams
	}
	if p.analyst == nil {
		return "", fmt.Errorf("completion provider: %w", ErrNotConfigured)
	}
	if !trend.MatchesCity(city) {
		return "", fmt.Errorf("trend data is for %q, requested %q: %w", trend.City, city, ErrDataMismatch)
	}

	ctx, span := telemetry.Tracer().Start(ctx, "pipeline.analyze_trend_data")
	defer span.End()

	analysis, err := p.complete(ctx, p.analyst, llm.GenerateRequest{
		Prompt:      prompt.TrendAnalysis(trend),
		SystemMsg:   prompt.ExpertSystemRole,
		MaxTokens:   p.analystTokens,
		Temperature: p.analystTemp,
	})
	if err != nil {
		return "", fmt.Errorf("trend analysis: %w", err)
	}
	return analysis, nil
}

// SummarizeArticle fetches an article through the headless browser and
// summarizes it. Pages below the minimum content threshold are rejected
// without a completion call; longer pages are truncated to the content
// ceiling.
func (p *Pipeline) SummarizeArticle(ctx context.Context, rawURL string) (string, error) {
	if !validArticleURL(rawURL) {
		return "", ErrInvalidURL
	}
	if p.fetcher == nil || p.summarizer == nil {
		return "", fmt.Errorf("article summarizer: %w", ErrNotConfigured)
	}

	ctx, span := telemetry.Tracer().Start(ctx, "pipeline.summarize_article")
	defer span.End()

	text, err := p.fetcher.FetchText(ctx, rawURL)
	if err != nil {
		if errors.Is(err, browser.ErrEmptyContent) {
			return "", ErrContentInsufficient
		}
		return "", fmt.Errorf("fetching article: %w", err)
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < p.minContentChars {
		return "", ErrContentInsufficient
	}
	if len(trimmed) > p.maxContentChars {
		trimmed = trimmed[:p.maxContentChars]
	}

	summary, err := p.complete(ctx, p.summarizer, llm.GenerateRequest{
		Prompt:    fmt.Sprintf("Article content:\n\n%q", trimmed),
		SystemMsg: prompt.SummarizerSystemRole,
	})
	if err != nil {
		return "", fmt.Errorf("summarizing article: %w", err)
	}
	if summary == "" {
		return "", fmt.Errorf("summarizing article: empty completion: %w", llm.ErrUnavailable)
	}
	return summary, nil
}

// Chat answers a free-form user message, choosing between the greeting and
// analyst roles based on the input.
func (p *Pipeline) Chat(ctx context.Context, userInput string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return "", ErrEmptyInput
	}
	if p.analyst == nil {
		return "", fmt.Errorf("completion provider: %w", ErrNotConfigured)
	}

	ctx, span := telemetry.Tracer().Start(ctx, "pipeline.chat")
	defer span.End()

	reply, err := p.complete(ctx, p.analyst, llm.GenerateRequest{
		Prompt:      userInput,
		SystemMsg:   prompt.ChatSystemRole(userInput),
		MaxTokens:   p.analystTokens,
		Temperature: p.analystTemp,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return reply, nil
}

// complete calls a backend and cleans the output. A model-loading soft
// failure degrades to the placeholder message instead of erroring.
func (p *Pipeline) complete(ctx context.Context, backend llm.Backend, req llm.GenerateRequest) (string, error) {
	resp, err := backend.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrModelLoading) {
			p.logger.Warn("completion model is loading", "backend", backend.Name())
			return ModelLoadingMessage, nil
		}
		return "", err
	}
	return llm.CleanOutput(resp.Content), nil
}

// searchQuery builds the provider query string from the listing criteria.
func searchQuery(q domain.ListingQuery) string {
	subject := "real estate properties"
	if q.Type != "" {
		subject = string(q.Type) + " properties"
	}
	if q.Category != "" {
		subject = string(q.Category) + " " + subject
	}
	return fmt.Sprintf(
		"Find %s for sale in %s, UAE, priced under %.0f AED.",
		subject, q.City, q.MaxPriceAED(),
	)
}

func validArticleURL(raw string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(raw))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
