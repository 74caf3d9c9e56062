package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/karimhaddad/estate-scout/internal/api/handlers"
	"github.com/karimhaddad/estate-scout/internal/api/middleware"
	"github.com/karimhaddad/estate-scout/internal/browser"
	"github.com/karimhaddad/estate-scout/internal/config"
	"github.com/karimhaddad/estate-scout/internal/engine"
	"github.com/karimhaddad/estate-scout/internal/llm"
	"github.com/karimhaddad/estate-scout/internal/normalize"
	"github.com/karimhaddad/estate-scout/internal/notify"
	"github.com/karimhaddad/estate-scout/internal/pipeline"
	"github.com/karimhaddad/estate-scout/internal/search"
	"github.com/karimhaddad/estate-scout/internal/store"
	"github.com/karimhaddad/estate-scout/internal/telemetry"
	"github.com/karimhaddad/estate-scout/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and trend refresh scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Optional .env for local development; config values reference the
	// environment via ${VAR} substitution.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	var telemetryShutdown func(context.Context) error
	if cfg.Telemetry.Enabled {
		telemetryShutdown, err = telemetry.Setup(ctx, cfg.Telemetry.Endpoint)
		if err != nil {
			return fmt.Errorf("setting up telemetry: %w", err)
		}
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	pipe := buildPipeline(cfg, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("EstateScout API", Version))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(pipe, log))
	handlers.RegisterTrendRoutes(api, handlers.NewTrendsHandler(pipe, st, log))
	handlers.RegisterPropertyRoutes(api, handlers.NewPropertiesHandler(st, log))
	handlers.RegisterSummaryRoutes(api, handlers.NewSummaryHandler(pipe, log))
	handlers.RegisterChatRoutes(api, handlers.NewChatHandler(pipe, log))

	sched, err := buildScheduler(cfg, st, pipe, log)
	if err != nil {
		return err
	}
	if sched != nil {
		sched.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		<-sched.Stop().Done()
	}

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	if telemetryShutdown != nil {
		if err := telemetryShutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", "error", err)
		}
	}

	log.Info("server stopped")
	return nil
}

// buildPipeline wires the upstream adapters from config. Providers without
// an API key stay nil; their endpoints report "service not configured".
func buildPipeline(cfg *config.Config, log *slog.Logger) *pipeline.Pipeline {
	pcfg := pipeline.Config{
		Normalizer:      normalize.New(cfg.Pipeline.BlockedHosts),
		Logger:          log,
		TrendRetries:    cfg.Pipeline.TrendRetries,
		RetryBaseDelay:  cfg.Pipeline.RetryBaseDelay,
		AnalystTokens:   cfg.LLM.HuggingFace.MaxTokens,
		AnalystTemp:     cfg.LLM.HuggingFace.Temperature,
		MinContentChars: cfg.Browser.MinContentChars,
		MaxContentChars: cfg.Browser.MaxContentChars,
	}

	if cfg.Firecrawl.APIKey != "" {
		rl := search.NewRateLimiter(
			cfg.Firecrawl.RateLimit.PerSecond,
			cfg.Firecrawl.RateLimit.Burst,
			cfg.Firecrawl.RateLimit.DailyLimit,
		)
		pcfg.Search = search.NewFirecrawlClient(
			cfg.Firecrawl.APIKey,
			search.WithBaseURL(cfg.Firecrawl.BaseURL),
			search.WithHTTPClient(&http.Client{Timeout: cfg.Firecrawl.Timeout}),
			search.WithRateLimiter(rl),
		)
	} else {
		log.Warn("firecrawl api key missing, search endpoints disabled")
	}

	if cfg.LLM.HuggingFace.APIKey != "" {
		pcfg.Analyst = llm.NewHuggingFaceBackend(
			cfg.LLM.HuggingFace.APIKey,
			cfg.LLM.HuggingFace.Model,
			llm.WithHFBaseURL(cfg.LLM.HuggingFace.BaseURL),
			llm.WithHFHTTPClient(&http.Client{Timeout: cfg.LLM.Timeout}),
			llm.WithHFTopP(cfg.LLM.HuggingFace.TopP),
		)
	} else {
		log.Warn("huggingface api key missing, analysis and chat disabled")
	}

	if cfg.LLM.Groq.APIKey != "" {
		pcfg.Summarizer = llm.NewGroqBackend(
			cfg.LLM.Groq.APIKey,
			cfg.LLM.Groq.Model,
			llm.WithGroqBaseURL(cfg.LLM.Groq.BaseURL),
			llm.WithGroqHTTPClient(&http.Client{Timeout: cfg.LLM.Timeout}),
		)
		browserOpts := []browser.ChromeOption{
			browser.WithPageTimeout(cfg.Browser.PageTimeout),
		}
		if cfg.Browser.ChromePath != "" {
			browserOpts = append(browserOpts, browser.WithExecPath(cfg.Browser.ChromePath))
		}
		pcfg.Fetcher = browser.NewChromeFetcher(browserOpts...)
	} else {
		log.Warn("groq api key missing, article summaries disabled")
	}

	return pipeline.New(pcfg)
}

// buildScheduler assembles the trend refresh scheduler. Returns nil when no
// trend dataset or cities are configured.
func buildScheduler(
	cfg *config.Config,
	st store.Store,
	pipe *pipeline.Pipeline,
	log *slog.Logger,
) (*engine.Scheduler, error) {
	if cfg.Schedule.TrendDatasetPath == "" || len(cfg.Pipeline.TrendCities) == 0 {
		log.Info("trend refresh disabled", "reason", "no dataset or cities configured")
		return nil, nil
	}

	src, err := engine.NewFileTrendSource(cfg.Schedule.TrendDatasetPath)
	if err != nil {
		return nil, fmt.Errorf("loading trend dataset: %w", err)
	}

	var notifier notify.Notifier
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	} else {
		notifier = notify.NewNoOpNotifier(log)
	}

	eng := engine.NewEngine(st, pipe, src, notifier,
		engine.WithLogger(log),
		engine.WithCities(cfg.Pipeline.TrendCities),
		engine.WithMaxAnalysisAge(cfg.Schedule.TrendRefreshInterval),
	)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.TrendRefreshInterval, log)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	return sched, nil
}
