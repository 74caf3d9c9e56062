// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Firecrawl     FirecrawlConfig     `yaml:"firecrawl"`
	LLM           LLMConfig           `yaml:"llm"`
	Browser       BrowserConfig       `yaml:"browser"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings for the catalog store.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// FirecrawlConfig defines the listing search provider settings. An empty
// APIKey does not fail config load; the search-backed endpoints report
// "service not configured" instead.
type FirecrawlConfig struct {
	APIKey    string          `yaml:"api_key"`
	BaseURL   string          `yaml:"base_url"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines search provider rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// LLMConfig defines the completion provider settings. HuggingFace serves the
// analysis and chat paths; Groq serves the article summarizer.
type LLMConfig struct {
	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	Groq        GroqConfig        `yaml:"groq"`
	Timeout     time.Duration     `yaml:"timeout"`
}

// HuggingFaceConfig defines HuggingFace inference API settings.
type HuggingFaceConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
}

// GroqConfig defines Groq (OpenAI-compatible) chat API settings.
type GroqConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// BrowserConfig defines headless-browser settings for article fetching.
type BrowserConfig struct {
	ChromePath      string        `yaml:"chrome_path"`
	PageTimeout     time.Duration `yaml:"page_timeout"`
	MinContentChars int           `yaml:"min_content_chars"`
	MaxContentChars int           `yaml:"max_content_chars"`
}

// PipelineConfig defines orchestration policy for the live search pipeline.
type PipelineConfig struct {
	TrendRetries   int           `yaml:"trend_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	BlockedHosts   []string      `yaml:"blocked_hosts"`
	TrendCities    []string      `yaml:"trend_cities"`
}

// ScheduleConfig defines cron intervals for the trend cache refresher.
type ScheduleConfig struct {
	TrendRefreshInterval time.Duration `yaml:"trend_refresh_interval"`
	TrendDatasetPath     string        `yaml:"trend_dataset_path"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TelemetryConfig defines OTLP trace export settings.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyFirecrawlDefaults(&cfg.Firecrawl)
	applyLLMDefaults(&cfg.LLM)
	applyBrowserDefaults(&cfg.Browser)
	applyPipelineDefaults(&cfg.Pipeline)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 120 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyFirecrawlDefaults(f *FirecrawlConfig) {
	if f.BaseURL == "" {
		f.BaseURL = "https://api.firecrawl.dev"
	}
	if f.Timeout == 0 {
		f.Timeout = 30 * time.Second
	}
	if f.RateLimit.PerSecond == 0 {
		f.RateLimit.PerSecond = 2.0
	}
	if f.RateLimit.Burst == 0 {
		f.RateLimit.Burst = 5
	}
	if f.RateLimit.DailyLimit == 0 {
		f.RateLimit.DailyLimit = 1000
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Timeout == 0 {
		l.Timeout = 60 * time.Second
	}
	hf := &l.HuggingFace
	if hf.BaseURL == "" {
		hf.BaseURL = "https://api-inference.huggingface.co"
	}
	if hf.Model == "" {
		hf.Model = "HuggingFaceH4/zephyr-7b-beta"
	}
	if hf.MaxTokens == 0 {
		hf.MaxTokens = 800
	}
	if hf.Temperature == 0 {
		hf.Temperature = 0.7
	}
	if hf.TopP == 0 {
		hf.TopP = 0.95
	}
	g := &l.Groq
	if g.BaseURL == "" {
		g.BaseURL = "https://api.groq.com/openai"
	}
	if g.Model == "" {
		g.Model = "qwen/qwen3-32b"
	}
}

func applyBrowserDefaults(b *BrowserConfig) {
	if b.PageTimeout == 0 {
		b.PageTimeout = 60 * time.Second
	}
	if b.MinContentChars == 0 {
		b.MinContentChars = 200
	}
	if b.MaxContentChars == 0 {
		b.MaxContentChars = 20000
	}
}

func applyPipelineDefaults(p *PipelineConfig) {
	if p.TrendRetries == 0 {
		p.TrendRetries = 2
	}
	if p.RetryBaseDelay == 0 {
		p.RetryBaseDelay = 2 * time.Second
	}
	if len(p.BlockedHosts) == 0 {
		p.BlockedHosts = []string{"squareyards.ae"}
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.TrendRefreshInterval == 0 {
		s.TrendRefreshInterval = 6 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if cfg.Browser.MinContentChars < 0 {
		errs = append(errs, fmt.Errorf("browser.min_content_chars must not be negative"))
	}
	if cfg.Browser.MaxContentChars < cfg.Browser.MinContentChars {
		errs = append(errs, fmt.Errorf(
			"browser.max_content_chars must be >= browser.min_content_chars",
		))
	}

	if cfg.Pipeline.TrendRetries < 0 {
		errs = append(errs, fmt.Errorf("pipeline.trend_retries must not be negative"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, fmt.Errorf(
			"telemetry.endpoint is required when telemetry is enabled",
		))
	}

	return errors.Join(errs...)
}
