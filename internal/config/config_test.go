package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "https://api.firecrawl.dev", cfg.Firecrawl.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.Firecrawl.Timeout)
				assert.Equal(t, int64(1000), cfg.Firecrawl.RateLimit.DailyLimit)
				assert.Equal(t, "HuggingFaceH4/zephyr-7b-beta", cfg.LLM.HuggingFace.Model)
				assert.Equal(t, 800, cfg.LLM.HuggingFace.MaxTokens)
				assert.InDelta(t, 0.7, cfg.LLM.HuggingFace.Temperature, 0.001)
				assert.Equal(t, "qwen/qwen3-32b", cfg.LLM.Groq.Model)
				assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
				assert.Equal(t, 60*time.Second, cfg.Browser.PageTimeout)
				assert.Equal(t, 200, cfg.Browser.MinContentChars)
				assert.Equal(t, 20000, cfg.Browser.MaxContentChars)
				assert.Equal(t, 2, cfg.Pipeline.TrendRetries)
				assert.Equal(t, 2*time.Second, cfg.Pipeline.RetryBaseDelay)
				assert.Contains(t, cfg.Pipeline.BlockedHosts, "squareyards.ae")
				assert.Equal(t, 6*time.Hour, cfg.Schedule.TrendRefreshInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
  password: "${TEST_DB_PASSWORD}"
firecrawl:
  api_key: "${TEST_FIRECRAWL_KEY}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD":   "secret123",
				"TEST_FIRECRAWL_KEY": "fc-abc",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
				assert.Equal(t, "fc-abc", cfg.Firecrawl.APIKey)
			},
		},
		{
			name: "missing provider keys do not fail load",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Empty(t, cfg.Firecrawl.APIKey)
				assert.Empty(t, cfg.LLM.HuggingFace.APIKey)
			},
		},
		{
			name: "missing database fields",
			yaml: `
database:
  port: 5432
`,
			wantErr: "database.host is required",
		},
		{
			name: "discord enabled without webhook",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required",
		},
		{
			name: "telemetry enabled without endpoint",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
telemetry:
  enabled: true
`,
			wantErr: "telemetry.endpoint is required",
		},
		{
			name:    "invalid YAML",
			yaml:    "database: [not a map",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host: "db", Port: 5433, Name: "estate", User: "app",
		Password: "pw", SSLMode: "require",
	}
	assert.Equal(
		t,
		"host=db port=5433 dbname=estate user=app password=pw sslmode=require",
		d.DSN(),
	)
}
