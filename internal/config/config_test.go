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
catalog:
  url: https://sheets.example.com/export.csv
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://sheets.example.com/export.csv", cfg.Catalog.URL)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
catalog:
  path: testdata/catalog.csv
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 15*time.Minute, cfg.Catalog.RefreshInterval)
				assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
				assert.Equal(t, 30*time.Second, cfg.Lookup.Timeout)
				assert.Equal(t, 5.0, cfg.Lookup.RateLimit.PerSecond)
				assert.Equal(t, 10, cfg.Lookup.RateLimit.Burst)
				assert.Equal(t, int64(5000), cfg.Lookup.RateLimit.DailyLimit)
				assert.Equal(t, 5, cfg.Batch.Concurrency)
				assert.Equal(t, 6, cfg.Matching.MinGeneration)
				assert.Equal(t, 19, cfg.Matching.MaxGeneration)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
catalog:
  url: https://sheets.example.com/export.csv
lookup:
  base_url: https://lookup.example.com
  api_key: "${TEST_LOOKUP_KEY}"
`,
			envVars: map[string]string{
				"TEST_LOOKUP_KEY": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Lookup.APIKey)
			},
		},
		{
			name:    "missing catalog source",
			yaml:    `logging: {level: info}`,
			wantErr: "one of catalog.url or catalog.path is required",
		},
		{
			name: "both catalog sources set",
			yaml: `
catalog:
  url: https://sheets.example.com/export.csv
  path: local.csv
`,
			wantErr: "catalog.url and catalog.path are mutually exclusive",
		},
		{
			name: "lookup base_url without api_key",
			yaml: `
catalog:
  url: https://sheets.example.com/export.csv
lookup:
  base_url: https://lookup.example.com
`,
			wantErr: "lookup.api_key is required when lookup.base_url is set",
		},
		{
			name: "min generation above max",
			yaml: `
catalog:
  url: https://sheets.example.com/export.csv
matching:
  min_generation: 20
  max_generation: 19
`,
			wantErr: "matching.min_generation (20) must not exceed matching.max_generation (19)",
		},
		{
			name: "invalid logging level",
			yaml: `
catalog:
  url: https://sheets.example.com/export.csv
logging:
  level: verbose
`,
			wantErr: "logging.level must be one of debug, info, warn, error",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
catalog:
  url: https://sheets.example.com/export.csv
  refresh_interval: 30m
  cache_ttl: 10m
lookup:
  base_url: https://lookup.example.com
  api_key: key
  timeout: 10s
  rate_limit:
    per_second: 2.5
    burst: 5
    daily_limit: 1000
batch:
  concurrency: 8
  pace_delay: 250ms
matching:
  min_generation: 8
  max_generation: 17
  default_carrier: Unlocked
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Minute, cfg.Catalog.RefreshInterval)
				assert.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL)
				assert.Equal(t, "https://lookup.example.com", cfg.Lookup.BaseURL)
				assert.Equal(t, 10*time.Second, cfg.Lookup.Timeout)
				assert.Equal(t, 2.5, cfg.Lookup.RateLimit.PerSecond)
				assert.Equal(t, 5, cfg.Lookup.RateLimit.Burst)
				assert.Equal(t, int64(1000), cfg.Lookup.RateLimit.DailyLimit)
				assert.Equal(t, 8, cfg.Batch.Concurrency)
				assert.Equal(t, 250*time.Millisecond, cfg.Batch.PaceDelay)
				assert.Equal(t, 8, cfg.Matching.MinGeneration)
				assert.Equal(t, 17, cfg.Matching.MaxGeneration)
				assert.Equal(t, "Unlocked", cfg.Matching.DefaultCarrier)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
