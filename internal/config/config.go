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
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Batch    BatchConfig    `yaml:"batch"`
	Matching MatchingConfig `yaml:"matching"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// CatalogConfig defines where the price catalog comes from and how often
// it is refreshed. Exactly one of URL or Path must be set.
type CatalogConfig struct {
	URL             string        `yaml:"url"`
	Path            string        `yaml:"path"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
}

// LookupConfig defines device lookup provider settings.
type LookupConfig struct {
	BaseURL   string          `yaml:"base_url"`
	APIKey    string          `yaml:"api_key"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines lookup provider rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// BatchConfig defines batch appraisal behavior.
type BatchConfig struct {
	Concurrency int           `yaml:"concurrency"`
	PaceDelay   time.Duration `yaml:"pace_delay"`
}

// MatchingConfig defines matching engine knobs.
type MatchingConfig struct {
	MinGeneration  int    `yaml:"min_generation"`
	MaxGeneration  int    `yaml:"max_generation"`
	DefaultCarrier string `yaml:"default_carrier"`
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
	applyCatalogDefaults(&cfg.Catalog)
	applyLookupDefaults(&cfg.Lookup)
	applyBatchDefaults(&cfg.Batch)
	applyMatchingDefaults(&cfg.Matching)
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
		s.WriteTimeout = 30 * time.Second
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.RefreshInterval == 0 {
		c.RefreshInterval = 15 * time.Minute
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

func applyLookupDefaults(l *LookupConfig) {
	if l.Timeout == 0 {
		l.Timeout = 30 * time.Second
	}
	if l.RateLimit.PerSecond == 0 {
		l.RateLimit.PerSecond = 5.0
	}
	if l.RateLimit.Burst == 0 {
		l.RateLimit.Burst = 10
	}
	if l.RateLimit.DailyLimit == 0 {
		l.RateLimit.DailyLimit = 5000
	}
}

func applyBatchDefaults(b *BatchConfig) {
	if b.Concurrency == 0 {
		b.Concurrency = 5
	}
}

func applyMatchingDefaults(m *MatchingConfig) {
	if m.MinGeneration == 0 {
		m.MinGeneration = 6
	}
	if m.MaxGeneration == 0 {
		m.MaxGeneration = 19
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

	if cfg.Catalog.URL == "" && cfg.Catalog.Path == "" {
		errs = append(errs, fmt.Errorf("one of catalog.url or catalog.path is required"))
	}
	if cfg.Catalog.URL != "" && cfg.Catalog.Path != "" {
		errs = append(errs, fmt.Errorf("catalog.url and catalog.path are mutually exclusive"))
	}

	if cfg.Lookup.BaseURL != "" && cfg.Lookup.APIKey == "" {
		errs = append(errs, fmt.Errorf("lookup.api_key is required when lookup.base_url is set"))
	}

	if cfg.Batch.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("batch.concurrency must not be negative"))
	}

	if cfg.Matching.MinGeneration > cfg.Matching.MaxGeneration {
		errs = append(errs, fmt.Errorf(
			"matching.min_generation (%d) must not exceed matching.max_generation (%d)",
			cfg.Matching.MinGeneration, cfg.Matching.MaxGeneration,
		))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error"))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json"))
	}

	return errors.Join(errs...)
}
