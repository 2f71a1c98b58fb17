package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nbmdigital/siteclient/pkg/logger"
)

// Environment variable names. Environment always wins over the config
// file so that deployments can override a checked-in YAML.
const (
	EnvBaseURL     = "SITECLIENT_BASE_URL"
	EnvEnvironment = "SITECLIENT_ENV"
	EnvSentryDSN   = "SITECLIENT_SENTRY_DSN"
	EnvStaleTime   = "SITECLIENT_STALE_TIME"
	EnvGCTime      = "SITECLIENT_GC_TIME"
	EnvTokenDir    = "SITECLIENT_TOKEN_DIR"
)

// ErrMissingBaseURL is returned when no backend base URL is configured
// through any source.
var ErrMissingBaseURL = errors.New("config: base URL is required")

// Config holds everything needed to construct a client.
type Config struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com/api".
	BaseURL string

	// Environment selects logging behavior; see pkg/logger.
	Environment logger.Environment

	// SentryDSN enables Sentry error reporting when non-empty.
	SentryDSN string

	// StaleTime and GCTime override the query cache defaults when
	// positive.
	StaleTime time.Duration
	GCTime    time.Duration

	// TokenDir is where the persistent token store keeps its files.
	// Empty selects the in-memory store.
	TokenDir string
}

// Load builds a Config by merging three sources, lowest precedence
// first: built-in defaults, the optional YAML file at path (skipped
// when path is empty or the file does not exist), and environment
// variables. A .env file in the working directory is folded into the
// environment first, best-effort.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Environment: logger.Production,
	}

	if path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	return cfg, nil
}

// fileConfig is the YAML shape; durations are strings in Go duration
// syntax ("5m", "1h30m").
type fileConfig struct {
	BaseURL     string `yaml:"base_url"`
	Environment string `yaml:"environment"`
	SentryDSN   string `yaml:"sentry_dsn"`
	StaleTime   string `yaml:"stale_time"`
	GCTime      string `yaml:"gc_time"`
	TokenDir    string `yaml:"token_dir"`
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Environment != "" {
		cfg.Environment = logger.Environment(fc.Environment)
	}
	if fc.SentryDSN != "" {
		cfg.SentryDSN = fc.SentryDSN
	}
	if fc.TokenDir != "" {
		cfg.TokenDir = fc.TokenDir
	}

	for _, d := range []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"stale_time", fc.StaleTime, &cfg.StaleTime},
		{"gc_time", fc.GCTime, &cfg.GCTime},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("config: parse %s in %s: %w", d.field, path, err)
		}
		*d.dst = parsed
	}

	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Environment = logger.Environment(v)
	}
	if v := os.Getenv(EnvSentryDSN); v != "" {
		cfg.SentryDSN = v
	}
	if v := os.Getenv(EnvTokenDir); v != "" {
		cfg.TokenDir = v
	}

	for _, d := range []struct {
		name string
		dst  *time.Duration
	}{
		{EnvStaleTime, &cfg.StaleTime},
		{EnvGCTime, &cfg.GCTime},
	} {
		v := os.Getenv(d.name)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: parse %s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return nil
}
