package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry error-reporting configuration.
type SentryConfig struct {
	DSN         string
	Environment string
}

// NewWithSentry creates a logger that writes to the environment's base
// handler and forwards warnings and errors to Sentry. If the DSN is
// empty or initialization fails, it falls back to local-only logging so
// the same code path works with and without Sentry configured.
func NewWithSentry(env Environment, cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	base := baseHandler(env)

	if cfg.DSN == "" {
		return slog.New(newContextHandler(base, extractors...))
	}

	environment := cfg.Environment
	if environment == "" {
		environment = string(env)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(newContextHandler(base, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(newContextHandler(newFanoutHandler(base, sentryHandler), extractors...))
}
