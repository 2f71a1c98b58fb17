package logger

import (
	"log/slog"
	"os"
)

// Environment selects the logging profile.
type Environment string

const (
	// Development logs human-readable text at debug level, including
	// request/response wire logs from the transport client.
	Development Environment = "development"

	// Production logs JSON at info level. Wire logs are suppressed.
	Production Environment = "production"
)

// IsDevelopment reports whether the environment enables debug output.
func (e Environment) IsDevelopment() bool {
	return e == Development
}

// New creates a logger for the given environment with optional context
// extractors. Development uses a text handler at debug level on stderr;
// anything else uses a JSON handler at info level on stdout.
func New(env Environment, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(newContextHandler(baseHandler(env), extractors...))
}

func baseHandler(env Environment) slog.Handler {
	if env.IsDevelopment() {
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
