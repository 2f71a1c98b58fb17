// Package logger provides slog loggers tuned for the SDK's two runtime
// profiles.
//
// In development the logger emits human-readable text at debug level,
// which is what enables the transport client's request/response wire
// logs. In production it emits JSON at info level and wire logs are
// suppressed entirely.
//
//	log := logger.New(logger.Development)
//
// Context extractors inject request-scoped attributes (such as the
// outbound request ID) into every record logged with a matching
// context:
//
//	log := logger.New(logger.Production, apiclient.RequestIDExtractor())
//
// NewWithSentry adds error reporting on top of the base handler and
// degrades gracefully to local-only logging when no DSN is configured:
//
//	log := logger.NewWithSentry(logger.Production, logger.SentryConfig{
//		DSN: os.Getenv("SENTRY_DSN"),
//	})
package logger
