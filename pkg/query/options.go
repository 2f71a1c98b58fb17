package query

import (
	"log/slog"
	"time"

	"github.com/nbmdigital/siteclient/pkg/logger"
)

// ClientOption configures the query cache.
type ClientOption func(*clientOptions)

type clientOptions struct {
	staleTime    time.Duration
	gcTime       time.Duration
	gcInterval   time.Duration
	queryRetries int
	log          *slog.Logger
}

func defaultClientOptions() *clientOptions {
	return &clientOptions{
		staleTime:    5 * time.Minute,
		gcTime:       10 * time.Minute,
		gcInterval:   time.Minute,
		queryRetries: 1,
		log:          logger.NewNope(),
	}
}

// WithDefaultStaleTime sets how long a populated entry is served
// without refetching.
// Default: 5 minutes.
func WithDefaultStaleTime(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.staleTime = d
	}
}

// WithDefaultGCTime sets how long an unused entry survives before the
// janitor evicts it.
// Default: 10 minutes.
func WithDefaultGCTime(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.gcTime = d
	}
}

// WithGCInterval sets how often the janitor runs. Zero disables
// garbage collection entirely.
// Default: 1 minute.
func WithGCInterval(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.gcInterval = d
	}
}

// WithQueryRetries sets how many extra attempts a failing query fetch
// gets. Mutations are never retried.
// Default: 1.
func WithQueryRetries(n int) ClientOption {
	return func(o *clientOptions) {
		if n >= 0 {
			o.queryRetries = n
		}
	}
}

// WithLogger sets the cache's logger.
func WithLogger(log *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// FetchOption overrides cache defaults for a single Fetch call.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	staleTime time.Duration
	gcTime    time.Duration
	retries   int
	enabled   bool
}

// WithStaleTime overrides the freshness window for this key.
func WithStaleTime(d time.Duration) FetchOption {
	return func(o *fetchOptions) {
		o.staleTime = d
	}
}

// WithGCTime overrides the eviction window for this key.
func WithGCTime(d time.Duration) FetchOption {
	return func(o *fetchOptions) {
		o.gcTime = d
	}
}

// WithRetries overrides the retry count for this fetch.
func WithRetries(n int) FetchOption {
	return func(o *fetchOptions) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// WithEnabled gates the fetch. When disabled, Fetch serves the cached
// value if one exists and returns ErrDisabled otherwise. Used while a
// precondition (such as a stored token) is still being checked.
func WithEnabled(enabled bool) FetchOption {
	return func(o *fetchOptions) {
		o.enabled = enabled
	}
}
