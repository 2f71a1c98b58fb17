package siteclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nbmdigital/siteclient/pkg/logger"
	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

// Option configures the client.
type Option func(*options)

type options struct {
	log        *slog.Logger
	env        logger.Environment
	tokens     tokenstore.Store
	tokenDir   string
	httpClient *http.Client
	staleTime  time.Duration
	gcTime     time.Duration
	gcInterval time.Duration
}

func defaultOptions() *options {
	return &options{
		log:        logger.NewNope(),
		env:        logger.Production,
		gcInterval: -1, // keep the cache's own default
	}
}

// WithLogger sets the client-wide logger. All composed layers share
// it.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithEnvironment selects the environment profile. Development enables
// request/response wire logs on the transport.
func WithEnvironment(env logger.Environment) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithTokenStore sets the credential store. Takes precedence over
// WithTokenDir.
func WithTokenStore(s tokenstore.Store) Option {
	return func(o *options) {
		o.tokens = s
	}
}

// WithTokenDir persists credentials under dir instead of keeping them
// in memory.
func WithTokenDir(dir string) Option {
	return func(o *options) {
		o.tokenDir = dir
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithStaleTime overrides the cache-wide freshness window.
func WithStaleTime(d time.Duration) Option {
	return func(o *options) {
		o.staleTime = d
	}
}

// WithGCTime overrides the cache-wide eviction window.
func WithGCTime(d time.Duration) Option {
	return func(o *options) {
		o.gcTime = d
	}
}

// WithGCInterval overrides how often the cache janitor runs; zero
// disables collection.
func WithGCInterval(d time.Duration) Option {
	return func(o *options) {
		o.gcInterval = d
	}
}
