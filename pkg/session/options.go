package session

import (
	"log/slog"

	"github.com/nbmdigital/siteclient/pkg/logger"
)

// Option configures the resolver.
type Option func(*options)

type options struct {
	log *slog.Logger
}

func defaultOptions() *options {
	return &options{log: logger.NewNope()}
}

// WithLogger sets the resolver's logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
