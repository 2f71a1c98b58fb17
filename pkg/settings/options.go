package settings

import "time"

// Option configures the settings projection.
type Option func(*Settings)

// WithStaleTime overrides how long the cached settings list is served
// without a refetch.
func WithStaleTime(d time.Duration) Option {
	return func(s *Settings) {
		if d > 0 {
			s.staleTime = d
		}
	}
}

// WithGCTime overrides how long the unused cached list survives before
// collection.
func WithGCTime(d time.Duration) Option {
	return func(s *Settings) {
		if d > 0 {
			s.gcTime = d
		}
	}
}
