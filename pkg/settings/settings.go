package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nbmdigital/siteclient/pkg/api"
	"github.com/nbmdigital/siteclient/pkg/query"
)

// Site-wide configuration changes rarely, so the cached list lives
// longer than the default query windows.
const (
	defaultStaleTime = 10 * time.Minute
	defaultGCTime    = 30 * time.Minute
)

// Settings projects typed values out of the cached site-settings list.
// All lookups go through one cached fetch of the full list; individual
// reads never cost a network round-trip while the list is fresh.
type Settings struct {
	remote *api.SiteSettings
	cache  *query.Client

	staleTime time.Duration
	gcTime    time.Duration
}

// New creates a settings projection over the given API module and
// query cache.
func New(remote *api.SiteSettings, cache *query.Client, opts ...Option) *Settings {
	s := &Settings{
		remote:    remote,
		cache:     cache,
		staleTime: defaultStaleTime,
		gcTime:    defaultGCTime,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// All returns every setting visible to the caller, served from cache
// while fresh.
func (s *Settings) All(ctx context.Context) ([]api.SiteSetting, error) {
	return query.Fetch(ctx, s.cache, api.KeySiteSettings(),
		func(ctx context.Context) ([]api.SiteSetting, error) {
			return s.remote.List(ctx)
		},
		query.WithStaleTime(s.staleTime),
		query.WithGCTime(s.gcTime),
	)
}

// ByCategory returns the settings in one category, preserving server
// order.
func (s *Settings) ByCategory(ctx context.Context, category string) ([]api.SiteSetting, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []api.SiteSetting
	for _, setting := range all {
		if setting.Category == category {
			out = append(out, setting)
		}
	}
	return out, nil
}

// Lookup returns the raw setting for a key and whether it exists.
func (s *Settings) Lookup(ctx context.Context, key string) (api.SiteSetting, bool, error) {
	all, err := s.All(ctx)
	if err != nil {
		return api.SiteSetting{}, false, err
	}
	for _, setting := range all {
		if setting.Key == key {
			return setting, true, nil
		}
	}
	return api.SiteSetting{}, false, nil
}

// Invalidate marks the cached list stale so the next read refetches.
// Call it after mutating settings through the admin API.
func (s *Settings) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, api.KeySiteSettings())
}

// Value returns the setting under key decoded into T. A missing key or
// a value that does not decode into T yields the default; a failed
// fetch of the list itself is a real error and is returned as such.
func Value[T any](ctx context.Context, s *Settings, key string, def T) (T, error) {
	setting, ok, err := s.Lookup(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok || len(setting.Value) == 0 {
		return def, nil
	}

	var v T
	if err := json.Unmarshal(setting.Value, &v); err != nil {
		return def, nil
	}
	return v, nil
}
