// Package settings turns the flat site-settings list into typed
// configuration lookups.
//
// The backend stores settings as rows of arbitrary JSON values. This
// package fetches the whole list once through the query cache and
// answers per-key reads from it, decoding each value into the caller's
// type with a default for missing or malformed entries:
//
//	title, _ := settings.Value(ctx, s, "site_title", "My Site")
//	perPage, _ := settings.Value(ctx, s, "articles_per_page", 10)
//
// Only a failure to fetch the list itself surfaces as an error; a bad
// individual value silently falls back to the default, since one
// malformed row must not take down every consumer of the list.
package settings
