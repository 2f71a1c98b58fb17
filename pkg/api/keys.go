package api

import "github.com/nbmdigital/siteclient/pkg/query"

// Canonical cache keys for each resource. Mutation handlers invalidate
// these prefixes; readers fetch through them so that list and detail
// caches stay coherent.

// KeyAuthMe keys the current session's user.
func KeyAuthMe() query.Key { return query.K("auth", "me") }

// KeyUsersPrefix keys all user listings and details.
func KeyUsersPrefix() query.Key { return query.K("users") }

// KeyUsers keys one page of the user listing.
func KeyUsers(page, limit int) query.Key { return query.K("users", page, limit) }

// KeyUser keys a single user.
func KeyUser(id string) query.Key { return query.K("users", id) }

// KeyArticles keys the admin article listing.
func KeyArticles() query.Key { return query.K("articles") }

// KeyArticle keys a single article.
func KeyArticle(id string) query.Key { return query.K("articles", id) }

// KeySiteSettings keys the full settings list.
func KeySiteSettings() query.Key { return query.K("siteSettings") }

// KeySiteSetting keys a single setting by ID or key.
func KeySiteSetting(idOrKey string) query.Key { return query.K("siteSettings", idOrKey) }
