// Package api contains the typed domain modules over the transport:
// one module per backend resource (auth, users, articles, site
// settings), one method per operation, with fixed paths and methods.
//
// Modules are deliberately thin: no caching, no token writes, no
// authorization checks. Caching belongs to pkg/query, credential
// ownership to pkg/tokenstore via pkg/session, and role enforcement to
// the backend. The only transformation here is decoding the normalized
// payloads into the domain types, including the users listing, whose
// payload keeps an inner {"data", "pagination"} wrapper after the
// transport's single-level unwrap.
package api
