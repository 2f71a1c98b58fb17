package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/nbmdigital/siteclient/pkg/api"
	"github.com/nbmdigital/siteclient/pkg/apiclient"
	"github.com/nbmdigital/siteclient/pkg/query"
	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

// State is the observable phase of session resolution.
type State int

const (
	// StateUnresolved means token presence has not been checked yet.
	StateUnresolved State = iota

	// StateResolving means a token exists and its owner is being
	// confirmed with the backend.
	StateResolving

	// StateResolved means the session is settled: either authenticated
	// with a user, or explicitly unauthenticated.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	}
	return "unknown"
}

// Resolver owns session state: it bootstraps from the token store,
// confirms the session with the backend, and performs login/logout.
// All authorization flags derive from the resolved user; no consumer
// may act on them before the state reaches StateResolved.
type Resolver struct {
	mu    sync.Mutex
	state State
	user  *api.User

	auth   *api.Auth
	tokens tokenstore.Store
	cache  *query.Client
	log    *slog.Logger

	resolved  chan struct{}
	closeOnce sync.Once
}

// New creates a resolver. Call Resolve to bootstrap the session.
func New(auth *api.Auth, tokens tokenstore.Store, cache *query.Client, opts ...Option) *Resolver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Resolver{
		auth:     auth,
		tokens:   tokens,
		cache:    cache,
		log:      o.log,
		resolved: make(chan struct{}),
	}
}

// Resolve bootstraps the session. The token store is checked
// synchronously: no stored token resolves straight to unauthenticated
// without a network call. With a token present, the current user is
// fetched through the session cache; any failure, expired token or
// transient network error alike, clears the token and resolves
// unauthenticated. That conflation is deliberate and mirrors the
// backend's flat error surface.
//
// Resolve is idempotent; only the first call does work.
func (r *Resolver) Resolve(ctx context.Context) {
	r.mu.Lock()
	if r.state != StateUnresolved {
		r.mu.Unlock()
		return
	}

	if _, ok := r.tokens.Token(); !ok {
		r.mu.Unlock()
		r.setResolved(nil)
		return
	}

	r.state = StateResolving
	r.mu.Unlock()

	user, err := query.Fetch(ctx, r.cache, api.KeyAuthMe(), r.fetchMe, query.WithRetries(0))
	if err != nil {
		status := 0
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		r.log.WarnContext(ctx, "session resolution failed, clearing token",
			slog.Int("status", status),
			slog.String("error", err.Error()))

		if clearErr := r.tokens.Clear(); clearErr != nil {
			r.log.ErrorContext(ctx, "failed to clear token store", slog.String("error", clearErr.Error()))
		}
		r.setResolved(nil)
		return
	}

	r.setResolved(user)
}

func (r *Resolver) fetchMe(ctx context.Context) (*api.User, error) {
	user, err := r.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, ErrInvalidResponse
	}
	return user, nil
}

// Login authenticates and establishes the session. On success the
// token is persisted, the session cache is seeded optimistically with
// the user returned by the login call, and a confirming refetch is
// kicked off in the background; the refetch result, when it lands, is
// authoritative.
func (r *Resolver) Login(ctx context.Context, email, password string) error {
	result, err := r.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if result.Token == "" || result.User.ID == "" {
		return ErrInvalidResponse
	}

	if err := r.tokens.SetToken(result.Token); err != nil {
		return err
	}
	if snapshot, marshalErr := json.Marshal(result.User); marshalErr == nil {
		if err := r.tokens.SetSnapshot(snapshot); err != nil {
			r.log.WarnContext(ctx, "failed to store user snapshot", slog.String("error", err.Error()))
		}
	}

	user := result.User
	query.Seed(r.cache, api.KeyAuthMe(), &user)

	r.mu.Lock()
	r.user = &user
	r.state = StateResolved
	r.mu.Unlock()
	r.closeOnce.Do(func() { close(r.resolved) })

	r.cache.Invalidate(ctx, api.KeyAuthMe())
	go r.confirm(context.WithoutCancel(ctx))

	return nil
}

// confirm replaces the provisional login seed with the
// backend-confirmed user. A confirmation failure is logged but does
// not tear the session down; the next resolution cycle settles it.
func (r *Resolver) confirm(ctx context.Context) {
	if _, ok := r.tokens.Token(); !ok {
		return
	}

	user, err := query.Fetch(ctx, r.cache, api.KeyAuthMe(), r.fetchMe, query.WithRetries(0))
	if err != nil {
		r.log.WarnContext(ctx, "session confirmation failed", slog.String("error", err.Error()))
		return
	}

	r.mu.Lock()
	r.user = user
	r.mu.Unlock()
}

// Logout tears the session down. The server-side call is best-effort:
// whatever its outcome, the token store and the entire query cache are
// cleared and the session resolves unauthenticated. A client must
// never be left looking authenticated after Logout returns.
func (r *Resolver) Logout(ctx context.Context) error {
	if err := r.auth.Logout(ctx); err != nil {
		r.log.DebugContext(ctx, "server-side logout failed, proceeding with local teardown",
			slog.String("error", err.Error()))
	}

	clearErr := r.tokens.Clear()
	r.cache.Clear()

	r.mu.Lock()
	r.user = nil
	r.state = StateResolved
	r.mu.Unlock()
	r.closeOnce.Do(func() { close(r.resolved) })

	return clearErr
}

// ChangePassword updates the current user's password.
func (r *Resolver) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return r.auth.ChangePassword(ctx, oldPassword, newPassword)
}

func (r *Resolver) setResolved(user *api.User) {
	r.mu.Lock()
	r.user = user
	r.state = StateResolved
	r.mu.Unlock()
	r.closeOnce.Do(func() { close(r.resolved) })
}

// State returns the current resolution phase.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// User returns the resolved user, or nil while unresolved or
// unauthenticated.
func (r *Resolver) User() *api.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.user == nil {
		return nil
	}
	u := *r.user
	return &u
}

// IsAuthenticated reports whether a user is attached to the session.
func (r *Resolver) IsAuthenticated() bool {
	return r.User() != nil
}

// IsAdmin reports whether the session's role grants admin capability
// (admin or superadmin).
func (r *Resolver) IsAdmin() bool {
	u := r.User()
	return u != nil && u.Role.IsAdmin()
}

// IsSuperAdmin reports whether the session's role is exactly
// superadmin.
func (r *Resolver) IsSuperAdmin() bool {
	u := r.User()
	return u != nil && u.Role.IsSuperAdmin()
}

// Wait blocks until the session reaches StateResolved or the context
// is done.
func (r *Resolver) Wait(ctx context.Context) error {
	select {
	case <-r.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
