package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nbmdigital/siteclient/pkg/api"
	"github.com/nbmdigital/siteclient/pkg/apiclient"
	"github.com/nbmdigital/siteclient/pkg/guard"
	"github.com/nbmdigital/siteclient/pkg/query"
	"github.com/nbmdigital/siteclient/pkg/session"
	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

func userJSON(role string) string {
	return `{
		"id": "1",
		"email": "a@b.com",
		"username": "a",
		"role": "` + role + `",
		"createdAt": "2025-01-01T00:00:00Z",
		"updatedAt": "2025-01-01T00:00:00Z"
	}`
}

func newResolver(t *testing.T, handler http.Handler, token string) *session.Resolver {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemory()
	if token != "" {
		require.NoError(t, tokens.SetToken(token))
	}
	cache := query.NewClient(query.WithGCInterval(0))
	t.Cleanup(func() { cache.Close() })

	transport := apiclient.New(srv.URL, apiclient.WithTokenStore(tokens))
	return session.New(api.NewAuth(transport), tokens, cache)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("pending while session is unresolved", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, http.NotFoundHandler(), "")
		g := guard.New(resolver)

		require.Equal(t, guard.DecisionPending, g.Check())
	})

	t.Run("never redirects while a stored token is being confirmed", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		resolver := newResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			w.Write([]byte(`{"data": ` + userJSON("admin") + `}`))
		}), "tok123")
		g := guard.New(resolver)

		go resolver.Resolve(context.Background())

		// The resolution is deliberately held open; the guard must keep
		// answering pending the entire time, never login-redirect.
		deadline := time.After(100 * time.Millisecond)
	poll:
		for {
			select {
			case <-deadline:
				break poll
			default:
				require.Equal(t, guard.DecisionPending, g.Check(),
					"a resolving session must not be treated as logged out")
				time.Sleep(time.Millisecond)
			}
		}

		close(release)
		decision, err := g.Wait(context.Background())
		require.NoError(t, err)
		require.Equal(t, guard.DecisionAllow, decision)
	})

	t.Run("resolved unauthenticated redirects to login", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, http.NotFoundHandler(), "")
		resolver.Resolve(context.Background())

		g := guard.New(resolver)
		require.Equal(t, guard.DecisionLoginRedirect, g.Check())
	})

	t.Run("resolved admin is allowed", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": ` + userJSON("admin") + `}`))
		}), "tok123")
		resolver.Resolve(context.Background())

		g := guard.New(resolver)
		require.Equal(t, guard.DecisionAllow, g.Check())
	})

	t.Run("admin without superadmin role is denied, not redirected", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": ` + userJSON("admin") + `}`))
		}), "tok123")
		resolver.Resolve(context.Background())

		g := guard.New(resolver, guard.RequireSuperAdmin())
		require.Equal(t, guard.DecisionDenied, g.Check(),
			"an authenticated under-privileged user gets access-denied, not the login route")
	})

	t.Run("superadmin passes the superadmin gate", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": ` + userJSON("superadmin") + `}`))
		}), "tok123")
		resolver.Resolve(context.Background())

		g := guard.New(resolver, guard.RequireSuperAdmin())
		require.Equal(t, guard.DecisionAllow, g.Check())
	})
}

func TestWait(t *testing.T) {
	t.Parallel()

	t.Run("returns context error while resolution hangs", func(t *testing.T) {
		t.Parallel()

		resolver := newResolver(t, http.NotFoundHandler(), "")
		g := guard.New(resolver)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := g.Wait(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
