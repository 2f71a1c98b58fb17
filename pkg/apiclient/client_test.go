package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nbmdigital/siteclient/pkg/apiclient"
	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestRequest_EnvelopeUnwrapping(t *testing.T) {
	t.Parallel()

	t.Run("unwraps one data level", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": {"id": "1"}}`))
		})
		c := apiclient.New(srv.URL)

		resp, err := c.Request(context.Background(), http.MethodGet, "/thing", nil)
		require.NoError(t, err)
		require.JSONEq(t, `{"id": "1"}`, string(resp.Data))
	})

	t.Run("body without data key passes through verbatim", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": "1", "title": "hello"}`))
		})
		c := apiclient.New(srv.URL)

		resp, err := c.Request(context.Background(), http.MethodGet, "/thing", nil)
		require.NoError(t, err)
		require.JSONEq(t, `{"id": "1", "title": "hello"}`, string(resp.Data))
	})

	t.Run("double nesting unwraps exactly once", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": {"data": [{"id": "1"}], "pagination": {"page": 1}}}`))
		})
		c := apiclient.New(srv.URL)

		resp, err := c.Request(context.Background(), http.MethodGet, "/admin/users", nil)
		require.NoError(t, err)
		require.JSONEq(t, `{"data": [{"id": "1"}], "pagination": {"page": 1}}`, string(resp.Data))
	})

	t.Run("array body passes through", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 1}]`))
		})
		c := apiclient.New(srv.URL)

		resp, err := c.Request(context.Background(), http.MethodGet, "/site-settings", nil)
		require.NoError(t, err)
		require.JSONEq(t, `[{"id": 1}]`, string(resp.Data))
	})

	t.Run("present but null data counts as the payload", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": null}`))
		})
		c := apiclient.New(srv.URL)

		resp, err := c.Request(context.Background(), http.MethodGet, "/thing", nil)
		require.NoError(t, err)
		require.Equal(t, "null", string(resp.Data))
	})
}

func TestRequest_Failures(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx carries server message and status", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Invalid credentials"}`))
		})
		c := apiclient.New(srv.URL)

		_, err := c.Request(context.Background(), http.MethodPost, "/auth/login", nil)
		require.Error(t, err)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.Status)
		require.Equal(t, "Invalid credentials", apiErr.Message)
		require.True(t, apiErr.IsAuthError())
	})

	t.Run("error field used when message is absent", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "bad input"}`))
		})
		c := apiclient.New(srv.URL)

		_, err := c.Request(context.Background(), http.MethodPost, "/thing", nil)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "bad input", apiErr.Message)
	})

	t.Run("unparseable failure body falls back to generic message", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream exploded"))
		})
		c := apiclient.New(srv.URL)

		_, err := c.Request(context.Background(), http.MethodGet, "/thing", nil)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadGateway, apiErr.Status)
		require.Equal(t, "An error occurred", apiErr.Message)
	})

	t.Run("connection failure maps to status 500 network error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // refuse all connections

		c := apiclient.New(srv.URL)
		_, err := c.Request(context.Background(), http.MethodGet, "/thing", nil)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
		require.Equal(t, "Network error", apiErr.Message)
		require.ErrorIs(t, err, apiclient.ErrNetwork)
	})

	t.Run("malformed success body maps to network error", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		})
		c := apiclient.New(srv.URL)

		_, err := c.Request(context.Background(), http.MethodGet, "/thing", nil)
		require.ErrorIs(t, err, apiclient.ErrNetwork)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	})
}

func TestAuthRequest(t *testing.T) {
	t.Parallel()

	t.Run("injects bearer token when present", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"data": {}}`))
		})

		store := tokenstore.NewMemory()
		require.NoError(t, store.SetToken("tok123"))
		c := apiclient.New(srv.URL, apiclient.WithTokenStore(store))

		_, err := c.AuthRequest(context.Background(), http.MethodGet, "/auth/me", nil)
		require.NoError(t, err)
		require.Equal(t, "Bearer tok123", gotAuth)
	})

	t.Run("omits header when no token stored", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"data": {}}`))
		})

		c := apiclient.New(srv.URL, apiclient.WithTokenStore(tokenstore.NewMemory()))

		_, err := c.AuthRequest(context.Background(), http.MethodGet, "/auth/me", nil)
		require.NoError(t, err)
		require.Empty(t, gotAuth)
	})

	t.Run("caller headers override defaults", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotContentType string
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			w.Write([]byte(`{"data": {}}`))
		})

		store := tokenstore.NewMemory()
		require.NoError(t, store.SetToken("tok123"))
		c := apiclient.New(srv.URL, apiclient.WithTokenStore(store))

		_, err := c.AuthRequest(context.Background(), http.MethodGet, "/auth/me", nil,
			apiclient.WithHeader("Authorization", "Bearer other"),
			apiclient.WithHeader("Content-Type", "text/plain"))
		require.NoError(t, err)
		require.Equal(t, "Bearer other", gotAuth)
		require.Equal(t, "text/plain", gotContentType)
	})
}

func TestRequest_Body(t *testing.T) {
	t.Parallel()

	t.Run("encodes body as JSON with request ID header", func(t *testing.T) {
		t.Parallel()

		var gotBody map[string]string
		var gotReqID string
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			gotReqID = r.Header.Get("X-Request-ID")
			w.Write([]byte(`{"data": {}}`))
		})
		c := apiclient.New(srv.URL)

		_, err := c.Request(context.Background(), http.MethodPost, "/auth/login",
			map[string]string{"email": "a@b.com", "password": "secret"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"email": "a@b.com", "password": "secret"}, gotBody)
		require.NotEmpty(t, gotReqID)
	})

	t.Run("unencodable body is a network-class failure", func(t *testing.T) {
		t.Parallel()

		c := apiclient.New("http://127.0.0.1:0")
		_, err := c.Request(context.Background(), http.MethodPost, "/thing", make(chan int))
		require.ErrorIs(t, err, apiclient.ErrNetwork)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	resp := &apiclient.Response{Data: json.RawMessage(`{"id": "7"}`), Status: 200}

	v, err := apiclient.Decode[struct {
		ID string `json:"id"`
	}](resp)
	require.NoError(t, err)
	require.Equal(t, "7", v.ID)

	_, err = apiclient.Decode[int](resp)
	require.Error(t, err)
	require.False(t, errors.Is(err, apiclient.ErrNetwork))
}
