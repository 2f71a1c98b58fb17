package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

// Client is the single chokepoint for outbound HTTP calls to the
// backend. It normalizes response envelopes and maps every failure to
// *Error; Request and AuthRequest never panic and never return a
// non-*Error failure.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
	log     *slog.Logger
	opts    *clientOptions
}

// New creates a client for the given base URL.
//
// Example:
//
//	c := apiclient.New("https://api.example.com",
//	    apiclient.WithTokenStore(store),
//	    apiclient.WithLogger(log, logger.Development),
//	)
func New(baseURL string, opts ...Option) *Client {
	o := defaultClientOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    o.httpClient,
		tokens:  o.tokens,
		log:     o.log,
		opts:    o,
	}
}

// Request issues an unauthenticated call. The body, if non-nil, is
// JSON-encoded. Headers supplied via WithHeader override the default
// Content-Type.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, method, path, body, false, opts)
}

// AuthRequest issues a call with the current bearer token attached, if
// one exists in the token store. A missing token is not an error here:
// the backend rejects the call and that rejection flows back as an
// *Error like any other HTTP failure.
func (c *Client) AuthRequest(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, method, path, body, true, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, opts []RequestOption) (*Response, error) {
	reqID := uuid.NewString()
	ctx = withRequestID(ctx, reqID)

	var payload io.Reader
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, newNetworkError(fmt.Errorf("encode request body: %w", err))
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, newNetworkError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if authed && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	// Caller headers win over defaults, including Authorization.
	ro := &requestOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	for k, v := range ro.headers {
		req.Header.Set(k, v)
	}

	c.logRequest(ctx, req, encoded)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	c.logResponse(ctx, resp.StatusCode, raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, errorMessage(raw))
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return &Response{Status: resp.StatusCode}, nil
	}
	if !json.Valid(raw) {
		return nil, newNetworkError(fmt.Errorf("invalid JSON body (status %d)", resp.StatusCode))
	}

	return &Response{Data: unwrapEnvelope(raw), Status: resp.StatusCode}, nil
}

// errorMessage extracts the server-supplied message from a failure
// body, preferring "message" over "error", with a generic fallback.
func errorMessage(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	return genericMessage
}

// Wire logging is development-only: request and response bodies can
// carry credentials and user data.
func (c *Client) logRequest(ctx context.Context, req *http.Request, body []byte) {
	if !c.opts.env.IsDevelopment() {
		return
	}
	c.log.DebugContext(ctx, "api request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("body", string(body)))
}

func (c *Client) logResponse(ctx context.Context, status int, body []byte) {
	if !c.opts.env.IsDevelopment() {
		return
	}
	c.log.DebugContext(ctx, "api response",
		slog.Int("status", status),
		slog.String("body", string(body)))
}
