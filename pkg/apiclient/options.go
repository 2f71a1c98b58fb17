package apiclient

import (
	"log/slog"
	"net/http"

	"github.com/nbmdigital/siteclient/pkg/logger"
	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

// Option configures the client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	tokens     tokenstore.Store
	log        *slog.Logger
	env        logger.Environment
}

func defaultClientOptions() *clientOptions {
	return &clientOptions{
		httpClient: http.DefaultClient,
		log:        logger.NewNope(),
		env:        logger.Production,
	}
}

// WithHTTPClient sets the underlying HTTP client. No client-side
// timeout is configured by default; resolution relies on the underlying
// transport's behavior.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithTokenStore sets the store consulted by AuthRequest for the
// bearer token.
func WithTokenStore(s tokenstore.Store) Option {
	return func(o *clientOptions) {
		o.tokens = s
	}
}

// WithLogger sets the logger and environment. Request/response wire
// logs are emitted only in the development environment.
func WithLogger(log *slog.Logger, env logger.Environment) Option {
	return func(o *clientOptions) {
		if log != nil {
			o.log = log
		}
		o.env = env
	}
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers map[string]string
}

// WithHeader sets a header on the request, overriding any default with
// the same name.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}
