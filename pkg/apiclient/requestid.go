package apiclient

import (
	"context"
	"log/slog"

	"github.com/nbmdigital/siteclient/pkg/logger"
)

type ctxKey int

const requestIDKey ctxKey = iota

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the outbound request ID stored in the context by
// the client, if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// RequestIDExtractor returns a logger extractor that annotates log
// records with the outbound request ID.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := RequestID(ctx); ok {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
