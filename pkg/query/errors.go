package query

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrDisabled is returned by Fetch when the call is gated off via
	// WithEnabled(false) and no cached value exists to serve.
	ErrDisabled = errors.New("query: fetch disabled")

	// ErrClosed is returned when an operation is attempted on a closed
	// client.
	ErrClosed = errors.New("query: client closed")
)
