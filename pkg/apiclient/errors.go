package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for transport failures.
var (
	// ErrNetwork marks failures where no usable HTTP response was
	// obtained: DNS errors, refused connections, timeouts, or a body
	// that could not be parsed as JSON.
	ErrNetwork = errors.New("apiclient: network failure")
)

// genericMessage mirrors the backend-agnostic fallback used when an
// error response carries no message field.
const genericMessage = "An error occurred"

// networkMessage is the uniform user-facing message for transport-level
// failures.
const networkMessage = "Network error"

// Error is the uniform failure result for every request. HTTP failures
// carry the server's status and message; transport failures carry
// status 500, a generic message, and wrap ErrNetwork.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("apiclient: %s (status %d): %v", e.Message, e.Status, e.cause)
	}
	return fmt.Sprintf("apiclient: %s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsAuthError reports whether the error is an HTTP 401 or 403 response.
func (e *Error) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

func newHTTPError(status int, message string) *Error {
	if message == "" {
		message = genericMessage
	}
	return &Error{Status: status, Message: message}
}

func newNetworkError(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Message: networkMessage,
		cause:   errors.Join(ErrNetwork, cause),
	}
}
