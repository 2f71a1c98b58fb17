// Package session resolves who the current user is.
//
// The resolver is a small state machine: unresolved (token presence
// unknown) → resolving (token found, backend confirmation in flight) →
// resolved (authenticated with a user, or explicitly unauthenticated).
// No stored token short-circuits straight to resolved/unauthenticated
// without any network traffic.
//
// Failure handling is deliberately blunt: any failure while confirming
// a stored token clears it and resolves unauthenticated, whether the
// token expired or the network blinked. The backend exposes only a
// message string, so the client cannot reliably tell the two apart.
//
// Login seeds the session cache optimistically with the user returned
// by the login endpoint, then invalidates for a confirming refetch;
// the refetch is authoritative if it disagrees. Logout calls the
// backend best-effort and then unconditionally clears the token store
// and the whole query cache; a failed logout request never leaves the
// client looking authenticated.
package session
