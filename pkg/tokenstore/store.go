package tokenstore

// Store holds the current session credential: a single opaque bearer
// token, plus a best-effort snapshot of the user it belongs to. The
// token's validity is never tracked locally; the backend is
// authoritative and staleness is discovered by the first authenticated
// call that fails.
type Store interface {
	// Token returns the persisted token, or false if none exists or
	// the storage backend is unavailable.
	Token() (string, bool)

	// SetToken persists the token.
	SetToken(token string) error

	// Snapshot returns the cached user snapshot, if any. The snapshot
	// is advisory only and must never be treated as an authenticated
	// session on its own.
	Snapshot() ([]byte, bool)

	// SetSnapshot stores a user snapshot alongside the token.
	SetSnapshot(data []byte) error

	// Clear removes the token and any cached user snapshot.
	Clear() error
}
