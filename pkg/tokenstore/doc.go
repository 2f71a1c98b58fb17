// Package tokenstore owns the session credential: one opaque bearer
// token and an advisory user snapshot, set on login, cleared on logout
// or failed session resolution.
//
// Two implementations share the [Store] interface: [Memory] for tests
// and ephemeral sessions, and [File] which persists under a directory
// so the credential survives restarts.
//
// Expiry is deliberately not tracked. The backend decides validity; the
// first authenticated call that fails is the signal that the stored
// token is dead.
package tokenstore
