// Package guard decides whether a guarded view may render.
//
// The guard never interprets error messages and never redirects while
// the session is still resolving; redirecting early would bounce a
// legitimately authenticated user whose stored token is mid-check. Once
// resolved there are exactly two negative outcomes: unauthenticated
// (login redirect) and authenticated-but-under-privileged (access
// denied).
package guard
