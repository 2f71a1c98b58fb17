package guard

import (
	"context"

	"github.com/nbmdigital/siteclient/pkg/api"
	"github.com/nbmdigital/siteclient/pkg/session"
)

// Decision is the guard's verdict for a guarded view.
type Decision int

const (
	// DecisionPending means the session has not resolved yet. The
	// caller renders a non-interactive placeholder and must not
	// redirect: a resolving session with a valid stored token is not
	// "logged out".
	DecisionPending Decision = iota

	// DecisionAllow renders the guarded subtree.
	DecisionAllow

	// DecisionLoginRedirect means the resolved session is
	// unauthenticated; navigate to the login route.
	DecisionLoginRedirect

	// DecisionDenied means the user is authenticated but lacks the
	// required role; show the access-denied view, not the login route.
	DecisionDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionAllow:
		return "allow"
	case DecisionLoginRedirect:
		return "login-redirect"
	case DecisionDenied:
		return "denied"
	}
	return "unknown"
}

// Session is the slice of the session resolver the guard consumes.
type Session interface {
	State() session.State
	User() *api.User
	IsSuperAdmin() bool
	Wait(ctx context.Context) error
}

// Guard gates a view behind authentication and, optionally, the
// superadmin role. The single invariant: no authorization decision
// before the session resolves.
type Guard struct {
	session           Session
	requireSuperAdmin bool
}

// New creates a guard over the given session.
func New(s Session, opts ...Option) *Guard {
	g := &Guard{session: s}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Option configures the guard.
type Option func(*Guard)

// RequireSuperAdmin additionally gates the view on the superadmin
// role. Authenticated users without it get DecisionDenied rather than
// a login redirect: they are logged in, just under-privileged.
func RequireSuperAdmin() Option {
	return func(g *Guard) {
		g.requireSuperAdmin = true
	}
}

// Check returns the current verdict. While the session is unresolved
// or resolving it always returns DecisionPending.
func (g *Guard) Check() Decision {
	if g.session.State() != session.StateResolved {
		return DecisionPending
	}

	if g.session.User() == nil {
		return DecisionLoginRedirect
	}

	if g.requireSuperAdmin && !g.session.IsSuperAdmin() {
		return DecisionDenied
	}

	return DecisionAllow
}

// Wait blocks until the session resolves, then returns the final
// verdict. The returned decision is never DecisionPending.
func (g *Guard) Wait(ctx context.Context) (Decision, error) {
	if err := g.session.Wait(ctx); err != nil {
		return DecisionPending, err
	}
	return g.Check(), nil
}
