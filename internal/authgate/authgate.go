// ABOUTME: Authentication gate deciding which screen group is reachable
// ABOUTME: Explicit three-state machine with idempotent redirect decisions

package authgate

// State is the gate's view of the local authentication signal.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Redirect is the navigation side effect a check may request. Redirects
// replace the active screen; they never push history.
type Redirect int

const (
	RedirectNone Redirect = iota
	RedirectSignIn
	RedirectHome
)

// Evaluate is the pure transition function. It maps the previous state,
// the presence of a persisted token, and whether the active segment is
// inside the auth flow to the next state and an optional redirect.
//
// Redirects fire only when the authenticated flag actually changes
// (or on the first evaluation out of StateLoading); re-running the
// check with unchanged state yields RedirectNone, which prevents
// redirect loops.
func Evaluate(prev State, tokenPresent, inAuthFlow bool) (State, Redirect) {
	next := StateUnauthenticated
	if tokenPresent {
		next = StateAuthenticated
	}

	if next == prev {
		return next, RedirectNone
	}

	switch {
	case next == StateUnauthenticated && !inAuthFlow:
		return next, RedirectSignIn
	case next == StateAuthenticated && inAuthFlow:
		return next, RedirectHome
	}
	return next, RedirectNone
}

// TokenReader reports the persisted token. An error reads as "no
// token": the gate fails closed.
type TokenReader interface {
	Token() (string, bool)
}

// Gate tracks authentication state across segment changes.
type Gate struct {
	state  State
	tokens TokenReader
}

// New creates a gate in the loading state.
func New(tokens TokenReader) *Gate {
	return &Gate{state: StateLoading, tokens: tokens}
}

// State returns the current gate state.
func (g *Gate) State() State {
	return g.state
}

// Check re-reads the token and returns the redirect, if any, for the
// active segment. Safe to call on every segment change.
func (g *Gate) Check(inAuthFlow bool) Redirect {
	present := false
	if g.tokens != nil {
		_, present = g.tokens.Token()
	}

	next, redirect := Evaluate(g.state, present, inAuthFlow)
	g.state = next
	return redirect
}
