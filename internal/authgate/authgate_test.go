// ABOUTME: Tests for the authentication gate state machine
// ABOUTME: Covers transitions, idempotency, and fail-closed token reads

package authgate

import "testing"

func TestEvaluateTransitions(t *testing.T) {
	tests := []struct {
		name         string
		prev         State
		tokenPresent bool
		inAuthFlow   bool
		wantState    State
		wantRedirect Redirect
	}{
		{"no token outside auth flow redirects to sign-in", StateLoading, false, false, StateUnauthenticated, RedirectSignIn},
		{"no token inside auth flow stays put", StateLoading, false, true, StateUnauthenticated, RedirectNone},
		{"token inside auth flow redirects home", StateLoading, true, true, StateAuthenticated, RedirectHome},
		{"token outside auth flow stays put", StateLoading, true, false, StateAuthenticated, RedirectNone},
		{"sign-out mid-session redirects to sign-in", StateAuthenticated, false, false, StateUnauthenticated, RedirectSignIn},
		{"sign-in from auth flow redirects home", StateUnauthenticated, true, true, StateAuthenticated, RedirectHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, redirect := Evaluate(tt.prev, tt.tokenPresent, tt.inAuthFlow)
			if state != tt.wantState {
				t.Errorf("state = %v, want %v", state, tt.wantState)
			}
			if redirect != tt.wantRedirect {
				t.Errorf("redirect = %v, want %v", redirect, tt.wantRedirect)
			}
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	// First check redirects, second check with unchanged state must not.
	state, redirect := Evaluate(StateLoading, false, false)
	if redirect != RedirectSignIn {
		t.Fatalf("expected RedirectSignIn on first check, got %v", redirect)
	}

	state, redirect = Evaluate(state, false, false)
	if redirect != RedirectNone {
		t.Errorf("expected RedirectNone on repeat check, got %v", redirect)
	}
	if state != StateUnauthenticated {
		t.Errorf("expected state to remain unauthenticated, got %v", state)
	}
}

type tokenFunc func() (string, bool)

func (f tokenFunc) Token() (string, bool) { return f() }

func TestGateChecksToken(t *testing.T) {
	present := false
	g := New(tokenFunc(func() (string, bool) { return "tok", present }))

	if g.State() != StateLoading {
		t.Fatalf("expected initial state loading, got %v", g.State())
	}

	if got := g.Check(false); got != RedirectSignIn {
		t.Errorf("expected RedirectSignIn, got %v", got)
	}
	if got := g.Check(false); got != RedirectNone {
		t.Errorf("expected RedirectNone on unchanged state, got %v", got)
	}

	// Token appears while on the sign-in screen
	present = true
	if got := g.Check(true); got != RedirectHome {
		t.Errorf("expected RedirectHome after sign-in, got %v", got)
	}
	if g.State() != StateAuthenticated {
		t.Errorf("expected authenticated state, got %v", g.State())
	}
}

func TestGateFailsClosedWithoutReader(t *testing.T) {
	g := New(nil)
	if got := g.Check(false); got != RedirectSignIn {
		t.Errorf("expected RedirectSignIn when token cannot be read, got %v", got)
	}
	if g.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated state, got %v", g.State())
	}
}
