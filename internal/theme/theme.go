// ABOUTME: Process-wide theme preference store with persistence
// ABOUTME: Layers a persisted light/dark override over the ambient scheme

package theme

import "sync"

// Scheme is a resolved color scheme.
type Scheme int

const (
	SchemeLight Scheme = iota
	SchemeDark
)

// String returns the string representation of a Scheme.
func (s Scheme) String() string {
	if s == SchemeDark {
		return "dark"
	}
	return "light"
}

func parseScheme(v string) (Scheme, bool) {
	switch v {
	case "light":
		return SchemeLight, true
	case "dark":
		return SchemeDark, true
	}
	return SchemeLight, false
}

// Persister is the slice of the local store the theme needs.
type Persister interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

const persistKey = "preferredTheme"

// Store resolves the effective scheme and notifies subscribers on
// change. The persisted override, when present, wins over the ambient
// scheme reported by the terminal; otherwise the ambient scheme is
// followed reactively.
type Store struct {
	mu       sync.Mutex
	persist  Persister
	override *Scheme
	ambient  Scheme
	subs     map[int]func(Scheme)
	nextSub  int
}

// New creates a store seeded with the ambient scheme. Any persisted
// override is loaded immediately; a malformed entry reads as absent.
func New(persist Persister, ambient Scheme) *Store {
	s := &Store{
		persist: persist,
		ambient: ambient,
		subs:    map[int]func(Scheme){},
	}
	if persist != nil {
		if v, ok := persist.Get(persistKey); ok {
			if scheme, ok := parseScheme(v); ok {
				s.override = &scheme
			}
		}
	}
	return s
}

// Get returns the effective scheme.
func (s *Store) Get() Scheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve()
}

func (s *Store) resolve() Scheme {
	if s.override != nil {
		return *s.override
	}
	return s.ambient
}

// HasOverride reports whether a stored preference is active.
func (s *Store) HasOverride() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.override != nil
}

// Set stores an explicit override, persists it, and notifies
// subscribers.
func (s *Store) Set(scheme Scheme) error {
	s.mu.Lock()
	s.override = &scheme
	var err error
	if s.persist != nil {
		err = s.persist.Set(persistKey, scheme.String())
	}
	resolved := s.resolve()
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, resolved)
	return err
}

// Clear removes the override so the ambient scheme applies again.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.override = nil
	var err error
	if s.persist != nil {
		err = s.persist.Delete(persistKey)
	}
	resolved := s.resolve()
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, resolved)
	return err
}

// SetAmbient records a change in the terminal-reported scheme.
// Subscribers are only notified when it changes the effective scheme.
func (s *Store) SetAmbient(scheme Scheme) {
	s.mu.Lock()
	before := s.resolve()
	s.ambient = scheme
	after := s.resolve()
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if before != after {
		notify(subs, after)
	}
}

// Subscribe registers a change listener and returns a cancel func.
func (s *Store) Subscribe(fn func(Scheme)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) snapshotSubs() []func(Scheme) {
	out := make([]func(Scheme), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Scheme), scheme Scheme) {
	for _, fn := range subs {
		fn(scheme)
	}
}
