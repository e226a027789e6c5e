// ABOUTME: Device-local key-value store for auth and preference state
// ABOUTME: Persists plain string entries in an XDG config directory JSON file

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys. These are plain string entries with no schema
// versioning; a missing or malformed entry always reads as absent.
const (
	KeyIDToken        = "idToken"
	KeyUID            = "uid"
	KeyName           = "name"
	KeyProfilePhoto   = "profilePhoto"
	KeyPreferredTheme = "preferredTheme"
)

// Store persists local client state across runs.
type Store struct {
	mu        sync.Mutex
	configDir string
	entries   map[string]string
	loaded    bool
}

// New creates a store backed by the given config directory.
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "parlor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "parlor")
}

func (s *Store) stateFile() string {
	return filepath.Join(s.configDir, "state.json")
}

// load reads the state file into memory. Invalid JSON starts fresh;
// corruption must never surface as an error to callers.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.entries = map[string]string{}

	data, err := os.ReadFile(s.stateFile())
	if err != nil {
		return
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	s.entries = entries
}

func (s *Store) save() error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.stateFile(), data, 0600)
}

// Get returns the value for key, or false if the entry is absent.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	v, ok := s.entries[key]
	if v == "" {
		return "", false
	}
	return v, ok
}

// Set writes a single entry and persists the store.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	s.entries[key] = value
	return s.save()
}

// Delete removes an entry and persists the store.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	delete(s.entries, key)
	return s.save()
}

// ClearCredentials removes the signed-in identity (token, uid, name)
// while leaving preferences like the theme override untouched.
func (s *Store) ClearCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	delete(s.entries, KeyIDToken)
	delete(s.entries, KeyUID)
	delete(s.entries, KeyName)
	delete(s.entries, KeyProfilePhoto)
	return s.save()
}

// Token returns the persisted bearer token, if any. Presence of the
// token is the sole authentication signal the client trusts locally.
func (s *Store) Token() (string, bool) {
	return s.Get(KeyIDToken)
}
