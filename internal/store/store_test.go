// ABOUTME: Tests for the local key-value store
// ABOUTME: Covers persistence, absent entries, and malformed files

package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAndGet(t *testing.T) {
	s := New(t.TempDir())

	if err := s.Set(KeyIDToken, "tok-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := s.Get(KeyIDToken)
	if !ok {
		t.Fatal("expected token to be present")
	}
	if got != "tok-123" {
		t.Errorf("expected tok-123, got %s", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := New(t.TempDir())

	if _, ok := s.Get(KeyUID); ok {
		t.Error("expected missing key to read as absent")
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s1 := New(dir)
	if err := s1.Set(KeyName, "Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s2 := New(dir)
	got, ok := s2.Get(KeyName)
	if !ok || got != "Alice" {
		t.Errorf("expected Alice after reload, got %q (present=%v)", got, ok)
	}
}

func TestMalformedFileReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := New(dir)
	if _, ok := s.Get(KeyIDToken); ok {
		t.Error("expected malformed file to read as absent, not error")
	}

	// Writing after corruption starts fresh
	if err := s.Set(KeyUID, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := s.Get(KeyUID); got != "u1" {
		t.Errorf("expected u1, got %q", got)
	}
}

func TestEmptyValueReadsAsAbsent(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Set(KeyProfilePhoto, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Get(KeyProfilePhoto); ok {
		t.Error("expected empty value to read as absent")
	}
}

func TestClearCredentials(t *testing.T) {
	s := New(t.TempDir())
	s.Set(KeyIDToken, "tok")
	s.Set(KeyUID, "u1")
	s.Set(KeyName, "Alice")
	s.Set(KeyPreferredTheme, "dark")

	if err := s.ClearCredentials(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := s.Token(); ok {
		t.Error("expected token cleared")
	}
	if _, ok := s.Get(KeyUID); ok {
		t.Error("expected uid cleared")
	}
	if got, ok := s.Get(KeyPreferredTheme); !ok || got != "dark" {
		t.Error("expected theme preference to survive sign-out")
	}
}
