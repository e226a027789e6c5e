// ABOUTME: Tests for the TTL cache
// ABOUTME: Covers hits, expiration, and invalidation

package cache

import (
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("rankings", []string{"a", "b"})
	val, ok := c.Get("rankings")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got := val.([]string); len(got) != 2 {
		t.Errorf("expected 2 entries, got %d", len(got))
	}
}

func TestMiss(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	if _, ok := c.Get("absent"); ok {
		t.Error("expected cache miss")
	}
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.SetWithTTL("profile", "data", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("profile"); ok {
		t.Error("expected entry to expire")
	}
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("profile", "data")
	c.Invalidate("profile")
	if _, ok := c.Get("profile"); ok {
		t.Error("expected entry to be invalidated")
	}
}
