// ABOUTME: Tests for the object storage client
// ABOUTME: Verifies path namespacing, auth headers, and error mapping

package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func TestUploadSessionPhoto(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Query().Get("path")
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example/" + gotPath})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := c.UploadSessionPhoto(context.Background(), "u1", "sess-1", 0, []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "session-photos/u1/sess-1_0_1700000000000.jpg"
	if gotPath != want {
		t.Errorf("expected object path %q, got %q", want, gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if string(gotBody) != "jpeg-bytes" {
		t.Errorf("expected body to round-trip, got %q", gotBody)
	}
	if !strings.HasSuffix(url, want) {
		t.Errorf("expected durable URL ending in object path, got %q", url)
	}
}

func TestUploadProfilePhotoPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Query().Get("path")
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example/x"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.now = func() time.Time { return time.UnixMilli(42) }

	if _, err := c.UploadProfilePhoto(context.Background(), "u7", []byte("img")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "profile-photos/u7_42.jpg" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestUploadErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	if _, err := c.UploadProfilePhoto(context.Background(), "u1", []byte("img")); err == nil {
		t.Error("expected error on non-2xx status")
	}
}

func TestUploadMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	if _, err := c.UploadProfilePhoto(context.Background(), "u1", []byte("img")); err == nil {
		t.Error("expected error when storage returns no url")
	}
}

func TestDeleteByURL(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	if err := c.DeleteByURL(context.Background(), server.URL+"/obj"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", gotMethod)
	}
}

func TestSetTimeout(t *testing.T) {
	c := New("http://localhost:9199", nil)
	if c.httpClient.Timeout != 60*time.Second {
		t.Errorf("expected 60s default timeout, got %s", c.httpClient.Timeout)
	}

	c.SetTimeout(10 * time.Second)
	if c.httpClient.Timeout != 10*time.Second {
		t.Errorf("expected 10s after override, got %s", c.httpClient.Timeout)
	}

	c.SetTimeout(-1)
	if c.httpClient.Timeout != 10*time.Second {
		t.Errorf("expected negative override ignored, got %s", c.httpClient.Timeout)
	}
}
