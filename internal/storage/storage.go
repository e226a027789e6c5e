// ABOUTME: Object storage client for photo uploads
// ABOUTME: Uploads image bytes to purpose-namespaced paths, returns durable URLs

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TokenSource mirrors the API client's token access.
type TokenSource interface {
	Token() (string, bool)
}

// Client uploads image blobs and resolves durable download URLs.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	now        func() time.Time
}

// New creates a storage client for the given base URL.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		tokens: tokens,
		now:    time.Now,
	}
}

// SetTimeout overrides the transport timeout for uploads and deletes.
// Non-positive values keep the default.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// UploadProfilePhoto stores a profile image and returns its URL.
func (c *Client) UploadProfilePhoto(ctx context.Context, uid string, data []byte) (string, error) {
	path := fmt.Sprintf("profile-photos/%s_%d.jpg", uid, c.now().UnixMilli())
	return c.upload(ctx, path, data)
}

// UploadSessionPhoto stores one photo of a session and returns its URL.
// Photos are namespaced per user and keyed by session, index, and
// timestamp so retries never collide.
func (c *Client) UploadSessionPhoto(ctx context.Context, uid, sessionID string, index int, data []byte) (string, error) {
	path := fmt.Sprintf("session-photos/%s/%s_%d_%d.jpg", uid, sessionID, index, c.now().UnixMilli())
	return c.upload(ctx, path, data)
}

// upload sends the blob and returns the download URL reported by the
// storage service.
func (c *Client) upload(ctx context.Context, objectPath string, data []byte) (string, error) {
	endpoint := c.baseURL + "/upload?path=" + url.QueryEscape(objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot reach storage at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("storage returned status %d", resp.StatusCode)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("invalid response from storage: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("storage returned no download url")
	}
	return out.URL, nil
}

// DeleteByURL removes a previously uploaded object by its download URL.
func (c *Client) DeleteByURL(ctx context.Context, downloadURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("storage returned status %d", resp.StatusCode)
	}
	return nil
}
