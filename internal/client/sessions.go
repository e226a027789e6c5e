// ABOUTME: Session, feed, like, and comment endpoints
// ABOUTME: Covers session CRUD plus the social mutations on sessions

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SignUp registers a new account. POST /sign_up.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*AuthPayload, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var payload AuthPayload
	if err := c.do(ctx, http.MethodPost, "/sign_up", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SignIn authenticates and returns the token payload. POST /sign_in.
// Persisting the payload is the caller's responsibility.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthPayload, error) {
	body := map[string]string{"email": email, "password": password}
	var payload AuthPayload
	if err := c.do(ctx, http.MethodPost, "/sign_in", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteAccount permanently removes the signed-in account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/account", nil, nil)
}

// CreateSession submits a finished round and returns its id.
func (c *Client) CreateSession(ctx context.Context, session *Session) (string, error) {
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.do(ctx, http.MethodPost, "/sessions", session, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// Sessions returns the signed-in user's sessions, newest first.
func (c *Client) Sessions(ctx context.Context, limit int) ([]Session, error) {
	path := "/sessions"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(fmt.Sprint(limit))
	}
	var resp struct {
		Sessions []Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// DeleteSession removes one of the user's sessions.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(sessionID), nil, nil)
}

// Feed returns shared sessions from friends and league members.
func (c *Client) Feed(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	var resp struct {
		Sessions []Session `json:"sessions"`
	}
	path := "/feed?limit=" + url.QueryEscape(fmt.Sprint(limit))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// ToggleLike flips the caller's like on a session and returns the
// server's authoritative state.
func (c *Client) ToggleLike(ctx context.Context, sessionID string) (*LikeStatus, error) {
	var status LikeStatus
	path := "/sessions/" + url.PathEscape(sessionID) + "/like"
	if err := c.do(ctx, http.MethodPost, path, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Comments returns the ordered comment list for a session.
func (c *Client) Comments(ctx context.Context, sessionID string) ([]Comment, error) {
	var resp struct {
		Comments []Comment `json:"comments"`
	}
	path := "/sessions/" + url.PathEscape(sessionID) + "/comments"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// AddComment posts a comment and returns the created entry.
func (c *Client) AddComment(ctx context.Context, sessionID, text string) (*Comment, error) {
	var comment Comment
	path := "/sessions/" + url.PathEscape(sessionID) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"text": text}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
