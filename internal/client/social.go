// ABOUTME: League, ranking, friend, and profile endpoints
// ABOUTME: Read-heavy endpoints cache through the optional TTL cache

package client

import (
	"context"
	"net/http"
	"net/url"
)

// CreateLeague creates a league owned by the caller.
func (c *Client) CreateLeague(ctx context.Context, name string) (*LeagueSummary, error) {
	var resp struct {
		League LeagueSummary `json:"league"`
	}
	if err := c.do(ctx, http.MethodPost, "/leagues", map[string]string{"name": name}, &resp); err != nil {
		return nil, err
	}
	return &resp.League, nil
}

// Leagues lists the caller's leagues.
func (c *Client) Leagues(ctx context.Context) ([]LeagueSummary, error) {
	var resp struct {
		Leagues []LeagueSummary `json:"leagues"`
	}
	if err := c.do(ctx, http.MethodGet, "/leagues", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leagues, nil
}

// LeagueDetail fetches the full league view, members and weekly
// challenge included.
func (c *Client) LeagueDetail(ctx context.Context, leagueID string) (*LeagueDetail, error) {
	var resp struct {
		League LeagueDetail `json:"league"`
	}
	if err := c.do(ctx, http.MethodGet, "/leagues/"+url.PathEscape(leagueID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.League, nil
}

// JoinLeague adds the caller to a league.
func (c *Client) JoinLeague(ctx context.Context, leagueID string) error {
	return c.do(ctx, http.MethodPost, "/leagues/"+url.PathEscape(leagueID)+"/join", nil, nil)
}

// SearchLeagues finds leagues by name.
func (c *Client) SearchLeagues(ctx context.Context, query string) ([]LeagueSummary, error) {
	var resp struct {
		Leagues []LeagueSummary `json:"leagues"`
	}
	path := "/leagues/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leagues, nil
}

// Rankings returns the leaderboard ordered by ascending average score.
func (c *Client) Rankings(ctx context.Context) ([]RankingEntry, error) {
	const key = "rankings"
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.([]RankingEntry), nil
		}
	}

	var entries []RankingEntry
	if err := c.do(ctx, http.MethodGet, "/rankings", nil, &entries); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(key, entries)
	}
	return entries, nil
}

// SendFriendRequest sends a request to another user.
func (c *Client) SendFriendRequest(ctx context.Context, receiverUID string) error {
	return c.do(ctx, http.MethodPost, "/send_friend_request", map[string]string{"receiver_uid": receiverUID}, nil)
}

// AcceptFriendRequest accepts a pending request.
func (c *Client) AcceptFriendRequest(ctx context.Context, senderUID string) error {
	return c.do(ctx, http.MethodPost, "/accept_friend_request", map[string]string{"sender_uid": senderUID}, nil)
}

// DeclineFriendRequest declines a pending request.
func (c *Client) DeclineFriendRequest(ctx context.Context, senderUID string) error {
	return c.do(ctx, http.MethodPost, "/decline_friend_request", map[string]string{"sender_uid": senderUID}, nil)
}

// RemoveFriend removes an existing friend.
func (c *Client) RemoveFriend(ctx context.Context, friendUID string) error {
	return c.do(ctx, http.MethodPost, "/remove_friend", map[string]string{"friend_uid": friendUID}, nil)
}

// FriendRequests lists uids with pending requests to the caller.
func (c *Client) FriendRequests(ctx context.Context) ([]string, error) {
	var resp struct {
		Requests []string `json:"requests"`
	}
	if err := c.do(ctx, http.MethodGet, "/friend_requests", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// Friends lists the caller's friends.
func (c *Client) Friends(ctx context.Context) ([]string, error) {
	var resp struct {
		Friends []string `json:"friends"`
	}
	if err := c.do(ctx, http.MethodGet, "/friends", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Friends, nil
}

// FriendsScores returns friends' recent scores, newest first.
func (c *Client) FriendsScores(ctx context.Context) ([]FriendScore, error) {
	var scores []FriendScore
	if err := c.do(ctx, http.MethodGet, "/friends/scores", nil, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// ProfileByID fetches a user's aggregate profile.
func (c *Client) ProfileByID(ctx context.Context, uid string) (*Profile, error) {
	key := "profile:" + uid
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			profile := v.(Profile)
			return &profile, nil
		}
	}

	var resp struct {
		Profile Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(uid)+"/profile", nil, &resp); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(key, resp.Profile)
	}
	return &resp.Profile, nil
}

// SessionsByUserID fetches another user's visible sessions.
func (c *Client) SessionsByUserID(ctx context.Context, uid string) ([]Session, error) {
	var resp struct {
		Sessions []Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(uid)+"/sessions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}
