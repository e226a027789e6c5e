// ABOUTME: Tests for the Parlor API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func TestSignIn_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sign_in" {
			t.Errorf("expected path /sign_in, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" {
			t.Errorf("expected email a@b.c, got %s", body["email"])
		}
		json.NewEncoder(w).Encode(AuthPayload{IDToken: "tok", UID: "u1", Name: "Alice"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	payload, err := c.SignIn(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.IDToken != "tok" || payload.UID != "u1" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestSignIn_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid credentials"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.SignIn(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if want := "backend error: invalid credentials"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Feed(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if want := "backend returned status 500"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"sessions": []Session{}})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok-9"))
	if _, err := c.Feed(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-9" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"sessions": []Session{}})
	}))
	defer server.Close()

	c := New(server.URL, staticToken(""))
	if _, err := c.Feed(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header without token, got %q", gotAuth)
	}
}

func TestCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions" || r.Method != http.MethodPost {
			t.Errorf("expected POST /sessions, got %s %s", r.Method, r.URL.Path)
		}
		var session Session
		json.NewDecoder(r.Body).Decode(&session)
		if session.CourseName != "Pebble Beach" {
			t.Errorf("expected course name, got %s", session.CourseName)
		}
		if session.Scores[3] != 4 {
			t.Errorf("expected hole 3 score 4, got %d", session.Scores[3])
		}
		json.NewEncoder(w).Encode(map[string]string{"sessionId": "sess-1"})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	id, err := c.CreateSession(context.Background(), &Session{
		CourseName: "Pebble Beach",
		Holes:      18,
		Scores:     map[int]int{3: 4},
		TotalScore: 4,
		Privacy:    PrivacyPublic,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "sess-1" {
		t.Errorf("expected sess-1, got %s", id)
	}
}

func TestFeedLimitQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]interface{}{"sessions": []Session{{ID: "s1"}}})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	sessions, err := c.Feed(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "limit=7" {
		t.Errorf("expected limit=7 query, got %q", gotQuery)
	}
	if len(sessions) != 1 || sessions[0].ID != "s1" {
		t.Errorf("unexpected sessions: %+v", sessions)
	}
}

func TestToggleLike(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions/s1/like" {
			t.Errorf("expected like path, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(LikeStatus{Liked: true, Count: 4})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	status, err := c.ToggleLike(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Liked || status.Count != 4 {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestDeleteSession(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	if err := c.DeleteSession(context.Background(), "s9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/sessions/s9" {
		t.Errorf("expected DELETE /sessions/s9, got %s %s", gotMethod, gotPath)
	}
}

func TestRankingsCached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]RankingEntry{{Name: "Alice", AverageScore: 72.5}})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.EnableCache(time.Minute)

	for i := 0; i < 3; i++ {
		entries, err := c.Rankings(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].Name != "Alice" {
			t.Errorf("unexpected entries: %+v", entries)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 backend call with cache, got %d", calls)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]interface{}{"sessions": []Session{}})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Feed(ctx, 5)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestLeagueEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/leagues":
			if r.Method == http.MethodPost {
				json.NewEncoder(w).Encode(map[string]interface{}{"league": LeagueSummary{ID: "l1", Name: "Sunday Swingers", MemberCount: 1}})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"leagues": []LeagueSummary{{ID: "l1", Name: "Sunday Swingers", MemberCount: 3}}})
		case "/leagues/l1":
			json.NewEncoder(w).Encode(map[string]interface{}{"league": LeagueDetail{
				ID: "l1", Name: "Sunday Swingers", MemberCount: 3,
				Members:         []LeagueMember{{UID: "u1", Name: "Alice"}},
				WeeklyChallenge: "Beat your handicap",
			}})
		case "/leagues/l1/join":
			json.NewEncoder(w).Encode(map[string]string{"message": "joined"})
		case "/leagues/search":
			if r.URL.Query().Get("q") != "sunday" {
				t.Errorf("expected search query sunday, got %s", r.URL.Query().Get("q"))
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"leagues": []LeagueSummary{{ID: "l1"}}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	ctx := context.Background()

	created, err := c.CreateLeague(ctx, "Sunday Swingers")
	if err != nil || created.ID != "l1" {
		t.Fatalf("create league: %v %+v", err, created)
	}
	leagues, err := c.Leagues(ctx)
	if err != nil || len(leagues) != 1 {
		t.Fatalf("list leagues: %v %+v", err, leagues)
	}
	detail, err := c.LeagueDetail(ctx, "l1")
	if err != nil || detail.WeeklyChallenge != "Beat your handicap" {
		t.Fatalf("league detail: %v %+v", err, detail)
	}
	if err := c.JoinLeague(ctx, "l1"); err != nil {
		t.Fatalf("join league: %v", err)
	}
	if _, err := c.SearchLeagues(ctx, "sunday"); err != nil {
		t.Fatalf("search leagues: %v", err)
	}
}

func TestFriendEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/send_friend_request", "/accept_friend_request", "/decline_friend_request", "/remove_friend":
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		case "/friend_requests":
			json.NewEncoder(w).Encode(map[string][]string{"requests": {"u2"}})
		case "/friends":
			json.NewEncoder(w).Encode(map[string][]string{"friends": {"u2", "u3"}})
		case "/friends/scores":
			json.NewEncoder(w).Encode([]FriendScore{{UID: "u2", Name: "Bob", Score: 80}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	ctx := context.Background()

	if err := c.SendFriendRequest(ctx, "u2"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := c.AcceptFriendRequest(ctx, "u2"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	requests, err := c.FriendRequests(ctx)
	if err != nil || len(requests) != 1 {
		t.Fatalf("requests: %v %+v", err, requests)
	}
	friends, err := c.Friends(ctx)
	if err != nil || len(friends) != 2 {
		t.Fatalf("friends: %v %+v", err, friends)
	}
	scores, err := c.FriendsScores(ctx)
	if err != nil || len(scores) != 1 || scores[0].Name != "Bob" {
		t.Fatalf("scores: %v %+v", err, scores)
	}
}

func TestSetTimeout(t *testing.T) {
	c := New("http://localhost:5000", nil)
	if c.httpClient.Timeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %s", c.httpClient.Timeout)
	}

	c.SetTimeout(5 * time.Second)
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected 5s after override, got %s", c.httpClient.Timeout)
	}

	// Non-positive values keep the current setting
	c.SetTimeout(0)
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected zero override ignored, got %s", c.httpClient.Timeout)
	}
}
