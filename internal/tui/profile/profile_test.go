// ABOUTME: Tests for the profile screen
// ABOUTME: Verifies friend lifecycle keys and score trend rendering

package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui/styles"
	"github.com/parlor-golf/parlor-cli/internal/tui/widgets"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestRemoveFriendTargetsSelectedFriend(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	p := New(client.New(server.URL, nil), "me")
	p.requests = []string{"r1"}
	p.friends = []string{"f1", "f2"}
	p.cursor = 2 // second friend, past the request list

	model, cmd := p.updateKeys(keyMsg("d"))
	p = model.(*Profile)
	if cmd == nil {
		t.Fatal("expected a remove command")
	}
	if msg, ok := cmd().(friendActionMsg); !ok || msg.err != nil {
		t.Fatalf("remove failed: %+v", msg)
	}

	if gotPath != "/remove_friend" {
		t.Errorf("expected /remove_friend, got %s", gotPath)
	}
	if gotBody["friend_uid"] != "f2" {
		t.Errorf("expected friend_uid f2, got %q", gotBody["friend_uid"])
	}
}

func TestRemoveKeyIgnoredOnRequests(t *testing.T) {
	p := New(client.New("http://localhost:5000", nil), "me")
	p.requests = []string{"r1"}
	p.friends = []string{"f1"}
	p.cursor = 0 // a pending request is selected

	_, cmd := p.updateKeys(keyMsg("d"))
	if cmd != nil {
		t.Error("expected no command when a request is selected")
	}
}

func TestCursorSpansRequestsAndFriends(t *testing.T) {
	p := New(client.New("http://localhost:5000", nil), "me")
	p.requests = []string{"r1"}
	p.friends = []string{"f1"}

	model, _ := p.updateKeys(keyMsg("j"))
	p = model.(*Profile)
	if got := p.currentFriend(); got != "f1" {
		t.Errorf("expected cursor on f1 after moving down, got %q", got)
	}

	// No movement past the end of the combined list
	model, _ = p.updateKeys(keyMsg("j"))
	p = model.(*Profile)
	if p.cursor != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", p.cursor)
	}
}

func TestViewRendersScoreTrendAndFriends(t *testing.T) {
	p := New(client.New("http://localhost:5000", nil), "me")
	p.profile = &client.Profile{Name: "Me", Email: "me@x.y", TotalRounds: 2, AverageScore: 81.0, FriendsCount: 1}
	p.sessions = []client.Session{
		{ID: "s-2", CourseName: "Old Mill", TotalScore: 78},
		{ID: "s-1", CourseName: "Pebble Creek", TotalScore: 84},
	}
	p.friends = []string{"f1"}

	out := p.ViewThemed(styles.For(theme.SchemeDark))
	if !strings.Contains(out, "Friends (1)") {
		t.Errorf("expected friends section, got:\n%s", out)
	}
	if !strings.ContainsAny(out, string(widgets.SparklineBlocks)) {
		t.Error("expected a score trend sparkline in the view")
	}
}
