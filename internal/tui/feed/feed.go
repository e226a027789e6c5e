// ABOUTME: Social feed screen listing friends' recent rounds
// ABOUTME: Likes and comments apply optimistically and roll back on failure

package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/optimistic"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui/debuglog"
	"github.com/parlor-golf/parlor-cli/internal/tui/icons"
	"github.com/parlor-golf/parlor-cli/internal/tui/styles"
	"github.com/parlor-golf/parlor-cli/internal/tui/widgets"
)

// CancelledMsg is sent when the user backs out of the feed
type CancelledMsg struct{}

// loadedMsg carries the fetched feed page
type loadedMsg struct {
	sessions []client.Session
	err      error
}

// likeResultMsg carries the server's like state after a toggle
type likeResultMsg struct {
	sessionID string
	status    *client.LikeStatus
	err       error
}

// commentsLoadedMsg carries a session's comment thread
type commentsLoadedMsg struct {
	sessionID string
	comments  []client.Comment
	err       error
}

// commentResultMsg carries the confirmed comment after posting
type commentResultMsg struct {
	sessionID     string
	placeholderID string
	comment       *client.Comment
	err           error
}

// deleteResultMsg carries the outcome of a session delete
type deleteResultMsg struct {
	sessionID string
	err       error
}

// Feed is the social feed screen model
type Feed struct {
	client *client.Client
	ctrl   *optimistic.Controller
	uid    string
	name   string
	limit  int

	sessions []client.Session
	cursor   int
	loading  bool
	err      error

	// Detail view state
	viewing     bool
	detail      *client.Session
	commenting  bool
	comment     textinput.Model
	confirmDel  bool
	width       int
	lastRefresh time.Time
}

// New creates the feed screen for the signed-in user
func New(apiClient *client.Client, uid, name string, limit int) *Feed {
	ti := textinput.New()
	ti.Placeholder = "Say something nice"
	ti.CharLimit = 280
	ti.Width = 48

	return &Feed{
		client:  apiClient,
		ctrl:    optimistic.NewController(),
		uid:     uid,
		name:    name,
		limit:   limit,
		comment: ti,
	}
}

// Init implements tea.Model
func (f *Feed) Init() tea.Cmd {
	return f.load()
}

// load fetches a feed page. Refreshes are skipped while one is in
// flight so a held-down key cannot stack requests.
func (f *Feed) load() tea.Cmd {
	if f.loading {
		return nil
	}
	f.loading = true
	return func() tea.Msg {
		start := time.Now()
		sessions, err := f.client.Feed(context.Background(), f.limit)
		debuglog.Request("feed", time.Since(start), err)
		return loadedMsg{sessions: sessions, err: err}
	}
}

// Update implements tea.Model
func (f *Feed) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		return f, nil

	case tea.KeyMsg:
		if f.commenting {
			return f.updateCommentInput(msg)
		}
		return f.updateKeys(msg)

	case loadedMsg:
		f.loading = false
		if msg.err != nil {
			f.err = msg.err
			return f, nil
		}
		f.err = nil
		f.sessions = msg.sessions
		f.lastRefresh = time.Now()
		if f.cursor >= len(f.sessions) {
			f.cursor = len(f.sessions) - 1
		}
		if f.cursor < 0 {
			f.cursor = 0
		}
		// Seed projection from server truth
		for _, s := range f.sessions {
			f.ctrl.SeedLike(s.ID, s.LikedByMe, s.LikeCount)
		}
		return f, nil

	case likeResultMsg:
		if msg.err != nil {
			// Revert the optimistic toggle
			debuglog.Error("toggle like", msg.err)
			f.ctrl.Rollback(optimistic.ToggleLike{SessionID: msg.sessionID})
			f.err = msg.err
			return f, nil
		}
		f.ctrl.ConfirmLike(msg.sessionID, msg.status.Liked, msg.status.Count)
		return f, nil

	case commentsLoadedMsg:
		if msg.err != nil {
			f.err = msg.err
			return f, nil
		}
		f.ctrl.SeedComments(msg.sessionID, toProjection(msg.comments))
		return f, nil

	case commentResultMsg:
		if msg.err != nil {
			debuglog.Error("add comment", msg.err)
			f.ctrl.Rollback(optimistic.AddComment{
				SessionID: msg.sessionID,
				Comment:   optimistic.Comment{ID: msg.placeholderID},
			})
			f.err = msg.err
			return f, nil
		}
		f.ctrl.ConfirmComment(msg.sessionID, msg.placeholderID, optimistic.Comment{
			ID:        msg.comment.ID,
			UID:       msg.comment.UID,
			Author:    msg.comment.Author,
			Text:      msg.comment.Text,
			CreatedAt: parseTimestamp(msg.comment.Timestamp),
		})
		return f, nil

	case deleteResultMsg:
		if msg.err != nil {
			debuglog.Error("delete session", msg.err)
			f.err = msg.err
			return f, nil
		}
		// Server confirmed: now drop the session and its social state
		f.ctrl.Apply(optimistic.DeleteSession{SessionID: msg.sessionID})
		f.removeSession(msg.sessionID)
		if f.viewing && f.detail != nil && f.detail.ID == msg.sessionID {
			f.viewing = false
			f.detail = nil
		}
		return f, nil
	}

	return f, nil
}

func (f *Feed) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		if f.confirmDel {
			f.confirmDel = false
			return f, nil
		}
		if f.viewing {
			f.viewing = false
			f.detail = nil
			return f, nil
		}
		return f, func() tea.Msg { return CancelledMsg{} }

	case "up", "k":
		if !f.viewing && f.cursor > 0 {
			f.cursor--
		}
		return f, nil

	case "down", "j":
		if !f.viewing && f.cursor < len(f.sessions)-1 {
			f.cursor++
		}
		return f, nil

	case "r":
		return f, f.load()

	case "enter":
		if f.confirmDel {
			f.confirmDel = false
			if s := f.currentOrDetail(); s != nil {
				return f, f.deleteSession(s.ID)
			}
			return f, nil
		}
		if !f.viewing {
			if s := f.current(); s != nil {
				f.viewing = true
				f.detail = s
				return f, f.loadComments(s.ID)
			}
		}
		return f, nil

	case "l":
		if s := f.currentOrDetail(); s != nil {
			return f, f.toggleLike(s.ID)
		}
		return f, nil

	case "c":
		if s := f.currentOrDetail(); s != nil {
			f.commenting = true
			f.comment.SetValue("")
			f.comment.Focus()
			if !f.viewing {
				f.viewing = true
				f.detail = s
				return f, tea.Batch(f.loadComments(s.ID), textinput.Blink)
			}
			return f, textinput.Blink
		}
		return f, nil

	case "d":
		if s := f.currentOrDetail(); s != nil && s.UID == f.uid {
			f.confirmDel = true
		}
		return f, nil
	}

	return f, nil
}

func (f *Feed) updateCommentInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		f.commenting = false
		f.comment.Blur()
		return f, nil

	case "enter":
		text := strings.TrimSpace(f.comment.Value())
		f.commenting = false
		f.comment.Blur()
		if text == "" || f.detail == nil {
			return f, nil
		}
		return f, f.postComment(f.detail.ID, text)
	}

	var cmd tea.Cmd
	f.comment, cmd = f.comment.Update(msg)
	return f, cmd
}

// toggleLike applies the optimistic flip before the request leaves.
func (f *Feed) toggleLike(sessionID string) tea.Cmd {
	f.ctrl.Apply(optimistic.ToggleLike{SessionID: sessionID})
	return func() tea.Msg {
		status, err := f.client.ToggleLike(context.Background(), sessionID)
		return likeResultMsg{sessionID: sessionID, status: status, err: err}
	}
}

// postComment inserts a placeholder comment immediately; the server
// copy replaces it once confirmed.
func (f *Feed) postComment(sessionID, text string) tea.Cmd {
	placeholder := optimistic.Comment{
		ID:        "pending-" + uuid.NewString(),
		UID:       f.uid,
		Author:    f.name,
		Text:      text,
		CreatedAt: time.Now(),
	}
	f.ctrl.Apply(optimistic.AddComment{SessionID: sessionID, Comment: placeholder})
	return func() tea.Msg {
		comment, err := f.client.AddComment(context.Background(), sessionID, text)
		return commentResultMsg{
			sessionID:     sessionID,
			placeholderID: placeholder.ID,
			comment:       comment,
			err:           err,
		}
	}
}

// deleteSession waits for server confirmation before touching local
// state. A failed delete must leave the card in place.
func (f *Feed) deleteSession(sessionID string) tea.Cmd {
	return func() tea.Msg {
		err := f.client.DeleteSession(context.Background(), sessionID)
		return deleteResultMsg{sessionID: sessionID, err: err}
	}
}

func (f *Feed) loadComments(sessionID string) tea.Cmd {
	return func() tea.Msg {
		comments, err := f.client.Comments(context.Background(), sessionID)
		return commentsLoadedMsg{sessionID: sessionID, comments: comments, err: err}
	}
}

func (f *Feed) current() *client.Session {
	if f.cursor < 0 || f.cursor >= len(f.sessions) {
		return nil
	}
	return &f.sessions[f.cursor]
}

func (f *Feed) currentOrDetail() *client.Session {
	if f.viewing && f.detail != nil {
		return f.detail
	}
	return f.current()
}

func (f *Feed) removeSession(sessionID string) {
	for i, s := range f.sessions {
		if s.ID == sessionID {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			break
		}
	}
	if f.cursor >= len(f.sessions) && f.cursor > 0 {
		f.cursor = len(f.sessions) - 1
	}
}

// SetWidth sets the screen width for rendering
func (f *Feed) SetWidth(width int) {
	f.width = width
}

// View implements tea.Model
func (f *Feed) View() string {
	return f.ViewThemed(styles.For(theme.SchemeDark))
}

// ViewThemed renders with the active theme
func (f *Feed) ViewThemed(t styles.Theme) string {
	if f.viewing && f.detail != nil {
		return f.viewDetail(t)
	}
	return f.viewList(t)
}

func (f *Feed) viewList(t styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(t.Title.Render(icons.Course.String() + " Feed"))
	sb.WriteString("\n")

	if f.loading && len(f.sessions) == 0 {
		sb.WriteString(t.Subtitle.Render("Loading feed..."))
		return sb.String()
	}
	if f.err != nil {
		sb.WriteString(t.StatusCritical.Render(icons.Critical.String()+" "+f.err.Error()) + "\n")
		sb.WriteString(t.Help.Render("r retry") + "\n")
	}
	if len(f.sessions) == 0 {
		sb.WriteString(t.Subtitle.Render("No rounds yet. Friends' rounds show up here."))
		return sb.String()
	}

	for i, s := range f.sessions {
		like := f.ctrl.Like(s.ID)
		line := f.renderCard(t, s, like, i == f.cursor)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(t.Help.Render("↑↓ navigate  enter open  l like  c comment  d delete  r refresh  b back"))
	return sb.String()
}

func (f *Feed) renderCard(t styles.Theme, s client.Session, like optimistic.LikeState, selected bool) string {
	prefix := "  "
	nameStyle := lipgloss.NewStyle().Foreground(t.Text)
	if selected {
		prefix = t.Selected.Render("> ")
		nameStyle = t.Selected
	}

	title := nameStyle.Render(fmt.Sprintf("%s at %s", s.Username, s.CourseName))
	score := t.Value.Render(fmt.Sprintf("%d", s.TotalScore))
	social := widgets.LikeBadge(like.Liked, like.Count) + "  " + widgets.CommentBadge(s.CommentCount)

	meta := lipgloss.NewStyle().Foreground(t.Muted).
		Render(fmt.Sprintf("%d holes · %s", s.Holes, formatWhen(s.Timestamp)))

	return fmt.Sprintf("%s%s  %s strokes  %s\n    %s", prefix, title, score, social, meta)
}

func (f *Feed) viewDetail(t styles.Theme) string {
	s := f.detail
	var sb strings.Builder

	sb.WriteString(t.Title.Render(fmt.Sprintf("%s %s at %s", icons.Flag.String(), s.Username, s.CourseName)))
	sb.WriteString("\n")

	like := f.ctrl.Like(s.ID)
	sb.WriteString(widgets.LikeBadge(like.Liked, like.Count))
	sb.WriteString("  ")
	sb.WriteString(widgets.PrivacyBadge(s.Privacy))
	sb.WriteString("\n\n")

	holes := s.SelectedHoles
	if len(holes) == 0 {
		for h := 1; h <= s.Holes; h++ {
			holes = append(holes, h)
		}
	}
	sb.WriteString(widgets.Scorecard(holes, s.Scores, widgets.DefaultScorecardConfig()))
	sb.WriteString("\n\n")
	sb.WriteString(t.Key.Render("Total ") + t.Value.Render(fmt.Sprintf("%d", s.TotalScore)))
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Render(fmt.Sprintf("  ·  %s  ·  %s", formatDuration(s.Duration), formatWhen(s.Timestamp))))
	sb.WriteString("\n\n")

	comments := f.ctrl.Comments(s.ID)
	sb.WriteString(t.Subtitle.Render(fmt.Sprintf("%s Comments (%d)", icons.Comment.String(), len(comments))))
	sb.WriteString("\n")
	if len(comments) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Render("  No comments yet") + "\n")
	}
	for _, c := range comments {
		author := t.Key.Render(c.Author)
		pending := ""
		if strings.HasPrefix(c.ID, "pending-") {
			pending = lipgloss.NewStyle().Foreground(t.Muted).Render(" (sending)")
		}
		sb.WriteString(fmt.Sprintf("  %s: %s%s\n", author, c.Text, pending))
	}

	if f.commenting {
		sb.WriteString("\n" + f.comment.View() + "\n")
		sb.WriteString(t.Help.Render("enter post  esc cancel"))
		return sb.String()
	}

	if f.confirmDel {
		sb.WriteString("\n" + t.StatusWarning.Render(icons.Warning.String()+" Delete this round? enter confirm, esc cancel"))
		return sb.String()
	}

	if f.err != nil {
		sb.WriteString("\n" + t.StatusCritical.Render(icons.Critical.String()+" "+f.err.Error()))
	}

	help := "l like  c comment  b back"
	if s.UID == f.uid {
		help = "l like  c comment  d delete  b back"
	}
	sb.WriteString("\n" + t.Help.Render(help))
	return sb.String()
}

func toProjection(comments []client.Comment) []optimistic.Comment {
	out := make([]optimistic.Comment, len(comments))
	for i, c := range comments {
		out[i] = optimistic.Comment{
			ID:        c.ID,
			UID:       c.UID,
			Author:    c.Author,
			Text:      c.Text,
			CreatedAt: parseTimestamp(c.Timestamp),
		}
	}
	return out
}

// parseTimestamp reads a backend RFC 3339 timestamp, zero on failure.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatWhen(raw string) string {
	t := parseTimestamp(raw)
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
