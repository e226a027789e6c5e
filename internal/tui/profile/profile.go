// ABOUTME: Profile screen with stats, recent rounds, and friend management
// ABOUTME: Fetches profile, sessions, and friend data concurrently

package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui/icons"
	"github.com/parlor-golf/parlor-cli/internal/tui/styles"
	"github.com/parlor-golf/parlor-cli/internal/tui/widgets"
	"golang.org/x/sync/errgroup"
)

// CancelledMsg is sent when the user backs out of the screen
type CancelledMsg struct{}

// loadedMsg carries everything the screen shows, fetched in one batch
type loadedMsg struct {
	profile  *client.Profile
	sessions []client.Session
	friends  []string
	requests []string
	err      error
}

type friendActionMsg struct {
	err error
}

// Profile is the profile screen model
type Profile struct {
	client *client.Client
	uid    string

	profile  *client.Profile
	sessions []client.Session
	friends  []string
	requests []string

	// cursor spans the request list, then the friends list
	cursor  int
	adding  bool
	input   textinput.Model
	loading bool
	err     error
	width   int
}

// New creates the profile screen for the given user
func New(apiClient *client.Client, uid string) *Profile {
	ti := textinput.New()
	ti.Placeholder = "Friend's user id"
	ti.CharLimit = 64
	ti.Width = 40

	return &Profile{
		client: apiClient,
		uid:    uid,
		input:  ti,
	}
}

// Init implements tea.Model
func (p *Profile) Init() tea.Cmd {
	return p.load()
}

// load fetches the four data sets in parallel. One failure fails the
// whole refresh; partial profiles are confusing to render.
func (p *Profile) load() tea.Cmd {
	if p.loading {
		return nil
	}
	p.loading = true
	uid := p.uid
	return func() tea.Msg {
		var (
			profile  *client.Profile
			sessions []client.Session
			friends  []string
			requests []string
		)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			profile, err = p.client.ProfileByID(ctx, uid)
			return err
		})
		g.Go(func() error {
			var err error
			sessions, err = p.client.SessionsByUserID(ctx, uid)
			return err
		})
		g.Go(func() error {
			var err error
			friends, err = p.client.Friends(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			requests, err = p.client.FriendRequests(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{profile: profile, sessions: sessions, friends: friends, requests: requests}
	}
}

// Update implements tea.Model
func (p *Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case tea.KeyMsg:
		if p.adding {
			return p.updateInput(msg)
		}
		return p.updateKeys(msg)

	case loadedMsg:
		p.loading = false
		if msg.err != nil {
			p.err = msg.err
			return p, nil
		}
		p.err = nil
		p.profile = msg.profile
		p.sessions = msg.sessions
		p.friends = msg.friends
		p.requests = msg.requests
		if p.cursor >= p.listLen() {
			p.cursor = 0
		}
		return p, nil

	case friendActionMsg:
		if msg.err != nil {
			p.err = msg.err
			return p, nil
		}
		p.err = nil
		return p, p.load()
	}

	return p, nil
}

func (p *Profile) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		return p, func() tea.Msg { return CancelledMsg{} }

	case "r":
		return p, p.load()

	case "f":
		p.adding = true
		p.input.SetValue("")
		p.input.Focus()
		return p, textinput.Blink

	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil

	case "down", "j":
		if p.cursor < p.listLen()-1 {
			p.cursor++
		}
		return p, nil

	case "a":
		if uid := p.currentRequest(); uid != "" {
			return p, p.friendAction(func(ctx context.Context) error {
				return p.client.AcceptFriendRequest(ctx, uid)
			})
		}
		return p, nil

	case "x":
		if uid := p.currentRequest(); uid != "" {
			return p, p.friendAction(func(ctx context.Context) error {
				return p.client.DeclineFriendRequest(ctx, uid)
			})
		}
		return p, nil

	case "d":
		if uid := p.currentFriend(); uid != "" {
			return p, p.friendAction(func(ctx context.Context) error {
				return p.client.RemoveFriend(ctx, uid)
			})
		}
		return p, nil
	}

	return p, nil
}

func (p *Profile) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.adding = false
		p.input.Blur()
		return p, nil

	case "enter":
		uid := strings.TrimSpace(p.input.Value())
		p.adding = false
		p.input.Blur()
		if uid == "" {
			return p, nil
		}
		return p, p.friendAction(func(ctx context.Context) error {
			return p.client.SendFriendRequest(ctx, uid)
		})
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Profile) friendAction(action func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return friendActionMsg{err: action(context.Background())}
	}
}

func (p *Profile) listLen() int {
	return len(p.requests) + len(p.friends)
}

func (p *Profile) currentRequest() string {
	if p.cursor < 0 || p.cursor >= len(p.requests) {
		return ""
	}
	return p.requests[p.cursor]
}

func (p *Profile) currentFriend() string {
	i := p.cursor - len(p.requests)
	if i < 0 || i >= len(p.friends) {
		return ""
	}
	return p.friends[i]
}

// SetWidth sets the screen width for rendering
func (p *Profile) SetWidth(width int) {
	p.width = width
}

// View implements tea.Model
func (p *Profile) View() string {
	return p.ViewThemed(styles.For(theme.SchemeDark))
}

// ViewThemed renders with the active theme
func (p *Profile) ViewThemed(t styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(t.Title.Render(icons.User.String() + " Profile"))
	sb.WriteString("\n")

	if p.loading && p.profile == nil {
		sb.WriteString(t.Subtitle.Render("Loading profile..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(t.StatusCritical.Render(icons.Critical.String()+" "+p.err.Error()) + "\n")
		sb.WriteString(t.Help.Render("r retry  b back"))
		return sb.String()
	}
	if p.profile == nil {
		return sb.String()
	}

	sb.WriteString(t.Value.Render(p.profile.Name))
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Render("  " + p.profile.Email))
	sb.WriteString("\n\n")

	// Stat blocks with the recent score trend, oldest round first
	config := widgets.DefaultStatBlockConfig()
	config.TitleColor = t.Primary
	totals := make([]int, 0, len(p.sessions))
	for i := len(p.sessions) - 1; i >= 0; i-- {
		totals = append(totals, p.sessions[i].TotalScore)
	}
	trend := make([]float64, len(totals))
	for i, v := range totals {
		trend[i] = float64(v)
	}

	rounds := widgets.CountBlock(icons.Flag, "Rounds", p.profile.TotalRounds, "recorded", config)
	average := widgets.StatBlockWithSparkline(icons.Tee, "Average",
		fmt.Sprintf("%.1f", p.profile.AverageScore), trend, "strokes per round", config)
	friends := widgets.CountBlock(icons.Friends, "Friends", p.profile.FriendsCount, "connected", config)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rounds, " ", average, " ", friends))
	sb.WriteString("\n\n")

	// Recent rounds
	sb.WriteString(t.Subtitle.Render("Recent rounds"))
	if spark := widgets.ScoreTrend(totals, 24, t.Secondary); spark != "" {
		sb.WriteString("  " + spark)
	}
	sb.WriteString("\n")
	if len(p.sessions) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Render("  None yet") + "\n")
	}
	limit := len(p.sessions)
	if limit > 5 {
		limit = 5
	}
	for _, s := range p.sessions[:limit] {
		sb.WriteString(fmt.Sprintf("  %s  %s\n",
			lipgloss.NewStyle().Foreground(t.Text).Render(s.CourseName),
			t.Value.Render(fmt.Sprintf("%d", s.TotalScore))))
	}
	sb.WriteString("\n")

	// Pending friend requests
	if len(p.requests) > 0 {
		sb.WriteString(t.Subtitle.Render(fmt.Sprintf("%s Friend requests (%d)", icons.Friends.String(), len(p.requests))))
		sb.WriteString("\n")
		for i, uid := range p.requests {
			sb.WriteString(p.renderListEntry(t, uid, i) + "\n")
		}
		sb.WriteString("\n")
	}

	// Friends, selectable for removal
	if len(p.friends) > 0 {
		sb.WriteString(t.Subtitle.Render(fmt.Sprintf("%s Friends (%d)", icons.Friends.String(), len(p.friends))))
		sb.WriteString("\n")
		for i, uid := range p.friends {
			sb.WriteString(p.renderListEntry(t, uid, len(p.requests)+i) + "\n")
		}
		sb.WriteString("\n")
	}

	if p.adding {
		sb.WriteString(p.input.View() + "\n")
		sb.WriteString(t.Help.Render("enter send request  esc cancel"))
		return sb.String()
	}

	help := "f add friend  r refresh  b back"
	if len(p.friends) > 0 {
		help = "d remove  " + help
	}
	if len(p.requests) > 0 {
		help = "a accept  x decline  " + help
	}
	if p.listLen() > 0 {
		help = "↑↓ select  " + help
	}
	sb.WriteString(t.Help.Render(help))
	return sb.String()
}

func (p *Profile) renderListEntry(t styles.Theme, uid string, index int) string {
	prefix := "  "
	uidStyle := lipgloss.NewStyle().Foreground(t.Text)
	if index == p.cursor {
		prefix = t.Selected.Render("> ")
		uidStyle = t.Selected
	}
	return prefix + uidStyle.Render(uid)
}
