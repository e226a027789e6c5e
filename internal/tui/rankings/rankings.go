// ABOUTME: Rankings screen showing the friends leaderboard
// ABOUTME: Entries arrive sorted by ascending average score

package rankings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui/icons"
	"github.com/parlor-golf/parlor-cli/internal/tui/styles"
)

// CancelledMsg is sent when the user backs out of the screen
type CancelledMsg struct{}

type loadedMsg struct {
	entries []client.RankingEntry
	err     error
}

// Rankings is the leaderboard screen model
type Rankings struct {
	client  *client.Client
	entries []client.RankingEntry
	loading bool
	err     error
	width   int
}

// New creates the rankings screen
func New(apiClient *client.Client) *Rankings {
	return &Rankings{client: apiClient}
}

// Init implements tea.Model
func (r *Rankings) Init() tea.Cmd {
	return r.load()
}

func (r *Rankings) load() tea.Cmd {
	if r.loading {
		return nil
	}
	r.loading = true
	return func() tea.Msg {
		entries, err := r.client.Rankings(context.Background())
		return loadedMsg{entries: entries, err: err}
	}
}

// Update implements tea.Model
func (r *Rankings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return r, func() tea.Msg { return CancelledMsg{} }
		case "r":
			return r, r.load()
		}

	case loadedMsg:
		r.loading = false
		if msg.err != nil {
			r.err = msg.err
			return r, nil
		}
		r.err = nil
		r.entries = msg.entries
		return r, nil
	}

	return r, nil
}

// SetWidth sets the screen width for rendering
func (r *Rankings) SetWidth(width int) {
	r.width = width
}

// View implements tea.Model
func (r *Rankings) View() string {
	return r.ViewThemed(styles.For(theme.SchemeDark))
}

// ViewThemed renders with the active theme
func (r *Rankings) ViewThemed(t styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(t.Title.Render(icons.Trophy.String() + " Rankings"))
	sb.WriteString("\n")

	if r.loading && len(r.entries) == 0 {
		sb.WriteString(t.Subtitle.Render("Loading leaderboard..."))
		return sb.String()
	}
	if r.err != nil {
		sb.WriteString(t.StatusCritical.Render(icons.Critical.String()+" "+r.err.Error()) + "\n")
		sb.WriteString(t.Help.Render("r retry  b back"))
		return sb.String()
	}
	if len(r.entries) == 0 {
		sb.WriteString(t.Subtitle.Render("No rankings yet. Play a few rounds with friends."))
		sb.WriteString("\n")
		sb.WriteString(t.Help.Render("r refresh  b back"))
		return sb.String()
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.Muted)
	for i, e := range r.entries {
		rank := mutedStyle.Render(fmt.Sprintf("%2d.", i+1))
		name := lipgloss.NewStyle().Foreground(t.Text).Render(e.Name)
		avg := t.Value.Render(fmt.Sprintf("%.1f", e.AverageScore))
		medal := ""
		switch i {
		case 0:
			medal = " " + t.StatusOK.Render(icons.Trophy.String())
		case 1, 2:
			medal = " " + mutedStyle.Render(icons.Trophy.String())
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s avg%s\n", rank, name, avg, medal))
	}

	sb.WriteString(t.Help.Render("r refresh  b back"))
	return sb.String()
}
