// ABOUTME: Settings screen with theme preference, sign out, and account deletion
// ABOUTME: Emits SignedOutMsg so the root model can re-run the auth gate

package settings

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

// SignedOutMsg is sent after credentials are cleared
type SignedOutMsg struct{}

// CancelledMsg is sent when the user backs out of the screen
type CancelledMsg struct{}

// CredentialStore clears the persisted identity on sign out.
type CredentialStore interface {
	ClearCredentials() error
}

type deleteResultMsg struct {
	err error
}

// Settings is the settings screen model
type Settings struct {
	client *client.Client
	themes *theme.Store
	creds  CredentialStore

	cursor        int
	confirmDelete bool
	busy          bool
	err           error
	width         int
}

// Menu rows, top to bottom.
const (
	itemTheme = iota
	itemClearTheme
	itemSignOut
	itemDeleteAccount
	itemCount
)

// New creates the settings screen
func New(apiClient *client.Client, themes *theme.Store, creds CredentialStore) *Settings {
	return &Settings{
		client: apiClient,
		themes: themes,
		creds:  creds,
	}
}

// Init implements tea.Model
func (s *Settings) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *Settings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		return s.updateKeys(msg)

	case deleteResultMsg:
		s.busy = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		// Account is gone server-side; clear local identity too
		if s.creds != nil {
			s.creds.ClearCredentials()
		}
		return s, func() tea.Msg { return SignedOutMsg{} }
	}

	return s, nil
}

func (s *Settings) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		if s.confirmDelete {
			s.confirmDelete = false
			return s, nil
		}
		return s, func() tea.Msg { return CancelledMsg{} }

	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil

	case "down", "j":
		if s.cursor < itemCount-1 {
			s.cursor++
		}
		return s, nil

	case "enter", " ":
		return s.activate()
	}

	return s, nil
}

func (s *Settings) activate() (tea.Model, tea.Cmd) {
	if s.confirmDelete {
		s.confirmDelete = false
		s.busy = true
		return s, func() tea.Msg {
			return deleteResultMsg{err: s.client.DeleteAccount(context.Background())}
		}
	}

	switch s.cursor {
	case itemTheme:
		next := theme.SchemeLight
		if s.themes.Get() == theme.SchemeLight {
			next = theme.SchemeDark
		}
		if err := s.themes.Set(next); err != nil {
			s.err = err
		}
		return s, nil

	case itemClearTheme:
		if err := s.themes.Clear(); err != nil {
			s.err = err
		}
		return s, nil

	case itemSignOut:
		if s.creds != nil {
			if err := s.creds.ClearCredentials(); err != nil {
				s.err = err
				return s, nil
			}
		}
		return s, func() tea.Msg { return SignedOutMsg{} }

	case itemDeleteAccount:
		s.confirmDelete = true
		return s, nil
	}

	return s, nil
}

// SetWidth sets the screen width for rendering
func (s *Settings) SetWidth(width int) {
	s.width = width
}

// View implements tea.Model
func (s *Settings) View() string {
	return s.ViewThemed(styles.For(s.themes.Get()))
}

// ViewThemed renders with the active theme
func (s *Settings) ViewThemed(t styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(t.Title.Render(icons.Settings.String() + " Settings"))
	sb.WriteString("\n")

	if s.busy {
		sb.WriteString(t.Subtitle.Render("Working..."))
		return sb.String()
	}

	scheme := s.themes.Get()
	schemeIcon := icons.Moon.String()
	schemeLabel := "Dark"
	if scheme == theme.SchemeLight {
		schemeIcon = icons.Sun.String()
		schemeLabel = "Light"
	}
	source := "system"
	if s.themes.HasOverride() {
		source = "your preference"
	}

	rows := []string{
		fmt.Sprintf("Theme: %s %s (%s)", schemeIcon, schemeLabel, source),
		"Follow system theme",
		"Sign out",
		"Delete account",
	}

	for i, row := range rows {
		prefix := "  "
		rowStyle := lipgloss.NewStyle().Foreground(t.Text)
		if i == itemDeleteAccount {
			rowStyle = lipgloss.NewStyle().Foreground(t.Danger)
		}
		if i == s.cursor {
			prefix = t.Selected.Render("> ")
			if i != itemDeleteAccount {
				rowStyle = t.Selected
			}
		}
		sb.WriteString(prefix + rowStyle.Render(row) + "\n")
	}

	if s.confirmDelete {
		sb.WriteString("\n" + t.StatusWarning.Render(
			icons.Warning.String()+" Permanently delete your account and rounds? enter confirm, esc cancel"))
	}

	if s.err != nil {
		sb.WriteString("\n" + t.StatusCritical.Render(icons.Critical.String()+" "+s.err.Error()))
	}

	sb.WriteString("\n" + t.Help.Render("↑↓ navigate  enter select  b back"))
	return sb.String()
}
