// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes screens through the auth gate and renders the themed frame

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/parlor-golf/parlor-cli/internal/authgate"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/storage"
	"github.com/parlor-golf/parlor-cli/internal/store"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui/debuglog"
	"github.com/parlor-golf/parlor-cli/internal/tui/feed"
	"github.com/parlor-golf/parlor-cli/internal/tui/icons"
	"github.com/parlor-golf/parlor-cli/internal/tui/leagues"
	"github.com/parlor-golf/parlor-cli/internal/tui/profile"
	"github.com/parlor-golf/parlor-cli/internal/tui/rankings"
	"github.com/parlor-golf/parlor-cli/internal/tui/record"
	"github.com/parlor-golf/parlor-cli/internal/tui/settings"
	"github.com/parlor-golf/parlor-cli/internal/tui/signin"
	"github.com/parlor-golf/parlor-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenSignIn Screen = iota
	ScreenHome
	ScreenFeed
	ScreenRecord
	ScreenLeagues
	ScreenRankings
	ScreenProfile
	ScreenSettings
)

// Layout constants
const (
	minTerminalWidth = 80
)

// homeItem is one entry on the home menu
type homeItem struct {
	label  string
	icon   icons.Icon
	screen Screen
}

var homeItems = []homeItem{
	{"Feed", icons.Course, ScreenFeed},
	{"Record a round", icons.Tee, ScreenRecord},
	{"Leagues", icons.Trophy, ScreenLeagues},
	{"Rankings", icons.Trophy, ScreenRankings},
	{"Profile", icons.User, ScreenProfile},
	{"Settings", icons.Settings, ScreenSettings},
}

// App is the root model for the TUI
type App struct {
	client   *client.Client
	storage  *storage.Client
	kv       *store.Store
	themes   *theme.Store
	gate     *authgate.Gate
	feedSize int

	screen     Screen
	homeCursor int
	width      int
	height     int

	// Child models
	signinScreen   *signin.SignIn
	feedScreen     *feed.Feed
	recordScreen   *record.Record
	leaguesScreen  *leagues.Leagues
	rankingsScreen *rankings.Rankings
	profileScreen  *profile.Profile
	settingsScreen *settings.Settings
}

// New creates a new TUI application
func New(apiClient *client.Client, storageClient *storage.Client, kv *store.Store, themes *theme.Store, feedSize int) *App {
	a := &App{
		client:   apiClient,
		storage:  storageClient,
		kv:       kv,
		themes:   themes,
		gate:     authgate.New(kv),
		feedSize: feedSize,
	}

	// The gate decides where we start: a stored token goes straight
	// to the home screen, otherwise sign-in.
	switch a.gate.Check(false) {
	case authgate.RedirectSignIn:
		a.screen = ScreenSignIn
		a.signinScreen = signin.New(apiClient)
	default:
		a.screen = ScreenHome
	}

	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenSignIn && a.signinScreen != nil {
		return a.signinScreen.Init()
	}
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == ScreenHome {
			return a.updateHome(msg)
		}
		return a.forward(msg)

	case signin.SignedInMsg:
		return a.handleSignedIn(msg)

	case signin.CancelledMsg:
		return a, tea.Quit

	case feed.CancelledMsg, leagues.CancelledMsg, rankings.CancelledMsg,
		profile.CancelledMsg, settings.CancelledMsg, record.CancelledMsg:
		return a.goHome()

	case record.SubmittedMsg:
		// A saved round lands on the feed so it shows up immediately
		return a.open(ScreenFeed)

	case settings.SignedOutMsg:
		return a.handleSignedOut()

	default:
		return a.forward(msg)
	}
}

// handleSignedIn persists the credentials and re-runs the gate. The
// gate only redirects on the loading->authenticated flip, so repeated
// sign-in messages cannot bounce the screen twice.
func (a *App) handleSignedIn(msg signin.SignedInMsg) (tea.Model, tea.Cmd) {
	p := msg.Payload
	if err := a.kv.Set(store.KeyIDToken, p.IDToken); err != nil {
		debuglog.Error("persist token", err)
	}
	a.kv.Set(store.KeyUID, p.UID)
	a.kv.Set(store.KeyName, p.Name)

	if a.gate.Check(true) == authgate.RedirectHome || a.gate.State() == authgate.StateAuthenticated {
		a.signinScreen = nil
		return a.goHome()
	}
	return a, nil
}

// handleSignedOut drops all child screens and routes through the gate.
func (a *App) handleSignedOut() (tea.Model, tea.Cmd) {
	a.feedScreen = nil
	a.recordScreen = nil
	a.leaguesScreen = nil
	a.rankingsScreen = nil
	a.profileScreen = nil
	a.settingsScreen = nil

	if a.gate.Check(false) == authgate.RedirectSignIn || a.gate.State() == authgate.StateUnauthenticated {
		a.screen = ScreenSignIn
		a.signinScreen = signin.New(a.client)
		return a, a.signinScreen.Init()
	}
	return a.goHome()
}

func (a *App) goHome() (tea.Model, tea.Cmd) {
	a.screen = ScreenHome
	return a, nil
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit

	case "up", "k":
		if a.homeCursor > 0 {
			a.homeCursor--
		}
		return a, nil

	case "down", "j":
		if a.homeCursor < len(homeItems)-1 {
			a.homeCursor++
		}
		return a, nil

	case "enter":
		return a.open(homeItems[a.homeCursor].screen)
	}
	return a, nil
}

// open transitions to a screen, creating its model lazily. Fresh data
// screens re-init on every visit so their content is current.
func (a *App) open(screen Screen) (tea.Model, tea.Cmd) {
	// Fail closed: no screen past the gate without a token
	if a.gate.Check(false) == authgate.RedirectSignIn || a.gate.State() != authgate.StateAuthenticated {
		a.screen = ScreenSignIn
		if a.signinScreen == nil {
			a.signinScreen = signin.New(a.client)
		}
		return a, a.signinScreen.Init()
	}

	uid, _ := a.kv.Get(store.KeyUID)
	name, _ := a.kv.Get(store.KeyName)

	a.screen = screen
	switch screen {
	case ScreenFeed:
		a.feedScreen = feed.New(a.client, uid, name, a.feedSize)
		return a, a.feedScreen.Init()
	case ScreenRecord:
		a.recordScreen = record.New(a.client, a.storage, uid)
		return a, a.recordScreen.Init()
	case ScreenLeagues:
		a.leaguesScreen = leagues.New(a.client)
		return a, a.leaguesScreen.Init()
	case ScreenRankings:
		a.rankingsScreen = rankings.New(a.client)
		return a, a.rankingsScreen.Init()
	case ScreenProfile:
		a.profileScreen = profile.New(a.client, uid)
		return a, a.profileScreen.Init()
	case ScreenSettings:
		if a.settingsScreen == nil {
			a.settingsScreen = settings.New(a.client, a.themes, a.kv)
		}
		return a, a.settingsScreen.Init()
	}
	return a.goHome()
}

// forward routes a message to the active child model.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenSignIn:
		if a.signinScreen != nil {
			model, cmd := a.signinScreen.Update(msg)
			a.signinScreen = model.(*signin.SignIn)
			return a, cmd
		}
	case ScreenFeed:
		if a.feedScreen != nil {
			model, cmd := a.feedScreen.Update(msg)
			a.feedScreen = model.(*feed.Feed)
			return a, cmd
		}
	case ScreenRecord:
		if a.recordScreen != nil {
			model, cmd := a.recordScreen.Update(msg)
			a.recordScreen = model.(*record.Record)
			return a, cmd
		}
	case ScreenLeagues:
		if a.leaguesScreen != nil {
			model, cmd := a.leaguesScreen.Update(msg)
			a.leaguesScreen = model.(*leagues.Leagues)
			return a, cmd
		}
	case ScreenRankings:
		if a.rankingsScreen != nil {
			model, cmd := a.rankingsScreen.Update(msg)
			a.rankingsScreen = model.(*rankings.Rankings)
			return a, cmd
		}
	case ScreenProfile:
		if a.profileScreen != nil {
			model, cmd := a.profileScreen.Update(msg)
			a.profileScreen = model.(*profile.Profile)
			return a, cmd
		}
	case ScreenSettings:
		if a.settingsScreen != nil {
			model, cmd := a.settingsScreen.Update(msg)
			a.settingsScreen = model.(*settings.Settings)
			return a, cmd
		}
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	t := styles.For(a.themes.Get())

	var content string
	switch a.screen {
	case ScreenSignIn:
		if a.signinScreen != nil {
			content = a.signinScreen.ViewThemed(t)
		}
	case ScreenHome:
		content = a.viewHome(t)
	case ScreenFeed:
		if a.feedScreen != nil {
			content = a.feedScreen.ViewThemed(t)
		}
	case ScreenRecord:
		if a.recordScreen != nil {
			content = a.recordScreen.ViewThemed(t)
		}
	case ScreenLeagues:
		if a.leaguesScreen != nil {
			content = a.leaguesScreen.ViewThemed(t)
		}
	case ScreenRankings:
		if a.rankingsScreen != nil {
			content = a.rankingsScreen.ViewThemed(t)
		}
	case ScreenProfile:
		if a.profileScreen != nil {
			content = a.profileScreen.ViewThemed(t)
		}
	case ScreenSettings:
		if a.settingsScreen != nil {
			content = a.settingsScreen.ViewThemed(t)
		}
	}

	return a.wrapWithFrame(t, content)
}

func (a *App) viewHome(t styles.Theme) string {
	var sb strings.Builder

	name, _ := a.kv.Get(store.KeyName)
	greeting := "Welcome back"
	if name != "" {
		greeting = "Welcome back, " + name
	}
	sb.WriteString(t.Title.Render(icons.Flag.String() + " Parlor"))
	sb.WriteString("\n")
	sb.WriteString(t.Subtitle.Render(greeting))
	sb.WriteString("\n")

	for i, item := range homeItems {
		prefix := "  "
		labelStyle := lipgloss.NewStyle().Foreground(t.Text)
		if i == a.homeCursor {
			prefix = t.Selected.Render("> ")
			labelStyle = t.Selected
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", prefix, item.icon.String(), labelStyle.Render(item.label)))
	}

	sb.WriteString(t.Help.Render("↑↓ navigate  enter select  q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader(t styles.Theme) string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(t.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(t.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.Flag.String(), titleStyle.Render("Parlor"))

	rightText := ""
	if name, ok := a.kv.Get(store.KeyName); ok && a.screen != ScreenSignIn {
		rightText = contextStyle.Render(name) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter(t styles.Theme) string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(t.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(t.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenSignIn:
		shortcuts = []string{"tab Mode", "enter Submit", "ctrl+c Quit"}
	case ScreenHome:
		shortcuts = []string{"↑↓ Navigate", "enter Select", "q Quit"}
	case ScreenRecord:
		shortcuts = []string{"enter Score", "ctrl+p Photo", "ctrl+s Finish", "esc Abandon"}
	default:
		shortcuts = []string{"b Back", "ctrl+c Quit"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlain := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlain)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(t styles.Theme, content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader(t))
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter(t))

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, storageClient *storage.Client, kv *store.Store, themes *theme.Store, feedSize int) error {
	debuglog.Init(store.DefaultConfigDir())
	defer debuglog.Close()
	debuglog.Log("session started at %s", time.Now().Format(time.RFC3339))

	// The terminal itself beats the env-based guess the store was
	// seeded with; a persisted override still wins inside the store.
	if lipgloss.HasDarkBackground() {
		themes.SetAmbient(theme.SchemeDark)
	} else {
		themes.SetAmbient(theme.SchemeLight)
	}

	app := New(apiClient, storageClient, kv, themes, feedSize)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
