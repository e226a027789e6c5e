// ABOUTME: Leagues screen for listing, creating, joining, and browsing leagues
// ABOUTME: Child bubbletea model with list, detail, search, and create modes

package leagues

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
)

// CancelledMsg is sent when the user backs out of the screen
type CancelledMsg struct{}

// mode is the active sub-view
type mode int

const (
	modeList mode = iota
	modeDetail
	modeCreate
	modeSearch
	modeSearchResults
)

type listLoadedMsg struct {
	leagues []client.LeagueSummary
	err     error
}

type detailLoadedMsg struct {
	detail *client.LeagueDetail
	err    error
}

type createdMsg struct {
	league *client.LeagueSummary
	err    error
}

type searchedMsg struct {
	leagues []client.LeagueSummary
	err     error
}

type joinedMsg struct {
	leagueID string
	err      error
}

// Leagues is the leagues screen model
type Leagues struct {
	client *client.Client

	mode    mode
	leagues []client.LeagueSummary
	results []client.LeagueSummary
	detail  *client.LeagueDetail
	cursor  int
	loading bool
	err     error
	input   textinput.Model
	width   int
}

// New creates the leagues screen
func New(apiClient *client.Client) *Leagues {
	ti := textinput.New()
	ti.CharLimit = 60
	ti.Width = 40

	return &Leagues{
		client: apiClient,
		input:  ti,
	}
}

// Init implements tea.Model
func (l *Leagues) Init() tea.Cmd {
	return l.load()
}

func (l *Leagues) load() tea.Cmd {
	if l.loading {
		return nil
	}
	l.loading = true
	return func() tea.Msg {
		leagues, err := l.client.Leagues(context.Background())
		return listLoadedMsg{leagues: leagues, err: err}
	}
}

// Update implements tea.Model
func (l *Leagues) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		return l, nil

	case tea.KeyMsg:
		if l.mode == modeCreate || l.mode == modeSearch {
			return l.updateInput(msg)
		}
		return l.updateKeys(msg)

	case listLoadedMsg:
		l.loading = false
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.err = nil
		l.leagues = msg.leagues
		if l.cursor >= len(l.leagues) {
			l.cursor = 0
		}
		return l, nil

	case detailLoadedMsg:
		l.loading = false
		if msg.err != nil {
			l.err = msg.err
			l.mode = modeList
			return l, nil
		}
		l.err = nil
		l.detail = msg.detail
		l.mode = modeDetail
		return l, nil

	case createdMsg:
		l.loading = false
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.err = nil
		l.mode = modeList
		return l, l.load()

	case searchedMsg:
		l.loading = false
		if msg.err != nil {
			l.err = msg.err
			l.mode = modeList
			return l, nil
		}
		l.err = nil
		l.results = msg.leagues
		l.cursor = 0
		l.mode = modeSearchResults
		return l, nil

	case joinedMsg:
		l.loading = false
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.err = nil
		l.mode = modeList
		return l, l.load()
	}

	return l, nil
}

func (l *Leagues) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		switch l.mode {
		case modeDetail, modeSearchResults:
			l.mode = modeList
			l.detail = nil
			l.cursor = 0
			return l, nil
		default:
			return l, func() tea.Msg { return CancelledMsg{} }
		}

	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
		return l, nil

	case "down", "j":
		if l.cursor < len(l.visible())-1 {
			l.cursor++
		}
		return l, nil

	case "enter":
		if l.mode == modeSearchResults {
			if league := l.current(); league != nil {
				return l, l.join(league.ID)
			}
			return l, nil
		}
		if league := l.current(); league != nil {
			return l, l.loadDetail(league.ID)
		}
		return l, nil

	case "n":
		if l.mode == modeList {
			l.mode = modeCreate
			l.input.Placeholder = "League name"
			l.input.SetValue("")
			l.input.Focus()
			return l, textinput.Blink
		}
		return l, nil

	case "s":
		if l.mode == modeList {
			l.mode = modeSearch
			l.input.Placeholder = "Search leagues"
			l.input.SetValue("")
			l.input.Focus()
			return l, textinput.Blink
		}
		return l, nil

	case "r":
		if l.mode == modeList {
			return l, l.load()
		}
		return l, nil
	}

	return l, nil
}

func (l *Leagues) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.mode = modeList
		l.input.Blur()
		return l, nil

	case "enter":
		value := strings.TrimSpace(l.input.Value())
		l.input.Blur()
		if value == "" {
			l.mode = modeList
			return l, nil
		}
		if l.mode == modeCreate {
			return l, l.create(value)
		}
		return l, l.search(value)
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *Leagues) loadDetail(leagueID string) tea.Cmd {
	l.loading = true
	return func() tea.Msg {
		detail, err := l.client.LeagueDetail(context.Background(), leagueID)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

func (l *Leagues) create(name string) tea.Cmd {
	l.loading = true
	return func() tea.Msg {
		league, err := l.client.CreateLeague(context.Background(), name)
		return createdMsg{league: league, err: err}
	}
}

func (l *Leagues) search(query string) tea.Cmd {
	l.loading = true
	return func() tea.Msg {
		leagues, err := l.client.SearchLeagues(context.Background(), query)
		return searchedMsg{leagues: leagues, err: err}
	}
}

func (l *Leagues) join(leagueID string) tea.Cmd {
	l.loading = true
	return func() tea.Msg {
		err := l.client.JoinLeague(context.Background(), leagueID)
		return joinedMsg{leagueID: leagueID, err: err}
	}
}

func (l *Leagues) visible() []client.LeagueSummary {
	if l.mode == modeSearchResults {
		return l.results
	}
	return l.leagues
}

func (l *Leagues) current() *client.LeagueSummary {
	visible := l.visible()
	if l.cursor < 0 || l.cursor >= len(visible) {
		return nil
	}
	return &visible[l.cursor]
}

// SetWidth sets the screen width for rendering
func (l *Leagues) SetWidth(width int) {
	l.width = width
}

// View implements tea.Model
func (l *Leagues) View() string {
	return l.ViewThemed(styles.For(theme.SchemeDark))
}

// ViewThemed renders with the active theme
func (l *Leagues) ViewThemed(t styles.Theme) string {
	switch l.mode {
	case modeDetail:
		return l.viewDetail(t)
	case modeCreate, modeSearch:
		return l.viewInput(t)
	default:
		return l.viewList(t)
	}
}

func (l *Leagues) viewList(t styles.Theme) string {
	var sb strings.Builder

	title := icons.Trophy.String() + " Leagues"
	if l.mode == modeSearchResults {
		title = icons.Trophy.String() + " Search results"
	}
	sb.WriteString(t.Title.Render(title))
	sb.WriteString("\n")

	if l.loading {
		sb.WriteString(t.Subtitle.Render("Loading..."))
		return sb.String()
	}
	if l.err != nil {
		sb.WriteString(t.StatusCritical.Render(icons.Critical.String()+" "+l.err.Error()) + "\n")
	}

	visible := l.visible()
	if len(visible) == 0 {
		if l.mode == modeSearchResults {
			sb.WriteString(t.Subtitle.Render("No leagues matched."))
		} else {
			sb.WriteString(t.Subtitle.Render("You're not in a league yet. Press n to start one."))
		}
		sb.WriteString("\n")
	}

	for i, league := range visible {
		prefix := "  "
		nameStyle := lipgloss.NewStyle().Foreground(t.Text)
		if i == l.cursor {
			prefix = t.Selected.Render("> ")
			nameStyle = t.Selected
		}
		members := lipgloss.NewStyle().Foreground(t.Muted).
			Render(fmt.Sprintf("%d members", league.MemberCount))
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", prefix, nameStyle.Render(league.Name), members))
	}

	help := "↑↓ navigate  enter open  n new  s search  r refresh  b back"
	if l.mode == modeSearchResults {
		help = "↑↓ navigate  enter join  b back"
	}
	sb.WriteString(t.Help.Render(help))
	return sb.String()
}

func (l *Leagues) viewDetail(t styles.Theme) string {
	d := l.detail
	var sb strings.Builder

	sb.WriteString(t.Title.Render(icons.Trophy.String() + " " + d.Name))
	sb.WriteString("\n")

	if d.WeeklyChallenge != "" {
		sb.WriteString(t.Key.Render("This week: ") + d.WeeklyChallenge + "\n\n")
	}

	sb.WriteString(t.Subtitle.Render(fmt.Sprintf("%s Members (%d)", icons.Friends.String(), d.MemberCount)))
	sb.WriteString("\n")
	for _, m := range d.Members {
		sb.WriteString("  " + m.Name + "\n")
	}

	sb.WriteString(t.Help.Render("b back"))
	return sb.String()
}

func (l *Leagues) viewInput(t styles.Theme) string {
	var sb strings.Builder

	title := "Create a league"
	if l.mode == modeSearch {
		title = "Find a league"
	}
	sb.WriteString(t.Title.Render(icons.Trophy.String() + " " + title))
	sb.WriteString("\n")
	sb.WriteString(l.input.View())
	sb.WriteString("\n")
	sb.WriteString(t.Help.Render("enter confirm  esc cancel"))
	return sb.String()
}
