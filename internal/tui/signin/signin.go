// ABOUTME: Sign-in and sign-up screen as a bubbletea model
// ABOUTME: Uses huh forms and emits SignedInMsg with the auth payload

package signin

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui/icons"
	"github.com/parlor-golf/parlor-cli/internal/tui/styles"
)

// Mode selects between signing in and creating an account
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

// SignedInMsg is sent when authentication succeeds
type SignedInMsg struct {
	Payload *client.AuthPayload
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// authResultMsg carries the backend response
type authResultMsg struct {
	payload *client.AuthPayload
	err     error
}

// SignIn is the authentication screen model
type SignIn struct {
	client *client.Client
	form   *huh.Form
	mode   Mode
	width  int
	busy   bool
	err    error

	email    string
	password string
	name     string
}

// New creates the sign-in screen starting in sign-in mode
func New(apiClient *client.Client) *SignIn {
	s := &SignIn{
		client: apiClient,
		mode:   ModeSignIn,
	}
	s.form = s.createForm()
	return s
}

func (s *SignIn) createForm() *huh.Form {
	fields := []huh.Field{}

	if s.mode == ModeSignUp {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Placeholder("Shown to friends and leagues").
			CharLimit(60).
			Value(&s.name).
			Validate(required("name")))
	}

	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			CharLimit(120).
			Value(&s.email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(120).
			Value(&s.password).
			Validate(required("password")),
	)

	title := "Sign in"
	desc := "Press Tab to switch to sign up"
	if s.mode == ModeSignUp {
		title = "Create account"
		desc = "Press Tab to switch to sign in"
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title).Description(desc),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model
func (s *SignIn) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SignIn) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		form, cmd := s.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			s.form = f
		}
		return s, cmd

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return CancelledMsg{} }
		case "tab":
			// Toggle between sign in and sign up, keeping typed values
			if s.mode == ModeSignIn {
				s.mode = ModeSignUp
			} else {
				s.mode = ModeSignIn
			}
			s.err = nil
			s.form = s.createForm()
			return s, s.form.Init()
		}

	case authResultMsg:
		s.busy = false
		if msg.err != nil {
			s.err = msg.err
			s.form = s.createForm()
			return s, s.form.Init()
		}
		return s, func() tea.Msg { return SignedInMsg{Payload: msg.payload} }
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted && !s.busy {
		s.busy = true
		s.err = nil
		return s, s.authenticate()
	}

	return s, cmd
}

// authenticate calls the backend. Sign-up responses carry the same
// token payload as sign-in, so a new account lands signed in.
func (s *SignIn) authenticate() tea.Cmd {
	mode := s.mode
	email, password, name := s.email, s.password, s.name
	return func() tea.Msg {
		ctx := context.Background()
		var payload *client.AuthPayload
		var err error
		if mode == ModeSignUp {
			payload, err = s.client.SignUp(ctx, email, password, name)
		} else {
			payload, err = s.client.SignIn(ctx, email, password)
		}
		return authResultMsg{payload: payload, err: err}
	}
}

// SetWidth sets the screen width for rendering
func (s *SignIn) SetWidth(width int) {
	s.width = width
}

// View implements tea.Model
func (s *SignIn) View() string {
	return s.ViewThemed(styles.For(theme.SchemeDark))
}

// ViewThemed renders with the active theme
func (s *SignIn) ViewThemed(t styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(t.Title.Render(icons.Flag.String() + " Parlor"))
	sb.WriteString("\n")

	if s.busy {
		sb.WriteString(t.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
	}

	if s.err != nil {
		sb.WriteString(t.StatusCritical.Render(icons.Critical.String() + " " + s.err.Error()))
		sb.WriteString("\n\n")
	}

	sb.WriteString(s.form.View())

	help := "tab switch mode  esc quit"
	sb.WriteString("\n")
	sb.WriteString(t.Help.Render(help))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(v, "@")
	if at <= 0 || at == len(v)-1 {
		return fmt.Errorf("must be a valid email address")
	}
	return nil
}
