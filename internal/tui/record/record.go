// ABOUTME: Round recording screen with setup, live scoring, and submission
// ABOUTME: Drives the round state machine and a once-per-second elapsed timer

package record

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/round"
	"github.com/parlor-golf/parlor-cli/internal/storage"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui/debuglog"
	"github.com/parlor-golf/parlor-cli/internal/tui/icons"
	"github.com/parlor-golf/parlor-cli/internal/tui/styles"
	"github.com/parlor-golf/parlor-cli/internal/tui/widgets"
)

// SubmittedMsg is sent when a round is saved to the backend
type SubmittedMsg struct {
	SessionID string
}

// CancelledMsg is sent when the user abandons recording
type CancelledMsg struct{}

// tickMsg advances the elapsed clock
type tickMsg time.Time

// submitResultMsg carries the backend response for a saved round
type submitResultMsg struct {
	sessionID string
	err       error
}

// Record is the round recording screen model
type Record struct {
	client  *client.Client
	storage *storage.Client
	uid     string

	recorder *round.Recorder
	form     *huh.Form
	entry    textinput.Model
	width    int
	err      error
	busy     bool

	// Setup form values
	courseName string
	holeChoice string
	privacy    string

	// Photos staged during the round; uploaded ahead of the session
	// create so the payload can carry their URLs
	photos     [][]byte
	photoBatch string
	photoMode  bool
	photoEntry textinput.Model
}

// New creates the record screen in setup phase
func New(apiClient *client.Client, storageClient *storage.Client, uid string) *Record {
	ti := textinput.New()
	ti.Placeholder = "strokes"
	ti.CharLimit = 3
	ti.Width = 8

	pi := textinput.New()
	pi.Placeholder = "path/to/photo.jpg"
	pi.CharLimit = 200
	pi.Width = 40

	r := &Record{
		client:     apiClient,
		storage:    storageClient,
		uid:        uid,
		recorder:   round.New(),
		entry:      ti,
		photoEntry: pi,
		holeChoice: "18",
		privacy:    client.PrivacyFriends,
	}
	r.form = r.createSetupForm()
	return r
}

func (r *Record) createSetupForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course name").
				Placeholder("e.g., Pebble Creek").
				CharLimit(80).
				Value(&r.courseName).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("course name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Holes").
				Options(
					huh.NewOption("18 holes", "18"),
					huh.NewOption("9 holes (front)", "front9"),
					huh.NewOption("9 holes (back)", "back9"),
				).
				Value(&r.holeChoice),
			huh.NewSelect[string]().
				Title("Who can see this round").
				Options(
					huh.NewOption("Everyone", client.PrivacyPublic),
					huh.NewOption("Friends", client.PrivacyFriends),
					huh.NewOption("Only me", client.PrivacyPrivate),
				).
				Value(&r.privacy),
		).Title("New round").Description("Set up the round before teeing off"),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model
func (r *Record) Init() tea.Cmd {
	return r.form.Init()
}

// tick schedules the next clock update; only armed while active so
// an abandoned round stops ticking.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (r *Record) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		if r.recorder.Phase() == round.PhaseSetup {
			form, cmd := r.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				r.form = f
			}
			return r, cmd
		}
		return r, nil

	case tickMsg:
		if r.recorder.Phase() != round.PhaseActive {
			return r, nil
		}
		r.recorder.Tick()
		return r, tick()

	case submitResultMsg:
		// Both outcomes land back on setup. A failed save surfaces the
		// error there; the scorecard is gone beyond the debug log.
		r.busy = false
		r.photos = nil
		r.recorder.FinishSubmit()
		r.form = r.createSetupForm()
		if msg.err != nil {
			r.err = msg.err
			debuglog.Error("save round", msg.err)
			return r, r.form.Init()
		}
		r.err = nil
		sessionID := msg.sessionID
		return r, tea.Batch(r.form.Init(), func() tea.Msg { return SubmittedMsg{SessionID: sessionID} })

	case tea.KeyMsg:
		switch r.recorder.Phase() {
		case round.PhaseSetup:
			return r.updateSetup(msg)
		case round.PhaseActive:
			return r.updateActive(msg)
		case round.PhaseSubmitting:
			// Input is ignored while the save is in flight
			return r, nil
		}
	}

	if r.recorder.Phase() == round.PhaseSetup {
		form, cmd := r.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			r.form = f
		}
		if r.form.State == huh.StateCompleted {
			return r.startRound()
		}
		return r, cmd
	}

	return r, nil
}

func (r *Record) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		return r, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}
	if r.form.State == huh.StateCompleted {
		return r.startRound()
	}
	return r, cmd
}

func (r *Record) startRound() (tea.Model, tea.Cmd) {
	holeCount := round.HolesEighteen
	var custom []int
	switch r.holeChoice {
	case "front9":
		holeCount = round.HolesNine
	case "back9":
		holeCount = round.HolesNine
		for h := 10; h <= 18; h++ {
			custom = append(custom, h)
		}
	}

	if err := r.recorder.Start(strings.TrimSpace(r.courseName), holeCount, custom, time.Now()); err != nil {
		r.err = err
		r.form = r.createSetupForm()
		return r, r.form.Init()
	}

	// Photo object names key on this id; the backend assigns the real
	// session id only after the photos are already uploaded
	r.photoBatch = uuid.NewString()
	r.photos = nil

	r.entry.SetValue("")
	r.entry.Focus()
	return r, tea.Batch(tick(), textinput.Blink)
}

func (r *Record) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.photoMode {
		return r.updatePhotoEntry(msg)
	}

	switch msg.String() {
	case "esc":
		r.recorder = round.New()
		r.form = r.createSetupForm()
		return r, func() tea.Msg { return CancelledMsg{} }

	case "enter":
		raw := strings.TrimSpace(r.entry.Value())
		if hole, ok := r.recorder.CurrentHole(); ok && raw != "" {
			r.recorder.SetEntry(hole, raw)
			r.entry.SetValue("")
		}
		return r, nil

	case "left", "h":
		r.selectAdjacent(-1)
		r.syncEntry()
		return r, nil

	case "right":
		r.selectAdjacent(1)
		r.syncEntry()
		return r, nil

	case "ctrl+p":
		if r.storage != nil {
			r.photoMode = true
			r.entry.Blur()
			r.photoEntry.SetValue("")
			r.photoEntry.Focus()
			return r, textinput.Blink
		}
		return r, nil

	case "ctrl+s":
		return r.submit()
	}

	// Digits flow into the stroke input
	var cmd tea.Cmd
	r.entry, cmd = r.entry.Update(msg)
	return r, cmd
}

// updatePhotoEntry reads a local file path and stages its bytes for
// upload when the round is finished.
func (r *Record) updatePhotoEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		r.closePhotoEntry()
		return r, nil

	case "enter":
		path := strings.TrimSpace(r.photoEntry.Value())
		if path == "" {
			r.closePhotoEntry()
			return r, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			r.err = fmt.Errorf("cannot read %s: %w", path, err)
		} else {
			r.err = nil
			r.AttachPhoto(data)
		}
		r.closePhotoEntry()
		return r, nil
	}

	var cmd tea.Cmd
	r.photoEntry, cmd = r.photoEntry.Update(msg)
	return r, cmd
}

func (r *Record) closePhotoEntry() {
	r.photoMode = false
	r.photoEntry.Blur()
	r.entry.Focus()
}

func (r *Record) selectAdjacent(delta int) {
	holes := r.recorder.Holes()
	current, ok := r.recorder.CurrentHole()
	if !ok {
		return
	}
	for i, h := range holes {
		if h == current {
			next := i + delta
			if next >= 0 && next < len(holes) {
				r.recorder.SelectHole(holes[next])
			}
			return
		}
	}
}

func (r *Record) syncEntry() {
	if hole, ok := r.recorder.CurrentHole(); ok {
		r.entry.SetValue(r.recorder.Entry(hole))
	}
}

func (r *Record) submit() (tea.Model, tea.Cmd) {
	summary, err := r.recorder.BeginSubmit(time.Now())
	if err != nil {
		r.err = err
		return r, nil
	}
	return r, r.send(summary)
}

// send uploads staged photos sequentially, then posts the summary as a
// session create carrying the collected photo URLs. A failed upload is
// logged and skipped; a failed create removes the uploads again so no
// orphaned objects remain in storage.
func (r *Record) send(summary *round.Summary) tea.Cmd {
	r.busy = true
	privacy := r.privacy
	photos := r.photos
	batch := r.photoBatch
	return func() tea.Msg {
		ctx := context.Background()

		var urls []string
		for i, data := range photos {
			if r.storage == nil {
				break
			}
			url, err := r.storage.UploadSessionPhoto(ctx, r.uid, batch, i, data)
			if err != nil {
				debuglog.Error("upload session photo", err)
				continue
			}
			urls = append(urls, url)
		}
		if len(urls) < len(photos) {
			debuglog.Warn("%d of %d photos failed to upload", len(photos)-len(urls), len(photos))
		}

		session := &client.Session{
			CourseName:    summary.CourseName,
			Holes:         summary.HoleCount,
			SelectedHoles: summary.Holes,
			Scores:        summary.Scores,
			TotalScore:    summary.TotalScore,
			Duration:      summary.Duration,
			StartTime:     summary.StartTime.Format(time.RFC3339),
			EndTime:       summary.EndTime.Format(time.RFC3339),
			Privacy:       privacy,
			Images:        urls,
		}
		id, err := r.client.CreateSession(ctx, session)
		if err != nil {
			for _, u := range urls {
				if derr := r.storage.DeleteByURL(ctx, u); derr != nil {
					debuglog.Error("remove uploaded photo", derr)
				}
			}
			return submitResultMsg{err: err}
		}
		return submitResultMsg{sessionID: id}
	}
}

// AttachPhoto stages image bytes for upload when the round is finished
func (r *Record) AttachPhoto(data []byte) {
	r.photos = append(r.photos, data)
}

// SetWidth sets the screen width for rendering
func (r *Record) SetWidth(width int) {
	r.width = width
}

// View implements tea.Model
func (r *Record) View() string {
	return r.ViewThemed(styles.For(theme.SchemeDark))
}

// ViewThemed renders with the active theme
func (r *Record) ViewThemed(t styles.Theme) string {
	switch r.recorder.Phase() {
	case round.PhaseSetup:
		return r.viewSetup(t)
	case round.PhaseSubmitting:
		return r.viewSubmitting(t)
	default:
		return r.viewActive(t)
	}
}

func (r *Record) viewSetup(t styles.Theme) string {
	var sb strings.Builder
	sb.WriteString(t.Title.Render(icons.Tee.String() + " Record a round"))
	sb.WriteString("\n")
	if r.err != nil {
		sb.WriteString(t.StatusCritical.Render(icons.Critical.String()+" "+r.err.Error()) + "\n\n")
	}
	sb.WriteString(r.form.View())
	return sb.String()
}

func (r *Record) viewActive(t styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(t.Title.Render(fmt.Sprintf("%s %s", icons.Flag.String(), r.recorder.CourseName())))
	sb.WriteString("\n")

	current, _ := r.recorder.CurrentHole()
	elapsed := t.Value.Render(round.FormatElapsed(r.recorder.Elapsed()))
	sb.WriteString(fmt.Sprintf("%s %s   %s hole %s\n\n",
		icons.Clock.String(), elapsed,
		icons.Tee.String(), t.Key.Render(strconv.Itoa(current))))

	config := widgets.DefaultScorecardConfig()
	config.Current = current
	config.ActiveColor = t.Primary
	sb.WriteString(widgets.Scorecard(r.recorder.Holes(), r.recorder.Scores(), config))
	sb.WriteString("\n\n")

	entered := len(r.recorder.Scores())
	barConfig := widgets.DefaultProgressBarConfig()
	barConfig.FilledColor = t.Primary
	sb.WriteString(widgets.RoundProgress(entered, len(r.recorder.Holes()), barConfig))
	sb.WriteString("\n\n")

	sb.WriteString(t.Key.Render("Strokes: ") + r.entry.View())
	sb.WriteString("\n")
	sb.WriteString(t.Key.Render("Total: ") + t.Value.Render(strconv.Itoa(r.recorder.TotalScore())))
	if len(r.photos) > 0 {
		sb.WriteString("   " + t.Key.Render(icons.Camera.String()+" Photos: ") + t.Value.Render(strconv.Itoa(len(r.photos))))
	}

	if r.err != nil {
		sb.WriteString("\n" + t.StatusCritical.Render(icons.Critical.String()+" "+r.err.Error()))
	}

	if r.photoMode {
		sb.WriteString("\n" + t.Key.Render("Photo file: ") + r.photoEntry.View())
		sb.WriteString("\n" + t.Help.Render("enter attach  esc cancel"))
		return sb.String()
	}

	sb.WriteString("\n" + t.Help.Render("enter score  ←→ hole  ctrl+p photo  ctrl+s finish  esc abandon"))
	return sb.String()
}

func (r *Record) viewSubmitting(t styles.Theme) string {
	var sb strings.Builder
	sb.WriteString(t.Title.Render(icons.Flag.String() + " Saving round"))
	sb.WriteString("\n")
	sb.WriteString(t.Subtitle.Render("Sending your scorecard..."))
	if len(r.photos) > 0 {
		sb.WriteString("\n" + t.Subtitle.Render(fmt.Sprintf("Uploading %d photos...", len(r.photos))))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
