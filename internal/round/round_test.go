// ABOUTME: Tests for the round recording state machine
// ABOUTME: Covers hole sequencing, auto-advance, totals, and phase resets

package round

import (
	"testing"
	"time"
)

func mustStart(t *testing.T, r *Recorder, course string, holes int) {
	t.Helper()
	if err := r.Start(course, holes, nil, time.Now()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
}

func TestStartValidation(t *testing.T) {
	r := New()

	if err := r.Start("", HolesEighteen, nil, time.Now()); err != ErrCourseRequired {
		t.Errorf("expected ErrCourseRequired, got %v", err)
	}
	if err := r.Start("Pebble Beach", 12, nil, time.Now()); err != ErrInvalidHoleCount {
		t.Errorf("expected ErrInvalidHoleCount, got %v", err)
	}
	if r.Phase() != PhaseSetup {
		t.Errorf("expected recorder to stay in setup, got %v", r.Phase())
	}
}

func TestStartEighteenHolesAscending(t *testing.T) {
	r := New()
	mustStart(t, r, "Pebble Beach", HolesEighteen)

	holes := r.Holes()
	if len(holes) != 18 {
		t.Fatalf("expected 18 holes, got %d", len(holes))
	}
	for i, h := range holes {
		if h != i+1 {
			t.Errorf("expected hole %d at index %d, got %d", i+1, i, h)
		}
	}
	if current, ok := r.CurrentHole(); !ok || current != 1 {
		t.Errorf("expected cursor at hole 1, got %d (ok=%v)", current, ok)
	}
}

func TestStartNineHolesCustomSelection(t *testing.T) {
	r := New()
	if err := r.Start("Torrey Pines", HolesNine, []int{10, 12, 11}, time.Now()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	holes := r.Holes()
	want := []int{10, 11, 12}
	for i, h := range want {
		if holes[i] != h {
			t.Errorf("expected hole %d at index %d, got %d", h, i, holes[i])
		}
	}
}

func TestAutoAdvanceToNextUnfilledHole(t *testing.T) {
	r := New()
	mustStart(t, r, "Pebble Beach", HolesNine)

	// Pre-fill hole 2 then score hole 1: cursor should skip to hole 3.
	r.SelectHole(2)
	r.SetEntry(2, "5")
	r.SelectHole(1)
	r.SetEntry(1, "4")

	if current, _ := r.CurrentHole(); current != 3 {
		t.Errorf("expected cursor at hole 3, got %d", current)
	}
}

func TestNoAdvanceOnInvalidEntry(t *testing.T) {
	r := New()
	mustStart(t, r, "Pebble Beach", HolesNine)

	r.SetEntry(1, "abc")
	if current, _ := r.CurrentHole(); current != 1 {
		t.Errorf("expected cursor to stay on hole 1 for invalid entry, got %d", current)
	}

	r.SetEntry(1, "0")
	if current, _ := r.CurrentHole(); current != 1 {
		t.Errorf("expected cursor to stay on hole 1 for non-positive entry, got %d", current)
	}
}

func TestLastHoleDoesNotAdvancePastEnd(t *testing.T) {
	r := New()
	mustStart(t, r, "Pebble Beach", HolesNine)

	for hole := 1; hole <= 8; hole++ {
		r.SetEntry(hole, "4")
	}
	if current, _ := r.CurrentHole(); current != 9 {
		t.Fatalf("expected cursor at hole 9, got %d", current)
	}

	r.SetEntry(9, "3")
	if current, ok := r.CurrentHole(); !ok || current != 9 {
		t.Errorf("expected cursor to stay at hole 9, got %d (ok=%v)", current, ok)
	}
}

func TestTotalScoreSumsEntries(t *testing.T) {
	r := New()
	mustStart(t, r, "Pebble Beach", HolesEighteen)

	r.SetEntry(1, "4")
	r.SetEntry(2, "5")
	r.SetEntry(3, "3")

	if got := r.TotalScore(); got != 12 {
		t.Errorf("expected total 12, got %d", got)
	}
}

func TestTotalScoreEmptyIsZero(t *testing.T) {
	r := New()
	mustStart(t, r, "Pebble Beach", HolesEighteen)

	if got := r.TotalScore(); got != 0 {
		t.Errorf("expected total 0 with no entries, got %d", got)
	}
}

func TestScoresDefaultUnparseableToZero(t *testing.T) {
	r := New()
	mustStart(t, r, "Pebble Beach", HolesNine)

	r.SetEntry(1, "4")
	r.SetEntry(2, "par")

	scores := r.Scores()
	if scores[1] != 4 {
		t.Errorf("expected hole 1 score 4, got %d", scores[1])
	}
	if scores[2] != 0 {
		t.Errorf("expected unparseable entry to default to 0, got %d", scores[2])
	}
}

func TestTickOnlyWhileActive(t *testing.T) {
	r := New()
	r.Tick()
	if r.Elapsed() != 0 {
		t.Error("expected tick in setup to be ignored")
	}

	mustStart(t, r, "Pebble Beach", HolesNine)
	r.Tick()
	r.Tick()
	if r.Elapsed() != 2 {
		t.Errorf("expected elapsed 2, got %d", r.Elapsed())
	}

	if _, err := r.BeginSubmit(time.Now()); err != nil {
		t.Fatalf("begin submit failed: %v", err)
	}
	r.Tick()
	if r.Elapsed() != 2 {
		t.Error("expected tick while submitting to be ignored")
	}
}

func TestSubmitLifecycle(t *testing.T) {
	r := New()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	if err := r.Start("Augusta National", HolesNine, nil, start); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.SetEntry(1, "4")
	r.SetEntry(2, "5")
	for i := 0; i < 10; i++ {
		r.Tick()
	}

	summary, err := r.BeginSubmit(end)
	if err != nil {
		t.Fatalf("begin submit failed: %v", err)
	}
	if r.Phase() != PhaseSubmitting {
		t.Errorf("expected submitting phase, got %v", r.Phase())
	}
	if summary.TotalScore != 9 {
		t.Errorf("expected total 9, got %d", summary.TotalScore)
	}
	if summary.Duration != 10 {
		t.Errorf("expected duration 10, got %d", summary.Duration)
	}
	if !summary.StartTime.Equal(start) || !summary.EndTime.Equal(end) {
		t.Error("expected start/end timestamps preserved")
	}

	if err := r.FinishSubmit(); err != nil {
		t.Fatalf("finish submit failed: %v", err)
	}
	if r.Phase() != PhaseSetup {
		t.Errorf("expected reset to setup, got %v", r.Phase())
	}
	if r.Elapsed() != 0 || len(r.Scores()) != 0 {
		t.Error("expected entries and timer reset after submit")
	}
}

func TestBeginSubmitRequiresActive(t *testing.T) {
	r := New()
	if _, err := r.BeginSubmit(time.Now()); err != ErrNotActive {
		t.Errorf("expected ErrNotActive, got %v", err)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3725, "01:02:05"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.seconds); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}
