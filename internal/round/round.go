// ABOUTME: Recording state machine for an in-progress golf round
// ABOUTME: Manages setup, active scoring with auto-advance, and submission

package round

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Phase is the lifecycle stage of the recorder.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseActive
	PhaseSubmitting
)

// String returns the string representation of a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseActive:
		return "active"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Hole counts supported for a round.
const (
	HolesNine     = 9
	HolesEighteen = 18
)

var (
	ErrCourseRequired   = errors.New("course name is required")
	ErrInvalidHoleCount = errors.New("hole count must be 9 or 18")
	ErrNotActive        = errors.New("no active round")
	ErrNotSubmitting    = errors.New("round is not submitting")
)

// Summary is the parsed payload of a finished round, ready for
// submission.
type Summary struct {
	CourseName string
	HoleCount  int
	Holes      []int
	Scores     map[int]int
	TotalScore int
	Duration   int // seconds
	StartTime  time.Time
	EndTime    time.Time
}

// Recorder tracks a single in-progress round. It is owned exclusively
// by the recording screen; all mutations happen on the UI loop.
type Recorder struct {
	phase      Phase
	courseName string
	holeCount  int
	holes      []int
	entries    map[int]string
	currentIdx int
	startTime  time.Time
	elapsed    int
}

// New returns a recorder in the setup phase.
func New() *Recorder {
	return &Recorder{phase: PhaseSetup, entries: map[int]string{}}
}

// Phase returns the current lifecycle phase.
func (r *Recorder) Phase() Phase { return r.phase }

// CourseName returns the course chosen at start.
func (r *Recorder) CourseName() string { return r.courseName }

// HoleCount returns the configured hole count.
func (r *Recorder) HoleCount() int { return r.holeCount }

// Elapsed returns the running elapsed time in seconds.
func (r *Recorder) Elapsed() int { return r.elapsed }

// StartTime returns the wall-clock start of the active round.
func (r *Recorder) StartTime() time.Time { return r.startTime }

// Start moves setup → active. The course name must be non-empty and
// the hole count one of the supported values. A 9-hole round may name
// the specific holes played; otherwise holes run 1..count ascending.
// Starting captures the wall clock and resets the elapsed counter.
func (r *Recorder) Start(course string, holeCount int, customHoles []int, now time.Time) error {
	if course == "" {
		return ErrCourseRequired
	}
	if holeCount != HolesNine && holeCount != HolesEighteen {
		return ErrInvalidHoleCount
	}

	if holeCount == HolesNine && len(customHoles) > 0 {
		r.holes = append([]int{}, customHoles...)
		sort.Ints(r.holes)
	} else {
		r.holes = make([]int, holeCount)
		for i := range r.holes {
			r.holes[i] = i + 1
		}
	}

	r.phase = PhaseActive
	r.courseName = course
	r.holeCount = holeCount
	r.entries = map[int]string{}
	r.currentIdx = 0
	r.startTime = now
	r.elapsed = 0
	return nil
}

// Tick advances the elapsed counter by one second. Ticks arriving
// outside the active phase are ignored, which keeps a stale timer from
// mutating the next round.
func (r *Recorder) Tick() {
	if r.phase == PhaseActive {
		r.elapsed++
	}
}

// Holes returns the holes displayed for entry, in order.
func (r *Recorder) Holes() []int {
	return append([]int{}, r.holes...)
}

// CurrentHole returns the hole the cursor points at.
func (r *Recorder) CurrentHole() (int, bool) {
	if r.phase != PhaseActive || r.currentIdx >= len(r.holes) {
		return 0, false
	}
	return r.holes[r.currentIdx], true
}

// Entry returns the raw text entered for a hole.
func (r *Recorder) Entry(hole int) string {
	return r.entries[hole]
}

// SetEntry stores the raw text for a hole. Entries are kept unparsed
// so partial or invalid input never crashes the UI. Entering a valid
// positive score for the current hole advances the cursor to the next
// unfilled hole in sequence; the last hole never advances past the end.
func (r *Recorder) SetEntry(hole int, text string) {
	if r.phase != PhaseActive {
		return
	}
	r.entries[hole] = text

	current, ok := r.CurrentHole()
	if !ok || hole != current {
		return
	}
	if n, err := strconv.Atoi(text); err != nil || n <= 0 {
		return
	}

	for i := r.currentIdx + 1; i < len(r.holes); i++ {
		if n, err := strconv.Atoi(r.entries[r.holes[i]]); err != nil || n <= 0 {
			r.currentIdx = i
			return
		}
	}
}

// SelectHole moves the cursor to an explicit hole, if displayed.
func (r *Recorder) SelectHole(hole int) {
	for i, h := range r.holes {
		if h == hole {
			r.currentIdx = i
			return
		}
	}
}

// Scores parses every entry to an integer, defaulting unparseable
// entries to 0. Unentered holes are omitted and contribute nothing.
func (r *Recorder) Scores() map[int]int {
	scores := make(map[int]int, len(r.entries))
	for hole, text := range r.entries {
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			n = 0
		}
		scores[hole] = n
	}
	return scores
}

// TotalScore sums the parsed entries.
func (r *Recorder) TotalScore() int {
	total := 0
	for _, n := range r.Scores() {
		total += n
	}
	return total
}

// BeginSubmit moves active → submitting and returns the parsed payload.
func (r *Recorder) BeginSubmit(now time.Time) (*Summary, error) {
	if r.phase != PhaseActive {
		return nil, ErrNotActive
	}
	r.phase = PhaseSubmitting

	return &Summary{
		CourseName: r.courseName,
		HoleCount:  r.holeCount,
		Holes:      r.Holes(),
		Scores:     r.Scores(),
		TotalScore: r.TotalScore(),
		Duration:   r.elapsed,
		StartTime:  r.startTime,
		EndTime:    now,
	}, nil
}

// FinishSubmit returns the recorder to setup. Called on both the saved
// and save-failed outcomes; the recorder holds no retry queue.
func (r *Recorder) FinishSubmit() error {
	if r.phase != PhaseSubmitting {
		return ErrNotSubmitting
	}
	r.phase = PhaseSetup
	r.entries = map[int]string{}
	r.currentIdx = 0
	r.elapsed = 0
	return nil
}

// FormatElapsed renders seconds as hh:mm:ss.
func FormatElapsed(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
