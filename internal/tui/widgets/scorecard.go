// ABOUTME: Scorecard grid widget rendering holes and strokes in rows
// ABOUTME: Shared by the record screen and feed session detail

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScorecardConfig holds configuration for the scorecard grid
type ScorecardConfig struct {
	Current     int // hole number highlighted as active, 0 for none
	PerRow      int // holes per row before wrapping
	ActiveColor lipgloss.Color
	FilledColor lipgloss.Color
	EmptyColor  lipgloss.Color
}

// DefaultScorecardConfig returns sensible defaults
func DefaultScorecardConfig() ScorecardConfig {
	return ScorecardConfig{
		PerRow:      9,
		ActiveColor: lipgloss.Color("#10B981"),
		FilledColor: lipgloss.Color("#F9FAFB"),
		EmptyColor:  lipgloss.Color("#6B7280"),
	}
}

// Scorecard renders the hole row and stroke row for a round. Holes
// with no entry render as a dash. Rows wrap every PerRow holes, the
// way a paper card splits front and back nine.
func Scorecard(holes []int, scores map[int]int, config ScorecardConfig) string {
	if len(holes) == 0 {
		return ""
	}
	if config.PerRow <= 0 {
		config.PerRow = 9
	}

	activeStyle := lipgloss.NewStyle().Foreground(config.ActiveColor).Bold(true)
	filledStyle := lipgloss.NewStyle().Foreground(config.FilledColor)
	emptyStyle := lipgloss.NewStyle().Foreground(config.EmptyColor)

	var rows []string
	for start := 0; start < len(holes); start += config.PerRow {
		end := start + config.PerRow
		if end > len(holes) {
			end = len(holes)
		}

		var holeCells, scoreCells []string
		for _, h := range holes[start:end] {
			label := fmt.Sprintf("%3d", h)
			if h == config.Current {
				holeCells = append(holeCells, activeStyle.Render(label))
			} else {
				holeCells = append(holeCells, emptyStyle.Render(label))
			}

			if s, ok := scores[h]; ok {
				scoreCells = append(scoreCells, filledStyle.Render(fmt.Sprintf("%3d", s)))
			} else {
				scoreCells = append(scoreCells, emptyStyle.Render("  -"))
			}
		}

		rows = append(rows,
			emptyStyle.Render("Hole ")+strings.Join(holeCells, " "),
			filledStyle.Render("Score")+strings.Join(scoreCells, " "))
	}

	return strings.Join(rows, "\n")
}
