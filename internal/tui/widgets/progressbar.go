// ABOUTME: Progress bar widget for round completion displays
// ABOUTME: Renders filled/empty segments with configurable colors

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width       int
	FilledColor lipgloss.Color
	EmptyColor  lipgloss.Color
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:       20,
		FilledColor: lipgloss.Color("#10B981"), // Green
		EmptyColor:  lipgloss.Color("#374151"), // Dark gray
	}
}

// ProgressBar renders a basic colored bar
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	// Clamp percent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(config.Width))
	if filled > config.Width {
		filled = config.Width
	}

	var bar strings.Builder
	bar.WriteString("[")

	filledStyle := lipgloss.NewStyle().Foreground(config.FilledColor)
	emptyStyle := lipgloss.NewStyle().Foreground(config.EmptyColor)

	for i := 0; i < config.Width; i++ {
		if i < filled {
			bar.WriteString(filledStyle.Render("█"))
		} else {
			bar.WriteString(emptyStyle.Render("░"))
		}
	}

	bar.WriteString("]")
	return bar.String()
}

// RoundProgress renders a completion bar for a round in progress,
// labelled with entered/total holes.
func RoundProgress(entered, total int, config ProgressBarConfig) string {
	if total <= 0 {
		return ProgressBar(0, config)
	}
	percent := float64(entered) / float64(total) * 100.0
	bar := ProgressBar(percent, config)
	label := lipgloss.NewStyle().Foreground(config.FilledColor).
		Render(fmt.Sprintf("%d/%d holes", entered, total))
	return fmt.Sprintf("%s %s", bar, label)
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	empty := width - filled

	filledStr := strings.Repeat("▓", filled)
	emptyStr := strings.Repeat("░", empty)

	return lipgloss.NewStyle().Foreground(color).Render(filledStr) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(emptyStr)
}
