// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Provides light and dark palettes resolved via the theme store

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/parlor-golf/parlor-cli/internal/theme"
)

// Theme bundles the styles every screen renders with. Screens never
// hold colors directly; they ask for the active theme on each frame so
// a preference change repaints everything.
type Theme struct {
	// Core palette
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Surface   lipgloss.Color

	// Base styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style

	// Status indicators
	StatusOK       lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusCritical lipgloss.Style

	// Panels
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style

	// Emphasis
	Key      lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style

	// Social
	LikeActive   lipgloss.Style
	LikeInactive lipgloss.Style
}

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	warning   lipgloss.Color
	danger    lipgloss.Color
	muted     lipgloss.Color
	text      lipgloss.Color
	surface   lipgloss.Color
}

// Fairway greens for dark terminals, club-house neutrals for light.
var (
	darkPalette = palette{
		primary:   lipgloss.Color("#4ADE80"), // Green-400
		secondary: lipgloss.Color("#FBBF24"), // Amber-400
		warning:   lipgloss.Color("#F59E0B"), // Amber-500
		danger:    lipgloss.Color("#F87171"), // Red-400
		muted:     lipgloss.Color("#6B7280"), // Gray-500
		text:      lipgloss.Color("#F9FAFB"), // Gray-50
		surface:   lipgloss.Color("#1F2937"), // Gray-800
	}

	lightPalette = palette{
		primary:   lipgloss.Color("#2D7D3E"), // Fairway green
		secondary: lipgloss.Color("#B45309"), // Amber-700
		warning:   lipgloss.Color("#D97706"), // Amber-600
		danger:    lipgloss.Color("#DC2626"), // Red-600
		muted:     lipgloss.Color("#9CA3AF"), // Gray-400
		text:      lipgloss.Color("#111827"), // Gray-900
		surface:   lipgloss.Color("#F3F4F6"), // Gray-100
	}
)

func build(p palette) Theme {
	return Theme{
		Primary:   p.primary,
		Secondary: p.secondary,
		Warning:   p.warning,
		Danger:    p.danger,
		Muted:     p.muted,
		Text:      p.text,
		Surface:   p.surface,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted).
			MarginBottom(1),

		Help: lipgloss.NewStyle().
			Foreground(p.muted).
			MarginTop(1),

		StatusOK: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),

		StatusCritical: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(1, 2),

		ActivePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),

		Key: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		Value: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		LikeActive: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),

		LikeInactive: lipgloss.NewStyle().
			Foreground(p.muted),
	}
}

var (
	dark  = build(darkPalette)
	light = build(lightPalette)
)

// For resolves the style set for a scheme.
func For(scheme theme.Scheme) Theme {
	if scheme == theme.SchemeDark {
		return dark
	}
	return light
}
