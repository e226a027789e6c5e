// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("PARLOR_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	// Check for terminals known to commonly have Nerd Fonts
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// iTerm2, Alacritty, WezTerm, Kitty typically have Nerd Fonts
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Golf
	Flag   = Icon{"󰙿", "⛳"} // nf-md-golf
	Tee    = Icon{"󰙽", "⊙"} // nf-md-golf_tee
	Course = Icon{"󰐅", "▦"} // nf-md-grass
	Trophy = Icon{"󰔸", "🏆"} // nf-md-trophy
	Clock  = Icon{"󰥔", "◷"} // nf-md-clock_outline

	// Social
	Heart      = Icon{"󰋑", "♥"} // nf-md-heart
	HeartEmpty = Icon{"󰋕", "♡"} // nf-md-heart_outline
	Comment    = Icon{"󰍡", "💬"} // nf-md-message
	Friends    = Icon{"󰡉", "👥"} // nf-md-account_group
	User       = Icon{"󰀄", "◉"} // nf-md-account
	Camera     = Icon{"󰄀", "📷"} // nf-md-camera

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Lock    = Icon{"󰌾", "🔒"} // nf-md-lock

	// Application
	App      = Icon{"󰙿", "◈"} // nf-md-golf (round tracking theme)
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
	Sun      = Icon{"󰖨", "☀"} // nf-md-white_balance_sunny
	Moon     = Icon{"󰖔", "☾"} // nf-md-weather_night
)
