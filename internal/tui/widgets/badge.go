// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for privacy levels and round status

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/parlor-golf/parlor-cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// PrivacyBadge renders a badge for a session's privacy level.
func PrivacyBadge(privacy string) string {
	switch privacy {
	case "public":
		return Badge("PUBLIC", StatusOK)
	case "friends":
		return Badge("FRIENDS", StatusInfo)
	case "private":
		return Badge("PRIVATE", StatusNeutral)
	default:
		return Badge("--", StatusNeutral)
	}
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.CheckOK.String())
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.Warning.String())
	case StatusCritical:
		return lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Critical.String())
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Info.String())
	default:
		return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	icon := StatusIcon(level)

	var color lipgloss.Color
	switch level {
	case StatusOK:
		color = BadgeOKBg
	case StatusWarning:
		color = BadgeWarnBg
	case StatusCritical:
		color = BadgeCritBg
	case StatusInfo:
		color = BadgeInfoBg
	default:
		color = BadgeNeutralBg
	}

	textStyle := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s", icon, textStyle.Render(text))
}

// LikeBadge renders a heart with its count, filled when the viewer
// has liked the session.
func LikeBadge(liked bool, count int) string {
	if liked {
		heart := lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Heart.String())
		return fmt.Sprintf("%s %d", heart, count)
	}
	heart := lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render(icons.HeartEmpty.String())
	return fmt.Sprintf("%s %d", heart, count)
}

// CommentBadge renders the comment icon with a count.
func CommentBadge(count int) string {
	bubble := lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Comment.String())
	return fmt.Sprintf("%s %d", bubble, count)
}

// ScoreLevel classifies a per-hole score against par for display.
// Par is unknown to the backend, so a fixed par of 4 keeps coloring
// consistent with the feed cards.
func ScoreLevel(score int) StatusLevel {
	switch {
	case score == 0:
		return StatusNeutral
	case score <= 3:
		return StatusOK
	case score <= 5:
		return StatusInfo
	default:
		return StatusWarning
	}
}
