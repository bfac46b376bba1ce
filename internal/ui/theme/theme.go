package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/tier"
)

// Color palette: terminal-security neon on a dark console.
var (
	Primary   = lipgloss.Color("#22D3EE") // Cyan
	Secondary = lipgloss.Color("#A3E635") // Lime
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#FACC15") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Near black
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FDE047")
	ArcadeCyan   = lipgloss.Color("#67E8F9")
	ArcadeRed    = lipgloss.Color("#EF4444")
)

// TierColor returns the accent used for a tier's verdict and tally row.
func TierColor(id tier.ID) color.Color {
	switch id {
	case tier.T4:
		return Success
	case tier.T3:
		return Primary
	case tier.T2:
		return Warning
	case tier.T1:
		return Accent
	case tier.TX:
		return ArcadeRed
	default:
		return Text
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Notice = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Warning).
		Bold(true).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
