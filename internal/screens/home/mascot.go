package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default cyan
	MascotBadgeHolder                      // Gold, star eyes
	MascotRogue                            // Red, rogue mode unlocked
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ 0101│
└─────┘`

const mascotBadgeHolder = `┌─────┐
│ ★ ★ │
│  ▿  │
│ 0101│
└─╥═╥─┘
  ╚═╝`

const mascotRogue = `┌─────┐
│ ◣ ◢ │ !
│  ▄  │
│ 1337│
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotBadgeHolder:
		art = mascotBadgeHolder
		fg = theme.ArcadeYellow
	case MascotRogue:
		art = mascotRogue
		fg = theme.ArcadeRed
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
