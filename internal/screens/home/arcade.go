package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/store"
	"github.com/abhisek/attacq/internal/tier"
	"github.com/abhisek/attacq/internal/ui/theme"
)

const arcadeTitleFull = `  █████╗ ████████╗████████╗ █████╗  ██████╗ ██████╗
 ██╔══██╗╚══██╔══╝╚══██╔══╝██╔══██╗██╔════╝██╔═══██╗
 ███████║   ██║      ██║   ███████║██║     ██║   ██║
 ██╔══██║   ██║      ██║   ██╔══██║██║     ██║▄▄ ██║
 ██║  ██║   ██║      ██║   ██║  ██║╚██████╗╚██████╔╝
 ╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝  ╚═╝ ╚═════╝ ╚══▀▀═╝`

const arcadeTitleCompact = "A · T · T · A · C · Q"

const tagline = "AI Trust Tier Quiz"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	sub := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Italic(true).Render(tagline)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + sub)
}

// renderStatsBar renders the progress summary in a bordered box matching
// content width.
func renderStatsBar(p store.Progress, earned, cw int, compact bool) string {
	playStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	rogueStyle := lipgloss.NewStyle().Foreground(theme.ArcadeRed).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	held := dimStyle.Render("NO BADGE")
	if p.HasBadge() {
		held = badgeStyle.Render("★ " + strings.ToUpper(p.Badge.Label()))
	}
	rogue := dimStyle.Render("ROGUE LOCKED")
	if p.ExtendedUnlocked {
		rogue = rogueStyle.Render("ROGUE UNLOCKED")
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			playStyle.Render(fmt.Sprintf("▶%d", p.PlayCount)),
			badgeStyle.Render(fmt.Sprintf("🏅%d", earned)),
			rogueIcon(p.ExtendedUnlocked, rogueStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			playStyle.Render(fmt.Sprintf("▶ %d PLAYS", p.PlayCount)),
			held,
			rogue,
		)
		if p.PlayCount > 0 {
			stats += "\n" + dimStyle.Render(tallyLine(p))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func rogueIcon(unlocked bool, active, dim lipgloss.Style) string {
	if unlocked {
		return active.Render("☠")
	}
	return dim.Render("☠")
}

// tallyLine summarises how often each tier has been landed.
func tallyLine(p store.Progress) string {
	var parts []string
	for _, id := range tier.All() {
		parts = append(parts, fmt.Sprintf("%s %d", id.Icon(), p.Tally[id]))
	}
	return strings.Join(parts, "   ")
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}
