package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all cabinet
// sections so boxes line up.
func ContentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double-border frame, centered both ways.
func CabinetFrame(content string, width, height int, border color.Color) string {
	if border == nil {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int, border color.Color) string {
	if border == nil {
		border = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Centered renders s centered within cw columns.
func Centered(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}
