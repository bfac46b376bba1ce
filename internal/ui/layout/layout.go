// Package layout draws the cabinet chrome around every screen: the header
// with the player's standing, the footer with key hints, and the fallback
// shown when the terminal is too small to play.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the quiz cannot be drawn at all.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the player to grow the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The cabinet does not fit!\n\nResize to at least %d x %d\n\nNow: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// HeaderStatus is the persisted progress shown on the right of the header.
type HeaderStatus struct {
	Badge    string // held badge tier icon and id, empty when none
	Plays    int
	Extended bool
}

func (s HeaderStatus) render() string {
	sep := lipgloss.NewStyle().Foreground(theme.TextDim).Render("   ")
	parts := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("▶ %d plays", s.Plays)),
	}
	if s.Badge != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("★ "+s.Badge))
	}
	if s.Extended {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ArcadeRed).Bold(true).Render("ROGUE"))
	}
	return strings.Join(parts, sep)
}

// RenderHeader puts the brand on the left, the screen title in the middle
// and the status on the right.
func RenderHeader(title string, status HeaderStatus, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ATTACQ")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := status.render()

	// Border and padding take four columns.
	inner := max(width-4, 0)
	bw, cw, rw := lipgloss.Width(brand), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-cw)/2-bw, 1)
	rightGap := max(inner-bw-leftGap-cw-rw, 1)

	return bar(width).Render(brand + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter lists the active screen's key hints.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

// bar is the rounded strip shared by header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height the chrome leaves.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	styled := lipgloss.NewStyle().Width(width).Height(body).Render(content)
	return header + "\n" + styled + "\n" + footer
}
