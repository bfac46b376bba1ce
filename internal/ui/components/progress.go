package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional counter.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int

	// Fill overrides the filled segment color.
	Fill color.Color

	// ShowPercent renders "42%" instead of "3/7".
	ShowPercent bool
}

// NewProgressBar creates a new progress bar for done of total steps.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Done:  done,
		Total: total,
		Width: width,
		Fill:  theme.Secondary,
	}
}

// Fraction returns done/total clamped to [0,1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	return max(0, min(1, f))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	if p.ShowPercent {
		counter = fmt.Sprintf("  %d%%", int(p.Fraction()*100))
	}

	barWidth := p.Width - lipgloss.Width(result) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)

	return result
}
