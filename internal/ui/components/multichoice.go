package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. There is no right answer;
// the chosen index is reported and the caller scores it.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
}

// Update handles keyboard navigation and selection. Number keys choose
// directly; arrows move and Enter confirms.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
			}
		}
	}

	return m, nil
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case m.Submitted && i == m.ChosenIndex:
			b.WriteString(theme.Selected.Render(line))
		case m.Submitted:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Choice returns the submitted option index.
func (m MultiChoice) Choice() (int, bool) {
	return m.ChosenIndex, m.Submitted
}
