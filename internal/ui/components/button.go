package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/ui/theme"
)

// Button is a single action bound to a hotkey. Enter also presses a
// focused button.
type Button struct {
	Label   string
	Hotkey  string
	Focused bool
	OnPress func() tea.Cmd
}

// NewButton creates a button. hotkey may be empty.
func NewButton(label, hotkey string, focused bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Hotkey:  hotkey,
		Focused: focused,
		OnPress: onPress,
	}
}

// Pressed reports whether msg presses the button.
func (b Button) Pressed(msg tea.Msg) bool {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	key := kmsg.String()
	return (b.Focused && key == "enter") || (b.Hotkey != "" && key == b.Hotkey)
}

// Update runs OnPress when the button is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if b.Pressed(msg) && b.OnPress != nil {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Hotkey != "" {
		label = "[" + b.Hotkey + "] " + label
	}
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
