package quiz

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/attacq/internal/ui/layout"
)

type keyMap struct {
	Choose  key.Binding
	Reveal  key.Binding
	Restart key.Binding
	Replay  key.Binding
	Wipe    key.Binding
	Vault   key.Binding
	Home    key.Binding
	Back    key.Binding
	Yes     key.Binding
	No      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Choose:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Answer")),
		Reveal:  key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Reveal")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Restart")),
		Replay:  key.NewBinding(key.WithKeys("p"), key.WithHelp("P", "Rogue again")),
		Wipe:    key.NewBinding(key.WithKeys("b"), key.WithHelp("B", "From the beginning")),
		Vault:   key.NewBinding(key.WithKeys("v"), key.WithHelp("V", "Badge vault")),
		Home:    key.NewBinding(key.WithKeys("h"), key.WithHelp("H", "Home")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Quit")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Leave")),
		No:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Stay")),
	}
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
