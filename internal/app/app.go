// Package app wires the router and screens into the Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screen"
	"github.com/abhisek/attacq/internal/screens"
	"github.com/abhisek/attacq/internal/screens/home"
	"github.com/abhisek/attacq/internal/screens/welcome"
	"github.com/abhisek/attacq/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screens.Deps
	width  int
	height int
}

// Options configures the program.
type Options struct {
	Deps screens.Deps

	// Splash shows the boot animation before the home screen.
	Splash bool
}

// newAppModel creates a new AppModel rooted at the splash or home screen.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps.WithDefaults()
	var root screen.Screen = home.New(deps)
	if opts.Splash {
		root = welcome.New(func() screen.Screen { return home.New(deps) })
	}
	return AppModel{
		router: router.New(root),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	p := m.deps.Quiz.Progress()
	status := layout.HeaderStatus{
		Plays:    p.PlayCount,
		Extended: p.ExtendedActive,
	}
	if p.HasBadge() {
		status.Badge = p.Badge.Label()
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
