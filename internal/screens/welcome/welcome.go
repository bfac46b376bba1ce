// Package welcome is the boot splash shown before the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screen"
	"github.com/abhisek/attacq/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ 0101│  │
  │  └─────┘  │
  ╰───────────╯`

// scanLines cycle under the mascot while the banner is still hidden.
var scanLines = []string{
	"Calibrating trust sensors...",
	"Consulting the model weights...",
	"Checking you against the watchlist...",
	"Warming up the judgement engine...",
}

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"◆", "◇"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the home
// screen. Any key skips it.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for _, i := range []int{0, 3, 6} {
			if i < len(lines) {
				lines[i] = s1 + "  " + lines[i] + "  " + s2
				s1, s2 = s2, s1
			}
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered, "")

	if w.elapsed < phase2End {
		line := scanLines[(w.tickCount/4)%len(scanLines)]
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(line))
	} else {
		sections = append(sections,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("How much should the machines trust you?"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to begin"),
		)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
