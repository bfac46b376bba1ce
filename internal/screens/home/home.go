// Package home is the landing screen: title, progress summary and the main
// menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	qc "github.com/abhisek/attacq/internal/quiz"
	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screen"
	"github.com/abhisek/attacq/internal/screens"
	"github.com/abhisek/attacq/internal/screens/badgevault"
	quizscreen "github.com/abhisek/attacq/internal/screens/quiz"
	"github.com/abhisek/attacq/internal/store"
	"github.com/abhisek/attacq/internal/ui/components"
	"github.com/abhisek/attacq/internal/ui/layout"
)

// refreshMsg reloads progress each time the home screen becomes the root
// again.
type refreshMsg struct{}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps     screens.Deps
	menu     components.Menu
	progress store.Progress
	started  bool // first refresh done; startup mode already chosen
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps.WithDefaults()}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// Resume refreshes progress when a quiz or the vault is popped.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(refreshMsg); ok {
		return h, h.refresh()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refresh abandons any unrevealed session, reloads persisted progress and
// warms the mini-game cache.
func (h *HomeScreen) refresh() tea.Cmd {
	c := h.deps.Quiz
	c.Reload()
	p, err := c.LoadProgress(context.Background())
	if err != nil {
		h.deps.Log.Error("load progress", zap.Error(err))
		h.errMsg = "Could not load your progress: " + err.Error()
	} else {
		h.errMsg = ""
		h.progress = p
	}
	h.buildMenu()

	if g := h.deps.Games; g != nil && h.deps.PreloadCount > 0 {
		n := g.Preload(h.deps.PreloadCount)
		h.deps.Log.Debug("preloading mini-games", zap.Int("queued", n))
	}

	// A launch resumes rogue mode when it is forced or was left active.
	if !h.started {
		h.started = true
		if h.deps.ForceExtended || h.progress.ExtendedActive {
			return pushQuiz(h.deps, qc.ModeExtended)
		}
	}
	return nil
}

func (h *HomeScreen) buildMenu() {
	deps := h.deps
	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return pushQuiz(deps, qc.ModeNormal)
		}},
	}
	if h.progress.ExtendedUnlocked {
		items = append(items, components.MenuItem{Label: "ROGUE MODE", Action: func() tea.Cmd {
			return pushQuiz(deps, qc.ModeExtended)
		}})
	}
	items = append(items,
		components.MenuItem{Label: "BADGE VAULT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: badgevault.New(deps)}
			}
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

func pushQuiz(deps screens.Deps, mode qc.Mode) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quizscreen.New(deps, mode)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.progress), cw))
	}
	sections = append(sections, renderStatsBar(h.progress, h.deps.Badges.Progress(h.progress.Earned).Earned, cw, compact))
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height, nil)
}

func mascotFor(p store.Progress) MascotVariant {
	switch {
	case p.ExtendedUnlocked:
		return MascotRogue
	case p.HasBadge():
		return MascotBadgeHolder
	}
	return MascotIdle
}
