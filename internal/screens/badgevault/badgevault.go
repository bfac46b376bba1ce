// Package badgevault shows the earned badge collection.
package badgevault

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/badges"
	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screen"
	"github.com/abhisek/attacq/internal/screens"
	"github.com/abhisek/attacq/internal/store"
	"github.com/abhisek/attacq/internal/tier"
	"github.com/abhisek/attacq/internal/ui/components"
	"github.com/abhisek/attacq/internal/ui/layout"
	"github.com/abhisek/attacq/internal/ui/theme"
)

type loadMsg struct{}

// BadgeVaultScreen displays the earned badges tier by tier.
type BadgeVaultScreen struct {
	deps         screens.Deps
	progress     store.Progress
	selectedTier int // index into tier.All()
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*BadgeVaultScreen)(nil)
var _ screen.KeyHintProvider = (*BadgeVaultScreen)(nil)

// New creates a new BadgeVaultScreen.
func New(deps screens.Deps) *BadgeVaultScreen {
	return &BadgeVaultScreen{deps: deps.WithDefaults()}
}

func (s *BadgeVaultScreen) Init() tea.Cmd {
	return func() tea.Msg { return loadMsg{} }
}

func (s *BadgeVaultScreen) Title() string {
	return "Badge Vault"
}

func (s *BadgeVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch tier"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgeVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMsg:
		p, err := s.deps.Quiz.LoadProgress(context.Background())
		if err != nil {
			s.errMsg = err.Error()
		} else {
			s.progress = p
			if i := slices.Index(tier.All(), p.Badge); i >= 0 {
				s.selectedTier = i
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		tiers := tier.All()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.selectedTier = (s.selectedTier + 1) % len(tiers)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selectedTier = (s.selectedTier - 1 + len(tiers)) % len(tiers)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.pool())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *BadgeVaultScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Opening the vault...")
	}

	cw := components.ContentWidth(width)
	catalog := s.deps.Badges
	var b strings.Builder

	prog := catalog.Progress(s.progress.Earned)
	bar := components.NewProgressBar("Collection", prog.Earned, prog.Total, cw)
	bar.ShowPercent = true
	bar.Fill = theme.ArcadeYellow
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d badges earned", prog.Earned, prog.Total)))
	b.WriteString("\n\n")

	// Tier tabs.
	var tabs []string
	for i, t := range tier.All() {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t, s.earnedIn(t))
		if i == s.selectedTier {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TierColor(t)).Bold(true).Underline(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n\n")

	t := tier.All()[s.selectedTier]
	if p, ok := catalog.Personality(t); ok {
		header := fmt.Sprintf("%s %s: %s", p.Emoji, p.Title, strings.Join(p.Traits, ", "))
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TierColor(t)).
			Render(header))
		b.WriteString("\n\n")
	}

	pool := s.pool()
	if len(pool) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No badges for this tier"))
		return b.String()
	}

	maxVisible := max(height-14, 2)
	start := min(s.scrollOffset, len(pool)-1)
	end := min(start+maxVisible, len(pool))

	for _, badge := range pool[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderBadge(badge, cw)))
		b.WriteString("\n")
	}
	if end < len(pool) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(pool)-end)))
	}
	return b.String()
}

func (s *BadgeVaultScreen) renderBadge(badge badges.Badge, cw int) string {
	if !slices.Contains(s.progress.Earned, badge.ID) {
		return lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("🔒 %-6s ???", badge.ID))
	}
	title := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("🏅 %-6s %s", badge.ID, badge.Title))
	desc := lipgloss.NewStyle().Width(cw - 4).Foreground(theme.Text).Render(badge.Description)
	return title + "\n" + desc
}

func (s *BadgeVaultScreen) pool() []badges.Badge {
	return s.deps.Badges.Pool(tier.All()[s.selectedTier])
}

func (s *BadgeVaultScreen) earnedIn(t tier.ID) int {
	n := 0
	for _, b := range s.deps.Badges.Pool(t) {
		if slices.Contains(s.progress.Earned, b.ID) {
			n++
		}
	}
	return n
}
