package quiz

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/attacq/internal/badges"
	qc "github.com/abhisek/attacq/internal/quiz"
	"github.com/abhisek/attacq/internal/tier"
	"github.com/abhisek/attacq/internal/ui/components"
	"github.com/abhisek/attacq/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}

	var body string
	switch {
	case s.confirmQuit:
		body = renderQuitConfirm()
	default:
		switch s.deps.Quiz.Phase() {
		case qc.PhaseInRound:
			body = s.renderQuestion(width)
		case qc.PhaseMiniGame:
			body = s.renderGame(width)
		case qc.PhaseAwaitingReveal:
			body = s.renderRevealGate(width)
		case qc.PhaseRevealed, qc.PhaseEnded:
			body = s.renderResults(width)
		case qc.PhaseOveruse:
			body = s.renderOveruse(width)
		default:
			body = dim("Booting the trust engine...")
		}
	}

	if s.notice != "" {
		body += "\n\n" + theme.Notice.Render(s.notice)
	}
	return components.CabinetFrame(body, width, height, s.frameColor())
}

func (s *QuizScreen) frameColor() color.Color {
	if s.mode == qc.ModeExtended {
		return theme.ArcadeRed
	}
	return theme.Primary
}

func (s *QuizScreen) renderQuestion(width int) string {
	c := s.deps.Quiz
	cw := components.ContentWidth(width)

	var b strings.Builder
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", c.Index()+1, c.Len()),
		c.Index(), c.Len(), cw)
	if s.mode == qc.ModeExtended {
		bar.Fill = theme.ArcadeRed
	}
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(progressQuips[c.Index()%len(progressQuips)]))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().Width(cw).Render(s.choice.View())
	b.WriteString(question)

	if s.reaction != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render(s.reaction))
	}
	return b.String()
}

func (s *QuizScreen) renderGame(width int) string {
	cw := components.ContentWidth(width)
	if s.game == nil {
		return s.spinner.View() + " " + dim("Incoming mini-game...")
	}

	run := s.game
	frag := run.Fragment

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("⚡ MINI-GAME: " + frag.Title))
	b.WriteString("\n\n")
	if frag.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(frag.Prompt))
		b.WriteString("\n")
	}
	for _, line := range frag.Body {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, label := range frag.Buttons {
		b.WriteString(theme.Unselected.Render(fmt.Sprintf("  %d) %s", i+1, label)))
		b.WriteString("\n")
	}

	elapsed := s.gameNow.Sub(s.gameStarted)
	remaining := run.Game.TimeLimit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	clock := fmt.Sprintf("⏱ %ds", int(remaining.Round(time.Second).Seconds()))
	b.WriteString("\n")
	if elapsed >= run.WarnAfter() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(clock + "  Hurry! Time is almost up!"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(clock))
	}
	return b.String()
}

func (s *QuizScreen) renderRevealGate(width int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("ROUND COMPLETE"))
	b.WriteString("\n\n")
	b.WriteString(components.Centered(lipgloss.NewStyle().Foreground(theme.Text).Render(s.congrat), cw))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("REVEAL MY TRUST TIER", "", true, nil).View())
	return b.String()
}

func (s *QuizScreen) renderResults(width int) string {
	res := s.deps.Quiz.LastResult()
	if res == nil {
		return dim("No results yet.")
	}
	cw := components.ContentWidth(width)
	t := res.Tier.Tier

	var b strings.Builder
	if res.Mode == qc.ModeExtended {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeRed).Bold(true).Render("ROGUE MODE COMPLETE"))
		b.WriteString("\n\n")
	}

	verdict := lipgloss.NewStyle().Foreground(theme.TierColor(t)).Bold(true).Render(tierText(res.Tier)) +
		"\n\n" + dim(fmt.Sprintf("Score %d/%d (%.0f%%)", res.Points, res.MaxPoints, res.Ratio*100))
	b.WriteString(components.ArcadeCard(verdict, cw, theme.TierColor(t)))
	b.WriteString("\n\n")

	if res.Mode == qc.ModeExtended {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("You survived Rogue Mode. No badges. No retries."))
		b.WriteString("\n\n")
		b.WriteString(actionRow(s.keys.Replay, s.keys.Wipe, s.keys.Home))
		return b.String()
	}

	b.WriteString(renderTally(res.Tally, res.HeldBadge))
	b.WriteString("\n")

	switch {
	case res.Awarded != nil:
		b.WriteString(renderAward(*res.Awarded, cw))
		b.WriteString("\n")
		b.WriteString(dim("Rogue Mode unlocked. Restarting now wipes your tally."))
	case res.HeldBadge != "":
		b.WriteString(dim(fmt.Sprintf("You already hold the %s badge. Restarting wipes your tally.", res.HeldBadge.Label())))
	case res.PlayCapReached:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("🏅 Congratulations! Five rounds and still unclassifiable."))
		b.WriteString("\n")
		b.WriteString(dim("Your reward: a clean slate. Restarting wipes your tally."))
	default:
		threshold := s.deps.Quiz.Rules().BadgeThreshold
		b.WriteString(dim(fmt.Sprintf("Land the same tier %d times to earn its badge. Restart for a longer round.", threshold)))
	}
	b.WriteString("\n\n")
	b.WriteString(actionRow(s.keys.Restart, s.keys.Vault, s.keys.Home))
	return b.String()
}

// actionRow renders the bindings as hotkey buttons, the first one focused.
func actionRow(bindings ...key.Binding) string {
	buttons := make([]components.Button, len(bindings))
	for i, kb := range bindings {
		h := kb.Help()
		buttons[i] = components.NewButton(strings.ToUpper(h.Desc), h.Key, i == 0, nil)
	}
	return components.ButtonRow(buttons...)
}

func (s *QuizScreen) renderOveruse(width int) string {
	o := overuseScreens[s.overuse%len(overuseScreens)]
	cw := components.ContentWidth(width)
	msg := fmt.Sprintf("%s\n\n%s\n\n%s",
		o.Icon,
		lipgloss.NewStyle().Bold(true).Foreground(theme.Error).Render(o.Title),
		lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Render(o.Body),
	)
	return components.ArcadeCard(msg, cw, theme.Error) + "\n\n" + dim("Come back later. Press H to go home.")
}

// tierText prefers the lookup's own text and falls back to the tier copy.
func tierText(r tier.Result) string {
	if r.Text != "" && r.Text != string(r.Tier) {
		return r.Text
	}
	id := r.Tier
	return id.Icon() + " " + id.Label() + "\nThreat Level: " + id.ThreatLevel() + "\n" + id.Description()
}

func renderTally(tally tier.Tally, held tier.ID) string {
	var rows []string
	for _, id := range tier.All() {
		mark := "  "
		if id == held {
			mark = "★ "
		}
		row := fmt.Sprintf("%s%s %-26s %d", mark, id.Icon(), id.Label(), tally[id])
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.TierColor(id)).Render(row))
	}
	return strings.Join(rows, "\n")
}

func renderAward(b badges.Badge, cw int) string {
	content := fmt.Sprintf("🎉🏅 %s\n\n%s\n\n%s",
		lipgloss.NewStyle().Bold(true).Foreground(theme.ArcadeYellow).Render("BADGE EARNED: "+b.Title),
		dim("Threat level: "+b.ThreatLevel),
		lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Render(b.Description),
	)
	return components.ArcadeCard(content, cw, theme.ArcadeYellow)
}

func renderQuitConfirm() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Abandon this round?") +
		"\n" + dim("Nothing is saved until you reveal your tier.") +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, leave") +
		"\n" + lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func dim(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}
