// Package quiz is the screen that plays rounds: questions, mini-game
// interludes, the reveal gate and the results.
package quiz

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/attacq/internal/minigame"
	qc "github.com/abhisek/attacq/internal/quiz"
	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screen"
	"github.com/abhisek/attacq/internal/screens"
	"github.com/abhisek/attacq/internal/screens/badgevault"
	"github.com/abhisek/attacq/internal/ui/components"
	"github.com/abhisek/attacq/internal/ui/layout"
)

// noticeTTL is how long a transient warning stays on screen.
const noticeTTL = 3500 * time.Millisecond

// QuizScreen implements screen.Screen for an active quiz.
type QuizScreen struct {
	deps screens.Deps
	mode qc.Mode
	keys keyMap

	choice   components.MultiChoice
	reaction string // reply to the previous answer
	congrat  string

	spinner     spinner.Model
	gameLoading bool
	game        *minigame.Run
	gameStarted time.Time
	gameNow     time.Time

	confirmQuit   bool
	leaveAttempts int
	overuse       int // index into overuseScreens

	notice    string
	noticeSeq int
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New creates a quiz screen that starts a round in mode when pushed.
func New(deps screens.Deps, mode qc.Mode) *QuizScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &QuizScreen{
		deps:    deps.WithDefaults(),
		mode:    mode,
		keys:    defaultKeys(),
		spinner: sp,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return func() tea.Msg { return beginMsg{} }
}

func (s *QuizScreen) Title() string {
	if s.mode == qc.ModeExtended {
		return "Rogue Mode"
	}
	return "Trust Tier Quiz"
}

// InterceptsBack keeps Esc inside the screen while a round or mini-game is
// in progress so it can confirm or cancel instead of popping.
func (s *QuizScreen) InterceptsBack() bool {
	if s.errMsg != "" {
		return false
	}
	switch s.deps.Quiz.Phase() {
	case qc.PhaseInRound, qc.PhaseMiniGame, qc.PhaseAwaitingReveal:
		return true
	}
	return false
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	k := s.keys
	if s.confirmQuit {
		return hints(k.Yes, k.No)
	}
	switch s.deps.Quiz.Phase() {
	case qc.PhaseInRound:
		return hints(k.Choose, k.Back)
	case qc.PhaseMiniGame:
		if s.game != nil {
			return append(hints(k.Choose), layout.KeyHint{Key: "Esc", Description: "Skip"})
		}
		return nil
	case qc.PhaseAwaitingReveal:
		return hints(k.Reveal, k.Restart)
	case qc.PhaseRevealed:
		return hints(k.Restart, k.Vault, k.Home)
	case qc.PhaseEnded:
		return hints(k.Replay, k.Wipe, k.Home)
	}
	return hints(k.Home)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case beginMsg:
		return s.begin()

	case gameLaunchedMsg:
		return s.handleGameLaunched(msg)

	case gameDoneMsg:
		return s.handleGameDone(msg)

	case gameTickMsg:
		if s.game == nil {
			return s, nil
		}
		s.gameNow = time.Time(msg)
		return s, gameTick()

	case spinner.TickMsg:
		if !s.gameLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case noticeExpiredMsg:
		if msg.seq == s.noticeSeq {
			s.notice = ""
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) begin() (screen.Screen, tea.Cmd) {
	c := s.deps.Quiz
	if c.Phase() != qc.PhaseNotStarted {
		c.Reload()
	}
	if err := c.Start(context.Background(), s.mode); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) loadQuestion() {
	q, ok := s.deps.Quiz.Current()
	if !ok {
		return
	}
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	s.choice = components.NewMultiChoice(q.Prompt, labels)
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch {
		case key.Matches(msg, s.keys.Yes):
			s.confirmQuit = false
			s.deps.Quiz.Reload()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, s.keys.No):
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.deps.Quiz.Phase() {
	case qc.PhaseInRound:
		return s.handleRoundKey(msg)
	case qc.PhaseMiniGame:
		return s.handleGameKey(msg)
	case qc.PhaseAwaitingReveal:
		return s.handleRevealKey(msg)
	case qc.PhaseRevealed:
		return s.handleResultsKey(msg)
	case qc.PhaseEnded:
		return s.handleEndedKey(msg)
	case qc.PhaseOveruse:
		if key.Matches(msg, s.keys.Home, s.keys.Back) {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *QuizScreen) handleRoundKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.confirmQuit = true
		return s, nil
	case key.Matches(msg, s.keys.Restart):
		return s, s.warn(pick(s.deps.Rand, restartWarnings))
	}

	s.choice, _ = s.choice.Update(msg)
	i, ok := s.choice.Choice()
	if !ok {
		return s, nil
	}

	res, err := s.deps.Quiz.Answer(context.Background(), i)
	if err != nil {
		s.deps.Log.Warn("answer rejected", zap.Error(err))
		s.loadQuestion()
		return s, s.warn("That answer didn't register. Try again.")
	}
	s.reaction = answerQuip(res.Points)

	switch {
	case res.RoundComplete:
		s.congrat = pick(s.deps.Rand, congrats)
		s.leaveAttempts = 0
		return s, nil
	case res.Interrupt:
		return s, s.startGame()
	}
	s.loadQuestion()
	return s, nil
}

// startGame picks and launches a mini-game. Without a dispatcher, or when
// nothing can be picked, the round simply continues.
func (s *QuizScreen) startGame() tea.Cmd {
	games := s.deps.Games
	var id string
	ok := false
	if games != nil {
		id, ok = games.Pick(s.deps.Rand)
	}
	if !ok {
		s.resumeRound()
		return nil
	}

	s.gameLoading = true
	s.deps.Log.Debug("launching mini-game", zap.String("game", id))
	return tea.Batch(s.spinner.Tick, launchGame(games, id))
}

func launchGame(games *minigame.Dispatcher, id string) tea.Cmd {
	return func() tea.Msg {
		run, err := games.Launch(context.Background(), id)
		return gameLaunchedMsg{Run: run, Err: err}
	}
}

func waitGame(run *minigame.Run) tea.Cmd {
	return func() tea.Msg {
		<-run.Done()
		o, _ := run.Outcome()
		return gameDoneMsg{Run: run, Outcome: o}
	}
}

func gameTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return gameTickMsg(t)
	})
}

func (s *QuizScreen) handleGameLaunched(msg gameLaunchedMsg) (screen.Screen, tea.Cmd) {
	s.gameLoading = false
	if msg.Err != nil {
		s.deps.Log.Warn("mini-game failed to load", zap.Error(msg.Err))
		s.resumeRound()
		return s, s.warn("The mini-game could not load. Skipping ahead.")
	}
	s.game = msg.Run
	s.gameStarted = time.Now()
	s.gameNow = s.gameStarted
	return s, tea.Batch(waitGame(msg.Run), gameTick())
}

func (s *QuizScreen) handleGameKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.game == nil {
		return s, nil
	}
	if key.Matches(msg, s.keys.Back) {
		s.game.Cancel()
		return s, nil
	}
	k := msg.String()
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		if i := int(k[0] - '1'); i < len(s.game.Fragment.Buttons) {
			s.game.Choose(i)
		}
	}
	return s, nil
}

func (s *QuizScreen) handleGameDone(msg gameDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Run != s.game {
		return s, nil
	}
	s.game = nil
	s.resumeRound()
	return s, s.warn(gameVerdict(msg.Outcome.Tier))
}

func (s *QuizScreen) resumeRound() {
	if err := s.deps.Quiz.ResumeFromMiniGame(); err != nil {
		s.deps.Log.Warn("resume failed", zap.Error(err))
	}
	s.loadQuestion()
}

func (s *QuizScreen) handleRevealKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Reveal):
		return s.reveal()
	case key.Matches(msg, s.keys.Restart):
		_, err := s.deps.Quiz.Restart(context.Background())
		if errors.Is(err, qc.ErrNotRevealed) {
			return s, s.warn(pick(s.deps.Rand, restartWarnings))
		}
		return s, nil
	case key.Matches(msg, s.keys.Back):
		if s.leaveAttempts < len(leaveWarnings) {
			w := leaveWarnings[s.leaveAttempts]
			s.leaveAttempts++
			return s, s.warn(w)
		}
		s.deps.Quiz.Reload()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) reveal() (screen.Screen, tea.Cmd) {
	if _, err := s.deps.Quiz.Reveal(context.Background()); err != nil {
		s.deps.Log.Error("reveal failed", zap.Error(err))
		return s, s.warn("The AI misplaced your results. Try revealing again.")
	}
	return s, nil
}

func (s *QuizScreen) handleResultsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Restart):
		return s.restart()
	case key.Matches(msg, s.keys.Vault):
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: badgevault.New(s.deps)}
		}
	case key.Matches(msg, s.keys.Home, s.keys.Back):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) restart() (screen.Screen, tea.Cmd) {
	outcome, err := s.deps.Quiz.Restart(context.Background())
	if err != nil {
		s.deps.Log.Warn("restart failed", zap.Error(err))
		return s, s.warn("Restart jammed. Try again.")
	}

	switch outcome {
	case qc.OutcomeReset:
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case qc.OutcomeOveruse:
		s.overuse = s.deps.Rand.IntN(len(overuseScreens))
		return s, nil
	}
	s.reaction = ""
	s.congrat = ""
	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) handleEndedKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	switch {
	case key.Matches(msg, s.keys.Replay):
		if err := s.deps.Quiz.ReplayExtended(ctx); err != nil {
			s.deps.Log.Warn("replay failed", zap.Error(err))
			return s, s.warn("Rogue mode refuses to reboot. Try again.")
		}
		s.reaction = ""
		s.congrat = ""
		s.loadQuestion()
		return s, nil
	case key.Matches(msg, s.keys.Wipe):
		if err := s.deps.Quiz.ResetAll(ctx); err != nil {
			s.deps.Log.Warn("reset failed", zap.Error(err))
			return s, s.warn("Could not wipe progress. Try again.")
		}
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case key.Matches(msg, s.keys.Restart):
		return s, s.warn("Rogue mode has no retries. That's the point.")
	case key.Matches(msg, s.keys.Home, s.keys.Back):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// warn shows a transient notice that clears itself after noticeTTL.
func (s *QuizScreen) warn(text string) tea.Cmd {
	s.noticeSeq++
	s.notice = text
	seq := s.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
