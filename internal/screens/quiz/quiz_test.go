package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/attacq/internal/fragcache"
	"github.com/abhisek/attacq/internal/minigame"
	"github.com/abhisek/attacq/internal/questions"
	qc "github.com/abhisek/attacq/internal/quiz"
	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screens"
	"github.com/abhisek/attacq/internal/store"
	"github.com/abhisek/attacq/internal/tier"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func testBank() *questions.Bank {
	mk := func(prefix string, n int) []questions.Question {
		qs := make([]questions.Question, n)
		for i := range qs {
			qs[i] = questions.Question{
				Prompt: fmt.Sprintf("%s question %d", prefix, i+1),
				Options: []questions.Option{
					{Label: "saintly", Points: 4},
					{Label: "sensible", Points: 3},
					{Label: "sketchy", Points: 1},
					{Label: "villainous", Points: 0},
				},
			}
		}
		return qs
	}
	return &questions.Bank{Starter: mk("starter", 8), Full: mk("full", 22)}
}

func newDeps(t *testing.T, mutate func(*qc.Rules)) screens.Deps {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	rules := qc.DefaultRules()
	rules.MiniGamesEnabled = false
	if mutate != nil {
		mutate(&rules)
	}
	c, err := qc.New(qc.Deps{
		Questions: testBank(),
		Progress:  store.NewProgressRepo(s, nil),
		Lookup:    func(float64) tier.Result { return tier.Result{Tier: tier.T4} },
		Rand:      rand.New(rand.NewPCG(1, 2)),
	}, rules)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return screens.Deps{Quiz: c, Rand: rand.New(rand.NewPCG(3, 4))}
}

// started returns a quiz screen with its first round begun.
func started(t *testing.T, deps screens.Deps, mode qc.Mode) *QuizScreen {
	t.Helper()
	s := New(deps, mode)
	if msg := s.Init()(); msg != (beginMsg{}) {
		t.Fatalf("Init() msg = %#v, want beginMsg", msg)
	}
	s.Update(beginMsg{})
	if s.errMsg != "" {
		t.Fatalf("begin failed: %s", s.errMsg)
	}
	return s
}

func answerAll(t *testing.T, s *QuizScreen) {
	t.Helper()
	for s.deps.Quiz.Phase() == qc.PhaseInRound {
		s.Update(keyPress('1'))
	}
}

func TestBeginStartsRound(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)

	if got := deps.Quiz.Phase(); got != qc.PhaseInRound {
		t.Fatalf("phase = %s, want in-round", got)
	}
	if deps.Quiz.Len() != 5 {
		t.Errorf("round length = %d, want 5", deps.Quiz.Len())
	}
	if !strings.HasPrefix(s.choice.Question, "starter") {
		t.Errorf("first question %q not from the starter bank", s.choice.Question)
	}
	if !s.InterceptsBack() {
		t.Error("Esc should be intercepted during a round")
	}
}

func TestAnsweringReachesRevealGate(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)

	answerAll(t, s)

	if got := deps.Quiz.Phase(); got != qc.PhaseAwaitingReveal {
		t.Fatalf("phase = %s, want awaiting-reveal", got)
	}
	if deps.Quiz.Points() != 20 {
		t.Errorf("points = %d, want 20", deps.Quiz.Points())
	}
	if s.congrat == "" {
		t.Error("expected a congratulation message")
	}
}

func TestRestartBeforeRevealWarns(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)
	answerAll(t, s)

	_, cmd := s.Update(keyPress('r'))

	if s.notice == "" {
		t.Error("expected a warning notice")
	}
	if cmd == nil {
		t.Error("expected a notice expiry command")
	}
	if got := deps.Quiz.Phase(); got != qc.PhaseAwaitingReveal {
		t.Errorf("phase = %s, want awaiting-reveal", got)
	}
}

func TestNoticeExpiresOnlyForLatestWarning(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)

	s.warn("first")
	s.warn("second")
	s.Update(noticeExpiredMsg{seq: 1})
	if s.notice != "second" {
		t.Errorf("stale expiry cleared notice: %q", s.notice)
	}
	s.Update(noticeExpiredMsg{seq: 2})
	if s.notice != "" {
		t.Errorf("notice = %q, want cleared", s.notice)
	}
}

func TestRevealShowsResults(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)
	answerAll(t, s)

	s.Update(enterKey)

	if got := deps.Quiz.Phase(); got != qc.PhaseRevealed {
		t.Fatalf("phase = %s, want revealed", got)
	}
	res := deps.Quiz.LastResult()
	if res == nil || res.Tier.Tier != tier.T4 {
		t.Fatalf("result = %+v, want tier T4", res)
	}
	if s.InterceptsBack() {
		t.Error("Esc should pop once results are shown")
	}
	if view := s.View(120, 40); !strings.Contains(view, "20/20") {
		t.Errorf("results view missing score:\n%s", view)
	}
}

func TestRestartAfterRevealGrowsRound(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)
	answerAll(t, s)
	s.Update(enterKey)

	s.Update(keyPress('r'))

	if got := deps.Quiz.Phase(); got != qc.PhaseInRound {
		t.Fatalf("phase = %s, want in-round", got)
	}
	if deps.Quiz.Len() != 8 {
		t.Errorf("round length = %d, want 8", deps.Quiz.Len())
	}
	if !strings.HasPrefix(s.choice.Question, "full") {
		t.Errorf("question %q not from the full bank", s.choice.Question)
	}
}

func TestLeaveBeforeRevealNeedsPersistence(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)
	answerAll(t, s)

	for range leaveWarnings {
		_, cmd := s.Update(escKey)
		if cmd == nil || s.notice == "" {
			t.Fatal("expected a leave warning")
		}
		if deps.Quiz.Phase() != qc.PhaseAwaitingReveal {
			t.Fatal("leave warning should not change phase")
		}
	}

	_, cmd := s.Update(escKey)
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg after the warnings run out")
	}
	if deps.Quiz.Phase() != qc.PhaseNotStarted {
		t.Errorf("phase = %s, want not-started", deps.Quiz.Phase())
	}
}

func TestEscDuringRoundConfirms(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeNormal)

	s.Update(escKey)
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation")
	}

	s.Update(keyPress('n'))
	if s.confirmQuit || deps.Quiz.Phase() != qc.PhaseInRound {
		t.Fatal("declining should keep the round going")
	}

	s.Update(escKey)
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("confirming should pop the screen")
	}
}

func TestExtendedModeEndsWithoutRetries(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeExtended)
	if deps.Quiz.Len() != 10 {
		t.Fatalf("extended round length = %d, want 10", deps.Quiz.Len())
	}
	answerAll(t, s)
	s.Update(enterKey)

	if got := deps.Quiz.Phase(); got != qc.PhaseEnded {
		t.Fatalf("phase = %s, want ended", got)
	}

	s.Update(keyPress('r'))
	if deps.Quiz.Phase() != qc.PhaseEnded || s.notice == "" {
		t.Error("restart in extended mode should only warn")
	}

	s.Update(keyPress('p'))
	if got := deps.Quiz.Phase(); got != qc.PhaseInRound {
		t.Errorf("phase after replay = %s, want in-round", got)
	}
}

func TestWipeFromExtendedPopsToRoot(t *testing.T) {
	deps := newDeps(t, nil)
	s := started(t, deps, qc.ModeExtended)
	answerAll(t, s)
	s.Update(enterKey)

	_, cmd := s.Update(keyPress('b'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	p, err := deps.Quiz.LoadProgress(context.Background())
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if p.PlayCount != 0 || p.ExtendedActive {
		t.Errorf("progress not wiped: %+v", p)
	}
}

const testGame = `<h2>Test Game</h2><p>Pick one</p><button>a</button><button>b</button>`

func newTestDispatcher(t *testing.T) *minigame.Dispatcher {
	t.Helper()
	cache := fragcache.New(fragcache.FetcherFunc(func(context.Context, string) (string, error) {
		return testGame, nil
	}))
	t.Cleanup(cache.Close)
	reg := minigame.NewStaticRegistry(minigame.Descriptor{ID: "g", File: "g.html", Title: "G", TimeLimit: time.Minute, Version: "1"})
	return minigame.NewDispatcher(reg, cache, time.Second, nil)
}

// secondRound plays and reveals one round, then restarts, since mini-games
// only interrupt once a round has been completed.
func secondRound(t *testing.T, deps screens.Deps) *QuizScreen {
	t.Helper()
	s := started(t, deps, qc.ModeNormal)
	answerAll(t, s)
	s.Update(enterKey)
	s.Update(keyPress('r'))
	if got := deps.Quiz.Phase(); got != qc.PhaseInRound {
		t.Fatalf("phase after restart = %s, want in-round", got)
	}
	return s
}

func TestMiniGameInterlude(t *testing.T) {
	deps := newDeps(t, func(r *qc.Rules) {
		r.MiniGamesEnabled = true
		r.MiniGameChance = 1
	})
	deps.Games = newTestDispatcher(t)
	s := secondRound(t, deps)

	_, cmd := s.Update(keyPress('2'))
	if got := deps.Quiz.Phase(); got != qc.PhaseMiniGame {
		t.Fatalf("phase = %s, want mini-game", got)
	}
	if cmd == nil || !s.gameLoading {
		t.Fatal("expected the game to start loading")
	}

	run, err := deps.Games.Launch(context.Background(), "g")
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	s.Update(gameLaunchedMsg{Run: run})
	if s.game != run {
		t.Fatal("expected the launched run to be shown")
	}
	if view := s.View(120, 40); !strings.Contains(view, "Test Game") {
		t.Errorf("game view missing title:\n%s", view)
	}

	s.Update(keyPress('2'))
	<-run.Done()
	o, ok := run.Outcome()
	if !ok || o.Tier != tier.T2 {
		t.Fatalf("outcome = %+v, %v; want T2", o, ok)
	}

	s.Update(gameDoneMsg{Run: run, Outcome: o})
	if got := deps.Quiz.Phase(); got != qc.PhaseInRound {
		t.Errorf("phase = %s, want in-round after the game", got)
	}
	if s.game != nil {
		t.Error("game should be cleared")
	}
	if deps.Quiz.Index() != 1 {
		t.Errorf("index = %d, want 1", deps.Quiz.Index())
	}
}

func TestMiniGameLoadFailureSkipsAhead(t *testing.T) {
	deps := newDeps(t, func(r *qc.Rules) {
		r.MiniGamesEnabled = true
		r.MiniGameChance = 1
	})
	deps.Games = newTestDispatcher(t)
	s := secondRound(t, deps)
	s.Update(keyPress('1'))
	if got := deps.Quiz.Phase(); got != qc.PhaseMiniGame {
		t.Fatalf("phase = %s, want mini-game", got)
	}

	s.Update(gameLaunchedMsg{Err: fmt.Errorf("boom")})

	if got := deps.Quiz.Phase(); got != qc.PhaseInRound {
		t.Errorf("phase = %s, want in-round", got)
	}
	if s.notice == "" {
		t.Error("expected a warning notice")
	}
}
