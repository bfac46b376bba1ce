package home

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/attacq/internal/questions"
	qc "github.com/abhisek/attacq/internal/quiz"
	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screens"
	quizscreen "github.com/abhisek/attacq/internal/screens/quiz"
	"github.com/abhisek/attacq/internal/store"
	"github.com/abhisek/attacq/internal/tier"
)

func newDeps(t *testing.T) (screens.Deps, *store.ProgressRepo) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "home.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := store.NewProgressRepo(s, nil)

	q := questions.Question{Prompt: "q", Options: []questions.Option{{Label: "a", Points: 1}}}
	bank := &questions.Bank{
		Starter: slices.Repeat([]questions.Question{q}, 5),
		Full:    slices.Repeat([]questions.Question{q}, 10),
	}
	rules := qc.DefaultRules()
	rules.MiniGamesEnabled = false
	c, err := qc.New(qc.Deps{Questions: bank, Progress: repo, Rand: rand.New(rand.NewPCG(1, 2))}, rules)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return screens.Deps{Quiz: c}, repo
}

func refresh(t *testing.T, h *HomeScreen) tea.Cmd {
	t.Helper()
	msg := h.Init()()
	_, cmd := h.Update(msg)
	return cmd
}

func TestMenuHidesRogueModeUntilUnlocked(t *testing.T) {
	deps, _ := newDeps(t)
	h := New(deps)
	refresh(t, h)

	want := []string{"START QUIZ", "BADGE VAULT", "EXIT"}
	if got := h.menu.Labels(); !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestMenuShowsRogueModeWhenUnlocked(t *testing.T) {
	deps, repo := newDeps(t)
	award := &store.Award{Tier: tier.T3, BadgeID: "T3_1"}
	if err := repo.RecordRound(context.Background(), tier.NewTally(), 3, award); err != nil {
		t.Fatalf("record: %v", err)
	}

	h := New(deps)
	refresh(t, h)

	want := []string{"START QUIZ", "ROGUE MODE", "BADGE VAULT", "EXIT"}
	if got := h.menu.Labels(); !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	if mascotFor(h.progress) != MascotRogue {
		t.Error("expected the rogue mascot")
	}
}

func TestStartQuizPushesQuizScreen(t *testing.T) {
	deps, _ := newDeps(t)
	h := New(deps)
	refresh(t, h)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("pushed %T, want quiz screen", push.Screen)
	}
}

func TestForceExtendedOpensRogueModeOnce(t *testing.T) {
	deps, _ := newDeps(t)
	deps.ForceExtended = true
	h := New(deps)

	cmd := refresh(t, h)
	if cmd == nil {
		t.Fatal("expected the rogue quiz to be pushed")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Rogue Mode" {
		t.Fatalf("pushed %#v, want the rogue quiz", push.Screen)
	}

	if cmd := h.Resume(); cmd != nil {
		if _, again := h.Update(cmd()); again != nil {
			t.Error("rogue mode should only be forced once")
		}
	}
}

func TestPersistedRogueModeResumesOnLaunch(t *testing.T) {
	deps, repo := newDeps(t)
	if err := repo.SetExtendedActive(context.Background(), true); err != nil {
		t.Fatalf("set extended: %v", err)
	}
	h := New(deps)

	cmd := refresh(t, h)
	if cmd == nil {
		t.Fatal("a launch with rogue mode active should enter rogue mode")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Rogue Mode" {
		t.Fatalf("pushed %#v, want the rogue quiz", push.Screen)
	}

	// Returning home later in the same launch shows the menu.
	if cmd := h.Resume(); cmd != nil {
		if _, again := h.Update(cmd()); again != nil {
			t.Error("rogue mode should only resume once per launch")
		}
	}
}

func TestRefreshAbandonsUnrevealedRound(t *testing.T) {
	deps, _ := newDeps(t)
	if err := deps.Quiz.Start(context.Background(), qc.ModeNormal); err != nil {
		t.Fatalf("start: %v", err)
	}
	h := New(deps)
	refresh(t, h)

	if got := deps.Quiz.Phase(); got != qc.PhaseNotStarted {
		t.Errorf("phase = %s, want not-started", got)
	}
}
