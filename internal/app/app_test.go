package app

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/attacq/internal/questions"
	qc "github.com/abhisek/attacq/internal/quiz"
	"github.com/abhisek/attacq/internal/router"
	"github.com/abhisek/attacq/internal/screens"
	quizscreen "github.com/abhisek/attacq/internal/screens/quiz"
	"github.com/abhisek/attacq/internal/store"
)

func newTestModel(t *testing.T, splash bool) AppModel {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	q := questions.Question{Prompt: "q", Options: []questions.Option{{Label: "a", Points: 1}}}
	bank := &questions.Bank{Starter: []questions.Question{q}, Full: []questions.Question{q}}
	c, err := qc.New(qc.Deps{
		Questions: bank,
		Progress:  store.NewProgressRepo(s, nil),
		Rand:      rand.New(rand.NewPCG(1, 2)),
	}, qc.DefaultRules())
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return newAppModel(Options{Deps: screens.Deps{Quiz: c}, Splash: splash})
}

func TestSplashIsRoot(t *testing.T) {
	m := newTestModel(t, true)
	if got := m.router.Active().Title(); got != "" {
		t.Errorf("root title = %q, want splash", got)
	}
	m = newTestModel(t, false)
	if got := m.router.Active().Title(); got != "Home" {
		t.Errorf("root title = %q, want Home", got)
	}
}

func TestEscInsideRoundIsForwarded(t *testing.T) {
	m := newTestModel(t, false)
	qs := quizscreen.New(m.deps, qc.ModeNormal)
	m.router.Push(qs)
	m.router.Update(qs.Init()())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, popped := cmd().(router.PopScreenMsg); popped {
			t.Fatal("Esc during a round should not pop the screen")
		}
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}
}

func TestEscPopsOrdinaryScreens(t *testing.T) {
	m := newTestModel(t, false)
	qs := quizscreen.New(m.deps, qc.ModeNormal)
	m.router.Push(qs)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command before the round starts")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestViewRendersWithHeader(t *testing.T) {
	m := newTestModel(t, false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	v := updated.(AppModel).View()
	if v.Content == nil {
		t.Error("expected rendered content")
	}
	if !v.AltScreen {
		t.Error("expected the alternate screen")
	}
}
