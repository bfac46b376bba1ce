package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/attacq/internal/tier"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='progress_kv'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "progress_kv" {
		t.Errorf("table name = %q, want 'progress_kv'", name)
	}
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.Get(ctx, "a", "b")
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no values, got %v", got)
	}

	if err := s.SetMany(ctx, map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetMany(ctx, map[string]string{"a": "updated"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err = s.Get(ctx, "a", "b", "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := map[string]string{"a": "updated", "b": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, "a", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = s.Get(ctx, "a", "b")
	if _, ok := got["a"]; ok {
		t.Error("a should be deleted")
	}
	if got["b"] != "2" {
		t.Errorf("b = %q, want 2", got["b"])
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetMany(ctx, map[string]string{KeyPlayCount: "4"}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	p, err := NewProgressRepo(s, nil).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.PlayCount != 4 {
		t.Errorf("PlayCount = %d, want 4", p.PlayCount)
	}
}

func TestLoadDefaults(t *testing.T) {
	repo := NewProgressRepo(openTestStore(t), nil)
	p, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Progress{Tally: tier.NewTally()}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
	if p.HasBadge() {
		t.Error("fresh progress should hold no badge")
	}
}

func TestLoadCorruptValuesUseDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	err := s.SetMany(ctx, map[string]string{
		KeyTally:        "{not json",
		KeyBadge:        "T9",
		KeyPlayCount:    "lots",
		KeyEarnedBadges: "[1,2",
	})
	if err != nil {
		t.Fatal(err)
	}

	p, err := NewProgressRepo(s, nil).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Progress{Tally: tier.NewTally()}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordRoundAndAward(t *testing.T) {
	s := openTestStore(t)
	repo := NewProgressRepo(s, nil)
	ctx := context.Background()

	tally := tier.NewTally()
	tally[tier.T3] = 3
	if err := repo.RecordRound(ctx, tally, 2, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	award := &Award{Tier: tier.T3, BadgeID: "t3-librarian"}
	if err := repo.RecordRound(ctx, tally, 3, award); err != nil {
		t.Fatalf("record with award: %v", err)
	}
	// Awarding the same id twice keeps one entry.
	if err := repo.RecordRound(ctx, tally, 3, award); err != nil {
		t.Fatalf("award again: %v", err)
	}

	p, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Progress{
		Tally:            tally,
		Badge:            tier.T3,
		PlayCount:        3,
		Earned:           []string{"t3-librarian"},
		ExtendedUnlocked: true,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestResetKeepsEarned(t *testing.T) {
	s := openTestStore(t)
	repo := NewProgressRepo(s, nil)
	ctx := context.Background()

	tally := tier.NewTally()
	tally[tier.T1] = 3
	if err := repo.RecordRound(ctx, tally, 3, &Award{Tier: tier.T1, BadgeID: "t1-a"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetExtendedActive(ctx, true); err != nil {
		t.Fatal(err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	p, _ := repo.Load(ctx)
	if p.HasBadge() || p.PlayCount != 0 || p.Tally.Total() != 0 {
		t.Errorf("round state not cleared: %+v", p)
	}
	if len(p.Earned) != 1 || !p.ExtendedUnlocked || !p.ExtendedActive {
		t.Errorf("reset should keep earned badges and flags: %+v", p)
	}

	if err := repo.ResetAll(ctx, false); err != nil {
		t.Fatalf("reset all: %v", err)
	}
	p, _ = repo.Load(ctx)
	if p.ExtendedUnlocked || p.ExtendedActive {
		t.Errorf("flags not cleared: %+v", p)
	}
	if len(p.Earned) != 1 {
		t.Errorf("earned = %v, want kept", p.Earned)
	}

	if err := repo.ResetAll(ctx, true); err != nil {
		t.Fatal(err)
	}
	p, _ = repo.Load(ctx)
	if len(p.Earned) != 0 {
		t.Errorf("earned = %v, want cleared", p.Earned)
	}
}

func TestSetExtendedActiveClears(t *testing.T) {
	repo := NewProgressRepo(openTestStore(t), nil)
	ctx := context.Background()

	if err := repo.SetExtendedActive(ctx, true); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetExtendedActive(ctx, false); err != nil {
		t.Fatal(err)
	}
	p, _ := repo.Load(ctx)
	if p.ExtendedActive {
		t.Error("extended flag should be cleared")
	}
}

func TestDefaultDBPathEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("ATTACQ_DB", want)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ATTACQ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "attacq", "attacq.db"); got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}
