package badges

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/attacq/internal/tier"
)

func TestDefaultCatalogPools(t *testing.T) {
	c := Default()
	for _, id := range tier.All() {
		pool := c.Pool(id)
		if len(pool) != 4 {
			t.Errorf("tier %s: expected 4 badges, got %d", id, len(pool))
		}
		for _, b := range pool {
			if b.Tier != id {
				t.Errorf("badge %s: tier = %s, want %s", b.ID, b.Tier, id)
			}
		}
		if _, ok := c.Personality(id); !ok {
			t.Errorf("tier %s has no personality", id)
		}
	}
	if c.Total() != 20 {
		t.Errorf("Total() = %d, want 20", c.Total())
	}
}

func TestRandomForTierStaysInPool(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewPCG(1, 2))
	counts := make(map[string]int)
	for range 400 {
		b, ok := c.RandomForTier(tier.T3, rng)
		if !ok {
			t.Fatal("expected a badge for T3")
		}
		if b.Tier != tier.T3 {
			t.Fatalf("picked %s from tier %s", b.ID, b.Tier)
		}
		counts[b.ID]++
	}
	if len(counts) != 4 {
		t.Errorf("expected all 4 badges to be drawn, got %v", counts)
	}
}

func TestRandomForTierEmptyPool(t *testing.T) {
	c := NewCatalog(map[tier.ID][]Badge{}, nil)
	if _, ok := c.RandomForTier(tier.T1, nil); ok {
		t.Error("expected no badge from empty catalog")
	}
}

func TestByID(t *testing.T) {
	c := Default()
	b, ok := c.ByID("TX_3")
	if !ok {
		t.Fatal("expected TX_3 to exist")
	}
	if b.Title != "The Redacted One" || b.Tier != tier.TX {
		t.Errorf("unexpected badge: %+v", b)
	}
	if _, ok := c.ByID("T9_1"); ok {
		t.Error("expected unknown badge lookup to fail")
	}
}

func TestProgress(t *testing.T) {
	c := Default()
	tests := []struct {
		name   string
		earned []string
		want   Progress
	}{
		{"none", nil, Progress{Earned: 0, Total: 20, Percentage: 0}},
		{"one", []string{"T1_1"}, Progress{Earned: 1, Total: 20, Percentage: 5}},
		{"dupes and unknown", []string{"T1_1", "T1_1", "bogus", "T4_2"}, Progress{Earned: 2, Total: 20, Percentage: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Progress(tt.earned); got != tt.want {
				t.Errorf("Progress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
