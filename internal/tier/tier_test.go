package tier

import "testing"

func TestLookupBands(t *testing.T) {
	tests := []struct {
		ratio float64
		want  ID
	}{
		{0, TX},
		{0.19, TX},
		{0.2, T1},
		{0.39, T1},
		{0.4, T2},
		{0.6, T3},
		{0.75, T3},
		{0.8, T4},
		{1, T4},
	}
	for _, tt := range tests {
		got := Lookup(tt.ratio)
		if got.Tier != tt.want {
			t.Errorf("Lookup(%v) = %s, want %s", tt.ratio, got.Tier, tt.want)
		}
		if got.Text == "" {
			t.Errorf("Lookup(%v) returned empty text", tt.ratio)
		}
	}
}

func TestLookupIsPure(t *testing.T) {
	a := Lookup(0.55)
	b := Lookup(0.55)
	if a != b {
		t.Errorf("Lookup not deterministic: %+v vs %+v", a, b)
	}
}

func TestFromMiniGameScore(t *testing.T) {
	tests := []struct {
		in     string
		want   ID
		wantOK bool
	}{
		{"baby", T1, true},
		{"Tinkerer", T2, true},
		{"scholar", T3, true},
		{"saint", T4, true},
		{"tx", TX, true},
		{" T3 ", T3, true},
		{"overlord", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := FromMiniGameScore(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("FromMiniGameScore(%q) = (%s, %v), want (%s, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAllValid(t *testing.T) {
	if len(All()) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(All()))
	}
	for _, id := range All() {
		if !id.Valid() {
			t.Errorf("%s should be valid", id)
		}
		if id.Label() == string(id) {
			t.Errorf("%s has no label", id)
		}
	}
	if ID("T9").Valid() {
		t.Error("T9 should not be valid")
	}
}

func TestTallyClone(t *testing.T) {
	src := Tally{T3: 2, "bogus": 9, T1: -4}
	got := src.Clone()

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[T3] != 2 || got[T1] != 0 || got[TX] != 0 {
		t.Errorf("clone = %v", got)
	}
	if _, ok := got["bogus"]; ok {
		t.Error("unknown tier kept")
	}
	got[T3] = 7
	if src[T3] != 2 {
		t.Error("clone shares storage with source")
	}
	if got.Total() != 7 {
		t.Errorf("Total = %d, want 7", got.Total())
	}
}
