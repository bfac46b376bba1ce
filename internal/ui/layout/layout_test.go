package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestHeaderShowsStatus(t *testing.T) {
	plain := RenderHeader("Quiz", HeaderStatus{Plays: 2}, 100)
	if !strings.Contains(plain, "2 plays") || strings.Contains(plain, "ROGUE") {
		t.Errorf("unexpected header:\n%s", plain)
	}

	full := RenderHeader("Quiz", HeaderStatus{Plays: 4, Badge: "T3", Extended: true}, 100)
	for _, want := range []string{"ATTACQ", "Quiz", "4 plays", "★ T3", "ROGUE"} {
		if !strings.Contains(full, want) {
			t.Errorf("header missing %q:\n%s", want, full)
		}
	}
}

func TestFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", HeaderStatus{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)

	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
	if !strings.Contains(frame, "Esc") || !strings.Contains(frame, "Back") {
		t.Error("footer hints missing from frame")
	}
}
