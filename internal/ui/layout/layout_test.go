package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestSizeThresholds(t *testing.T) {
	if !IsTooSmall(59, 30) || !IsTooSmall(100, 19) {
		t.Error("expected too small below minimum")
	}
	if IsTooSmall(60, 20) {
		t.Error("minimum size reported as too small")
	}
	if !IsCompact(80, 40) || IsCompact(120, 40) {
		t.Error("compact width threshold mismatch")
	}
}

func TestRenderHeaderShowsProgress(t *testing.T) {
	h := RenderHeader("Quiz", 56, 80)
	if !strings.Contains(h, "WebLearn") || !strings.Contains(h, "Quiz") || !strings.Contains(h, "56% overall") {
		t.Errorf("header missing parts:\n%s", h)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", 0, 70)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 70)
	frame := RenderFrame(header, "body", footer, 70, 24)

	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
	if !strings.Contains(frame, "Esc") || !strings.Contains(frame, "body") {
		t.Error("frame missing footer or content")
	}
}
