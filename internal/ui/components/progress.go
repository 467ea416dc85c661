package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/weblearn/weblearn/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a 0..100 percentage.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Percent    int
	Width      int
}

// NewProgressBar creates a bar with a label padded to labelWidth.
func NewProgressBar(label string, labelWidth, percent, width int) ProgressBar {
	return ProgressBar{Label: label, LabelWidth: labelWidth, Percent: percent, Width: width}
}

// Filled returns how many of n cells are filled.
func (p ProgressBar) Filled(n int) int {
	pct := min(max(p.Percent, 0), 100)
	return n * pct / 100
}

// View renders the bar followed by the percentage.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(p.LabelWidth).
			Render(p.Label))
		b.WriteString("  ")
	}

	const percentWidth = 6 // "  100%"
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)
	filled := p.Filled(barWidth)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%5d%%", p.Percent)))
	return b.String()
}
