package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/weblearn/weblearn/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// OptionLabel returns the letter shown in front of option i.
func OptionLabel(i int) string {
	if i >= 0 && i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprint(i + 1)
}

// Choices renders a question's options. cursor is the highlighted row and
// chosen the recorded answer (negative when unanswered).
func Choices(options []string, cursor, chosen int) string {
	var b strings.Builder
	for i, opt := range options {
		prefix := "  "
		if i == cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabel(i), opt)

		switch {
		case i == chosen:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line))
		case i == cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Review renders an option list after grading: the correct option in the
// success color, a wrong chosen option in the error color.
func Review(options []string, correct, chosen int) string {
	var b strings.Builder
	for i, opt := range options {
		line := fmt.Sprintf("  %s)  %s", OptionLabel(i), opt)
		switch {
		case i == correct:
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		case i == chosen:
			b.WriteString(theme.Incorrect.Render(line + "  ✗"))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
