package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/ui/components"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

const titleFull = `╦ ╦┌─┐┌┐ ╦  ┌─┐┌─┐┬─┐┌┐┌
║║║├┤ ├┴┐║  ├┤ ├─┤├┬┘│││
╚╩╝└─┘└─┘╩═╝└─┘┴ ┴┴└─┘└┘`

const titleCompact = "W E B L E A R N"

const tagline = "Learn HTML, CSS and JavaScript step by step"

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + theme.Hint.Render(tagline))
}

// renderStats shows the latest percentage per category and the overall
// average on one line.
func renderStats(latest map[quizbank.Category]int, overall int, themeName theme.Name, cw int) string {
	var parts []string
	for _, c := range quizbank.AllCategories() {
		p, ok := latest[c]
		value := "—"
		if ok {
			value = fmt.Sprintf("%d%%", p)
		}
		parts = append(parts, fmt.Sprintf("%s %s", c.DisplayName(), value))
	}
	stats := lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(parts, "  ·  "))
	total := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("Overall %d%%", overall))
	mode := theme.Hint.Render(fmt.Sprintf("%s theme", themeName))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats + "\n" + total + "   " + mode)
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View())
}
