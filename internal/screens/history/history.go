package history

import (
	"context"
	"fmt"
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/weblearn/weblearn/internal/progress"
	"github.com/weblearn/weblearn/internal/quiz"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/screen"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

// maxRows caps the attempts listed.
const maxRows = 50

type historyLoadedMsg struct {
	Attempts []quiz.ScoreRecord
	Err      error
}

// HistoryScreen lists past quiz attempts, newest first.
type HistoryScreen struct {
	tracker  *progress.Tracker
	attempts []quiz.ScoreRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a HistoryScreen.
func New(tracker *progress.Tracker) *HistoryScreen {
	return &HistoryScreen{
		tracker:  tracker,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var all []quiz.ScoreRecord
		for _, c := range quizbank.AllCategories() {
			hist, err := s.tracker.History(ctx, c)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			all = append(all, hist...)
		}
		slices.SortStableFunc(all, func(a, b quiz.ScoreRecord) int {
			return b.Timestamp.Compare(a.Timestamp)
		})
		if len(all) > maxRows {
			all = all[:maxRows]
		}
		return historyLoadedMsg{Attempts: all}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// Attempts returns the loaded attempts.
func (s *HistoryScreen) Attempts() []quiz.ScoreRecord {
	return s.attempts
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), "\n\n  No quizzes taken yet. Pick one from the menu!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-10s  %-16s  %d/%d  %3d%%",
			prefix, a.Category.DisplayName(), humanize.Time(a.Timestamp), a.Correct, a.Total, a.Percentage)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s  ·  %s", a.Timestamp.Local().Format("Jan 02, 2006 15:04"), quiz.ShareText(a))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(scoreColor(a.Percentage)).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func scoreColor(pct int) color.Color {
	if pct >= 60 {
		return theme.Success
	}
	return theme.Error
}
