package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	prog "github.com/weblearn/weblearn/internal/progress"
	"github.com/weblearn/weblearn/internal/router"
	"github.com/weblearn/weblearn/internal/screen"
	"github.com/weblearn/weblearn/internal/screens/history"
	"github.com/weblearn/weblearn/internal/ui/components"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

const labelWidth = 12

// ProgressScreen shows the latest score per category, the overall average
// and attempt statistics.
type ProgressScreen struct {
	tracker   *prog.Tracker
	snap      prog.Snapshot
	summaries []prog.Summary
	confirm   bool
	errMsg    string
}

var (
	_ screen.Screen          = (*ProgressScreen)(nil)
	_ screen.Revealer        = (*ProgressScreen)(nil)
	_ screen.KeyHintProvider = (*ProgressScreen)(nil)
)

// New creates the progress screen.
func New(tracker *prog.Tracker) *ProgressScreen {
	s := &ProgressScreen{tracker: tracker}
	s.load()
	return s
}

func (s *ProgressScreen) load() {
	ctx := context.Background()
	var err error
	s.errMsg = ""
	if s.snap, err = s.tracker.Snapshot(ctx); err != nil {
		s.errMsg = err.Error()
		return
	}
	if s.summaries, err = s.tracker.Summaries(ctx); err != nil {
		s.errMsg = err.Error()
	}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (s *ProgressScreen) Reveal() tea.Cmd {
	s.load()
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.confirm {
		s.confirm = false
		if kmsg.String() != "y" {
			return s, nil
		}
		if err := s.tracker.Reset(context.Background()); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.load()
		overall := s.snap.Overall
		return s, func() tea.Msg { return screen.ProgressMsg{Overall: overall} }
	}

	switch kmsg.String() {
	case "x":
		s.confirm = true
	case "h":
		return s, router.Push(history.New(s.tracker))
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	barWidth := cw - 6

	var b strings.Builder
	b.WriteString(components.Heading("Learning progress"))
	b.WriteString("\n\n")

	for _, sum := range s.summaries {
		pct := s.snap.Categories[sum.Category]
		b.WriteString(components.NewProgressBar(sum.Category.DisplayName(), labelWidth, pct, barWidth).View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Overall", labelWidth, s.snap.Overall, barWidth).View())
	b.WriteString("\n\n")

	for _, sum := range s.summaries {
		line := fmt.Sprintf("%-*s", labelWidth, sum.Category.DisplayName())
		if sum.Attempts == 0 {
			line += "not taken yet"
		} else {
			line += fmt.Sprintf("%d attempts · best %d%% · average %d%%", sum.Attempts, sum.Best, sum.Average)
		}
		b.WriteString(theme.Hint.Render(line))
		b.WriteString("\n")
	}

	if s.confirm {
		b.WriteString("\n" + theme.Incorrect.Render("Erase all quiz results? (y/N)"))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}
	return components.Center(components.Card(b.String(), cw), width, height)
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "h", Description: "History"},
		{Key: "x", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}
