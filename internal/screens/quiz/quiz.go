package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/weblearn/weblearn/internal/progress"
	qz "github.com/weblearn/weblearn/internal/quiz"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/screen"
	"github.com/weblearn/weblearn/internal/ui/components"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

// QuizScreen runs quizzes: category selection, questions and results.
type QuizScreen struct {
	ctrl    *qz.Controller
	tracker *progress.Tracker

	categories []quizbank.Category
	latest     map[quizbank.Category]int
	catCursor  int
	cursor     int
	errMsg     string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
)

// New creates a quiz screen. tracker may be nil, in which case results are
// shown but not saved. A non-empty start category skips the selection step.
func New(bank *quizbank.Bank, tracker *progress.Tracker, start quizbank.Category, opts ...qz.Option) *QuizScreen {
	var rec qz.Recorder
	if tracker != nil {
		rec = tracker
	}
	s := &QuizScreen{
		ctrl:       qz.NewController(bank, rec, opts...),
		tracker:    tracker,
		categories: bank.Categories(),
	}
	s.loadLatest()
	if start != "" {
		if err := s.ctrl.Start(context.Background(), start); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s
}

func (s *QuizScreen) loadLatest() {
	s.latest = nil
	if s.tracker == nil {
		return
	}
	snap, err := s.tracker.Snapshot(context.Background())
	if err == nil {
		s.latest = snap.Categories
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// State exposes the controller state.
func (s *QuizScreen) State() qz.State {
	return s.ctrl.State()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	switch s.ctrl.State() {
	case qz.StateSelecting:
		return s, s.updateSelecting(key)
	case qz.StateInProgress:
		return s, s.updateQuestion(key)
	case qz.StateCompleted:
		return s, s.updateResult(key)
	}
	return s, nil
}

func (s *QuizScreen) updateSelecting(key string) tea.Cmd {
	switch key {
	case "up", "k":
		if s.catCursor > 0 {
			s.catCursor--
		}
	case "down", "j":
		if s.catCursor < len(s.categories)-1 {
			s.catCursor++
		}
	case "enter", "space":
		s.start(s.categories[s.catCursor])
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(s.categories) {
			s.catCursor = int(key[0] - '1')
			s.start(s.categories[s.catCursor])
		}
	}
	return nil
}

func (s *QuizScreen) start(c quizbank.Category) {
	s.errMsg = ""
	s.cursor = 0
	if err := s.ctrl.Start(context.Background(), c); err != nil {
		s.errMsg = err.Error()
	}
}

func (s *QuizScreen) updateQuestion(key string) tea.Cmd {
	qv := s.ctrl.View().Question
	n := len(qv.Question.Options)

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
	case "space", "enter":
		if key == "enter" && qv.Selected == s.cursor {
			return s.next()
		}
		s.ctrl.Choose(s.cursor)
	case "right", "n", "tab":
		return s.next()
	case "left", "p", "shift+tab":
		s.ctrl.Back()
		s.syncCursor()
	case "a", "b", "c", "d":
		i := int(key[0] - 'a')
		if i < n {
			s.cursor = i
			s.ctrl.Choose(i)
		}
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < n {
			s.cursor = i
			s.ctrl.Choose(i)
		}
	}
	return nil
}

func (s *QuizScreen) next() tea.Cmd {
	rec, err := s.ctrl.Next(context.Background())
	if err != nil {
		s.errMsg = "Could not save your score: " + err.Error()
	}
	if rec == nil {
		s.syncCursor()
		return nil
	}
	s.loadLatest()
	overall := progress.Overall(s.latest)
	return func() tea.Msg { return screen.ProgressMsg{Overall: overall} }
}

// syncCursor moves the cursor to the recorded answer of the current question.
func (s *QuizScreen) syncCursor() {
	v := s.ctrl.View()
	if v.Kind != qz.ViewQuestion {
		return
	}
	s.cursor = max(v.Question.Selected, 0)
}

func (s *QuizScreen) updateResult(key string) tea.Cmd {
	switch key {
	case "r":
		s.errMsg = ""
		if err := s.ctrl.Restart(); err != nil {
			s.errMsg = err.Error()
		}
		s.cursor = 0
	case "c", "enter":
		s.errMsg = ""
		s.ctrl.Exit()
	}
	return nil
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	v := s.ctrl.View()
	switch v.Kind {
	case qz.ViewSelect:
		body = s.viewSelect(cw)
	case qz.ViewQuestion:
		body = s.viewQuestion(v.Question, cw)
	case qz.ViewResult:
		body = s.viewResult(v.Result, cw)
	}
	if s.errMsg != "" {
		body += "\n\n" + theme.Incorrect.Render(s.errMsg)
	}
	return components.Center(body, width, height)
}

func (s *QuizScreen) viewSelect(cw int) string {
	var b strings.Builder
	b.WriteString(components.Heading("Choose a quiz"))
	b.WriteString("\n\n")
	for i, c := range s.categories {
		label := fmt.Sprintf("%d. %s", i+1, s.ctrl.Bank().Title(c))
		if p, ok := s.latest[c]; ok {
			label += theme.Hint.Render(fmt.Sprintf("  last %d%%", p))
		}
		if i == s.catCursor {
			b.WriteString(theme.Selected.Render("▸ ") + theme.Selected.Render(label))
		} else {
			b.WriteString("  " + theme.Unselected.Render(label))
		}
		b.WriteString("\n")
	}
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) viewQuestion(qv qz.QuestionView, cw int) string {
	header := theme.Hint.Render(fmt.Sprintf("%s · Question %d of %d",
		qv.Category.DisplayName(), qv.Index+1, qv.Total))
	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw-6).
		Render(qv.Question.Prompt)

	bar := components.NewProgressBar("", 0, qz.Percentage(qv.Index+1, qv.Total), cw-6).View()

	nav := "Previous"
	if qv.IsFirst {
		nav = theme.Hint.Render("Previous")
	}
	next := "Next"
	if qv.IsLast {
		next = "Finish"
	}

	body := header + "\n" + bar + "\n\n" + prompt + "\n\n" +
		components.Choices(qv.Question.Options, s.cursor, qv.Selected) + "\n" +
		theme.Hint.Render("← "+nav+"   "+next+" →")
	return components.Card(body, cw)
}

func (s *QuizScreen) viewResult(rv qz.ResultView, cw int) string {
	var b strings.Builder
	b.WriteString(components.Heading(fmt.Sprintf("%s quiz complete", rv.Category.DisplayName())))
	b.WriteString("\n\n")

	style := theme.Correct
	if rv.Score.Percentage < 60 {
		style = theme.Incorrect
	}
	b.WriteString(style.Render(fmt.Sprintf("%d / %d correct  (%d%%)",
		rv.Score.Correct, rv.Score.Total, rv.Score.Percentage)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(encouragement(rv.Score.Percentage)))
	b.WriteString("\n\n")

	for i, q := range rv.Questions {
		chosen := qz.Unanswered
		if i < len(rv.Answers) {
			chosen = rv.Answers[i]
		}
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d. %s", i+1, q.Prompt)))
		b.WriteString("\n")
		b.WriteString(components.Review(q.Options, q.Correct, chosen))
		if q.Explanation != "" {
			b.WriteString(theme.Hint.Render("   " + q.Explanation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if rec := s.ctrl.LastRecord(); rec != nil {
		b.WriteString(theme.Hint.Render(qz.ShareText(*rec)))
	}
	return components.Card(b.String(), cw)
}

func encouragement(pct int) string {
	switch {
	case pct == 100:
		return "Perfect score!"
	case pct >= 60:
		return "Nice work. Review the misses and try again."
	default:
		return "Keep practicing. Read the lesson and retake the quiz."
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.ctrl.State() {
	case qz.StateInProgress:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Space", Description: "Choose"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case qz.StateCompleted:
		return []layout.KeyHint{
			{Key: "r", Description: "Retake"},
			{Key: "c", Description: "Other quiz"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}
