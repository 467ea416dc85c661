package assistant

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	asst "github.com/weblearn/weblearn/internal/assistant"
	"github.com/weblearn/weblearn/internal/screen"
	"github.com/weblearn/weblearn/internal/ui/components"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

const greeting = "Hi! Ask me anything about HTML, CSS or JavaScript."

// answerMsg carries the reply to one question.
type answerMsg struct {
	question string
	answer   asst.Answer
	err      error
}

type exchange struct {
	question string
	answer   asst.Answer
}

// AssistantScreen is a chat with the learning assistant.
type AssistantScreen struct {
	assistant *asst.Assistant
	input     components.TextInput
	history   []exchange
	pending   string
	errMsg    string
}

var (
	_ screen.Screen          = (*AssistantScreen)(nil)
	_ screen.KeyHintProvider = (*AssistantScreen)(nil)
)

// New creates the assistant chat screen.
func New(a *asst.Assistant) *AssistantScreen {
	return &AssistantScreen{
		assistant: a,
		input:     components.NewTextInput("Ask a question...", 300),
	}
}

func (s *AssistantScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *AssistantScreen) Title() string {
	return "Assistant"
}

func (s *AssistantScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		s.pending = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.history = append(s.history, exchange{question: msg.question, answer: msg.answer})
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *AssistantScreen) submit() tea.Cmd {
	q := strings.TrimSpace(s.input.Value())
	if q == "" || s.pending != "" {
		return nil
	}
	s.input.Reset()
	s.errMsg = ""
	s.pending = q

	a := s.assistant
	return func() tea.Msg {
		ans, err := a.Ask(context.Background(), q)
		return answerMsg{question: q, answer: ans, err: err}
	}
}

func (s *AssistantScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	textWidth := cw - 8

	bubble := func(who string, text string, style lipgloss.Style) string {
		return style.Render(who) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth).Render(text)
	}

	entries := []string{bubble("Assistant", greeting, theme.Selected)}
	for _, ex := range s.history {
		entries = append(entries, bubble("You", ex.question, theme.Correct))
		label := "Assistant"
		if ex.answer.Keyword != "" {
			label += theme.Hint.Render("  (" + ex.answer.Keyword + ")")
		}
		entries = append(entries, bubble(label, ex.answer.Text, theme.Selected))
	}
	if s.pending != "" {
		entries = append(entries, bubble("You", s.pending, theme.Correct))
		entries = append(entries, theme.Hint.Render("Assistant is typing..."))
	}

	// Keep the newest exchanges visible.
	log := strings.Join(entries, "\n\n")
	lines := strings.Split(log, "\n")
	if room := height - 8; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	body := strings.Join(lines, "\n") + "\n\n" + s.input.View()
	if s.errMsg != "" {
		body += "\n" + theme.Incorrect.Render(s.errMsg)
	}
	return components.Center(components.Card(body, cw), width, height)
}

func (s *AssistantScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}
