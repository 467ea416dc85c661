package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg struct{ n int }

func testMenu() Menu {
	pick := func(n int) func() tea.Cmd {
		return func() tea.Cmd { return func() tea.Msg { return pickedMsg{n} } }
	}
	return NewMenu([]MenuItem{
		{Label: "Quiz", Action: pick(1)},
		{Label: "Hidden", Action: pick(2), Disabled: true},
		{Label: "Exit", Action: pick(3)},
	})
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("selected = %d, want 0", m.Selected)
	}
}

func TestMenuEnterAndNumberKeys(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || cmd().(pickedMsg).n != 1 {
		t.Fatal("enter did not activate the selected item")
	}

	m, cmd = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil || cmd().(pickedMsg).n != 3 || m.Selected != 2 {
		t.Fatal("number key did not activate item 3")
	}

	if _, cmd = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"}); cmd != nil {
		t.Error("disabled item was activated")
	}
}

func TestMenuView(t *testing.T) {
	v := testMenu().View()
	if !strings.Contains(v, "▸ 1. Quiz") || !strings.Contains(v, "3. Exit") {
		t.Errorf("menu view:\n%s", v)
	}
}

func TestChoicesMarksCursorAndAnswer(t *testing.T) {
	v := Choices([]string{"<a>", "<p>", "<div>", "<br>"}, 2, 1)
	lines := strings.Split(strings.TrimRight(v, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.Contains(lines[1], "● B)") {
		t.Errorf("chosen line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "▸") {
		t.Errorf("cursor line = %q", lines[2])
	}
}

func TestReviewMarksCorrectAndWrong(t *testing.T) {
	v := Review([]string{"a", "b", "c"}, 0, 2)
	if !strings.Contains(v, "A)  a  ✓") || !strings.Contains(v, "C)  c  ✗") {
		t.Errorf("review:\n%s", v)
	}
}

func TestProgressBarFilled(t *testing.T) {
	tests := []struct{ pct, cells, want int }{
		{0, 20, 0},
		{50, 20, 10},
		{67, 30, 20},
		{100, 20, 20},
		{150, 20, 20},
		{-5, 20, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", 0, tt.pct, 40).Filled(tt.cells); got != tt.want {
			t.Errorf("Filled(%d%% of %d) = %d, want %d", tt.pct, tt.cells, got, tt.want)
		}
	}
	if v := NewProgressBar("HTML", 12, 80, 50).View(); !strings.Contains(v, "80%") {
		t.Errorf("bar view = %q", v)
	}
}

func TestOptionLabel(t *testing.T) {
	if OptionLabel(0) != "A" || OptionLabel(3) != "D" || OptionLabel(9) != "10" {
		t.Error("unexpected option labels")
	}
}
