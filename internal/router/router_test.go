package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/weblearn/weblearn/internal/screen"
)

type stubScreen struct {
	title    string
	initRan  bool
	revealed int
	updates  int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type revealScreen struct {
	stubScreen
}

type revealedMsg struct{}

func (s *revealScreen) Reveal() tea.Cmd {
	s.revealed++
	return func() tea.Msg { return revealedMsg{} }
}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	s2 := &stubScreen{title: "quiz"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "quiz" {
		t.Errorf("active = %q, want quiz", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("Init did not run on pushed screen")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("pop at bottom returned a command")
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestPopRevealsScreenUnderneath(t *testing.T) {
	home := &revealScreen{stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "progress"})

	cmd := r.Pop()
	if home.revealed != 1 {
		t.Errorf("revealed = %d, want 1", home.revealed)
	}
	if cmd == nil {
		t.Fatal("expected reveal command")
	}
	if _, ok := cmd().(revealedMsg); !ok {
		t.Error("reveal command returned unexpected message")
	}
}

func TestUpdateHandlesNavigationMessages(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "search"}})
	if r.Active().Title() != "search" {
		t.Fatalf("active = %q, want search", r.Active().Title())
	}
	r.Update(PopScreenMsg{})
	if r.Active() != home {
		t.Fatal("pop did not return to home")
	}

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if home.updates != 1 {
		t.Errorf("updates = %d, want 1", home.updates)
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "bookmarks"}
	msg, ok := Push(s)().(PushScreenMsg)
	if !ok || msg.Screen != s {
		t.Error("Push did not wrap the screen")
	}
	if _, ok := Pop()().(PopScreenMsg); !ok {
		t.Error("Pop did not produce PopScreenMsg")
	}
}

func TestView(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if got := r.View(80, 24); got != "home" {
		t.Errorf("View = %q", got)
	}
}
