package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/weblearn/weblearn/internal/screen"
)

// PushScreenMsg asks the router to open Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to close the active screen.
type PopScreenMsg struct{}

// Push returns a command that opens s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop returns a command that closes the active screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Router keeps the stack of open screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New creates a Router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the active screen. The screen underneath is revealed and, if
// it implements screen.Revealer, asked to refresh.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	if rv, ok := r.Active().(screen.Revealer); ok {
		return rv.Reveal()
	}
	return nil
}

// Active returns the top of the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
