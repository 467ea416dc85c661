// Package screen defines the contract between the router and the
// individual WebLearn screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/weblearn/weblearn/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only; the app draws header and footer.
	View(width, height int) string

	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Revealer is implemented by screens that reload their data when they
// become active again after the screen above them is popped.
type Revealer interface {
	Reveal() tea.Cmd
}

// ProgressMsg announces a new overall progress percentage after scores
// were recorded or reset.
type ProgressMsg struct {
	Overall int
}
