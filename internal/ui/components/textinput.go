package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/weblearn/weblearn/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the WebLearn prompt style.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused input limited to charLimit runes.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init starts the cursor blinking.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the wrapped model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input.
func (t TextInput) View() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Render(t.Model.View())
}

// Value returns the current text.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the text.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the text.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// Focused reports whether the input takes key presses.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}
