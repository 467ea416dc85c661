package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/router"
	"github.com/weblearn/weblearn/internal/screen"
	"github.com/weblearn/weblearn/internal/screens/home"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

// Options configures the TUI.
type Options struct {
	Services home.Services
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	log     *zap.Logger
	overall int
	width   int
	height  int
}

// NewAppModel builds the model with the home screen at the bottom of the
// stack and applies the saved theme.
func NewAppModel(opts Options) AppModel {
	log := opts.Services.Log
	if log == nil {
		log = zap.NewNop()
		opts.Services.Log = log
	}

	if opts.Services.Prefs != nil {
		name, err := theme.Load(context.Background(), opts.Services.Prefs, log)
		if err != nil {
			log.Warn("load theme", zap.Error(err))
		}
		_ = theme.Apply(name)
	}

	h := home.New(opts.Services)
	return AppModel{
		router:  router.New(h),
		log:     log,
		overall: h.Overall(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ProgressMsg:
		m.overall = msg.Overall

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.overall, m.width)

	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(NewAppModel(opts)).Run()
	return err
}
