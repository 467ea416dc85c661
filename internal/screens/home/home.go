package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/assistant"
	"github.com/weblearn/weblearn/internal/bookmarks"
	"github.com/weblearn/weblearn/internal/progress"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/router"
	"github.com/weblearn/weblearn/internal/screen"
	assistantscreen "github.com/weblearn/weblearn/internal/screens/assistant"
	bookmarkscreen "github.com/weblearn/weblearn/internal/screens/bookmarks"
	progressscreen "github.com/weblearn/weblearn/internal/screens/progress"
	quizscreen "github.com/weblearn/weblearn/internal/screens/quiz"
	searchscreen "github.com/weblearn/weblearn/internal/screens/search"
	"github.com/weblearn/weblearn/internal/search"
	"github.com/weblearn/weblearn/internal/store"
	"github.com/weblearn/weblearn/internal/ui/components"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

// Services are the dependencies the home screen hands to the screens it
// opens.
type Services struct {
	Bank      *quizbank.Bank
	Tracker   *progress.Tracker
	Assistant *assistant.Assistant
	Search    *search.Index
	Shelf     *bookmarks.Shelf
	Prefs     store.KV
	Log       *zap.Logger
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc     Services
	menu    components.Menu
	latest  map[quizbank.Category]int
	overall int
	errMsg  string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.Revealer        = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the home screen.
func New(svc Services) *HomeScreen {
	if svc.Log == nil {
		svc.Log = zap.NewNop()
	}
	h := &HomeScreen{svc: svc}
	items := []components.MenuItem{
		{Label: "Quiz", Action: func() tea.Cmd {
			return router.Push(quizscreen.New(svc.Bank, svc.Tracker, ""))
		}},
		{Label: "Assistant", Action: func() tea.Cmd {
			return router.Push(assistantscreen.New(svc.Assistant))
		}, Disabled: svc.Assistant == nil},
		{Label: "Search", Action: func() tea.Cmd {
			return router.Push(searchscreen.New(svc.Search, svc.Shelf))
		}, Disabled: svc.Search == nil},
		{Label: "Bookmarks", Action: func() tea.Cmd {
			return router.Push(bookmarkscreen.New(svc.Shelf))
		}, Disabled: svc.Shelf == nil},
		{Label: "Progress", Action: func() tea.Cmd {
			return router.Push(progressscreen.New(svc.Tracker))
		}, Disabled: svc.Tracker == nil},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.load()
	return h
}

func (h *HomeScreen) load() {
	if h.svc.Tracker == nil {
		return
	}
	snap, err := h.svc.Tracker.Snapshot(context.Background())
	if err != nil {
		h.errMsg = err.Error()
		return
	}
	h.latest, h.overall = snap.Categories, snap.Overall
}

// Overall returns the overall progress shown on the home screen.
func (h *HomeScreen) Overall() int {
	return h.overall
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Reveal() tea.Cmd {
	h.load()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressMsg:
		h.load()
		return h, nil
	case tea.KeyPressMsg:
		if msg.String() == "t" {
			h.toggleTheme()
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleTheme() {
	next := theme.Toggle(theme.Current())
	if err := theme.Apply(next); err != nil {
		h.errMsg = err.Error()
		return
	}
	if h.svc.Prefs == nil {
		return
	}
	if err := theme.Save(context.Background(), h.svc.Prefs, next); err != nil {
		h.svc.Log.Warn("save theme", zap.Error(err))
		h.errMsg = "Could not save theme: " + err.Error()
	}
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+6)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStats(h.latest, h.overall, theme.Current(), cw),
		renderMenu(h.menu, cw),
	}
	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(h.errMsg))
	}
	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Center(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "t", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
