package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/weblearn/weblearn/internal/bookmarks"
	"github.com/weblearn/weblearn/internal/screen"
	idx "github.com/weblearn/weblearn/internal/search"
	"github.com/weblearn/weblearn/internal/ui/components"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

// SearchScreen filters the page catalog as the learner types.
type SearchScreen struct {
	index   *idx.Index
	shelf   *bookmarks.Shelf
	input   components.TextInput
	results []idx.Entry
	cursor  int
	status  string
}

var (
	_ screen.Screen          = (*SearchScreen)(nil)
	_ screen.KeyHintProvider = (*SearchScreen)(nil)
)

// New creates a search screen. shelf may be nil to disable bookmarking.
func New(index *idx.Index, shelf *bookmarks.Shelf) *SearchScreen {
	return &SearchScreen{
		index: index,
		shelf: shelf,
		input: components.NewTextInput("Search pages...", 80),
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SearchScreen) Title() string {
	return "Search"
}

// Results returns the entries currently listed.
func (s *SearchScreen) Results() []idx.Entry {
	return s.results
}

func (s *SearchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "up":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil
		case "down":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
			return s, nil
		case "enter":
			s.bookmarkSelected()
			return s, nil
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.results = s.index.Search(s.input.Value())
		s.cursor = 0
		s.status = ""
	}
	return s, cmd
}

func (s *SearchScreen) bookmarkSelected() {
	if s.shelf == nil || len(s.results) == 0 {
		return
	}
	e := s.results[s.cursor]
	_, err := s.shelf.Add(context.Background(), e.Title, e.URL)
	switch {
	case errors.Is(err, bookmarks.ErrDuplicate):
		s.status = fmt.Sprintf("%q is already bookmarked.", e.Title)
	case err != nil:
		s.status = "Could not save bookmark: " + err.Error()
	default:
		s.status = fmt.Sprintf("Bookmarked %q.", e.Title)
	}
}

func (s *SearchScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	q := strings.TrimSpace(s.input.Value())
	switch {
	case len([]rune(q)) < idx.MinQueryLen:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Type at least %d characters.", idx.MinQueryLen)))
	case len(s.results) == 0:
		b.WriteString(theme.Hint.Render("No results found."))
	default:
		for i, e := range s.results {
			title := e.Title
			if i == s.cursor {
				b.WriteString(theme.Selected.Render("▸ " + title))
			} else {
				b.WriteString(theme.Unselected.Render("  " + title))
			}
			b.WriteString("  " + theme.Hint.Render(e.URL) + "\n")
		}
	}

	if s.status != "" {
		b.WriteString("\n" + theme.Correct.Render(s.status))
	}
	return components.Center(components.Card(b.String(), cw), width, height)
}

func (s *SearchScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Select"}}
	if s.shelf != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Bookmark"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}
