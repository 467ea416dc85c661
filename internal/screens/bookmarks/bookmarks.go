package bookmarks

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/dustin/go-humanize"

	bm "github.com/weblearn/weblearn/internal/bookmarks"
	"github.com/weblearn/weblearn/internal/screen"
	"github.com/weblearn/weblearn/internal/ui/components"
	"github.com/weblearn/weblearn/internal/ui/layout"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

type tab int

const (
	tabBookmarks tab = iota
	tabNotes
)

// BookmarksScreen lists saved bookmarks and notes and lets the learner
// delete them.
type BookmarksScreen struct {
	shelf *bm.Shelf
	now   func() time.Time

	tab       tab
	bookmarks []bm.Bookmark
	notes     []bm.Note
	cursor    int
	errMsg    string
}

var (
	_ screen.Screen          = (*BookmarksScreen)(nil)
	_ screen.Revealer        = (*BookmarksScreen)(nil)
	_ screen.KeyHintProvider = (*BookmarksScreen)(nil)
)

// New creates the screen and loads the current lists.
func New(shelf *bm.Shelf) *BookmarksScreen {
	s := &BookmarksScreen{shelf: shelf, now: time.Now}
	s.load()
	return s
}

func (s *BookmarksScreen) load() {
	ctx := context.Background()
	var err error
	if s.bookmarks, err = s.shelf.List(ctx); err != nil {
		s.errMsg = err.Error()
	}
	if s.notes, err = s.shelf.Notes(ctx, ""); err != nil {
		s.errMsg = err.Error()
	}
	s.cursor = min(s.cursor, max(s.count()-1, 0))
}

func (s *BookmarksScreen) count() int {
	if s.tab == tabNotes {
		return len(s.notes)
	}
	return len(s.bookmarks)
}

func (s *BookmarksScreen) Init() tea.Cmd {
	return nil
}

func (s *BookmarksScreen) Reveal() tea.Cmd {
	s.load()
	return nil
}

func (s *BookmarksScreen) Title() string {
	return "Bookmarks"
}

func (s *BookmarksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "left", "right":
		s.tab = 1 - s.tab
		s.cursor = 0
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.count()-1 {
			s.cursor++
		}
	case "d", "delete", "backspace":
		s.deleteSelected()
	}
	return s, nil
}

func (s *BookmarksScreen) deleteSelected() {
	if s.count() == 0 {
		return
	}
	ctx := context.Background()
	var err error
	if s.tab == tabNotes {
		err = s.shelf.DeleteNote(ctx, s.notes[s.cursor].ID)
	} else {
		_, err = s.shelf.Remove(ctx, s.cursor)
	}
	s.errMsg = ""
	if err != nil {
		s.errMsg = err.Error()
	}
	s.load()
}

func (s *BookmarksScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	tabs := []string{"Bookmarks", "Notes"}
	var header []string
	for i, name := range tabs {
		label := fmt.Sprintf("%s (%d)", name, []int{len(s.bookmarks), len(s.notes)}[i])
		if tab(i) == s.tab {
			header = append(header, theme.Selected.Render("["+label+"]"))
		} else {
			header = append(header, theme.Hint.Render(" "+label+" "))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, "  "))
	b.WriteString("\n\n")

	row := func(i int, text, meta string) {
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ " + text))
		} else {
			b.WriteString(theme.Unselected.Render("  " + text))
		}
		b.WriteString("  " + theme.Hint.Render(meta) + "\n")
	}

	if s.tab == tabBookmarks {
		if len(s.bookmarks) == 0 {
			b.WriteString(theme.Hint.Render("No bookmarks yet. Press Enter on a search result to add one."))
		}
		for i, bk := range s.bookmarks {
			row(i, bk.Title, bk.URL+" · "+humanize.RelTime(bk.Date, s.now(), "ago", "from now"))
		}
	} else {
		if len(s.notes) == 0 {
			b.WriteString(theme.Hint.Render("No notes yet. Add one with `weblearn note add`."))
		}
		for i, n := range s.notes {
			page := n.Page
			if page == "" {
				page = "general"
			}
			row(i, n.Text, page+" · "+humanize.RelTime(n.CreatedAt, s.now(), "ago", "from now"))
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}
	return components.Center(components.Card(b.String(), cw), width, height)
}

func (s *BookmarksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch list"},
		{Key: "↑↓", Description: "Select"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}
