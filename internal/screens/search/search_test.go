package search

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblearn/weblearn/internal/bookmarks"
	idx "github.com/weblearn/weblearn/internal/search"
	"github.com/weblearn/weblearn/internal/store"
)

func typeText(s *SearchScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSearchScreen_FiltersWhileTyping(t *testing.T) {
	s := New(idx.Default(), nil)
	typeText(s, "c")
	assert.Empty(t, s.Results())
	assert.Contains(t, s.View(90, 30), "at least 2 characters")

	typeText(s, "ss")
	require.Len(t, s.Results(), 1)
	assert.Equal(t, "CSS Styling", s.Results()[0].Title)
}

func TestSearchScreen_NoResults(t *testing.T) {
	s := New(idx.Default(), nil)
	typeText(s, "python")
	assert.Empty(t, s.Results())
	assert.Contains(t, s.View(90, 30), "No results found.")
}

func TestSearchScreen_BookmarkSelected(t *testing.T) {
	shelf := bookmarks.NewShelf(store.NewMemory(), nil)
	s := New(idx.Default(), shelf)
	typeText(s, "quiz")
	require.NotEmpty(t, s.Results())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(90, 30), `Bookmarked "Quiz".`)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.status, "already bookmarked")

	list, err := shelf.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/pages/quiz", list[0].URL)
}

func TestSearchScreen_CursorStaysInRange(t *testing.T) {
	s := New(idx.Default(), nil)
	typeText(s, "ja")
	n := len(s.Results())
	require.Positive(t, n)
	for range n + 2 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, n-1, s.cursor)
}
