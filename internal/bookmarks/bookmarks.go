// Package bookmarks keeps the learner's bookmarks and page notes.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/store"
)

var (
	// ErrDuplicate is returned when a bookmark URL is already saved.
	ErrDuplicate = errors.New("already bookmarked")

	// ErrNotFound is returned for an unknown bookmark index or note ID.
	ErrNotFound = errors.New("not found")

	// ErrURLRequired and ErrTextRequired reject empty input.
	ErrURLRequired  = errors.New("url is required")
	ErrTextRequired = errors.New("text is required")
)

// Bookmark is a saved page.
type Bookmark struct {
	Title string    `json:"title"`
	URL   string    `json:"url"`
	Date  time.Time `json:"date"`
}

// Note is free text attached to a page.
type Note struct {
	ID        string    `json:"id"`
	Page      string    `json:"page"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Shelf stores bookmarks and notes as JSON blobs.
type Shelf struct {
	blobs store.Blobs
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// NewShelf creates a Shelf over blobs.
func NewShelf(blobs store.Blobs, log *zap.Logger) *Shelf {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shelf{blobs: blobs, log: log, now: time.Now, newID: uuid.NewString}
}

// Add saves a bookmark, rejecting a URL that is already present.
func (s *Shelf) Add(ctx context.Context, title, url string) (Bookmark, error) {
	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if url == "" {
		return Bookmark{}, fmt.Errorf("bookmark: %w", ErrURLRequired)
	}
	if title == "" {
		title = url
	}

	b := Bookmark{Title: title, URL: url, Date: s.now().UTC()}
	err := s.blobs.Atomic(ctx, func(kv store.KV) error {
		list, err := store.ReadJSON[[]Bookmark](ctx, kv, store.KeyBookmarks, s.log)
		if err != nil {
			return err
		}
		for _, existing := range list {
			if existing.URL == url {
				return fmt.Errorf("%w: %s", ErrDuplicate, url)
			}
		}
		return store.WriteJSON(ctx, kv, store.KeyBookmarks, append(list, b))
	})
	if err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// List returns the bookmarks in the order they were added.
func (s *Shelf) List(ctx context.Context) ([]Bookmark, error) {
	return store.ReadJSON[[]Bookmark](ctx, s.blobs, store.KeyBookmarks, s.log)
}

// Remove deletes the bookmark at index and returns it.
func (s *Shelf) Remove(ctx context.Context, index int) (Bookmark, error) {
	var removed Bookmark
	err := s.blobs.Atomic(ctx, func(kv store.KV) error {
		list, err := store.ReadJSON[[]Bookmark](ctx, kv, store.KeyBookmarks, s.log)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(list) {
			return fmt.Errorf("bookmark %d: %w", index, ErrNotFound)
		}
		removed = list[index]
		list = append(list[:index], list[index+1:]...)
		return store.WriteJSON(ctx, kv, store.KeyBookmarks, list)
	})
	return removed, err
}

// AddNote attaches text to page.
func (s *Shelf) AddNote(ctx context.Context, page, text string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, fmt.Errorf("note: %w", ErrTextRequired)
	}

	n := Note{ID: s.newID(), Page: strings.TrimSpace(page), Text: text, CreatedAt: s.now().UTC()}
	err := s.blobs.Atomic(ctx, func(kv store.KV) error {
		notes, err := store.ReadJSON[[]Note](ctx, kv, store.KeyNotes, s.log)
		if err != nil {
			return err
		}
		return store.WriteJSON(ctx, kv, store.KeyNotes, append(notes, n))
	})
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// Notes returns the notes for page, or every note when page is empty,
// oldest first.
func (s *Shelf) Notes(ctx context.Context, page string) ([]Note, error) {
	notes, err := store.ReadJSON[[]Note](ctx, s.blobs, store.KeyNotes, s.log)
	if err != nil || page == "" {
		return notes, err
	}
	var out []Note
	for _, n := range notes {
		if n.Page == page {
			out = append(out, n)
		}
	}
	return out, nil
}

// DeleteNote removes the note with id.
func (s *Shelf) DeleteNote(ctx context.Context, id string) error {
	return s.blobs.Atomic(ctx, func(kv store.KV) error {
		notes, err := store.ReadJSON[[]Note](ctx, kv, store.KeyNotes, s.log)
		if err != nil {
			return err
		}
		for i, n := range notes {
			if n.ID == id {
				notes = append(notes[:i], notes[i+1:]...)
				return store.WriteJSON(ctx, kv, store.KeyNotes, notes)
			}
		}
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	})
}
