package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"image/color"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/assistant"
	"github.com/weblearn/weblearn/internal/bookmarks"
	"github.com/weblearn/weblearn/internal/pages"
	"github.com/weblearn/weblearn/internal/playground"
	"github.com/weblearn/weblearn/internal/progress"
	"github.com/weblearn/weblearn/internal/quiz"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/search"
)

// maxBody bounds JSON and playground request bodies.
const maxBody = 1 << 20

func (s *Server) registerAPI(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/pages", s.handlePages)
		r.Get("/search", s.handleSearch)
		r.Post("/assistant", s.handleAssistant)

		r.Get("/quiz/categories", s.handleCategories)
		r.Get("/progress", s.handleProgress)
		r.Get("/results/{category}", s.handleResults)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.handleListBookmarks)
			r.Post("/", s.handleAddBookmark)
			r.Delete("/{index}", s.handleRemoveBookmark)
		})
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.handleListNotes)
			r.Post("/", s.handleAddNote)
			r.Delete("/{id}", s.handleDeleteNote)
		})

		r.Post("/playground/compose", s.handleCompose)
		r.Post("/playground/save", s.handleSaveCode)
	})
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	list, err := pages.List()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results := s.svc.Search.Search(r.URL.Query().Get("q"))
	if results == nil {
		results = []search.Entry{}
	}
	writeJSON(w, http.StatusOK, results)
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if s.svc.Assistant == nil {
		unavailable(w)
		return
	}
	var req askRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ans, err := s.svc.Assistant.Ask(r.Context(), req.Question)
	if errors.Is(err, assistant.ErrEmptyQuestion) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ans)
}

type categoryInfo struct {
	ID        quizbank.Category `json:"id"`
	Title     string            `json:"title"`
	Questions int               `json:"questions"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	var out []categoryInfo
	for _, c := range s.svc.Bank.Categories() {
		qs, err := s.svc.Bank.Questions(c)
		if err != nil {
			s.fail(w, err)
			return
		}
		out = append(out, categoryInfo{ID: c, Title: s.svc.Bank.Title(c), Questions: len(qs)})
	}
	writeJSON(w, http.StatusOK, out)
}

type progressResponse struct {
	Categories map[quizbank.Category]int `json:"categories"`
	Overall    int                       `json:"overall"`
	Summaries  []progress.Summary        `json:"summaries"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if s.svc.Tracker == nil {
		unavailable(w)
		return
	}
	snap, err := s.svc.Tracker.Snapshot(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	sums, err := s.svc.Tracker.Summaries(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{
		Categories: snap.Categories,
		Overall:    snap.Overall,
		Summaries:  sums,
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.svc.Tracker == nil {
		unavailable(w)
		return
	}
	c, err := quizbank.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	hist, err := s.svc.Tracker.History(r.Context(), c)
	if err != nil {
		s.fail(w, err)
		return
	}
	if hist == nil {
		hist = []quiz.ScoreRecord{}
	}
	writeJSON(w, http.StatusOK, hist)
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	if s.svc.Shelf == nil {
		unavailable(w)
		return
	}
	list, err := s.svc.Shelf.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if list == nil {
		list = []bookmarks.Bookmark{}
	}
	writeJSON(w, http.StatusOK, list)
}

type bookmarkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	if s.svc.Shelf == nil {
		unavailable(w)
		return
	}
	var req bookmarkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := s.svc.Shelf.Add(r.Context(), req.Title, req.URL)
	switch {
	case errors.Is(err, bookmarks.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, bookmarks.ErrURLRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.fail(w, err)
	default:
		writeJSON(w, http.StatusCreated, b)
	}
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	if s.svc.Shelf == nil {
		unavailable(w)
		return
	}
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be a number")
		return
	}
	b, err := s.svc.Shelf.Remove(r.Context(), i)
	if errors.Is(err, bookmarks.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	if s.svc.Shelf == nil {
		unavailable(w)
		return
	}
	notes, err := s.svc.Shelf.Notes(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		s.fail(w, err)
		return
	}
	if notes == nil {
		notes = []bookmarks.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

type noteRequest struct {
	Page string `json:"page"`
	Text string `json:"text"`
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	if s.svc.Shelf == nil {
		unavailable(w)
		return
	}
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := s.svc.Shelf.AddNote(r.Context(), req.Page, req.Text)
	if errors.Is(err, bookmarks.ErrTextRequired) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if s.svc.Shelf == nil {
		unavailable(w)
		return
	}
	err := s.svc.Shelf.DeleteNote(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, bookmarks.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var snip playground.Snippet
	if !decodeJSON(w, r, &snip) {
		return
	}
	writeDocument(w, playground.Compose(snip))
}

func (s *Server) handleSaveCode(w http.ResponseWriter, r *http.Request) {
	if s.svc.Prefs == nil {
		unavailable(w)
		return
	}
	var snip playground.Snippet
	if !decodeJSON(w, r, &snip) {
		return
	}
	if err := playground.SaveCode(r.Context(), s.svc.Prefs, snip, s.now()); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func unavailable(w http.ResponseWriter) {
	writeError(w, http.StatusServiceUnavailable, "not available")
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func hex(c color.Color) template.CSS {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return template.CSS(fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8))
}
