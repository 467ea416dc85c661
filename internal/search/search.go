// Package search filters the site's page catalog by title and keywords.
package search

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLen is the shortest query, in runes, that produces results.
const MinQueryLen = 2

// Entry is one searchable page.
type Entry struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Index is an ordered, read-only page catalog.
type Index struct {
	entries []Entry
}

// NewIndex creates an Index over entries, kept in the given order.
func NewIndex(entries []Entry) *Index {
	return &Index{entries: append([]Entry(nil), entries...)}
}

var defaultEntries = []Entry{
	{Title: "HTML Basics", URL: "/pages/html#intro", Content: "html tag structure markup 태그 구조 마크업"},
	{Title: "CSS Styling", URL: "/pages/css#intro", Content: "css style design layout 스타일 디자인 레이아웃"},
	{Title: "JavaScript Programming", URL: "/pages/javascript#intro", Content: "javascript function variable dom 함수 변수"},
	{Title: "Code Practice", URL: "/pages/practice", Content: "practice editor coding exercise playground 실습 에디터 코딩 연습"},
	{Title: "Quiz", URL: "/pages/quiz", Content: "quiz test questions 퀴즈 테스트 문제"},
	{Title: "Deployment", URL: "/pages/deploy", Content: "deploy hosting cost github pages netlify 배포 호스팅 비용"},
}

// Default returns the catalog of WebLearn pages.
func Default() *Index {
	return NewIndex(defaultEntries)
}

// Entries returns a copy of the catalog.
func (ix *Index) Entries() []Entry {
	return append([]Entry(nil), ix.entries...)
}

// Search returns the entries whose title or content contains query, case
// insensitively, in catalog order. Queries shorter than MinQueryLen after
// trimming return nil.
func (ix *Index) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < MinQueryLen {
		return nil
	}

	var out []Entry
	for _, e := range ix.entries {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
		}
	}
	return out
}
