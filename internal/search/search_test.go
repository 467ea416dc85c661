package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func titles(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestSearchShortQueryHidesResults(t *testing.T) {
	ix := Default()
	assert.Nil(t, ix.Search(""))
	assert.Nil(t, ix.Search("c"))
	assert.Nil(t, ix.Search("  j  "))
	assert.Nil(t, ix.Search("퀴"))
}

func TestSearchMatchesTitleOrContent(t *testing.T) {
	ix := Default()

	assert.Equal(t, []string{"CSS Styling"}, titles(ix.Search("CSS")))
	assert.Equal(t, []string{"JavaScript Programming"}, titles(ix.Search("dom")))
	assert.Equal(t, []string{"Quiz"}, titles(ix.Search("퀴즈")))
	assert.Empty(t, ix.Search("python"))
}

func TestSearchKeepsCatalogOrder(t *testing.T) {
	got := titles(Default().Search("ing"))
	assert.Equal(t, []string{"CSS Styling", "JavaScript Programming", "Code Practice", "Deployment"}, got)
}

func TestSearchTrimsAndLowercases(t *testing.T) {
	assert.Equal(t, []string{"HTML Basics"}, titles(Default().Search("  MarkUp ")))
}

func TestEntriesIsACopy(t *testing.T) {
	ix := Default()
	e := ix.Entries()
	e[0].Title = "changed"
	assert.Equal(t, "HTML Basics", ix.Entries()[0].Title)
}
