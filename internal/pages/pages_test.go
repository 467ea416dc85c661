package pages

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblearn/weblearn/internal/playground"
)

func TestListInNavigationOrder(t *testing.T) {
	metas, err := List()
	require.NoError(t, err)

	var slugs []string
	for _, m := range metas {
		slugs = append(slugs, m.Slug)
		assert.NotEqual(t, m.Slug, m.Title, "page %s has no heading", m.Slug)
	}
	assert.Equal(t, []string{"html", "css", "javascript", "practice", "quiz", "deploy"}, slugs)
	assert.Equal(t, "HTML Basics", metas[0].Title)
}

func TestRenderHeadingAnchors(t *testing.T) {
	for _, slug := range []string{"html", "css", "javascript"} {
		p, err := Render(slug)
		require.NoError(t, err)
		assert.Contains(t, string(p.HTML), `id="intro"`, slug)
		assert.NotContains(t, p.Title, "{#intro}", slug)
	}

	p, err := Render("css")
	require.NoError(t, err)
	assert.Contains(t, string(p.HTML), `id="flexbox"`)
}

func TestRenderGFM(t *testing.T) {
	p, err := Render("html")
	require.NoError(t, err)
	assert.Contains(t, string(p.HTML), "<table>")

	p, err = Render("deploy")
	require.NoError(t, err)
	assert.Contains(t, string(p.HTML), `type="checkbox"`)
}

func TestRenderCollectsCodeBlocks(t *testing.T) {
	p, err := Render("javascript")
	require.NoError(t, err)
	require.NotEmpty(t, p.Blocks)
	for _, b := range p.Blocks {
		assert.Equal(t, "javascript", b.Language)
		assert.Equal(t, playground.KindJavaScript, b.Kind)
		assert.True(t, b.Runnable())
	}
	assert.True(t, strings.HasPrefix(p.Blocks[0].Code, `const name = "WebLearn";`))

	p, err = Render("css")
	require.NoError(t, err)
	for _, b := range p.Blocks {
		assert.Equal(t, playground.KindCSS, b.Kind, b.Code)
		assert.False(t, b.Runnable())
	}
}

func TestRenderUnknown(t *testing.T) {
	for _, slug := range []string{"python", "../pages", ""} {
		_, err := Render(slug)
		assert.True(t, errors.Is(err, ErrNotFound), slug)
	}
}
