// Package pages renders the embedded lesson pages from markdown.
package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"path"
	"sync"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/weblearn/weblearn/internal/playground"
)

//go:embed content/*.md
var contentFS embed.FS

// ErrNotFound is returned for slugs without a page.
var ErrNotFound = errors.New("page not found")

// Slugs in navigation order.
var order = []string{"html", "css", "javascript", "practice", "quiz", "deploy"}

// Meta identifies a page.
type Meta struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// CodeBlock is a fenced code block from a page.
type CodeBlock struct {
	Language string
	Code     string
	Kind     playground.Kind
}

// Runnable reports whether the block gets a live preview.
func (c CodeBlock) Runnable() bool {
	return playground.IsExecutable(c.Code)
}

// Page is a rendered lesson.
type Page struct {
	Meta
	HTML   template.HTML
	Blocks []CodeBlock
}

var (
	mdOnce sync.Once
	md     goldmark.Markdown
)

func markdown() goldmark.Markdown {
	mdOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithAttribute(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		)
	})
	return md
}

// List returns every page in navigation order.
func List() ([]Meta, error) {
	out := make([]Meta, 0, len(order))
	for _, slug := range order {
		p, err := Render(slug)
		if err != nil {
			return nil, err
		}
		out = append(out, p.Meta)
	}
	return out, nil
}

// Render converts the page called slug to HTML.
func Render(slug string) (Page, error) {
	src, err := contentFS.ReadFile(path.Join("content", slug+".md"))
	if err != nil {
		return Page{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}

	m := markdown()
	doc := m.Parser().Parse(text.NewReader(src))

	p := Page{Meta: Meta{Slug: slug, Title: slug}}
	titled := false
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level == 1 && !titled {
				p.Title = nodeText(n, src)
				titled = true
			}
		case *ast.FencedCodeBlock:
			code := blockText(n, src)
			p.Blocks = append(p.Blocks, CodeBlock{
				Language: string(n.Language(src)),
				Code:     code,
				Kind:     playground.Classify(code),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Page{}, fmt.Errorf("walk %s: %w", slug, err)
	}

	var buf bytes.Buffer
	if err := m.Renderer().Render(&buf, src, doc); err != nil {
		return Page{}, fmt.Errorf("render %s: %w", slug, err)
	}
	p.HTML = template.HTML(buf.String())
	return p, nil
}

func nodeText(n ast.Node, src []byte) string {
	var b bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			continue
		}
		b.WriteString(nodeText(c, src))
	}
	return b.String()
}

func blockText(n ast.Node, src []byte) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
