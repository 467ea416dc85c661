package site

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/pages"
	"github.com/weblearn/weblearn/internal/playground"
	"github.com/weblearn/weblearn/internal/ui/theme"
)

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Page.Title}} · WebLearn</title>
<style>
:root { --primary: {{.Colors.Primary}}; --text: {{.Colors.Text}}; --bg: {{.Colors.Bg}}; --card: {{.Colors.Card}}; }
body { margin: 0; font-family: system-ui, sans-serif; color: var(--text); background: var(--bg); }
nav { display: flex; gap: 1rem; padding: 1rem 2rem; background: var(--card); }
nav a { color: var(--primary); text-decoration: none; }
nav a.active { font-weight: bold; }
main { max-width: 48rem; margin: 0 auto; padding: 1rem 2rem; }
pre { padding: 1rem; overflow-x: auto; border-radius: 6px; }
</style>
</head>
<body>
<nav>
<a href="/">WebLearn</a>
{{range .Nav}}<a href="/pages/{{.Slug}}"{{if eq .Slug $.Page.Slug}} class="active"{{end}}>{{.Title}}</a>
{{end}}</nav>
<main>
{{.Page.HTML}}
</main>
</body>
</html>
`))

type colors struct {
	Primary, Text, Bg, Card template.CSS
}

type layoutData struct {
	Page   pages.Page
	Nav    []pages.Meta
	Theme  theme.Name
	Colors colors
}

func (s *Server) registerPages(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pages/html", http.StatusFound)
	})
	r.Get("/pages/{slug}", s.handlePage)
	r.Get("/playground/preview", s.handlePreview)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := pages.Render(chi.URLParam(r, "slug"))
	if errors.Is(err, pages.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	nav, err := pages.List()
	if err != nil {
		s.fail(w, err)
		return
	}

	name := theme.Light
	if s.svc.Prefs != nil {
		name, _ = theme.Load(r.Context(), s.svc.Prefs, s.log)
	}
	p, _ := theme.PaletteOf(name)

	data := layoutData{
		Page:  page,
		Nav:   nav,
		Theme: name,
		Colors: colors{
			Primary: hex(p.Primary),
			Text:    hex(p.Text),
			Bg:      hex(p.Bg),
			Card:    hex(p.BgCard),
		},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layoutTmpl.Execute(w, data); err != nil {
		s.log.Warn("render page", zap.String("slug", page.Slug), zap.Error(err))
	}
}

// previewCSP keeps saved code away from the site's origin.
const previewCSP = "sandbox allow-scripts allow-modals"

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if s.svc.Prefs == nil {
		unavailable(w)
		return
	}
	saved, ok, err := playground.LoadCode(r.Context(), s.svc.Prefs, s.log)
	if err != nil {
		s.fail(w, err)
		return
	}
	if !ok {
		http.Error(w, "no saved code", http.StatusNotFound)
		return
	}
	writeDocument(w, playground.Compose(saved.Snippet))
}

func writeDocument(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", previewCSP)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
