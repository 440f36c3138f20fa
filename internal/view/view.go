// package view renders the HTML pages and serves the static assets
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Names of the pages that can be rendered
const (
	Index = "index"
	Todos = "todos"
	About = "about"
)

const defaultTimeLayout = "2006-01-02 15:04"

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Renderer executes the embedded page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

// New parses every page once. The about page body is converted from
// Markdown at this point.
func New() (*Renderer, error) {
	about, err := renderMarkdown("templates/about.md")
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		pages: make(map[string]*template.Template),
		now:   time.Now,
	}

	funcs := template.FuncMap{
		"now": func(layout ...string) string {
			if len(layout) > 0 {
				return r.now().Format(layout[0])
			}
			return r.now().Format(defaultTimeLayout)
		},
		"formatTime": func(t *time.Time, layout string) string {
			if t == nil {
				return ""
			}
			return t.Format(layout)
		},
		"about": func() template.HTML { return about },
	}

	for _, name := range []string{Index, Todos, About} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFiles,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

// Render writes the page called name with the given status. The page is
// executed into a buffer first so a failing template never leaves a half
// written response behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets; mount it under /static/
func Static() http.Handler {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // the directory is embedded, this cannot fail
	}
	return http.StripPrefix("/static/", http.FileServerFS(assets))
}

func renderMarkdown(path string) (template.HTML, error) {
	source, err := templateFiles.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("convert %s: %w", path, err)
	}

	return template.HTML(buf.String()), nil
}
