// Package templates embeds the HTML views and renders them inside the
// shared layout.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

//go:embed layout.html posts/*.html users/*.html sessions/*.html
var files embed.FS

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"paragraphs": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
}

// New parses every page against layout.html and the shared partials
// (files starting with "_"). Page names are paths without the extension,
// e.g. "posts/index".
func New() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "layout.html", "posts/_*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}

	err = fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path == "layout.html" || strings.HasPrefix(d.Name(), "_") {
			return err
		}

		t, err := layout.Clone()
		if err != nil {
			return err
		}
		if _, err := t.ParseFS(files, path); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		r.pages[strings.TrimSuffix(path, ".html")] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data map[string]interface{}) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
