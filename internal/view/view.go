package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed templates
var templatesFS embed.FS

// Renderer renders named page templates against the shared base layout.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template against the base layout.
func New() (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}

	pages, err := fs.Glob(sub, "*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		if page == "base.html" {
			continue
		}
		ts, err := template.ParseFS(sub, "base.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = ts
	}

	return &Renderer{templates: templates}, nil
}

// Render writes the named page with the given status code and data. Nil
// data is rendered as an empty map so templates can probe optional keys.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	if data == nil {
		data = map[string]any{}
	}
	ts, ok := r.templates[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := ts.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("render template", "page", page, "error", err)
	}
}
