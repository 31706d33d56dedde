package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

// page names, each rendered inside templates/base.html
const (
	pageIndex  = "index"
	pageQuiz   = "quiz"
	pageResult = "result"
	pageDecks  = "decks"
	pageDeck   = "deck"
)

func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{pageIndex, pageQuiz, pageResult, pageDecks, pageDeck}
	templates := make(map[string]*template.Template, len(pages))

	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// render executes a page into a buffer first so a template failure can still
// produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	tmpl, ok := h.templates[name]
	if !ok {
		h.serverError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		h.serverError(w, r, fmt.Errorf("failed to render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
