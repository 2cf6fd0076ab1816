package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/rpggio/noteboard/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/app.css
var appCSS []byte

type templates struct {
	all *template.Template
}

// confirmData drives the delete confirmation overlay.
type confirmData struct {
	ID     string
	Prompt string
}

type pageData struct {
	View    app.View
	Board   template.HTML
	Confirm *confirmData
	ByTitle bool
}

func mustParseTemplates() *templates {
	t := template.New("").Funcs(template.FuncMap{
		"pathEscape": url.PathEscape,
		"seconds": func(v app.View) string {
			if v.Notice == nil {
				return "0"
			}
			return fmt.Sprintf("%.1f", v.Notice.ExpiresAt.Sub(v.Notice.ShownAt).Seconds())
		},
	})
	t = template.Must(t.ParseFS(templateFS, "templates/*.html"))
	return &templates{all: t}
}

func (t *templates) renderPage(w http.ResponseWriter, view app.View, confirm *confirmData) {
	board, err := render.HTML(view.Board)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := pageData{
		View:    view,
		Board:   board,
		Confirm: confirm,
		ByTitle: view.SearchMode != note.SearchByTag,
	}

	var buf bytes.Buffer
	if err := t.all.ExecuteTemplate(&buf, "page", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
