package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

var boardTemplate = template.Must(
	template.New("").Funcs(template.FuncMap{
		"pathEscape": url.PathEscape,
	}).ParseFS(templateFS, "templates/*.html"),
)

// HTML emits the board as the inner markup of the notes container. Note text
// only ever reaches the output through html/template's contextual escaping.
func HTML(b Board) (template.HTML, error) {
	var buf bytes.Buffer
	if err := boardTemplate.ExecuteTemplate(&buf, "board", b); err != nil {
		return "", fmt.Errorf("rendering board: %w", err)
	}
	return template.HTML(buf.String()), nil
}
