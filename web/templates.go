// Package web embeds the HTML templates rendered by the admin pages and error responses.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"time"
)

//go:embed templates
var embedded embed.FS

var patterns = []string{"layout/*.html", "admin/*.html", "error/*.html"}

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
}

// Parse returns the template set. A non-empty dir replaces the embedded templates with the files
// under dir, laid out the same way.
func Parse(dir string) (*template.Template, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	t, err := template.New("").Funcs(Funcs).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	return t, nil
}
