// Package web holds the browser UI served by `river serve`.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"svw.info/rivercrossing/internal/domain"
)

//go:embed templates/*.tmpl static/*
var Assets embed.FS

// StaticFS returns a file system for serving /static assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

var funcs = template.FuncMap{
	"moves": func(ms []domain.Move) string {
		parts := make([]string, len(ms))
		for i, m := range ms {
			parts[i] = m.String()
		}
		return strings.Join(parts, " ")
	},
	"speed": func(f float64) string { return fmt.Sprintf("%.1f", f) },
}

// Templates parses and returns the embedded templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(Assets, "templates/*.tmpl"))
}
