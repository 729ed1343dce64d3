package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// mustParsePage parses a page template together with the shared chrome
// partials from the embedded filesystem. Templates are compiled in; a parse
// failure is a programming error, so it panics at construction time.
func mustParsePage(name string) *template.Template {
	tmpl, err := template.ParseFS(TemplateFilesFS(), "partials/*.html", name)
	if err != nil {
		panic("Failed to parse template " + name + ": " + err.Error())
	}
	return tmpl
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Err(err).Str("template", name).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
