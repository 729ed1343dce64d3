package view

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFiles embed.FS

func templatesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("failed to create view templates sub filesystem: " + err.Error())
	}
	return subFS
}

func parseTemplate(name string) *template.Template {
	content, err := fs.ReadFile(templatesFS(), name)
	if err != nil {
		panic("failed to read view template " + name + ": " + err.Error())
	}
	return template.Must(template.New(name).Parse(string(content)))
}

var (
	tableTmpl = parseTemplate("table.html")
	modalTmpl = parseTemplate("modal.html")
)
