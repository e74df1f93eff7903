package handlers

import (
	"embed"
	"html/template"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"expensePath": domain.ExpensePath,
	}).ParseFS(templateFS, "templates/*.tmpl")
}
