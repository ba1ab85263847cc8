package email

import (
	"embed"
	"html/template"
)

// Template names an embedded email template (templates/<name>.html).
type Template string

const (
	TemplateConfirmationCode Template = "confirmation_code"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (t Template) file() string {
	return string(t) + ".html"
}
