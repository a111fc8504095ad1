package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/valyala/fasttemplate"
)

//go:embed templates
var templatesFS embed.FS

var htmlTemplates = template.Must(template.ParseFS(templatesFS, "templates/email/*.html"))

const (
	registrationTemplate = "registration.html"
	registrationSubject  = "Successfully signed up"
)

var registrationText = fasttemplate.New(
	"Hi {{username}}, you have successfully signed up for our service!", "{{", "}}")

// renderHTML executes the named template from templates/email.
func renderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
