// Package generator renders Jade/Pug templates to HTML and scaffolds the
// example project used by the default Jade2HTML task.
package generator

import (
	"embed"
	"text/template"
)

// templates embeds the scaffold files at compile time.
// This means `jade2html init` needs no external files.
//
//go:embed templates/*.tmpl templates/*.jade
var templatesFS embed.FS

// loadTemplate loads and parses a template from the embedded filesystem.
func loadTemplate(name string) (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/"+name)
}

// readTemplate returns an embedded file verbatim.
func readTemplate(name string) ([]byte, error) {
	return templatesFS.ReadFile("templates/" + name)
}
