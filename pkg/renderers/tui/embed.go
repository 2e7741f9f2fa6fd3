package tui

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-changewizard/pkg/render/template"
	"github.com/goliatone/go-changewizard/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templateFiles embed.FS

// Template names under templates/.
const (
	templateHeader = "header"
	templateTags   = "tags"
	templateReview = "review"
	templateSecret = "secret"
)

// TemplatesFS exposes the embedded screen templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewTemplateRenderer builds the pongo2 engine over the embedded templates.
func NewTemplateRenderer() (template.TemplateRenderer, error) {
	engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	if err != nil {
		return nil, err
	}
	return engine, nil
}
