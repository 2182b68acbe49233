package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"path/filepath"

	"github.com/Joker/jade"
	"github.com/mitchellh/mapstructure"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/yosssi/gohtml"

	"github.com/jpequegn/jade2html/internal/models"
)

// DefaultExtension is the extension given to rendered files.
const DefaultExtension = ".html"

// Renderer turns a template file into a rendered file.
// opts is the caller's configuration mapping; implementations must not modify it.
type Renderer interface {
	Render(opts models.Options, f *models.File) (*models.File, error)
}

// PugConfig holds the options the Jade/Pug generator understands.
// It is decoded from the opaque option mapping; unknown keys are ignored.
type PugConfig struct {
	// Pretty indents the output markup so it is human-readable.
	// When false, whitespace between tags is collapsed.
	Pretty bool `mapstructure:"pretty"`

	// Locals are the values available to the template (e.g., {{.title}})
	Locals map[string]any `mapstructure:"locals"`

	// Data is merged over Locals; it exists because both names are common
	Data map[string]any `mapstructure:"data"`

	// Extension is the extension of the rendered file (default ".html")
	Extension string `mapstructure:"extension"`
}

// PugGenerator renders Jade/Pug templates to HTML.
type PugGenerator struct {
	minifier *minify.M
}

// NewPugGenerator creates a new Jade/Pug generator.
func NewPugGenerator() *PugGenerator {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	return &PugGenerator{minifier: m}
}

// Render renders f and returns a new file carrying the markup, with the
// template extension replaced by the configured one.
func (g *PugGenerator) Render(opts models.Options, f *models.File) (*models.File, error) {
	config, err := g.buildConfig(opts)
	if err != nil {
		return nil, err
	}

	content, err := g.render(config, f)
	if err != nil {
		return nil, err
	}

	out := f.Clone()
	out.Contents = content
	out.SetExtension(config.Extension)
	return out, nil
}

// buildConfig decodes a PugConfig from the option mapping.
func (g *PugGenerator) buildConfig(opts models.Options) (*PugConfig, error) {
	config := &PugConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create options decoder: %w", err)
	}
	// Decode reads opts; the mapping itself is left as the caller passed it.
	if err := decoder.Decode(map[string]any(opts)); err != nil {
		return nil, fmt.Errorf("invalid pug options: %w", err)
	}

	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	return config, nil
}

// locals merges Data over Locals into a fresh map.
func (c *PugConfig) locals() map[string]any {
	out := make(map[string]any, len(c.Locals)+len(c.Data))
	maps.Copy(out, c.Locals)
	maps.Copy(out, c.Data)
	return out
}

// render compiles the template to an html/template, executes it with the
// configured locals, and formats the result.
func (g *PugGenerator) render(config *PugConfig, f *models.File) ([]byte, error) {
	if len(bytes.TrimSpace(f.Contents)) == 0 {
		return []byte{}, nil
	}

	compiled, err := jade.Parse(f.Path, f.Contents)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", f.Path, err)
	}

	tmpl, err := template.New(filepath.Base(f.Path)).Parse(compiled)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compiled template %s: %w", f.Path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, config.locals()); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", f.Path, err)
	}

	if config.Pretty {
		return append(gohtml.FormatBytes(bytes.TrimSpace(buf.Bytes())), '\n'), nil
	}

	compact, err := g.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compact %s: %w", f.Path, err)
	}
	return compact, nil
}
