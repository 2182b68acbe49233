// Package transformer wires the Jade-to-HTML pipeline: match templates,
// render them, write the markup.
package transformer

import (
	"github.com/jpequegn/jade2html/internal/generator"
	"github.com/jpequegn/jade2html/internal/models"
	"github.com/jpequegn/jade2html/internal/stream"
)

// Jade2HTMLTransformer renders Jade templates to HTML files.
//
// The options it was built with are handed, as-is, to the renderer for
// every file. A transformer holds no other state, so Transform may be called
// any number of times, from any goroutine. Nothing coordinates concurrent
// calls that write to overlapping destinations.
type Jade2HTMLTransformer struct {
	options  models.Options
	renderer generator.Renderer
}

// New creates a transformer that renders with the Jade/Pug generator.
// A nil options mapping is the empty mapping.
func New(options models.Options) *Jade2HTMLTransformer {
	if options == nil {
		options = models.Options{}
	}
	return &Jade2HTMLTransformer{
		options:  options,
		renderer: generator.NewPugGenerator(),
	}
}

// WithRenderer returns a copy of t that renders with r.
func (t *Jade2HTMLTransformer) WithRenderer(r generator.Renderer) *Jade2HTMLTransformer {
	c := *t
	c.renderer = r
	return &c
}

// Transform returns the pipeline that reads the files matching src, renders
// them and writes the results into every dest directory, keeping their
// structure relative to the glob base.
//
// Nothing runs until the returned stream is consumed (see stream.Drain).
// Errors from matching, rendering or writing come out of the stream as they
// were produced.
func (t *Jade2HTMLTransformer) Transform(src, dest []string) stream.Stream {
	return t.Preview(src).Pipe(stream.Dest(dest...))
}

// Preview is Transform without the write step.
func (t *Jade2HTMLTransformer) Preview(src []string) stream.Stream {
	return stream.Src(src...).Pipe(t.render)
}

func (t *Jade2HTMLTransformer) render(f *models.File) (*models.File, error) {
	return t.renderer.Render(t.options, f)
}
