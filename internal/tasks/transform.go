package tasks

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/jpequegn/jade2html/internal/config"
	"github.com/jpequegn/jade2html/internal/generator"
	"github.com/jpequegn/jade2html/internal/models"
	"github.com/jpequegn/jade2html/internal/transformer"
)

// TransformTask returns a task that renders the templates of t into its
// destinations. Each run builds its own transformer from t.Options.
func TransformTask(t config.Task) Func {
	return func(ctx context.Context) error {
		res, err := transformer.New(t.Options).
			Transform(t.Src, t.Dest).
			Tap(func(f *models.File) {
				log.WithField("size", humanize.Bytes(uint64(len(f.Contents)))).Debugf("wrote %s", f.Path)
			}).
			Drain(ctx)
		if err != nil {
			return err
		}
		log.Infof("rendered %d file(s), %s", res.Files, humanize.Bytes(uint64(res.Bytes)))
		return nil
	}
}

// PreviewTask returns a task that prints what TransformTask would write,
// without touching the destinations.
func PreviewTask(t config.Task, w io.Writer) Func {
	return func(ctx context.Context) error {
		tr := transformer.New(t.Options)
		files, err := tr.Preview(t.Src).Collect(ctx)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(w, "no templates match %s\n", strings.Join(t.Src, ", "))
			return nil
		}
		for _, f := range files {
			for _, dest := range t.Dest {
				fmt.Fprintf(w, "\n--- %s ---\n", filepath.Join(dest, f.Relative()))
			}
			fmt.Fprintln(w, strings.TrimRight(string(f.Contents), "\n"))
			fmt.Fprintln(w, "--- end ---")
		}
		return nil
	}
}

// FromConfig builds a registry holding every task of cfg, in name order.
// With dryRun set, tasks print their output to w instead of writing files.
func FromConfig(cfg config.Config, dryRun bool, w io.Writer) *Registry {
	names := make([]string, 0, len(cfg.Tasks))
	for name := range cfg.Tasks {
		names = append(names, name)
	}
	slices.Sort(names)

	r := NewRegistry()
	for _, name := range names {
		t := cfg.Tasks[name]
		run := TransformTask(t)
		if dryRun {
			run = PreviewTask(t, w)
		}
		r.Register(Task{
			Name:        name,
			Description: describe(t),
			Run:         run,
		})
	}
	return r
}

func describe(t config.Task) string {
	ext := generator.DefaultExtension
	if e, ok := t.Options["extension"].(string); ok && e != "" {
		ext = e
	}
	return fmt.Sprintf("%s -> %s (*%s)", strings.Join(t.Src, ", "), strings.Join(t.Dest, ", "), ext)
}
