package transformer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/otiai10/copy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpequegn/jade2html/internal/models"
)

// recordingRenderer stands in for the template compiler. It records the
// options it was called with and writes them into the output.
type recordingRenderer struct {
	calls []models.Options
}

func (r *recordingRenderer) Render(opts models.Options, f *models.File) (*models.File, error) {
	r.calls = append(r.calls, opts)
	out := f.Clone()
	out.Contents = []byte(fmt.Sprintf("pretty=%v", opts["pretty"]))
	out.SetExtension(".html")
	return out, nil
}

// setupProject copies the fixture templates into a temp dir and makes it
// the working directory.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, copy.Copy("testdata", dir))
	t.Chdir(dir)
	return dir
}

// listFiles returns every file under dir, relative and slash-separated.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	slices.Sort(files)
	return files
}

func TestNew_NilOptions(t *testing.T) {
	tr := New(nil)
	assert.NotNil(t, tr.options)
	assert.Empty(t, tr.options)
}

func TestTransform_PassesOptionsUnmodified(t *testing.T) {
	setupProject(t)

	opts := models.Options{"pretty": true, "locals": map[string]any{"title": "x"}}
	renderer := &recordingRenderer{}
	tr := New(opts).WithRenderer(renderer)

	res, err := tr.Transform([]string{"templates/**/*.jade"}, []string{"dist"}).Drain(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, res.Files)

	require.Len(t, renderer.calls, 3)
	for _, got := range renderer.calls {
		// Same mapping, not a copy
		assert.Equal(t, reflect.ValueOf(opts).Pointer(), reflect.ValueOf(got).Pointer())
		assert.Equal(t, models.Options{"pretty": true, "locals": map[string]any{"title": "x"}}, got)
	}
}

func TestTransform_OneOutputPerTemplate(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		want []string
	}{
		{
			name: "flat glob",
			src:  []string{"templates/*.jade"},
			want: []string{"about.html", "index.html"},
		},
		{
			name: "recursive glob keeps structure",
			src:  []string{"templates/**/*.jade"},
			want: []string{"about.html", "blog/post.html", "index.html"},
		},
		{
			name: "exclusion",
			src:  []string{"templates/**/*.jade", "!templates/about.jade"},
			want: []string{"blog/post.html", "index.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupProject(t)

			res, err := New(models.Options{"pretty": true}).Transform(tt.src, []string{"dist"}).Drain(context.Background())
			require.NoError(t, err)

			assert.Equal(t, len(tt.want), res.Files)
			assert.Equal(t, tt.want, listFiles(t, filepath.Join(dir, "dist")))
		})
	}
}

func TestTransform_NoMatchesWritesNothing(t *testing.T) {
	dir := setupProject(t)

	res, err := New(nil).Transform([]string{"missing/*.jade"}, []string{"dist"}).Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Files)
	assert.NoDirExists(t, filepath.Join(dir, "dist"))
}

func TestTransform_IsLazy(t *testing.T) {
	dir := setupProject(t)

	s := New(nil).Transform([]string{"templates/*.jade"}, []string{"dist"})
	assert.NoDirExists(t, filepath.Join(dir, "dist"))

	_, err := s.Drain(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "dist", "index.html"))
}

func TestTransform_CallsAreIndependent(t *testing.T) {
	dir := setupProject(t)
	renderer := &recordingRenderer{}

	_, err := New(models.Options{"pretty": true}).WithRenderer(renderer).
		Transform([]string{"templates/index.jade"}, []string{"out/a"}).Drain(context.Background())
	require.NoError(t, err)

	_, err = New(models.Options{"pretty": false}).WithRenderer(renderer).
		Transform([]string{"templates/index.jade"}, []string{"out/b"}).Drain(context.Background())
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dir, "out", "a", "index.html"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "out", "b", "index.html"))
	require.NoError(t, err)

	assert.Equal(t, "pretty=true", string(a))
	assert.Equal(t, "pretty=false", string(b))
}

func TestTransform_SameTransformerTwice(t *testing.T) {
	dir := setupProject(t)
	tr := New(models.Options{"pretty": true})

	for _, dest := range []string{"one", "two"} {
		_, err := tr.Transform([]string{"templates/*.jade"}, []string{dest}).Drain(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, listFiles(t, filepath.Join(dir, "one")), listFiles(t, filepath.Join(dir, "two")))
}

func TestTransform_PrettyIndex(t *testing.T) {
	dir := setupProject(t)

	_, err := New(models.Options{"pretty": true}).
		Transform([]string{"templates/*.jade"}, []string{"dist"}).
		Drain(context.Background())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "dist", "index.html"))
	require.NoError(t, err)
	out := string(content)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Welcome")
	assert.Contains(t, out, "This is the index page.")
	assert.Contains(t, out, "\n  <head>")
	assert.Contains(t, out, "\n  <body>")
	assert.Greater(t, strings.Count(out, "\n"), 5)
}

func TestTransform_MultipleDestinations(t *testing.T) {
	dir := setupProject(t)

	_, err := New(nil).Transform([]string{"templates/index.jade"}, []string{"dist", "public"}).Drain(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "dist", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "public", "index.html"))
}

func TestTransform_ErrorsPassThrough(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocked"), nil, 0644))

	_, err := New(nil).Transform([]string{"templates/*.jade"}, []string{"blocked/dist"}).Drain(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
}

func TestPreview_WritesNothing(t *testing.T) {
	dir := setupProject(t)

	files, err := New(models.Options{"pretty": true}).Preview([]string{"templates/*.jade"}).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "about.html", files[0].Relative())
	assert.Contains(t, string(files[1].Contents), "Welcome")

	assert.Equal(t, []string{"templates/README.txt", "templates/about.jade", "templates/blog/post.jade", "templates/index.jade"}, listFiles(t, dir))
}
