package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFile_Relative(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{
			name: "file directly under base",
			base: "/src/templates",
			path: "/src/templates/index.jade",
			want: "index.jade",
		},
		{
			name: "nested file",
			base: "/src/templates",
			path: "/src/templates/blog/post.jade",
			want: filepath.Join("blog", "post.jade"),
		},
		{
			name: "no base falls back to file name",
			base: "",
			path: "/src/templates/index.jade",
			want: "index.jade",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Base: tt.base, Path: tt.path}
			assert.Equal(t, tt.want, f.Relative())
		})
	}
}

func TestFile_SetExtension(t *testing.T) {
	f := &File{Path: "/src/templates/index.jade"}
	f.SetExtension(".html")
	assert.Equal(t, "/src/templates/index.html", f.Path)
	assert.Equal(t, ".html", filepath.Ext(f.Path))

	f.SetExtension("")
	assert.Equal(t, "/src/templates/index", f.Path)
}

func TestFile_Clone(t *testing.T) {
	f := &File{Path: "/a.jade", Contents: []byte("p hi"), Mode: 0644}
	c := f.Clone()
	c.Contents[0] = 'h'
	c.Path = "/b.jade"

	assert.Equal(t, "p hi", string(f.Contents))
	assert.Equal(t, "/a.jade", f.Path)
	assert.Equal(t, f.Mode, c.Mode)
}
