// Package models contains shared data structures used across the application.
package models

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Options is the configuration mapping handed to a renderer.
// Keys are option names (e.g., "pretty", "locals"); values are left untyped
// because only the renderer knows how to interpret them.
type Options map[string]any

// File is a single file flowing through a pipeline.
type File struct {
	// Cwd is the working directory the glob was resolved against
	Cwd string

	// Base is the glob parent the file was matched under (e.g., "templates"
	// for "templates/**/*.jade"). Relative() is computed against it.
	Base string

	// Path is the absolute path of the file
	Path string

	// Contents holds the file body. It is nil for directories.
	Contents []byte

	// Mode is the permission bits of the source file
	Mode fs.FileMode
}

// Relative returns the path of the file relative to its Base.
// This is what gets appended to a destination directory when the file is written.
func (f *File) Relative() string {
	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil {
		return filepath.Base(f.Path)
	}
	return rel
}

// SetExtension replaces the extension of Path.
// ext should include the leading dot; an empty ext strips the extension.
func (f *File) SetExtension(ext string) {
	f.Path = strings.TrimSuffix(f.Path, filepath.Ext(f.Path)) + ext
}

// Clone returns a copy of the file with its own Contents slice.
func (f *File) Clone() *File {
	c := *f
	if f.Contents != nil {
		c.Contents = append([]byte(nil), f.Contents...)
	}
	return &c
}
