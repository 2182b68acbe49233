package stream

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/jpequegn/jade2html/internal/models"
)

// Src returns a stream of the files matching patterns, resolved against the
// current working directory.
//
// Patterns use doublestar syntax ("**" crosses directories). A pattern that
// starts with "!" removes matching files from the result. Files are emitted
// once each, in pattern order and lexical order within a pattern. Patterns
// that match nothing contribute nothing; they are not an error.
func Src(patterns ...string) Stream {
	cwd, err := os.Getwd()
	if err != nil {
		return Fail(fmt.Errorf("failed to resolve working directory: %w", err))
	}
	return SrcFrom(cwd, patterns...)
}

// SrcFrom is Src with relative patterns resolved against cwd.
func SrcFrom(cwd string, patterns ...string) Stream {
	return func(yield func(*models.File, error) bool) {
		var include, exclude []string
		for _, p := range patterns {
			if neg, ok := strings.CutPrefix(p, "!"); ok {
				exclude = append(exclude, absPattern(cwd, neg))
				continue
			}
			include = append(include, absPattern(cwd, p))
		}

		seen := make(map[string]bool)
		for _, pattern := range include {
			matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				yield(nil, fmt.Errorf("invalid glob %q: %w", pattern, err))
				return
			}
			slices.Sort(matches)
			log.Debugf("%s: %d match(es)", pattern, len(matches))

			base := globBase(pattern)
			for _, match := range matches {
				if seen[match] {
					continue
				}
				seen[match] = true

				skip, err := excluded(exclude, match)
				if err != nil {
					yield(nil, err)
					return
				}
				if skip {
					continue
				}

				f, err := readFile(cwd, base, match)
				if !yield(f, err) || err != nil {
					return
				}
			}
		}
	}
}

// absPattern anchors a relative pattern at cwd.
func absPattern(cwd, pattern string) string {
	if filepath.IsAbs(pattern) {
		return filepath.Clean(pattern)
	}
	return filepath.Join(cwd, pattern)
}

// globBase returns the directory part of pattern that precedes the first
// wildcard. For a pattern without wildcards it is the parent directory.
func globBase(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

func excluded(exclude []string, path string) (bool, error) {
	for _, pattern := range exclude {
		ok, err := doublestar.PathMatch(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func readFile(cwd, base, path string) (*models.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &models.File{
		Cwd:      cwd,
		Base:     base,
		Path:     path,
		Contents: contents,
		Mode:     info.Mode().Perm(),
	}, nil
}
