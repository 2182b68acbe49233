// Package stream provides lazy file pipelines: match files with globs,
// transform them stage by stage, and write them to destination directories.
//
// A Stream does nothing until it is consumed. Building a pipeline only
// composes functions; files are read, transformed and written one at a time
// as the consumer pulls them.
package stream

import (
	"context"
	"iter"

	"github.com/jpequegn/jade2html/internal/models"
)

// Stream is a lazy sequence of files.
// A non-nil error ends the sequence; no files follow it.
type Stream iter.Seq2[*models.File, error]

// Stage transforms one file into another.
// Returning a nil file with a nil error drops the file from the stream.
type Stage func(*models.File) (*models.File, error)

// Result summarizes a consumed stream.
type Result struct {
	// Files is the number of files that reached the end of the stream
	Files int

	// Bytes is the total size of their contents
	Bytes int64
}

// Fail returns a stream that yields err and nothing else.
func Fail(err error) Stream {
	return func(yield func(*models.File, error) bool) {
		yield(nil, err)
	}
}

// Pipe returns a stream that applies stage to every file of s.
// The first error, from s or from stage, ends the returned stream.
func (s Stream) Pipe(stage Stage) Stream {
	return func(yield func(*models.File, error) bool) {
		for f, err := range s {
			if err != nil {
				yield(nil, err)
				return
			}
			out, err := stage(f)
			if err != nil {
				yield(nil, err)
				return
			}
			if out == nil {
				continue
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

// Tap returns a stream that calls fn for every file and passes it on unchanged.
func (s Stream) Tap(fn func(*models.File)) Stream {
	return s.Pipe(func(f *models.File) (*models.File, error) {
		fn(f)
		return f, nil
	})
}

// Drain consumes the stream and reports what went through it.
// It stops at the first error or once ctx is done.
func (s Stream) Drain(ctx context.Context) (Result, error) {
	var res Result
	if err := ctx.Err(); err != nil {
		return res, err
	}
	for f, err := range s {
		if err != nil {
			return res, err
		}
		res.Files++
		res.Bytes += int64(len(f.Contents))
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Collect consumes the stream and returns its files.
// On error the files gathered so far are returned with it.
func (s Stream) Collect(ctx context.Context) ([]*models.File, error) {
	var files []*models.File
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for f, err := range s {
		if err != nil {
			return files, err
		}
		files = append(files, f)
		if err := ctx.Err(); err != nil {
			return files, err
		}
	}
	return files, nil
}
