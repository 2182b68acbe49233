package stream

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/natefinch/atomic"

	"github.com/jpequegn/jade2html/internal/models"
)

const defaultFileMode fs.FileMode = 0644

// Dest returns a stage that writes every file into each of dirs, keeping the
// file's path relative to its glob base. Relative dirs are resolved against
// the file's Cwd. Missing directories are created.
//
// Each write goes to a temporary file that is renamed into place, so readers
// never observe a half-written output. The returned file points into the
// last directory written.
func Dest(dirs ...string) Stage {
	return func(f *models.File) (*models.File, error) {
		out := f
		for _, dir := range dirs {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(f.Cwd, dir)
			}
			target := filepath.Join(dir, f.Relative())
			if err := write(target, f); err != nil {
				return nil, err
			}
			log.Debugf("wrote %s", target)

			out = f.Clone()
			out.Base = dir
			out.Path = target
		}
		return out, nil
	}
}

func write(target string, f *models.File) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}
	if err := atomic.WriteFile(target, bytes.NewReader(f.Contents)); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	// The temporary file is created 0600; give the output a regular mode.
	mode := f.Mode
	if mode == 0 {
		mode = defaultFileMode
	}
	if err := os.Chmod(target, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", target, err)
	}
	return nil
}
