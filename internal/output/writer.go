package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic renders a document into path without ever exposing a partial
// file: content is staged in a temporary file beside the destination and
// moved into place only after a complete write. The destination directory
// is created if missing.
func WriteAtomic(path string, render func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp_"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary output file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cannot set output permissions: %w", err)
	}
	if err := render(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot finish writing %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot move output into place: %w", err)
	}
	return nil
}
