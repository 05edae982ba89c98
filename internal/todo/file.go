package todo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

const defaultFileMode os.FileMode = 0644

// SaveOptions controls how task files are written.
type SaveOptions struct {
	// Fsync flushes the temporary file to stable storage before it is
	// renamed over the task file.
	Fsync bool
}

// Load reads a task file, creating it empty if it does not exist.
// Malformed lines are returned alongside the valid tasks.
func Load(path string) ([]Task, []*LineError, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, defaultFileMode)
	if err != nil {
		return nil, nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Save replaces the task file at path with tasks.
func Save(path string, tasks []Task, opts SaveOptions) (err error) {
	var buf bytes.Buffer
	if err := Encode(&buf, tasks); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if opts.Fsync {
		if err = tmp.Sync(); err != nil {
			return fmt.Errorf("sync temp file: %w", err)
		}
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
