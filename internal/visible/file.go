package visible

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot keeps the set in a JSON file.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot backed by path. The parent directory is created
// on first save.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Path returns the backing file path.
func (f *FileSlot) Path() string { return f.path }

// Load reads the set. A missing file is an empty set.
func (f *FileSlot) Load(ctx context.Context) (Set, error) {
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return Set{}, fmt.Errorf("read %s: %w", f.path, err)
	}
	return Decode(data)
}

// Save writes the set atomically. Each call uses its own temp file, so
// concurrent saves never clobber each other's rename.
func (f *FileSlot) Save(ctx context.Context, s Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("encode visible-set: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir slot dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename slot: %w", err)
	}
	return nil
}

// Close is a no-op.
func (f *FileSlot) Close() error { return nil }
