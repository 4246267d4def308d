package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists payloads as files under a base directory. An empty
// base resolves refs as given.
type FileStore struct {
	base string
}

// NewFileStore builds a store rooted at base.
func NewFileStore(base string) *FileStore {
	return &FileStore{base: base}
}

func (f *FileStore) path(ref string) string {
	if f.base == "" {
		return ref
	}
	return filepath.Join(f.base, ref)
}

// Load reads the file at ref.
func (f *FileStore) Load(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, PermanentError{Err: err}
		}
		return nil, TransientError{Err: err}
	}
	return data, nil
}

// Save writes data to the file at ref, creating parent directories as
// needed.
func (f *FileStore) Save(ctx context.Context, ref string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := f.path(ref)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return PermanentError{Err: fmt.Errorf("creating %s: %w", dir, err)}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return TransientError{Err: err}
	}
	return nil
}
