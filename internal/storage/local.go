package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localStore implements FileStore on a directory under a configured root.
// The root is created at construction if absent. It is safe for concurrent
// use because every Put targets a distinct key.
type localStore struct {
	root string
}

// NewLocal creates a filesystem-backed FileStore rooted at dir.
func NewLocal(dir string) (FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStore{root: dir}, nil
}

// fullPath resolves a key below the root, rejecting anything that would
// escape it. Keys are service-generated, so a traversal here is a bug, not
// user input to tolerate.
func (l *localStore) fullPath(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("key %q escapes storage root", key)
	}
	return filepath.Join(l.root, rel), nil
}

// Put writes the content into place. O_EXCL guarantees a pre-existing file at
// the same key fails loudly instead of being overwritten. A partial file left
// by a failed copy is removed before returning.
func (l *localStore) Put(ctx context.Context, key string, r io.Reader) error {
	path, err := l.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (l *localStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.fullPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact not found: %s", key)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (l *localStore) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.fullPath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *localStore) Delete(ctx context.Context, key string) error {
	path, err := l.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
