package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFilePath returns the default location of the state file:
// $XDG_CONFIG_HOME/hireflow/state.json (or the platform equivalent).
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hireflow", "state.json")
}

// File is a Store persisted as a single JSON object on disk.
// Every write rewrites the file through a temporary file and rename,
// so a crash never leaves a half-written document behind.
type File struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// NewFile creates a file-backed store. The file and its parent directory
// are created lazily on the first write.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrUnsupportedURL)
	}
	return &File{path: path}, nil
}

// Path returns the location of the state file.
func (f *File) Path() string {
	return f.path
}

// Get retrieves a value by key.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrClosed
	}

	items, err := f.load()
	if err != nil {
		return "", err
	}

	v, ok := items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores a value and flushes the file.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	items, err := f.load()
	if err != nil && !errors.Is(err, ErrCorrupted) {
		return err
	}
	if items == nil {
		items = make(map[string]string)
	}

	items[key] = value
	return f.save(items)
}

// Delete removes a key and flushes the file.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	items, err := f.load()
	if err != nil {
		if errors.Is(err, ErrCorrupted) {
			// A corrupted document cannot hold the key; start over.
			return f.save(map[string]string{})
		}
		return err
	}

	if _, ok := items[key]; !ok {
		return nil
	}

	delete(items, key)
	return f.save(items)
}

// Close marks the store as closed.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return nil
}

// load reads the state file. A missing file is an empty store.
// Caller must hold the mutex.
func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("kvstore: read %s: %w", f.path, err)
	}

	if len(data) == 0 {
		return map[string]string{}, nil
	}

	items := make(map[string]string)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Join(ErrCorrupted, err)
	}
	return items, nil
}

// save writes the state file atomically.
// Caller must hold the mutex.
func (f *File) save(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("kvstore: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("kvstore: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: write temp file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: replace %s: %w", f.path, err)
	}
	return nil
}

var _ Store = (*File)(nil)
