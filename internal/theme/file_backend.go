package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores key/value pairs in a small JSON object on disk.
// Writes replace the file atomically.
type FileBackend struct {
	path string
	dir  string
	base string
	mu   sync.Mutex
}

// NewFileBackend returns a backend for path. The file need not exist yet.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, errors.New("theme file path is required")
	}
	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	return &FileBackend{path: path, dir: dir, base: filepath.Base(path)}, nil
}

func (f *FileBackend) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.readUnlocked()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileBackend) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.readUnlocked()
	if err != nil {
		// a corrupt file is replaced rather than blocking every write
		values = map[string]string{}
	}
	values[key] = value
	return f.writeUnlocked(values)
}

func (f *FileBackend) readUnlocked() (map[string]string, error) {
	payload, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("decode theme file: %w", err)
	}
	return values, nil
}

func (f *FileBackend) writeUnlocked(values map[string]string) error {
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal theme file: %w", err)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create theme dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(f.dir, f.base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), f.path); err != nil {
		return fmt.Errorf("replace theme file: %w", err)
	}
	return nil
}
