package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_resume.yaml
var defaultResume []byte

// ErrNoContent is returned when no resume has been loaded.
var ErrNoContent = errors.New("no content loaded")

// ErrUnsupportedFormat is returned for content files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported content format")

// Repository reads the resume from disk, or from the built-in default when
// no path is configured.
type Repository struct {
	path string
	dir  string
	base string
	mu   sync.Mutex
}

// NewRepository creates a repository for path. An empty path selects the
// built-in resume.
func NewRepository(path string) *Repository {
	r := &Repository{path: path}
	if path != "" {
		r.dir = filepath.Dir(path)
		r.base = filepath.Base(path)
	}
	return r
}

// Path returns the configured file path, empty for the built-in resume.
func (r *Repository) Path() string {
	return r.path
}

// Load reads, decodes and validates the resume.
func (r *Repository) Load() (*Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		return Default()
	}
	payload, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open content file: %w", err)
	}
	return Decode(payload, filepath.Ext(r.path))
}

// Default returns a fresh copy of the built-in resume.
func Default() (*Resume, error) {
	return Decode(defaultResume, ".yaml")
}

// Decode parses payload according to ext (".json", ".yaml" or ".yml") and
// validates the result.
func Decode(payload []byte, ext string) (*Resume, error) {
	var doc Resume
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode content file: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(payload))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode content file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	doc.ApplyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
