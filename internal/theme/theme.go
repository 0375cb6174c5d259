package theme

import (
	"sync"

	"github.com/bassista/go_folio/internal/logger"
)

// Theme is the persisted colour scheme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// StorageKey is the key the preference is stored under in every backend.
	StorageKey = "portfolio-theme"
)

// Parse maps a stored value to a Theme. Only the exact string "light"
// yields Light; anything else, including the empty string, is Dark.
func Parse(s string) Theme {
	if s == string(Light) {
		return Light
	}
	return Dark
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) String() string {
	return string(t)
}

// Backend is a string key/value store. ok is false when key is absent.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Store holds the current theme and persists every change through its
// backend. It is safe for concurrent use; writes are last-write-wins.
type Store struct {
	backend Backend

	mu      sync.Mutex
	current Theme
	subs    map[int]func(Theme)
	nextID  int
}

// NewStore reads the persisted value once. A backend error is logged and
// treated as an absent value.
func NewStore(backend Backend) *Store {
	s := &Store{backend: backend, current: Dark, subs: make(map[int]func(Theme))}
	value, ok, err := backend.Get(StorageKey)
	if err != nil {
		logger.WithComponent("theme").WithError(err).Warn("Cannot read theme preference, using dark")
		return s
	}
	if ok {
		s.current = Parse(value)
	}
	return s
}

// Read returns the current theme.
func (s *Store) Read() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Write sets and persists t. The in-memory value changes even when the
// backend write fails; the error is returned to the caller.
func (s *Store) Write(t Theme) error {
	t = Parse(string(t))
	s.mu.Lock()
	s.current = t
	err := s.backend.Set(StorageKey, string(t))
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
	return err
}

// Toggle flips the theme, persists it and notifies subscribers before
// returning the new value.
func (s *Store) Toggle() (Theme, error) {
	s.mu.Lock()
	next := s.current.Opposite()
	s.current = next
	err := s.backend.Set(StorageKey, string(next))
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next, err
}

// Subscribe registers fn for every change. The returned func removes it.
func (s *Store) Subscribe(fn func(Theme)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) subscribersLocked() []func(Theme) {
	out := make([]func(Theme), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
