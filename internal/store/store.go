// Package store persists one JSON document per cache: a flat mapping from
// string key to record. Documents are loaded in full before every read and
// rewritten in full, atomically, on every write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupt reports a persisted document that is not valid JSON. It is
// deliberately distinct from absence: a missing document means an empty
// cache, a corrupt one means lost state the caller must know about.
var ErrCorrupt = errors.New("cache document corrupt")

// Store is a keyed record store backing one cache document.
type Store interface {
	// Get decodes the record under key into out. The second return is
	// false when the key is absent; absence is not an error.
	Get(key string, out interface{}) (bool, error)
	// Put merges the record under key into the document and persists it.
	Put(key string, value interface{}) error
	Exists(key string) (bool, error)
}

type implFile struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a Store backed by a single JSON document at path. The
// file is created on first Put.
func NewFile(path string) Store {
	return &implFile{path: path}
}

func (s *implFile) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return doc, nil
}

// persist writes the document to a temp file in the same directory and
// renames it over the old one, so an interrupted write never leaves a
// half-written document behind
func (s *implFile) persist(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp document: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (s *implFile) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	raw, ok := doc[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%w: entry %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (s *implFile) Put(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load first so unrelated keys survive the rewrite
	doc, err := s.load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode entry %q: %w", key, err)
	}
	doc[key] = raw

	return s.persist(doc)
}

func (s *implFile) Exists(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := doc[key]
	return ok, nil
}

type implMemory struct {
	doc map[string]json.RawMessage
	mu  sync.Mutex
}

// NewMemory creates an in-memory Store for tests.
func NewMemory() Store {
	return &implMemory{doc: map[string]json.RawMessage{}}
}

func (s *implMemory) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.doc[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%w: entry %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (s *implMemory) Put(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode entry %q: %w", key, err)
	}
	s.doc[key] = raw
	return nil
}

func (s *implMemory) Exists(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.doc[key]
	return ok, nil
}
