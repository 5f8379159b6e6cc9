// Package store implements the file-backed entity stores. Each store
// keeps the full collection in memory and rewrites a single JSON file on
// every mutation, so a fresh process reading the same file always
// observes the last successfully persisted state.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "pennyplan/internal/errors"
	"pennyplan/internal/uuid"
)

// Keyed is implemented by entities that carry their own string key.
type Keyed[V any] interface {
	Key() string
	WithKey(key string) V
}

// Store is a thread-safe in-memory keyed collection backed by one JSON
// file. Reads are served from the cache and never touch disk; every
// mutation persists synchronously before returning. Two processes
// sharing the same backing file are unsupported.
type Store[V Keyed[V]] struct {
	path string

	mu    sync.RWMutex
	cache map[string]V
}

// Open loads the collection at path into memory, creating an empty file
// when none exists. A file that cannot be deserialized is a hard error:
// the store refuses to start rather than serve from an unknown state.
func Open[V Keyed[V]](path string) (*Store[V], error) {
	s := &Store[V]{path: path, cache: make(map[string]V)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if err := s.persistLocked(); err != nil {
			return nil, fmt.Errorf("write empty collection %s: %w", path, err)
		}
	case err != nil:
		return nil, fmt.Errorf("read collection %s: %w", path, err)
	default:
		var values []V
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("corrupt collection %s: %w", path, err)
		}
		for _, v := range values {
			s.cache[v.Key()] = v
		}
	}

	return s, nil
}

// Put inserts or replaces v, generating a fresh key when v carries none,
// and persists the collection before returning. If persisting fails the
// cache is rolled back, so memory and disk never diverge after an error.
// Returns the stored value with the generated key populated.
func (s *Store[V]) Put(v V) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := v.Key()
	if key == "" {
		key = uuid.New()
		v = v.WithKey(key)
	}

	prev, existed := s.cache[key]
	s.cache[key] = v
	if err := s.persistLocked(); err != nil {
		if existed {
			s.cache[key] = prev
		} else {
			delete(s.cache, key)
		}
		var zero V
		return zero, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	return v, nil
}

// Get returns the entity under key. It never touches disk.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.cache[key]
	return v, ok
}

// FindAll returns a snapshot copy of all entities. Order is unspecified.
func (s *Store[V]) FindAll() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]V, 0, len(s.cache))
	for _, v := range s.cache {
		out = append(out, v)
	}
	return out
}

// Delete removes the entity under key and persists. Deleting an absent
// key is a no-op, not an error.
func (s *Store[V]) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.cache[key]
	if !ok {
		return nil
	}

	delete(s.cache, key)
	if err := s.persistLocked(); err != nil {
		s.cache[key] = prev
		return apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}
	return nil
}

// ExistsBy reports whether any entity satisfies pred.
func (s *Store[V]) ExistsBy(pred func(V) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.cache {
		if pred(v) {
			return true
		}
	}
	return false
}

// FindFirstBy returns some entity satisfying pred. With multiple matches
// the choice is unspecified.
func (s *Store[V]) FindFirstBy(pred func(V) bool) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.cache {
		if pred(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Len returns the number of cached entities.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.cache)
}

// persistLocked rewrites the whole collection. The write goes through a
// temp file plus rename so a crash mid-write leaves the previous
// generation intact. Caller holds mu.
func (s *Store[V]) persistLocked() error {
	values := make([]V, 0, len(s.cache))
	for _, v := range s.cache {
		values = append(values, v)
	}

	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
