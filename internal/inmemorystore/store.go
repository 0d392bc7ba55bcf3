// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the artifact.Store interface.
//
// # Characteristics
//
//   - **Ordered:** List returns names in insertion order, which makes the
//     "first base-name match" rule of unqualified lookups reproducible in tests.
//   - **Isolated:** Content is copied on Put and on Open, so callers cannot
//     mutate what the store holds.
//   - **Read-mostly:** Guarded by an RWMutex; reads never block each other.
//
// The factory only ever reads from a store. Put and Remove exist for the
// embedding program (and tests) to change what the factory will see.
package inmemorystore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/specialistvlad/scriptfunc/internal/artifact"
)

// Store is an in-memory implementation of artifact.Store.
type Store struct {
	mu    sync.RWMutex
	order []string
	data  map[string][]byte
}

var _ artifact.Store = (*Store)(nil)

// New creates a new, empty in-memory artifact store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Put stores (or overwrites) an artifact. A new name is appended to the
// enumeration order; an overwrite keeps its position.
func (s *Store) Put(name string, content []byte) {
	name = artifact.NormalizeName(name)
	cp := bytes.Clone(content)
	if cp == nil {
		cp = []byte{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[name]; !exists {
		s.order = append(s.order, name)
	}
	s.data[name] = cp
}

// Remove deletes an artifact. Removing an unknown name is a no-op.
func (s *Store) Remove(name string) {
	name = artifact.NormalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[name]; !exists {
		return
	}
	delete(s.data, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
}

// List returns a snapshot of artifact names in insertion order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order), nil
}

// Exists reports whether name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[artifact.NormalizeName(name)]
	return ok, nil
}

// Open returns a reader over a copy of the artifact content.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.data[artifact.NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, artifact.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(content))), nil
}
