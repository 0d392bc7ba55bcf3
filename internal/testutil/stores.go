package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/scriptfunc/internal/artifact"
)

// CountingStore wraps a store and counts calls per operation.
type CountingStore struct {
	artifact.Store
	ListCalls   atomic.Int64
	ExistsCalls atomic.Int64
	OpenCalls   atomic.Int64
}

// NewCountingStore wraps inner.
func NewCountingStore(inner artifact.Store) *CountingStore {
	return &CountingStore{Store: inner}
}

// List implements artifact.Store.
func (s *CountingStore) List(ctx context.Context) ([]string, error) {
	s.ListCalls.Add(1)
	return s.Store.List(ctx)
}

// Exists implements artifact.Store.
func (s *CountingStore) Exists(ctx context.Context, name string) (bool, error) {
	s.ExistsCalls.Add(1)
	return s.Store.Exists(ctx, name)
}

// Open implements artifact.Store.
func (s *CountingStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.OpenCalls.Add(1)
	return s.Store.Open(ctx, name)
}

// FlakyStore wraps a store and fails selected operations while Down is set.
type FlakyStore struct {
	Inner artifact.Store

	mu   sync.Mutex
	down bool
}

// SetDown switches the simulated outage on or off.
func (s *FlakyStore) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

func (s *FlakyStore) err(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return fmt.Errorf("%s: %w: simulated outage", op, artifact.ErrStoreUnavailable)
	}
	return nil
}

// List implements artifact.Store.
func (s *FlakyStore) List(ctx context.Context) ([]string, error) {
	if err := s.err("list"); err != nil {
		return nil, err
	}
	return s.Inner.List(ctx)
}

// Exists implements artifact.Store.
func (s *FlakyStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := s.err("exists"); err != nil {
		return false, err
	}
	return s.Inner.Exists(ctx, name)
}

// Open implements artifact.Store.
func (s *FlakyStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := s.err("open"); err != nil {
		return nil, err
	}
	return s.Inner.Open(ctx, name)
}
