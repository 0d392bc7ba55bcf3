package redisstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/specialistvlad/scriptfunc/internal/artifact"
)

// DefaultKey is the hash used when none is configured.
const DefaultKey = "scriptfunc:functions"

// Store provides read access to scripts kept in a Redis hash.
// It is safe for concurrent use.
type Store struct {
	rdb *redis.Client
	key string
}

var _ artifact.Store = (*Store)(nil)

// New connects a store to Redis.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - key: name of the hash holding the scripts (must not be empty)
func New(redisOpts *redis.Options, key string) (*Store, error) {
	if key == "" {
		return nil, fmt.Errorf("hash key cannot be empty")
	}
	return &Store{rdb: redis.NewClient(redisOpts), key: key}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", artifact.ErrStoreUnavailable, err)
	}
	return nil
}

// Key returns the hash the store reads from.
func (s *Store) Key() string {
	return s.key
}

// Put writes a script into the hash. The function factory never calls it;
// it is for seeding and administration.
func (s *Store) Put(ctx context.Context, name string, content []byte) error {
	if err := s.rdb.HSet(ctx, s.key, artifact.NormalizeName(name), content).Err(); err != nil {
		return fmt.Errorf("failed to write %s to Redis: %w", name, err)
	}
	return nil
}

// Remove deletes a script from the hash.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.rdb.HDel(ctx, s.key, artifact.NormalizeName(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from Redis: %w", name, err)
	}
	return nil
}

// List returns the hash field names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.rdb.HKeys(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %w", s.key, artifact.ErrStoreUnavailable, err)
	}
	return names, nil
}

// Exists reports whether the hash has a field called name.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.rdb.HExists(ctx, s.key, artifact.NormalizeName(name)).Result()
	if err != nil {
		return false, fmt.Errorf("checking %s: %w: %w", name, artifact.ErrStoreUnavailable, err)
	}
	return ok, nil
}

// Open returns the script stored under name.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	content, err := s.rdb.HGet(ctx, s.key, artifact.NormalizeName(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", name, artifact.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", name, artifact.ErrStoreUnavailable, err)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}
