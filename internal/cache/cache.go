package cache

import (
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 128

// Constructor builds the value for a missing key. Returning ok=false means
// the key has no value right now; nothing is stored and the next lookup
// tries again.
type Constructor[V any] func() (value V, ok bool, err error)

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Constructions uint64
	NotFound      uint64
	Failures      uint64
	Evictions     uint64
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithOnEvict registers a callback run when an entry is pushed out by the
// capacity bound. It runs while the LRU holds its internal lock and must not
// call back into the cache.
func WithOnEvict[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = fn
	}
}

// Cache maps keys to lazily constructed values.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries *lru.Cache[K, V]
	onEvict func(K, V)

	hits          atomic.Uint64
	misses        atomic.Uint64
	constructions atomic.Uint64
	notFound      atomic.Uint64
	failures      atomic.Uint64
	evictions     atomic.Uint64
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache[K, V]{}
	for _, opt := range opts {
		opt(c)
	}

	entries, err := lru.NewWithEvict(capacity, c.evicted)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU of capacity %d: %w", capacity, err)
	}
	c.entries = entries
	return c, nil
}

// GetOrCreate returns the value for key, constructing it with ctor on a miss.
//
// Concurrent callers missing on the same key are serialized; exactly one of
// them runs ctor and the rest observe its stored result. A ctor that reports
// not-found or fails leaves the cache untouched.
func (c *Cache[K, V]) GetOrCreate(key K, ctor Constructor[V]) (V, bool, error) {
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}
	c.misses.Add(1)

	v, ok, err := ctor()
	if err != nil {
		c.failures.Add(1)
		var zero V
		return zero, false, err
	}
	if !ok {
		c.notFound.Add(1)
		var zero V
		return zero, false, nil
	}

	c.constructions.Add(1)
	c.entries.Add(key, v)
	return v, true, nil
}

// Peek returns a resident value without constructing or touching recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	return c.entries.Peek(key)
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	return c.entries.Len()
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Constructions: c.constructions.Load(),
		NotFound:      c.notFound.Load(),
		Failures:      c.failures.Load(),
		Evictions:     c.evictions.Load(),
	}
}

func (c *Cache[K, V]) evicted(key K, value V) {
	c.evictions.Add(1)
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}
