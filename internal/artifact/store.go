package artifact

import (
	"context"
	"io"
)

// Store is a read-only, enumerable source of named artifacts. Implementations
// must be safe for concurrent use.
type Store interface {
	// List returns every artifact file name in the store's natural
	// enumeration order. The order is not required to be stable across calls.
	List(ctx context.Context) ([]string, error)
	// Exists reports whether an artifact with exactly this file name exists.
	Exists(ctx context.Context, name string) (bool, error)
	// Open returns the artifact content. It returns ErrNotFound when absent.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
