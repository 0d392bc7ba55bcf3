package artifact

import "errors"

var (
	// ErrNotFound is returned by Store.Open when the named artifact does not
	// exist in the store.
	ErrNotFound = errors.New("artifact not found")

	// ErrStoreUnavailable wraps I/O failures at the store boundary such as a
	// directory that cannot be read or a backend that cannot be reached.
	ErrStoreUnavailable = errors.New("artifact store unavailable")
)
