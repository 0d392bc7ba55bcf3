package dirstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/fsutil"
)

// Store is a directory-backed artifact.Store.
type Store struct {
	root string
}

var _ artifact.Store = (*Store)(nil)

// New creates a store over root. The directory is not checked until the
// first call, so a missing directory surfaces as ErrStoreUnavailable.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory the store reads from.
func (s *Store) Root() string {
	return s.root
}

// List returns the file names in the directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := fsutil.ListFileNames(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %w", s.root, artifact.ErrStoreUnavailable, err)
	}
	return names, nil
}

// Exists reports whether a regular file called name exists in the directory.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.locate(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, artifact.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Open opens the named file for reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	onDisk, err := s.locate(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.root, onDisk))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, artifact.ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w: %w", name, artifact.ErrStoreUnavailable, err)
	}
	return f, nil
}

// locate maps a requested name to the file name on disk. An exact match is
// tried first; otherwise the directory is scanned for an entry that is equal
// after normalization.
func (s *Store) locate(name string) (string, error) {
	if name == "" || fsutil.HasPathSeparator(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%q: %w", name, artifact.ErrNotFound)
	}

	info, err := os.Stat(filepath.Join(s.root, name))
	switch {
	case err == nil && info.Mode().IsRegular():
		return name, nil
	case err == nil:
		return "", fmt.Errorf("%s is not a regular file: %w", name, artifact.ErrNotFound)
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("checking %s: %w: %w", name, artifact.ErrStoreUnavailable, err)
	}

	names, err := fsutil.ListFileNames(s.root)
	if err != nil {
		return "", fmt.Errorf("listing %s: %w: %w", s.root, artifact.ErrStoreUnavailable, err)
	}
	want := artifact.NormalizeName(name)
	for _, n := range names {
		if artifact.NormalizeName(n) == want {
			return n, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, artifact.ErrNotFound)
}
