// Package dirstore exposes a single directory on disk as an artifact.Store.
//
// Only regular files directly inside the directory are artifacts; nested
// directories and dotfiles are ignored. Enumeration order is whatever the
// operating system reports. Names containing path separators are never
// resolved, so a lookup cannot escape the directory.
package dirstore
