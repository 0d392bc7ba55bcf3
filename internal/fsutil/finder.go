// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ListFileNames returns the names of the regular files directly inside
// rootPath, in the order the directory reports them. Subdirectories and
// dotfiles are skipped.
func ListFileNames(rootPath string) ([]string, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.Type().IsRegular() {
			// Follow symlinks; anything that does not resolve to a regular file is ignored.
			info, err := os.Stat(filepath.Join(rootPath, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// SplitFileName splits a file name into its base name and extension around
// the last dot. A name without a dot has an empty extension.
//
//	SplitFileName("sum.hcl")     -> "sum", "hcl"
//	SplitFileName("a.b.groovy")  -> "a.b", "groovy"
//	SplitFileName("README")      -> "README", ""
func SplitFileName(name string) (base, ext string) {
	name = filepath.Base(filepath.ToSlash(name))
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// HasPathSeparator reports whether name contains a forward or backward slash.
func HasPathSeparator(name string) bool {
	return strings.ContainsAny(name, `/\`)
}
