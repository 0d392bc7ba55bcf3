package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteArtifacts creates a temporary function directory holding files and
// returns its path. Keys are file names, values are file contents.
func WriteArtifacts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		WriteArtifact(t, dir, name, content)
	}
	return dir
}

// WriteArtifact writes a single file into dir.
func WriteArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// SumScript is an HCL function script adding its two arguments.
const SumScript = `
description = "adds two numbers"
params      = ["a", "b"]
result      = a + b
`
