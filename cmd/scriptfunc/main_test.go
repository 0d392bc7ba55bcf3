package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/scriptfunc/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_Call(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	script := "params = [\"name\"]\nresult = \"hello, ${name}\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.hcl"), []byte(script), 0o600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"call", "greet", `"world"`, "--functions-dir", dir})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "\"hello, world\"\n", out.String())
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"--help"})

	require.NoError(t, err, "run() should return a nil error for --help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_NotRecognized(t *testing.T) {
	t.Parallel()

	errOut := &bytes.Buffer{}
	err := run(&bytes.Buffer{}, errOut, []string{"call", "missing", "--functions-dir", t.TempDir()})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, cli.ExitNotRecognized, exitErr.Code)
	require.Contains(t, errOut.String(), "not recognized")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"list", "--log-format", "yaml"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, cli.ExitUsage, exitErr.Code)
	require.Contains(t, exitErr.Message, "invalid log format")
}
