package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/floatlat/internal/catalog"
)

// writeCatalog writes src to dir/name and returns the path.
func writeCatalog(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

// builtinCatalogFile writes the embedded catalog to a temp file.
func builtinCatalogFile(t *testing.T) string {
	t.Helper()
	return writeCatalog(t, t.TempDir(), "catalog.cue", string(catalog.Source()))
}

// brokenCatalogSource is the built-in catalog with one entry's name
// replaced by a duplicate.
func brokenCatalogSource() string {
	return strings.Replace(string(catalog.Source()), `"NegativeFinite"`, `"PositiveFinite"`, 1)
}

// execute runs cmd with args and returns its stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
