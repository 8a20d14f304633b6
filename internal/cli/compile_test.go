package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/floatlat/internal/catalog"
)

func TestCompileBuiltin(t *testing.T) {
	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}))
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Compiled 12 categories from built-in")
	assert.Contains(t, out, "StrictlyNegativeFinite")
	assert.Contains(t, out, "CID:  b")

	fp, err := catalog.Default().Fingerprint()
	require.NoError(t, err)
	assert.Contains(t, out, fp.Hash)
}

func TestCompileFileMatchesBuiltin(t *testing.T) {
	path := builtinCatalogFile(t)

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)

	var resp struct {
		Status     string            `json:"status"`
		Provenance Provenance        `json:"provenance"`
		Data       CompilationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, path, resp.Data.Source)
	assert.Equal(t, catalog.Default().Categories(), resp.Data.Categories)

	fp, err := catalog.Default().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, resp.Data.Fingerprint)
	assert.Equal(t, Provenance{Catalog: fp.Hash}, resp.Provenance)
}

func TestCompileReversedCatalogHasDifferentFingerprint(t *testing.T) {
	path := filepath.Join("..", "harness", "testdata", "catalogs", "reversed.cue")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)

	var resp struct {
		Data CompilationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Categories, 12)
	assert.Equal(t, "StrictlyNegativeFinite", resp.Data.Categories[0].Name)

	fp, err := catalog.Default().Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp.Hash, resp.Data.Fingerprint.Hash)
}

func TestCompileWithOutputFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "catalog.json")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), "-o", outputFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote canonical catalog to")

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	// Canonical JSON: sorted keys, no whitespace
	assert.True(t, strings.HasPrefix(string(data), `{"categories":[{"flags":{"inf":true,"neg":true,"pos":true,"zero":true},"name":"NonNaN"}`))
	assert.NotContains(t, string(data), " ")

	var doc struct {
		Categories []json.RawMessage `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Categories, 12)
}

func TestCompileOutputFileUnwritable(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "missing", "catalog.json")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), "-o", outputFile)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E007")
}

func TestCompileInvalidCatalog(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), "bad.cue", brokenCatalogSource())

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E204", resp.Error.Code)
}

func TestCompileNotFound(t *testing.T) {
	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), "/nonexistent/catalog.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestCompileTooManyArgs(t *testing.T) {
	_, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), "a.cue", "b.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg")
}
