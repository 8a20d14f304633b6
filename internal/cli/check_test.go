package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBuiltinSurface(t *testing.T) {
	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 1440 cells probed, no findings")
}

func TestCheckSubsetJSON(t *testing.T) {
	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "json"}), "--op", "min", "--op", "max")
	require.NoError(t, err)

	var resp struct {
		Status     string      `json:"status"`
		Provenance Provenance  `json:"provenance"`
		Data       CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 288, resp.Data.Cells)
	assert.Empty(t, resp.Data.Findings)
	assert.NotEmpty(t, resp.Provenance.Catalog)
	assert.NotEmpty(t, resp.Provenance.Surface)
}

func TestCheckReversedCatalog(t *testing.T) {
	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}),
		"--catalog", "../harness/testdata/catalogs/reversed.cue", "--op", "sub")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 144 cells probed, no findings")
}

func TestCheckInvalidCatalog(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), "bad.cue", brokenCatalogSource())

	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}), "--catalog", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E204]")
}
