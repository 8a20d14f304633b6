package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/surface"
)

// Regenerate with: go test ./internal/harness -run Golden -update

func TestRunWithGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"concrete", "signed_zero", "nan_sources"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			require.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSurfaceGolden_Full(t *testing.T) {
	table, err := surface.Build(context.Background(), catalog.Default())
	require.NoError(t, err)
	AssertSurfaceGolden(t, "surface", table)
}

func TestSurfaceGolden_PerOperator(t *testing.T) {
	for _, op := range ir.Operators() {
		t.Run(string(op), func(t *testing.T) {
			table, err := surface.Build(context.Background(), catalog.Default(), op)
			require.NoError(t, err)
			AssertSurfaceGolden(t, "surface_"+string(op), table)
		})
	}
}
