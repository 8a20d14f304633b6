package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/floatlat/internal/surface"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// RunWithGolden executes a scenario and compares its case cells, one
// surface text line each, against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares a result's case cells against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	newGoldie(t).Assert(t, name, result.Text())
}

// AssertSurfaceGolden compares a table's full text rendering against
// testdata/golden/{name}.golden.
func AssertSurfaceGolden(t *testing.T, name string, table *surface.Table) {
	t.Helper()

	var buf bytes.Buffer
	if err := table.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	newGoldie(t).Assert(t, name, buf.Bytes())
}
