package harness

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/surface"
)

// Harness holds what a scenario runs against.
type Harness struct {
	catalog *catalog.Catalog
	table   *surface.Table
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Load the catalog (built-in unless the scenario names one)
// 2. Build the decision surface; a defect aborts the run with an error
// 3. Check every case against the surface
// 4. Evaluate assertions
//
// Case and assertion mismatches are reported in Result.Errors, not as an error.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	h, err := setup(ctx, scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Stats = h.table.Stats()

	h.executeCases(scenario.Cases, result)

	actx := &AssertionContext{Ctx: ctx, Table: h.table}
	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

func setup(ctx context.Context, scenario *Scenario) (*Harness, error) {
	cat, err := loadCatalog(scenario.Catalog)
	if err != nil {
		return nil, err
	}

	ops := make([]ir.Operator, 0, len(scenario.Operators))
	for _, name := range scenario.Operators {
		ops = append(ops, ir.Operator(name))
	}

	table, err := surface.Build(ctx, cat, ops...)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return &Harness{catalog: cat, table: table}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return catalog.Load(src, path)
}

// executeCases looks up every case and records mismatches.
func (h *Harness) executeCases(cases []Case, result *Result) {
	for i, c := range cases {
		op := ir.Operator(c.Op)
		var rhs string
		if len(c.Operands) > 1 {
			rhs = c.Operands[1]
		}

		cell, ok := h.table.Lookup(op, c.Operands[0], rhs)
		if !ok {
			result.AddError(fmt.Sprintf("cases[%d]: no cell for %s %v (unknown category or operator not built)", i, op, c.Operands))
			continue
		}
		result.Cells = append(result.Cells, cell)

		if got := cell.Outcome.Name(); got != c.Expect {
			result.AddError(fmt.Sprintf("cases[%d]: %s %v: expected %s, got %s", i, op, c.Operands, c.Expect, got))
		}
		if c.Assign != nil && *c.Assign != cell.CompoundAssign {
			result.AddError(fmt.Sprintf("cases[%d]: %s %v: expected assign=%t, got %t", i, op, c.Operands, *c.Assign, cell.CompoundAssign))
		}
	}
}
