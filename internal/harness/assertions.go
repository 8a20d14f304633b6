package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/probe"
	"github.com/roach88/floatlat/internal/store"
	"github.com/roach88/floatlat/internal/surface"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// AssertionContext provides what assertions evaluate against.
type AssertionContext struct {
	Ctx   context.Context
	Table *surface.Table
}

// EvaluateAssertions runs all assertions and returns their error messages.
// Returns an empty slice if all assertions pass.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	errors := []string{}
	for i, a := range assertions {
		if err := evaluateAssertion(a, actx); err != nil {
			errors = append(errors, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errors
}

func evaluateAssertion(a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertStats:
		return assertStats(actx.Table.Stats(), a)
	case AssertSound:
		return assertSound(actx.Table)
	case AssertNoRejections:
		return assertNoRejections(actx.Table, ir.Operator(a.Op))
	case AssertPersisted:
		return assertPersisted(actx.Ctx, actx.Table)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

// assertStats compares the requested counts.
func assertStats(st surface.Stats, a Assertion) error {
	var want, got []string
	check := func(name string, exp *int, actual int) {
		if exp != nil && *exp != actual {
			want = append(want, fmt.Sprintf("%s=%d", name, *exp))
			got = append(got, fmt.Sprintf("%s=%d", name, actual))
		}
	}
	check("cells", a.Cells, st.Cells)
	check("resolved", a.Resolved, st.Resolved)
	check("rejected", a.Rejected, st.Rejected)
	check("assign", a.Assign, st.CompoundAssign)

	if len(want) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertStats,
		Expected: strings.Join(want, " "),
		Actual:   strings.Join(got, " "),
	}
}

// assertSound runs the probe over the whole table.
func assertSound(table *surface.Table) error {
	report, err := probe.Check(table)
	if err != nil {
		return err
	}
	if report.OK() {
		return nil
	}

	lines := make([]string, len(report.Findings))
	for i, f := range report.Findings {
		lines[i] = f.String()
	}
	return &AssertionError{
		Type:     AssertSound,
		Expected: "no findings",
		Actual:   fmt.Sprintf("%d finding(s):\n    %s", len(lines), strings.Join(lines, "\n    ")),
	}
}

// assertNoRejections checks that every cell of op resolves.
func assertNoRejections(table *surface.Table, op ir.Operator) error {
	cells := table.Cells(op)
	if cells == nil {
		return fmt.Errorf("operator %s was not built", op)
	}

	var rejected []string
	for _, c := range cells {
		if c.Outcome.Kind == ir.OutcomeRejected {
			rejected = append(rejected, surface.FormatCell(c))
		}
	}
	if len(rejected) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertNoRejections,
		Expected: fmt.Sprintf("every %s cell resolved", op),
		Actual:   strings.Join(rejected, "; "),
	}
}

// assertPersisted writes the table to an in-memory store and reads it back.
func assertPersisted(ctx context.Context, table *surface.Table) error {
	st, err := store.Open(":memory:", store.WithIDGenerator(store.NewFixedGenerator("harness-pass")))
	if err != nil {
		return fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	pass, err := st.WritePass(ctx, table)
	if err != nil {
		return err
	}
	cells, err := st.ReadDecisions(ctx, pass.ID)
	if err != nil {
		return err
	}

	want := table.All()
	if len(cells) != len(want) {
		return &AssertionError{
			Type:     AssertPersisted,
			Expected: fmt.Sprintf("%d cells", len(want)),
			Actual:   fmt.Sprintf("%d cells", len(cells)),
		}
	}
	for i := range want {
		if a, b := surface.FormatCell(want[i]), surface.FormatCell(cells[i]); a != b || want[i].Derived != cells[i].Derived {
			return &AssertionError{
				Type:     AssertPersisted,
				Expected: a,
				Actual:   b,
			}
		}
	}
	return nil
}
