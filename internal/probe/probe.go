package probe

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/surface"
)

// FindingKind names the property a finding violates.
type FindingKind string

const (
	// KindUnsound: a result lies outside the resolved category.
	KindUnsound FindingKind = "unsound"
	// KindLoose: the resolved category allows a property no result shows.
	KindLoose FindingKind = "loose"
	// KindRejection: a rejected cell never produced NaN.
	KindRejection FindingKind = "rejection"
)

// Finding is one violated property of one cell.
type Finding struct {
	Kind     FindingKind
	Cell     ir.Cell
	Operands []float64 // witness, for unsound findings
	Result   float64
	Property ir.Property // flag never exhibited, for loose findings
	Err      error       // catalog rejection reason, for unsound findings
}

func (f Finding) String() string {
	name := surface.FormatCell(f.Cell)
	switch f.Kind {
	case KindUnsound:
		return fmt.Sprintf("%s: unsound: %s%v = %g: %v", name, f.Cell.Operator, f.Operands, f.Result, f.Err)
	case KindLoose:
		return fmt.Sprintf("%s: loose: no result is %s", name, f.Property)
	default:
		return fmt.Sprintf("%s: rejected but no operands produce NaN", name)
	}
}

// Report collects the findings of a probe run.
type Report struct {
	Cells    int
	Findings []Finding
}

// OK reports whether no property was violated.
func (r *Report) OK() bool {
	return len(r.Findings) == 0
}

// Check probes every cell of table.
func Check(table *surface.Table) (*Report, error) {
	cat := table.Catalog()
	r := &Report{Findings: []Finding{}}
	for _, c := range table.All() {
		fs, err := CheckCell(cat, c)
		if err != nil {
			return nil, err
		}
		r.Cells++
		r.Findings = append(r.Findings, fs...)
	}

	slog.Info("probe finished",
		"cells", r.Cells,
		"findings", len(r.Findings),
	)
	return r, nil
}

type sample struct {
	operands []float64
	result   float64
}

// CheckCell evaluates one cell over the sample values its operand
// categories accept and returns every violated property.
func CheckCell(cat *catalog.Catalog, c ir.Cell) ([]Finding, error) {
	lhs, ok := cat.Lookup(c.LHS)
	if !ok {
		return nil, fmt.Errorf("probe: unknown category %q", c.LHS)
	}
	rhs := lhs
	if c.Binary() {
		if rhs, ok = cat.Lookup(c.RHS); !ok {
			return nil, fmt.Errorf("probe: unknown category %q", c.RHS)
		}
	}

	results, err := evalCell(c, lhs, rhs)
	if err != nil {
		return nil, err
	}

	switch c.Outcome.Kind {
	case ir.OutcomeRejected:
		return checkRejection(c, results), nil
	case ir.OutcomeResolved:
		return checkResolved(*c.Outcome.Category, c, results), nil
	}
	return nil, fmt.Errorf("probe: %s: unexpected outcome %s", surface.FormatCell(c), c.Outcome.Kind)
}

func evalCell(c ir.Cell, lhs, rhs ir.Category) ([]sample, error) {
	xs := accepted(lhs)
	ys := []float64{0}
	if c.Binary() {
		ys = accepted(rhs)
	}

	var out []sample
	for _, x := range xs {
		for _, y := range ys {
			rs, err := Eval(c.Operator, x, y)
			if err != nil {
				return nil, err
			}
			operands := []float64{x}
			if c.Binary() {
				operands = append(operands, y)
			}
			for _, r := range rs {
				out = append(out, sample{operands: operands, result: r})
			}
		}
	}
	return out, nil
}

func accepted(cat ir.Category) []float64 {
	var out []float64
	for _, x := range Samples() {
		if cat.Accepts(x) {
			out = append(out, x)
		}
	}
	return out
}

func checkRejection(c ir.Cell, results []sample) []Finding {
	for _, s := range results {
		if math.IsNaN(s.result) {
			return nil
		}
	}
	return []Finding{{Kind: KindRejection, Cell: c}}
}

func checkResolved(res ir.Category, c ir.Cell, results []sample) []Finding {
	var findings []Finding
	var seen ir.Flags
	for _, s := range results {
		if err := catalog.Check(res, s.result); err != nil {
			var inv *catalog.InvalidValueError
			errors.As(err, &inv)
			findings = append(findings, Finding{
				Kind:     KindUnsound,
				Cell:     c,
				Operands: s.operands,
				Result:   s.result,
				Err:      inv.Err,
			})
			continue
		}
		seen = seen.Union(ir.Exhibits(s.result))
	}

	for _, p := range []struct {
		prop      ir.Property
		want, got bool
	}{
		{ir.PropInfinite, res.Flags.Inf, seen.Inf},
		{ir.PropZero, res.Flags.Zero, seen.Zero},
		{ir.PropPositive, res.Flags.Pos, seen.Pos},
		{ir.PropNegative, res.Flags.Neg, seen.Neg},
	} {
		if p.want && !p.got {
			findings = append(findings, Finding{Kind: KindLoose, Cell: c, Property: p.prop})
		}
	}
	return findings
}
