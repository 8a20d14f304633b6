package surface

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/resolver"
)

type cellKey struct {
	op       ir.Operator
	lhs, rhs string
}

// Table is a finished decision surface. It is read-only after Build.
type Table struct {
	cat   *catalog.Catalog
	ops   []ir.Operator
	cells map[ir.Operator][]ir.Cell
	index map[cellKey]ir.Cell
}

// Stats summarizes a table.
type Stats struct {
	Operators      int `json:"operators"`
	Cells          int `json:"cells"`
	Resolved       int `json:"resolved"`
	Rejected       int `json:"rejected"`
	CompoundAssign int `json:"compound_assign"`
}

// Build resolves every combination for ops over cat. With no ops, every
// supported operator is built; a repeated operator is built once, at its
// first position. The first defect aborts the pass.
func Build(ctx context.Context, cat *catalog.Catalog, ops ...ir.Operator) (*Table, error) {
	if len(ops) == 0 {
		ops = ir.Operators()
	}
	seen := make(map[ir.Operator]bool, len(ops))
	unique := make([]ir.Operator, 0, len(ops))
	for _, op := range ops {
		if op.Arity() == 0 {
			return nil, fmt.Errorf("surface: unknown operator %q", op)
		}
		if !seen[op] {
			seen[op] = true
			unique = append(unique, op)
		}
	}
	ops = unique

	t := &Table{
		cat:   cat,
		ops:   ops,
		cells: make(map[ir.Operator][]ir.Cell, len(ops)),
		index: make(map[cellKey]ir.Cell),
	}

	slog.Info("surface build starting",
		"operators", len(ops),
		"categories", cat.Len(),
	)

	cats := cat.Categories()
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var cells []ir.Cell
		var err error
		if op.Arity() == 1 {
			cells, err = buildUnary(cat, op, cats)
		} else {
			cells, err = buildBinary(cat, op, cats)
		}
		if err != nil {
			slog.Error("surface build failed",
				"operator", op,
				"error", err,
			)
			return nil, fmt.Errorf("surface: %w", err)
		}

		t.cells[op] = cells
		for _, c := range cells {
			t.index[cellKey{op: op, lhs: c.LHS, rhs: c.RHS}] = c
		}
	}

	st := t.Stats()
	slog.Info("surface build finished",
		"cells", st.Cells,
		"resolved", st.Resolved,
		"rejected", st.Rejected,
	)
	return t, nil
}

func buildUnary(cat *catalog.Catalog, op ir.Operator, cats []ir.Category) ([]ir.Cell, error) {
	cells := make([]ir.Cell, 0, len(cats))
	for _, a := range cats {
		c, err := ResolveCell(cat, op, a, ir.Category{})
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

func buildBinary(cat *catalog.Catalog, op ir.Operator, cats []ir.Category) ([]ir.Cell, error) {
	cells := make([]ir.Cell, 0, len(cats)*len(cats))
	for _, a := range cats {
		for _, b := range cats {
			c, err := ResolveCell(cat, op, a, b)
			if err != nil {
				return nil, err
			}
			cells = append(cells, c)
		}
	}
	return cells, nil
}

// ResolveCell resolves a single combination the way Build does, including
// the compound-assignment mark. rhs is ignored for unary operators.
func ResolveCell(cat *catalog.Catalog, op ir.Operator, lhs, rhs ir.Category) (ir.Cell, error) {
	out, d, err := resolver.ResolveOp(cat, op, lhs, rhs)
	if err != nil {
		return ir.Cell{}, err
	}

	cell := ir.Cell{
		Operator: op,
		LHS:      lhs.Name,
		RHS:      rhs.Name,
		Outcome:  out,
		Derived:  d.Flags,
	}
	if op.Arity() == 1 {
		cell.RHS = ""
	}
	if cell.Binary() && out.Kind == ir.OutcomeResolved {
		cell.CompoundAssign = out.Category.FitsInto(lhs)
	}

	slog.Debug("cell resolved",
		"operator", op,
		"lhs", cell.LHS,
		"rhs", cell.RHS,
		"derived", d,
		"outcome", out.Name(),
	)
	return cell, nil
}

// Catalog returns the catalog the table was built from.
func (t *Table) Catalog() *catalog.Catalog {
	return t.cat
}

// Operators returns the built operators in build order.
func (t *Table) Operators() []ir.Operator {
	return append([]ir.Operator(nil), t.ops...)
}

// Cells returns op's cells in catalog order, or nil if op was not built.
func (t *Table) Cells(op ir.Operator) []ir.Cell {
	cells, ok := t.cells[op]
	if !ok {
		return nil
	}
	return append([]ir.Cell(nil), cells...)
}

// All returns every cell, operator by operator.
func (t *Table) All() []ir.Cell {
	var all []ir.Cell
	for _, op := range t.ops {
		all = append(all, t.cells[op]...)
	}
	return all
}

// Lookup returns the cell for op applied to the named categories.
// rhs is ignored for unary operators.
func (t *Table) Lookup(op ir.Operator, lhs, rhs string) (ir.Cell, bool) {
	if op.Arity() == 1 {
		rhs = ""
	}
	c, ok := t.index[cellKey{op: op, lhs: lhs, rhs: rhs}]
	return c, ok
}

// Stats counts the table's cells by outcome.
func (t *Table) Stats() Stats {
	st := Stats{Operators: len(t.ops)}
	for _, op := range t.ops {
		for _, c := range t.cells[op] {
			st.Cells++
			switch c.Outcome.Kind {
			case ir.OutcomeResolved:
				st.Resolved++
			case ir.OutcomeRejected:
				st.Rejected++
			}
			if c.CompoundAssign {
				st.CompoundAssign++
			}
		}
	}
	return st
}
