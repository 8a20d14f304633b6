package surface

import (
	"bufio"
	"fmt"
	"io"

	"github.com/roach88/floatlat/internal/ir"
)

// WriteText renders one line per cell:
//
//	op lhs [rhs] -> Category|rejected [(assign)]
//
// The format is stable and used for golden files.
func (t *Table) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, op := range t.ops {
		for _, c := range t.cells[op] {
			if _, err := fmt.Fprintln(bw, FormatCell(c)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// FormatCell renders a single cell in the WriteText line format.
func FormatCell(c ir.Cell) string {
	s := string(c.Operator) + " " + c.LHS
	if c.Binary() {
		s += " " + c.RHS
	}
	s += " -> " + c.Outcome.Name()
	if c.CompoundAssign {
		s += " (assign)"
	}
	return s
}

// Document returns the canonical form of the table: versions, the catalog
// fingerprint and every cell in table order.
func (t *Table) Document() (ir.Object, error) {
	catFP, err := t.cat.Fingerprint()
	if err != nil {
		return nil, err
	}

	all := t.All()
	cells := make(ir.Array, len(all))
	for i, c := range all {
		cells[i] = ir.CellValue(c)
	}
	return ir.Object{
		"ir_version":       ir.Str(ir.IRVersion),
		"resolver_version": ir.Str(ir.ResolverVersion),
		"catalog":          ir.Str(catFP.Hash),
		"cells":            cells,
	}, nil
}

// MarshalCanonical encodes Document as canonical JSON.
func (t *Table) MarshalCanonical() ([]byte, error) {
	doc, err := t.Document()
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	return ir.MarshalCanonical(doc)
}

// Fingerprint identifies the table's cells. Tables with equal cells in
// equal order have equal fingerprints.
func (t *Table) Fingerprint() (ir.Fingerprint, error) {
	return ir.SurfaceFingerprint(t.All())
}
