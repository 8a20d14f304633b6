package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/floatlat/internal/ir"
)

// ErrNoPass is returned when a requested pass does not exist.
var ErrNoPass = errors.New("store: pass not found")

const passColumns = `id, seq, catalog_hash, surface_hash, surface_cid, resolver_version, ir_version, cells`

func scanPass(row interface{ Scan(...any) error }) (Pass, error) {
	var p Pass
	err := row.Scan(
		&p.ID,
		&p.Seq,
		&p.CatalogHash,
		&p.SurfaceHash,
		&p.SurfaceCID,
		&p.ResolverVersion,
		&p.IRVersion,
		&p.Cells,
	)
	return p, err
}

// LatestPass returns the pass with the highest seq.
// Returns ErrNoPass if the store is empty.
func (s *Store) LatestPass(ctx context.Context) (Pass, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+passColumns+`
		FROM passes
		ORDER BY seq DESC
		LIMIT 1
	`)
	p, err := scanPass(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Pass{}, ErrNoPass
	}
	if err != nil {
		return Pass{}, fmt.Errorf("latest pass: %w", err)
	}
	return p, nil
}

// ReadPass returns the pass with the given ID.
func (s *Store) ReadPass(ctx context.Context, id string) (Pass, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+passColumns+`
		FROM passes
		WHERE id = ?
	`, id)
	p, err := scanPass(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Pass{}, fmt.Errorf("%w: %s", ErrNoPass, id)
	}
	if err != nil {
		return Pass{}, fmt.Errorf("read pass %s: %w", id, err)
	}
	return p, nil
}

// ListPasses returns all passes ordered by seq.
// Returns an empty slice (not nil) if none exist.
func (s *Store) ListPasses(ctx context.Context) ([]Pass, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+passColumns+`
		FROM passes
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query passes: %w", err)
	}
	defer rows.Close()

	passes := []Pass{}
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		passes = append(passes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passes: %w", err)
	}
	return passes, nil
}

// ReadDecisions returns a pass's cells in table order.
// Returns ErrNoPass if the pass does not exist.
func (s *Store) ReadDecisions(ctx context.Context, passID string) ([]ir.Cell, error) {
	if _, err := s.ReadPass(ctx, passID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT operator, lhs, rhs, kind, category, category_flags, derived, compound_assign
		FROM decisions
		WHERE pass_id = ?
		ORDER BY ord ASC
	`, passID)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	cells := []ir.Cell{}
	for rows.Next() {
		c, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return cells, nil
}

// LookupDecision returns a single stored cell. rhs is empty for unary
// operators. The boolean is false when no such cell exists.
func (s *Store) LookupDecision(ctx context.Context, passID string, op ir.Operator, lhs, rhs string) (ir.Cell, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT operator, lhs, rhs, kind, category, category_flags, derived, compound_assign
		FROM decisions
		WHERE pass_id = ? AND operator = ? AND lhs = ? AND rhs = ?
	`, passID, string(op), lhs, rhs)
	c, err := scanDecision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Cell{}, false, nil
	}
	if err != nil {
		return ir.Cell{}, false, err
	}
	return c, true, nil
}

func scanDecision(row interface{ Scan(...any) error }) (ir.Cell, error) {
	var (
		op, kind, category, categoryFlags, derived string
		assign                                     int
		c                                          ir.Cell
	)
	if err := row.Scan(&op, &c.LHS, &c.RHS, &kind, &category, &categoryFlags, &derived, &assign); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.Cell{}, err
		}
		return ir.Cell{}, fmt.Errorf("scan decision: %w", err)
	}

	c.Operator = ir.Operator(op)
	c.CompoundAssign = assign != 0

	var err error
	if c.Derived, err = unmarshalFlags(derived); err != nil {
		return ir.Cell{}, err
	}

	switch ir.OutcomeKind(kind) {
	case ir.OutcomeResolved:
		f, err := unmarshalFlags(categoryFlags)
		if err != nil {
			return ir.Cell{}, err
		}
		c.Outcome = ir.Resolved(ir.Category{Name: category, Flags: f})
	case ir.OutcomeRejected:
		c.Outcome = ir.Rejected()
	default:
		return ir.Cell{}, fmt.Errorf("scan decision: unknown outcome kind %q", kind)
	}
	return c, nil
}
