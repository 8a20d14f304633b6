package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/surface"
)

// Pass describes one stored generation pass.
type Pass struct {
	ID              string `json:"id"`
	Seq             int64  `json:"seq"`
	CatalogHash     string `json:"catalog_hash"`
	SurfaceHash     string `json:"surface_hash"`
	SurfaceCID      string `json:"surface_cid"`
	ResolverVersion string `json:"resolver_version"`
	IRVersion       string `json:"ir_version"`
	Cells           int    `json:"cells"`
}

// WritePass stores table as a new pass and returns its record.
// The pass and all its decisions are written in a single transaction;
// seq continues from the highest stored pass.
func (s *Store) WritePass(ctx context.Context, table *surface.Table) (Pass, error) {
	catFP, err := table.Catalog().Fingerprint()
	if err != nil {
		return Pass{}, fmt.Errorf("write pass: %w", err)
	}
	surfFP, err := table.Fingerprint()
	if err != nil {
		return Pass{}, fmt.Errorf("write pass: %w", err)
	}
	cells := table.All()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Pass{}, fmt.Errorf("write pass: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var last sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(seq) FROM passes`).Scan(&last); err != nil {
		return Pass{}, fmt.Errorf("write pass: read seq: %w", err)
	}

	p := Pass{
		ID:              s.ids.Generate(),
		Seq:             last.Int64 + 1,
		CatalogHash:     catFP.Hash,
		SurfaceHash:     surfFP.Hash,
		SurfaceCID:      surfFP.CID,
		ResolverVersion: ir.ResolverVersion,
		IRVersion:       ir.IRVersion,
		Cells:           len(cells),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO passes
		(id, seq, catalog_hash, surface_hash, surface_cid, resolver_version, ir_version, cells)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Seq,
		p.CatalogHash,
		p.SurfaceHash,
		p.SurfaceCID,
		p.ResolverVersion,
		p.IRVersion,
		p.Cells,
	)
	if err != nil {
		return Pass{}, fmt.Errorf("write pass: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO decisions
		(pass_id, ord, operator, lhs, rhs, kind, category, category_flags, derived, compound_assign)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Pass{}, fmt.Errorf("write pass: prepare: %w", err)
	}
	defer stmt.Close()

	for i, c := range cells {
		if err := writeDecision(ctx, stmt, p.ID, i, c); err != nil {
			return Pass{}, fmt.Errorf("write pass: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Pass{}, fmt.Errorf("write pass: commit: %w", err)
	}

	slog.Info("pass written",
		"id", p.ID,
		"seq", p.Seq,
		"cells", p.Cells,
		"surface", p.SurfaceCID,
	)
	return p, nil
}

func writeDecision(ctx context.Context, stmt *sql.Stmt, passID string, ord int, c ir.Cell) error {
	derived, err := marshalFlags(c.Derived)
	if err != nil {
		return err
	}

	var category, categoryFlags string
	if c.Outcome.Category != nil {
		category = c.Outcome.Category.Name
		if categoryFlags, err = marshalFlags(c.Outcome.Category.Flags); err != nil {
			return err
		}
	}

	_, err = stmt.ExecContext(ctx,
		passID,
		ord,
		string(c.Operator),
		c.LHS,
		c.RHS,
		string(c.Outcome.Kind),
		category,
		categoryFlags,
		derived,
		boolToInt(c.CompoundAssign),
	)
	if err != nil {
		return fmt.Errorf("decision %d: %w", ord, err)
	}
	return nil
}
