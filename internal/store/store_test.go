package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/floatlat/internal/ir"
)

func TestOpen_CreatesFileAndStampsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floatlat.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	require.NoError(t, err, "database file was not created")

	version, err := userVersion(s.db)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, version)
}

func TestOpen_ReopenKeepsPasses(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "floatlat.db")

	s, err := Open(path, WithIDGenerator(NewFixedGenerator("first")))
	require.NoError(t, err)
	written, err := s.WritePass(ctx, buildTestTable(t, ir.OpNeg))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	for i := 0; i < 2; i++ {
		s, err := Open(path)
		require.NoError(t, err, "reopen %d", i)

		latest, err := s.LatestPass(ctx)
		require.NoError(t, err)
		assert.Equal(t, written, latest)
		require.NoError(t, s.Close())
	}
}

func TestOpen_RejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec("PRAGMA user_version = 7")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaVersion), "got %v", err)
	assert.Contains(t, err.Error(), "version 7")
}

func TestOpen_StampsUnversionedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE unrelated (x INTEGER)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	version, err := userVersion(s.db)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, version)
	assert.Contains(t, getTableIndexes(t, s.db, "decisions"), "idx_decisions_lookup")
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/floatlat.db")
	assert.Error(t, err)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LatestPass(context.Background())
	assert.ErrorIs(t, err, ErrNoPass)
}

func TestClose(t *testing.T) {
	assert.NoError(t, (&Store{}).Close(), "zero store")

	s := createTestStore(t)
	assert.NoError(t, s.Close())
	_ = s.Close() // second close must not panic
}

func TestPragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name string
		want string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, queryPragma(t, s.db, tt.name))
		})
	}
}

func TestSchema_Columns(t *testing.T) {
	s := createTestStore(t)

	assert.Equal(t,
		[]string{"id", "seq", "catalog_hash", "surface_hash", "surface_cid", "resolver_version", "ir_version", "cells"},
		getTableColumns(t, s.db, "passes"))
	assert.Equal(t,
		[]string{"pass_id", "ord", "operator", "lhs", "rhs", "kind", "category", "category_flags", "derived", "compound_assign"},
		getTableColumns(t, s.db, "decisions"))
	assert.Contains(t, getTableIndexes(t, s.db, "decisions"), "idx_decisions_lookup")
}

func TestConstraint_DecisionRequiresPass(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`
		INSERT INTO decisions (pass_id, ord, operator, lhs, kind, derived)
		VALUES ('missing', 0, 'neg', 'NonNaN', 'resolved', '{}')
	`)
	assert.Error(t, err, "expected foreign key violation")
}

func TestConstraint_PassSeqUnique(t *testing.T) {
	s := createTestStore(t)

	insert := `
		INSERT INTO passes (id, seq, catalog_hash, surface_hash, surface_cid, resolver_version, ir_version, cells)
		VALUES (?, 1, 'c', 's', 'cid', '0.1.0', '1', 0)
	`
	_, err := s.db.Exec(insert, "p1")
	require.NoError(t, err)
	_, err = s.db.Exec(insert, "p2")
	assert.Error(t, err, "expected UNIQUE violation on seq")
}
