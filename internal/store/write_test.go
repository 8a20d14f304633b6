package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/floatlat/internal/ir"
)

func TestWritePass_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("pass-1")))
	table := buildTestTable(t, ir.OpNeg, ir.OpAdd)

	p, err := s.WritePass(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, "pass-1", p.ID)
	assert.Equal(t, int64(1), p.Seq)
	assert.Equal(t, 12+144, p.Cells)
	assert.Equal(t, ir.ResolverVersion, p.ResolverVersion)

	fp, err := table.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp.Hash, p.SurfaceHash)
	assert.Equal(t, fp.CID, p.SurfaceCID)

	cells, err := s.ReadDecisions(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, table.All(), cells)
}

func TestWritePass_FullSurface(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	table := buildTestTable(t)

	p, err := s.WritePass(ctx, table)
	require.NoError(t, err)
	assert.Len(t, p.ID, 36, "uuid")

	cells, err := s.ReadDecisions(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, cells, 1440)
	assert.Equal(t, table.All(), cells)
}

func TestWritePass_SeqIncrements(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("a", "b", "c")))
	table := buildTestTable(t, ir.OpAbs)

	for i := 1; i <= 3; i++ {
		p, err := s.WritePass(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, int64(i), p.Seq)
	}

	latest, err := s.LatestPass(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", latest.ID)

	passes, err := s.ListPasses(ctx)
	require.NoError(t, err)
	require.Len(t, passes, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{passes[0].ID, passes[1].ID, passes[2].ID})

	// identical tables share a fingerprint
	assert.Equal(t, passes[0].SurfaceHash, passes[2].SurfaceHash)
}

func TestWritePass_DuplicateIDRollsBack(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("same", "same")))
	table := buildTestTable(t, ir.OpNeg)

	_, err := s.WritePass(ctx, table)
	require.NoError(t, err)
	_, err = s.WritePass(ctx, table)
	require.Error(t, err)

	passes, err := s.ListPasses(ctx)
	require.NoError(t, err)
	assert.Len(t, passes, 1)
}

func TestLatestPass_Empty(t *testing.T) {
	s := createTestStore(t)

	_, err := s.LatestPass(context.Background())
	assert.True(t, errors.Is(err, ErrNoPass))

	passes, err := s.ListPasses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, passes)
	assert.Empty(t, passes)
}

func TestReadDecisions_UnknownPass(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadDecisions(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNoPass)
}

func TestLookupDecision(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("p")))
	table := buildTestTable(t, ir.OpDiv, ir.OpSqrt)
	_, err := s.WritePass(ctx, table)
	require.NoError(t, err)

	c, ok, err := s.LookupDecision(ctx, "p", ir.OpDiv, "NonZeroNonNaN", "NonZeroNonNaN")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ir.OutcomeRejected, c.Outcome.Kind)

	c, ok, err = s.LookupDecision(ctx, "p", ir.OpSqrt, "Positive", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Positive", c.Outcome.Name())
	assert.Equal(t, ir.Flags{Inf: true, Zero: true, Pos: true}, c.Outcome.Category.Flags)

	_, ok, err = s.LookupDecision(ctx, "p", ir.OpMul, "NonNaN", "NonNaN")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	g := NewFixedGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestFlagsRoundTrip(t *testing.T) {
	f := ir.Flags{Inf: true, Neg: true}
	data, err := marshalFlags(f)
	require.NoError(t, err)
	assert.Equal(t, `{"inf":true,"neg":true,"pos":false,"zero":false}`, data)

	got, err := unmarshalFlags(data)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}
