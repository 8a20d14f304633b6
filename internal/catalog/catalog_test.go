package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/floatlat/internal/compiler"
	"github.com/roach88/floatlat/internal/ir"
)

func TestDefaultCatalogWellFormed(t *testing.T) {
	cat := Default()
	require.Equal(t, 12, cat.Len())

	seen := make(map[ir.Flags]string)
	for _, c := range cat.Categories() {
		assert.True(t, c.Flags.Valid(), "%s must admit a sign", c.Name)
		if prev, dup := seen[c.Flags]; dup {
			t.Errorf("%s and %s share flags %s", prev, c.Name, c.Flags)
		}
		seen[c.Flags] = c.Name
	}
}

func TestDefaultCatalogOrderAndFlags(t *testing.T) {
	want := []struct {
		name  string
		flags string
	}{
		{"NonNaN", "{T,T,T,T}"},
		{"NonNaNFinite", "{F,T,T,T}"},
		{"NonZeroNonNaN", "{T,F,T,T}"},
		{"NonZeroNonNaNFinite", "{F,F,T,T}"},
		{"Positive", "{T,T,T,F}"},
		{"Negative", "{T,T,F,T}"},
		{"PositiveFinite", "{F,T,T,F}"},
		{"NegativeFinite", "{F,T,F,T}"},
		{"StrictlyPositive", "{T,F,T,F}"},
		{"StrictlyNegative", "{T,F,F,T}"},
		{"StrictlyPositiveFinite", "{F,F,T,F}"},
		{"StrictlyNegativeFinite", "{F,F,F,T}"},
	}

	cats := Default().Categories()
	require.Len(t, cats, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, cats[i].Name)
		assert.Equal(t, w.flags, cats[i].Flags.String(), w.name)
	}
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Default().Categories()
	cats[0].Name = "Mutated"
	assert.Equal(t, "NonNaN", Default().Categories()[0].Name)
}

func TestLookup(t *testing.T) {
	c, ok := Default().Lookup("Positive")
	require.True(t, ok)
	assert.Equal(t, ir.Flags{Inf: true, Zero: true, Pos: true}, c.Flags)

	_, ok = Default().Lookup("Imaginary")
	assert.False(t, ok)
}

func TestJoin(t *testing.T) {
	cat := Default()
	tests := []struct {
		a, b, want string
	}{
		{"StrictlyPositiveFinite", "StrictlyNegativeFinite", "NonZeroNonNaNFinite"},
		{"PositiveFinite", "StrictlyPositive", "Positive"},
		{"Negative", "Negative", "Negative"},
		{"StrictlyNegative", "PositiveFinite", "NonNaN"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"+"+tt.b, func(t *testing.T) {
			got, err := cat.Join(category(t, cat, tt.a), category(t, cat, tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
			assert.True(t, category(t, cat, tt.a).FitsInto(got))
			assert.True(t, category(t, cat, tt.b).FitsInto(got))
		})
	}
}

func TestNewRejectsInvalidCatalog(t *testing.T) {
	cats := Default().Categories()
	cats[11].Flags = cats[10].Flags

	_, err := New(cats)
	require.Error(t, err)

	var verrs compiler.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, compiler.ErrDuplicateFlags, verrs[0].Code)
}

func TestLoadCustomSource(t *testing.T) {
	_, err := Load([]byte(`categories: [{name: "NonNaN", inf: true, zero: true, pos: true, neg: true}]`), "tiny.cue")
	require.Error(t, err)

	var verrs compiler.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, compiler.ErrCatalogSize, verrs[0].Code)
}

func TestLoadEmbeddedSource(t *testing.T) {
	c, err := Load(Source(), "catalog.cue")
	require.NoError(t, err)
	assert.Equal(t, Default().Categories(), c.Categories())
}

func TestFingerprintStable(t *testing.T) {
	fp1, err := Default().Fingerprint()
	require.NoError(t, err)

	c, err := Load(Source(), "copy.cue")
	require.NoError(t, err)
	fp2, err := c.Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2)
}

func TestCheckTaxonomy(t *testing.T) {
	cat := Default()
	negZero := math.Copysign(0, -1)

	tests := []struct {
		category string
		x        float64
		want     error
	}{
		{"NonNaN", math.NaN(), ErrNaN},
		{"NonNaNFinite", math.Inf(1), ErrInfinite},
		{"NonZeroNonNaN", 0, ErrZero},
		{"Negative", 1, ErrPositive},
		{"Negative", 0, ErrPositive},
		{"Positive", negZero, ErrNegative},
		{"StrictlyPositiveFinite", math.Inf(-1), ErrInfinite},
		{"NonNaN", math.Inf(-1), nil},
		{"Negative", negZero, nil},
		{"StrictlyPositiveFinite", math.SmallestNonzeroFloat64, nil},
	}
	for _, tt := range tests {
		err := Check(category(t, cat, tt.category), tt.x)
		if tt.want == nil {
			assert.NoError(t, err, "%s accepts %g", tt.category, tt.x)
			continue
		}
		require.Error(t, err, "%s rejects %g", tt.category, tt.x)
		assert.ErrorIs(t, err, tt.want)

		var invalid *InvalidValueError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, tt.category, invalid.Category)
	}
}

func TestInvalidValueErrorMessage(t *testing.T) {
	err := Check(category(t, Default(), "PositiveFinite"), -2)
	assert.EqualError(t, err, "PositiveFinite: -2 rejected: value is negative")
}

// category looks name up in cat, failing the test when it is missing.
func category(t *testing.T, cat *Catalog, name string) ir.Category {
	t.Helper()
	c, ok := cat.Lookup(name)
	require.True(t, ok, "unknown category %q", name)
	return c
}
