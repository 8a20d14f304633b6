package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/resolver"
	"github.com/roach88/floatlat/internal/surface"
)

func TestResolveText(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "StrictlyPositiveFinite", "StrictlyPositiveFinite"}, "add StrictlyPositiveFinite StrictlyPositiveFinite -> StrictlyPositive"},
		{[]string{"add", "Positive", "Positive"}, "add Positive Positive -> Positive (assign)"},
		{[]string{"div", "NonZeroNonNaN", "NonZeroNonNaN"}, "div NonZeroNonNaN NonZeroNonNaN -> rejected"},
		{[]string{"mul", "NonNaN", "NonNaN"}, "mul NonNaN NonNaN -> rejected"},
		{[]string{"neg", "StrictlyNegativeFinite"}, "neg StrictlyNegativeFinite -> StrictlyPositiveFinite"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, err := execute(t, NewResolveCommand(&RootOptions{Format: "text"}), tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want+"\n")
		})
	}
}

func TestResolveTextDetails(t *testing.T) {
	out, err := execute(t, NewResolveCommand(&RootOptions{Format: "text"}), "add", "StrictlyPositiveFinite", "StrictlyPositiveFinite")
	require.NoError(t, err)
	assert.Contains(t, out, "derived:  {T,F,T,F}")
	assert.Contains(t, out, "category: {T,F,T,F}")

	out, err = execute(t, NewResolveCommand(&RootOptions{Format: "text"}), "sqrt", "Negative")
	require.NoError(t, err)
	assert.Contains(t, out, "sqrt Negative -> rejected")
	assert.Contains(t, out, "may produce NaN")
}

func TestResolveJSON(t *testing.T) {
	out, err := execute(t, NewResolveCommand(&RootOptions{Format: "json"}), "add", "Positive", "Positive")
	require.NoError(t, err)

	var resp struct {
		Status string  `json:"status"`
		Data   ir.Cell `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ir.OpAdd, resp.Data.Operator)
	assert.Equal(t, ir.OutcomeResolved, resp.Data.Outcome.Kind)
	require.NotNil(t, resp.Data.Outcome.Category)
	assert.Equal(t, "Positive", resp.Data.Outcome.Category.Name)
	assert.True(t, resp.Data.CompoundAssign)
}

func TestResolveWidensNonAssignableResult(t *testing.T) {
	out, err := execute(t, NewResolveCommand(&RootOptions{Format: "text"}), "add", "StrictlyPositiveFinite", "StrictlyPositiveFinite")
	require.NoError(t, err)
	assert.Contains(t, out, "  widen:    StrictlyPositive\n")

	out, err = execute(t, NewResolveCommand(&RootOptions{Format: "text"}), "add", "Positive", "Positive")
	require.NoError(t, err)
	assert.NotContains(t, out, "widen:")

	out, err = execute(t, NewResolveCommand(&RootOptions{Format: "json"}), "add", "StrictlyPositiveFinite", "StrictlyPositiveFinite")
	require.NoError(t, err)

	var resp struct {
		Provenance Provenance    `json:"provenance"`
		Data       ResolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "StrictlyPositive", resp.Data.Widen)
	assert.Equal(t, "StrictlyPositive", resp.Data.Outcome.Name())
	assert.False(t, resp.Data.CompoundAssign)

	fp, err := catalog.Default().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, Provenance{Catalog: fp.Hash}, resp.Provenance)
}

func TestWidenTarget(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"sub", "PositiveFinite", "PositiveFinite"}, "NonNaNFinite"},
		{[]string{"mul", "StrictlyNegativeFinite", "StrictlyNegativeFinite"}, "NonNaN"},
		{[]string{"neg", "Positive"}, ""},
		{[]string{"div", "NonNaN", "NonNaN"}, ""},
		{[]string{"add", "Positive", "Positive"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.args[0]+" "+tt.args[1], func(t *testing.T) {
			op, lhs, rhs, err := parseApplication(cat, tt.args)
			require.NoError(t, err)
			cell, err := surface.ResolveCell(cat, op, lhs, rhs)
			require.NoError(t, err)

			got, err := widenTarget(cat, lhs, cell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown operator", []string{"pow", "NonNaN", "NonNaN"}, ErrCodeUnknownOperator},
		{"unknown category", []string{"neg", "Whole"}, ErrCodeUnknownCategory},
		{"unary with two operands", []string{"neg", "NonNaN", "NonNaN"}, ErrCodeArity},
		{"binary with one operand", []string{"add", "NonNaN"}, ErrCodeArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewResolveCommand(&RootOptions{Format: "json"}), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestParseApplication(t *testing.T) {
	cat := catalog.Default()

	op, lhs, rhs, err := parseApplication(cat, []string{"min", "Positive", "Negative"})
	require.NoError(t, err)
	assert.Equal(t, ir.OpMin, op)
	assert.Equal(t, "Positive", lhs.Name)
	assert.Equal(t, "Negative", rhs.Name)

	op, lhs, rhs, err = parseApplication(cat, []string{"abs", "Negative"})
	require.NoError(t, err)
	assert.Equal(t, ir.OpAbs, op)
	assert.Equal(t, "Negative", lhs.Name)
	assert.Equal(t, ir.Category{}, rhs)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "E005", errorCode(&LoadError{Code: "E005", Message: "gone"}))
	assert.Equal(t, "E011", errorCode(&ArgError{Code: "E011", Message: "unknown"}))
	assert.Equal(t, "E302", errorCode(&resolver.DefectError{Code: resolver.ErrCodeCoverage}))
	assert.Equal(t, "E001", errorCode(errors.New("boom")))
}
