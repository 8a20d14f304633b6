package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/resolver"
	"github.com/roach88/floatlat/internal/surface"
)

// ArgError reports an operator or operand argument that does not name
// anything known.
type ArgError struct {
	Code    string
	Message string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ResolveResult is the JSON payload of the resolve command.
type ResolveResult struct {
	ir.Cell

	// Widen names the least category holding both the LHS and the result,
	// set for binary cells where "lhs op= rhs" cannot keep the LHS category.
	Widen string `json:"widen,omitempty"`
}

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Catalog string
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <op> <lhs> [rhs]",
		Short: "Resolve one operator application",
		Long: `Resolve a single operator over named operand categories.

Prints the resulting category (or "rejected" when NaN is possible), the
derived flags and, for binary operators, whether "lhs op= rhs" keeps
the left operand's category. When it does not, the category a
compound-assigned variable must be widened to is shown.

Examples:
  floatlat resolve neg StrictlyNegativeFinite
  floatlat resolve add Positive Positive
  floatlat resolve div NonZeroNonNaN NonZeroNonNaN --format json`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args, cmd)
		},
	}

	addCatalogFlag(cmd, &opts.Catalog)

	return cmd
}

func runResolve(opts *ResolveOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := LoadCatalog(opts.Catalog)
	if err != nil {
		return commandError(formatter, err)
	}

	op, lhs, rhs, err := parseApplication(cat, args)
	if err != nil {
		return commandError(formatter, err)
	}

	cell, err := surface.ResolveCell(cat, op, lhs, rhs)
	if err != nil {
		return commandError(formatter, err)
	}
	widen, err := widenTarget(cat, lhs, cell)
	if err != nil {
		return commandError(formatter, err)
	}

	fp, err := cat.Fingerprint()
	if err != nil {
		return commandError(formatter, err)
	}
	formatter.Stamp(catalogProvenance(fp))

	if formatter.Format == "json" {
		return formatter.Success(ResolveResult{Cell: cell, Widen: widen})
	}

	fmt.Fprintln(formatter.Writer, surface.FormatCell(cell))
	if cell.Outcome.Kind == ir.OutcomeResolved {
		fmt.Fprintf(formatter.Writer, "  derived:  %s\n", cell.Derived)
		fmt.Fprintf(formatter.Writer, "  category: %s\n", cell.Outcome.Category.Flags)
	} else {
		fmt.Fprintln(formatter.Writer, "  may produce NaN")
	}
	if widen != "" {
		fmt.Fprintf(formatter.Writer, "  widen:    %s\n", widen)
	}
	return nil
}

// widenTarget returns the category a variable of category lhs must take to
// also hold cell's result, or "" when no widening applies.
func widenTarget(cat *catalog.Catalog, lhs ir.Category, cell ir.Cell) (string, error) {
	if !cell.Binary() || cell.CompoundAssign || cell.Outcome.Kind != ir.OutcomeResolved {
		return "", nil
	}
	joined, err := cat.Join(lhs, *cell.Outcome.Category)
	if err != nil {
		return "", err
	}
	return joined.Name, nil
}

// parseApplication turns "op lhs [rhs]" into an operator and catalog
// categories, checking the operand count against the operator's arity.
func parseApplication(cat *catalog.Catalog, args []string) (ir.Operator, ir.Category, ir.Category, error) {
	op, ok := ir.ParseOperator(args[0])
	if !ok {
		return "", ir.Category{}, ir.Category{}, &ArgError{
			Code:    ErrCodeUnknownOperator,
			Message: fmt.Sprintf("unknown operator %q", args[0]),
		}
	}

	operands := args[1:]
	if len(operands) != op.Arity() {
		return "", ir.Category{}, ir.Category{}, &ArgError{
			Code:    ErrCodeArity,
			Message: fmt.Sprintf("%s takes %d operand(s), got %d", op, op.Arity(), len(operands)),
		}
	}

	cats := make([]ir.Category, 2)
	for i, name := range operands {
		c, ok := cat.Lookup(name)
		if !ok {
			return "", ir.Category{}, ir.Category{}, &ArgError{
				Code:    ErrCodeUnknownCategory,
				Message: fmt.Sprintf("unknown category %q", name),
			}
		}
		cats[i] = c
	}
	return op, cats[0], cats[1], nil
}

// parseOperators validates --op names; empty means every operator.
func parseOperators(names []string) ([]ir.Operator, error) {
	ops := make([]ir.Operator, 0, len(names))
	for _, name := range names {
		op, ok := ir.ParseOperator(name)
		if !ok {
			return nil, &ArgError{
				Code:    ErrCodeUnknownOperator,
				Message: fmt.Sprintf("unknown operator %q", name),
			}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// defectCode returns the resolution defect code carried by err, if any.
func defectCode(err error) string {
	var defect *resolver.DefectError
	if errors.As(err, &defect) {
		return defect.Code
	}
	return ""
}
