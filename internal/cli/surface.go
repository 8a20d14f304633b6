package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/surface"
)

// SurfaceOptions holds flags for the surface command.
type SurfaceOptions struct {
	*RootOptions
	Catalog   string
	Operators []string
}

// SurfaceResult is the JSON payload of the surface command.
// The surface CID travels in the envelope's provenance.
type SurfaceResult struct {
	Stats surface.Stats `json:"stats"`
	Cells []ir.Cell     `json:"cells"`
}

// NewSurfaceCommand creates the surface command.
func NewSurfaceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SurfaceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Print the decision surface",
		Long: `Build and print the decision surface: one line per operator and
operand combination, in catalog order.

  op lhs [rhs] -> Category|rejected [(assign)]

Examples:
  floatlat surface
  floatlat surface --op add --op neg
  floatlat surface --catalog ./catalog.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurface(opts, cmd)
		},
	}

	addCatalogFlag(cmd, &opts.Catalog)
	cmd.Flags().StringArrayVar(&opts.Operators, "op", nil, "operator to build (repeatable, default: all)")

	return cmd
}

func runSurface(opts *SurfaceOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	table, err := buildTable(cmd, opts.Catalog, opts.Operators)
	if err != nil {
		return commandError(formatter, err)
	}

	if formatter.Format != "json" {
		return table.WriteText(formatter.Writer)
	}

	prov, err := tableProvenance(table)
	if err != nil {
		return commandError(formatter, err)
	}
	formatter.Stamp(prov)
	return formatter.Success(SurfaceResult{
		Stats: table.Stats(),
		Cells: table.All(),
	})
}

// buildTable loads the catalog and builds the surface for the named operators.
func buildTable(cmd *cobra.Command, catalogPath string, opNames []string) (*surface.Table, error) {
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	ops, err := parseOperators(opNames)
	if err != nil {
		return nil, err
	}
	table, err := surface.Build(commandContext(cmd), cat, ops...)
	if err != nil {
		return nil, fmt.Errorf("building surface: %w", err)
	}
	return table, nil
}
