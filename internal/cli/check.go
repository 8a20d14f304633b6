package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/floatlat/internal/probe"
	"github.com/roach88/floatlat/internal/surface"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Catalog   string
	Operators []string
}

// FindingResult is the JSON form of one probe finding.
type FindingResult struct {
	Kind    string `json:"kind"`
	Cell    string `json:"cell"`
	Message string `json:"message"`
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Cells    int             `json:"cells"`
	Findings []FindingResult `json:"findings"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe the surface against concrete float arithmetic",
		Long: `Evaluate every cell of the decision surface over a fixed set of sample
values and report cells whose category is unsound (a result falls
outside it), loose (it allows a property no result shows), or rejected
although no sample produces NaN.

Exit codes:
  0 - No findings
  1 - One or more findings
  2 - Command error (invalid catalog, resolution defect, etc.)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	addCatalogFlag(cmd, &opts.Catalog)
	cmd.Flags().StringArrayVar(&opts.Operators, "op", nil, "operator to check (repeatable, default: all)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	table, err := buildTable(cmd, opts.Catalog, opts.Operators)
	if err != nil {
		return commandError(formatter, err)
	}

	report, err := probe.Check(table)
	if err != nil {
		return commandError(formatter, err)
	}
	prov, err := tableProvenance(table)
	if err != nil {
		return commandError(formatter, err)
	}
	formatter.Stamp(prov)

	result := CheckResult{Cells: report.Cells, Findings: make([]FindingResult, 0, len(report.Findings))}
	for _, f := range report.Findings {
		formatter.VerboseLog("finding: %s", f)
		result.Findings = append(result.Findings, FindingResult{
			Kind:    string(f.Kind),
			Cell:    surface.FormatCell(f.Cell),
			Message: f.String(),
		})
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, f := range result.Findings {
			fmt.Fprintf(formatter.Writer, "✗ %s\n", f.Message)
		}
		if report.OK() {
			fmt.Fprintf(formatter.Writer, "✓ %d cells probed, no findings\n", report.Cells)
		} else {
			fmt.Fprintf(formatter.Writer, "\n%d finding(s) in %d cells\n", len(report.Findings), report.Cells)
		}
	}

	if !report.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d finding(s)", len(report.Findings)))
	}
	return nil
}
