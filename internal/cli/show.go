package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/store"
	"github.com/roach88/floatlat/internal/surface"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	DBPath    string
	PassID    string
	Operators []string
	List      bool
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Pass  store.Pass `json:"pass"`
	Cells []ir.Cell  `json:"cells"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a stored pass",
		Long: `Read a stored generation pass back from the database, the way a
code-generation backend consumes it. Defaults to the latest pass.

Examples:
  floatlat show --db ./floatlat.db
  floatlat show --db ./floatlat.db --op add
  floatlat show --db ./floatlat.db --list`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.PassID, "pass", "", "pass ID (default: latest)")
	cmd.Flags().StringArrayVar(&opts.Operators, "op", nil, "only show cells of this operator (repeatable)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list stored passes instead of cells")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	// Opening would create an empty database
	if _, err := os.Stat(opts.DBPath); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.DBPath), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.DBPath))
	}

	ops, err := parseOperators(opts.Operators)
	if err != nil {
		return commandError(formatter, err)
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return commandError(formatter, err)
	}
	defer st.Close()

	if opts.List {
		return showPasses(ctx, formatter, st)
	}

	pass, err := selectPass(ctx, st, opts.PassID)
	if errors.Is(err, store.ErrNoPass) {
		_ = formatter.Error(ErrCodeNoPass, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeNoPass, err)
	}
	if err != nil {
		return commandError(formatter, err)
	}

	cells, err := st.ReadDecisions(ctx, pass.ID)
	if err != nil {
		return commandError(formatter, err)
	}
	cells = filterCells(cells, ops)

	formatter.Stamp(passProvenance(pass))
	if formatter.Format == "json" {
		return formatter.Success(ShowResult{Pass: pass, Cells: cells})
	}

	return formatter.Text(func(w io.Writer) error {
		fmt.Fprintf(w, "Pass %d (%s)\n", pass.Seq, pass.ID)
		fmt.Fprintf(w, "  resolver %s, ir %s, %d cells\n\n", pass.ResolverVersion, pass.IRVersion, pass.Cells)
		for _, c := range cells {
			if _, err := fmt.Fprintln(w, surface.FormatCell(c)); err != nil {
				return err
			}
		}
		fmt.Fprintln(w)
		return nil
	})
}

func selectPass(ctx context.Context, st *store.Store, id string) (store.Pass, error) {
	if id == "" {
		return st.LatestPass(ctx)
	}
	return st.ReadPass(ctx, id)
}

func showPasses(ctx context.Context, formatter *OutputFormatter, st *store.Store) error {
	passes, err := st.ListPasses(ctx)
	if err != nil {
		return commandError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(passes)
	}

	if len(passes) == 0 {
		fmt.Fprintln(formatter.Writer, "No passes stored.")
		return nil
	}
	for _, p := range passes {
		fmt.Fprintf(formatter.Writer, "%d  %s  %s  %d cells\n", p.Seq, p.ID, p.SurfaceCID, p.Cells)
	}
	return nil
}

// filterCells keeps the cells of ops, or all cells when ops is empty.
func filterCells(cells []ir.Cell, ops []ir.Operator) []ir.Cell {
	if len(ops) == 0 {
		return cells
	}
	keep := make(map[ir.Operator]bool, len(ops))
	for _, op := range ops {
		keep[op] = true
	}
	out := make([]ir.Cell, 0, len(cells))
	for _, c := range cells {
		if keep[c.Operator] {
			out = append(out, c)
		}
	}
	return out
}
