package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/floatlat/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	DBPath  string
	Catalog string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Store the full decision surface as a new pass",
		Long: `Build the full decision surface and write it to a SQLite database as a
new generation pass. Code-generation backends read the latest pass.

Examples:
  floatlat export --db ./floatlat.db
  floatlat export --db ./floatlat.db --catalog ./catalog.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	addCatalogFlag(cmd, &opts.Catalog)

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	table, err := buildTable(cmd, opts.Catalog, nil)
	if err != nil {
		return commandError(formatter, err)
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
	}
	defer st.Close()

	pass, err := st.WritePass(commandContext(cmd), table)
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
	}

	formatter.Stamp(passProvenance(pass))
	if formatter.Format == "json" {
		return formatter.Success(pass)
	}

	return formatter.Text(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Wrote pass %d with %d cells to %s\n", pass.Seq, pass.Cells, opts.DBPath)
		return err
	})
}
