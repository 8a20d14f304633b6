package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult holds the compiled catalog and its identity.
type CompilationResult struct {
	Source      string         `json:"source"`
	Categories  []ir.Category  `json:"categories"`
	Fingerprint ir.Fingerprint `json:"fingerprint"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [catalog]",
		Short: "Compile a CUE catalog to canonical JSON",
		Long: `Compile a CUE category catalog to canonical JSON.

Without an argument the built-in catalog is compiled. The catalog is
validated first; the output lists the categories in catalog order
together with the catalog fingerprint stamped on every stored pass.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runCompile(opts, path, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := LoadCatalog(path)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	source := path
	if source == "" {
		source = "built-in"
	}
	formatter.VerboseLog("Compiled %d categories from %s", cat.Len(), source)

	fp, err := cat.Fingerprint()
	if err != nil {
		return outputCompileError(formatter, err)
	}
	formatter.Stamp(catalogProvenance(fp))
	result := &CompilationResult{
		Source:      source,
		Categories:  cat.Categories(),
		Fingerprint: fp,
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeCatalogToFile(cat, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Compiled %d categories from %s\n\n", len(result.Categories), result.Source)
	for _, c := range result.Categories {
		fmt.Fprintf(formatter.Writer, "  %-24s %s\n", c.Name, c.Flags)
	}
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintf(formatter.Writer, "Hash: %s\n", result.Fingerprint.Hash)
	fmt.Fprintf(formatter.Writer, "CID:  %s\n", result.Fingerprint.CID)

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote canonical catalog to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a compilation error.
func outputCompileError(formatter *OutputFormatter, err error) error {
	code := errorCode(err)
	_ = formatter.Error(code, err.Error(), nil)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, code, err)
}

// writeCatalogToFile writes the catalog to a file in canonical JSON format.
func writeCatalogToFile(cat *catalog.Catalog, filename string) error {
	cats := cat.Categories()
	arr := make(ir.Array, len(cats))
	for i, c := range cats {
		arr[i] = ir.CategoryValue(c)
	}
	data, err := ir.MarshalCanonical(ir.Object{"categories": arr})
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
