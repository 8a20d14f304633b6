package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/compiler"
	"github.com/roach88/floatlat/internal/resolver"
	"github.com/roach88/floatlat/internal/surface"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Validate a catalog without writing output",
		Long: `Validate a CUE category catalog (a .cue file or a directory).

Checks the catalog structure and invariants, then resolves every operator
over it to make sure the rules never hit an ambiguous or uncovered flag-set.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(commandContext(cmd), rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(ctx context.Context, opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loadResult, err := LoadCategories(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Code == ErrCodeCompile {
			// Structural problems are reported like invariant violations
			return outputValidationErrors(formatter, []compiler.ValidationError{{
				Field:   "catalog",
				Message: loadErr.Error(),
				Code:    loadErr.Code,
			}})
		}
		return outputValidateError(formatter, errorCode(err), err.Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, path)
	for _, c := range loadResult.Categories {
		formatter.VerboseLog("Validating category: %s %s", c.Name, c.Flags)
	}

	if verrs := compiler.Validate(loadResult.Categories); len(verrs) > 0 {
		return outputValidationErrors(formatter, verrs)
	}

	cat, err := catalog.New(loadResult.Categories)
	if err != nil {
		return outputValidateError(formatter, errorCode(err), err.Error(), nil)
	}
	if verrs := validateCoverage(ctx, cat); len(verrs) > 0 {
		return outputValidationErrors(formatter, verrs)
	}

	return outputValidateSuccess(formatter)
}

// validateCoverage builds the full surface over cat and converts a
// resolution defect into a validation error.
func validateCoverage(ctx context.Context, cat *catalog.Catalog) []compiler.ValidationError {
	_, err := surface.Build(ctx, cat)
	if err == nil {
		return nil
	}
	var defect *resolver.DefectError
	if errors.As(err, &defect) {
		return []compiler.ValidationError{{
			Field:   string(defect.Operator),
			Message: defect.Error(),
			Code:    defect.Code,
		}}
	}
	return []compiler.ValidationError{{
		Field:   "surface",
		Message: err.Error(),
		Code:    ErrCodeGeneric,
	}}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true}
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Catalog valid")
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Missing paths and unreadable files are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
