package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/store"
	"github.com/roach88/floatlat/internal/surface"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Findings, failed scenarios, invalid catalog
	ExitCommandError = 2 // Bad arguments, unreadable input, resolution defects
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // error code or short message
	Err     error  // optional cause
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, or ExitFailure when
// err is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Provenance names the catalog, surface and stored pass a response was
// derived from. Two responses with the same surface CID describe identical
// decisions regardless of which command produced them.
type Provenance struct {
	Catalog string `json:"catalog,omitempty"` // catalog fingerprint hash
	Surface string `json:"surface,omitempty"` // surface CID
	Pass    string `json:"pass,omitempty"`    // store pass ID
}

// tableProvenance fingerprints a freshly built table.
func tableProvenance(table *surface.Table) (Provenance, error) {
	catFP, err := table.Catalog().Fingerprint()
	if err != nil {
		return Provenance{}, err
	}
	surfFP, err := table.Fingerprint()
	if err != nil {
		return Provenance{}, err
	}
	return Provenance{Catalog: catFP.Hash, Surface: surfFP.CID}, nil
}

// passProvenance reads provenance off a stored pass.
func passProvenance(p store.Pass) Provenance {
	return Provenance{Catalog: p.CatalogHash, Surface: p.SurfaceCID, Pass: p.ID}
}

// catalogProvenance covers responses that depend on the catalog alone.
func catalogProvenance(fp ir.Fingerprint) Provenance {
	return Provenance{Catalog: fp.Hash}
}

// OutputFormatter writes command results as JSON envelopes or plain text.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose output; falls back to Writer
	Verbose   bool

	provenance *Provenance
}

// CLIResponse is the JSON envelope every command writes.
type CLIResponse struct {
	Status     string      `json:"status"` // "ok" or "error"
	Provenance *Provenance `json:"provenance,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      *CLIError   `json:"error,omitempty"`
}

// CLIError is the error member of CLIResponse.
type CLIError struct {
	Code    string      `json:"code"` // E0xx command codes, E2xx/E3xx catalog and resolver codes
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Stamp records the provenance attached to subsequent responses. In text
// mode it is printed once, after the result.
func (f *OutputFormatter) Stamp(p Provenance) {
	f.provenance = &p
}

// Success writes data as an "ok" envelope, or prints it in text mode.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	f.writeProvenance()
	return nil
}

// Error writes an "error" envelope, or an "Error [code]: message" line in
// text mode. Details are printed in text mode only when verbose.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Text prints a pre-rendered text result followed by any stamped
// provenance. Commands with their own text layout use it instead of Success.
func (f *OutputFormatter) Text(render func(io.Writer) error) error {
	if err := render(f.Writer); err != nil {
		return err
	}
	f.writeProvenance()
	return nil
}

// VerboseLog prints a diagnostic line when verbose is on. It goes to
// ErrWriter so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	resp.Provenance = f.provenance
	return json.NewEncoder(f.Writer).Encode(resp)
}

func (f *OutputFormatter) writeProvenance() {
	p := f.provenance
	if p == nil {
		return
	}
	if p.Pass != "" {
		fmt.Fprintf(f.Writer, "  pass:    %s\n", p.Pass)
	}
	if p.Catalog != "" {
		fmt.Fprintf(f.Writer, "  catalog: %s\n", p.Catalog)
	}
	if p.Surface != "" {
		fmt.Fprintf(f.Writer, "  surface: %s\n", p.Surface)
	}
}
