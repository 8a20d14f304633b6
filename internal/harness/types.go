package harness

import (
	"strings"

	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/surface"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every case and assertion matched.
	Pass bool `json:"pass"`

	// Cells holds the looked-up cell of each case, in case order.
	// Used for golden comparison.
	Cells []ir.Cell `json:"cells"`

	// Stats summarizes the built surface.
	Stats surface.Stats `json:"stats"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cells:  []ir.Cell{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Text renders the case cells one surface line each, as stored in golden
// files.
func (r *Result) Text() []byte {
	var buf strings.Builder
	for _, c := range r.Cells {
		buf.WriteString(surface.FormatCell(c))
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}
