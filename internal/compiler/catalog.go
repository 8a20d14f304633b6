package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/floatlat/internal/ir"
)

// flagFields lists the CUE field names of a category, in ir.Flags order.
var flagFields = []string{"inf", "zero", "pos", "neg"}

// CompileCatalogSource compiles CUE source text and extracts its
// `categories` list. filename is used for error positions only.
func CompileCatalogSource(src []byte, filename string) ([]ir.Category, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileCatalog(v)
}

// CompileCatalog parses the `categories` list of a CUE value into categories,
// preserving list order. Uses the CUE SDK's Go API directly.
//
// The value should be the package root, e.g.:
//
//	categories: [
//		{name: "NonNaN", inf: true, zero: true, pos: true, neg: true},
//		...
//	]
//
// Only structural problems are reported here; catalog invariants are
// checked by Validate.
func CompileCatalog(v cue.Value) ([]ir.Category, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	listVal := v.LookupPath(cue.ParsePath("categories"))
	if !listVal.Exists() {
		return nil, &CompileError{
			Field:   "categories",
			Message: "categories list is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var cats []ir.Category
	for i := 0; iter.Next(); i++ {
		c, err := compileCategory(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}

	return cats, nil
}

// compileCategory parses one list element.
func compileCategory(v cue.Value, index int) (ir.Category, error) {
	var c ir.Category

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return c, &CompileError{
			Field:   fmt.Sprintf("categories[%d].name", index),
			Message: "category name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return c, formatCUEError(err)
	}
	c.Name = name

	flags := make([]bool, len(flagFields))
	for i, field := range flagFields {
		fv := v.LookupPath(cue.ParsePath(field))
		if !fv.Exists() {
			return c, &CompileError{
				Field:   fmt.Sprintf("categories[%d].%s", index, field),
				Message: fmt.Sprintf("category %q: flag %q is required", name, field),
				Pos:     v.Pos(),
			}
		}
		b, err := fv.Bool()
		if err != nil {
			return c, &CompileError{
				Field:   fmt.Sprintf("categories[%d].%s", index, field),
				Message: fmt.Sprintf("category %q: flag %q must be a concrete bool", name, field),
				Pos:     fv.Pos(),
			}
		}
		flags[i] = b
	}
	c.Flags = ir.Flags{Inf: flags[0], Zero: flags[1], Pos: flags[2], Neg: flags[3]}

	return c, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
