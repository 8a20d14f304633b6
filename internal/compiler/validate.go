package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/floatlat/internal/ir"
)

// CatalogSize is the number of satisfiable flag combinations:
// 16 combinations minus the 4 with neither sign flag.
const CatalogSize = 12

// Validation error codes (E200-E299)
const (
	ErrCatalogSize       = "E201" // catalog must have exactly CatalogSize entries
	ErrCategoryNameEmpty = "E202" // name is required
	ErrCategoryNameForm  = "E203" // name must be an exported Go identifier
	ErrDuplicateName     = "E204" // two categories share a name
	ErrDuplicateFlags    = "E205" // two categories share a flag tuple
	ErrNoSign            = "E206" // neither pos nor neg holds
	ErrNoWidest          = "E207" // no category accepts every non-NaN value
)

// ValidationError represents a catalog validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every problem found in one catalog.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("invalid catalog (%d error(s)): %s", len(es), strings.Join(msgs, "; "))
}

// categoryNamePattern matches names usable as generated type names.
var categoryNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// Validate checks catalog invariants.
// Returns all errors found (does not fail-fast).
func Validate(cats []ir.Category) []ValidationError {
	var errs []ValidationError

	// E201: exact size
	if len(cats) != CatalogSize {
		errs = append(errs, ValidationError{
			Field:   "categories",
			Message: fmt.Sprintf("catalog must have exactly %d categories, got %d", CatalogSize, len(cats)),
			Code:    ErrCatalogSize,
		})
	}

	names := make(map[string]int)
	flags := make(map[ir.Flags]int)
	widest := false

	for i, c := range cats {
		field := fmt.Sprintf("categories[%d]", i)

		switch {
		case strings.TrimSpace(c.Name) == "":
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "category name is required and must be non-empty",
				Code:    ErrCategoryNameEmpty,
			})
		case !categoryNamePattern.MatchString(c.Name):
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("invalid category name %q, expected an exported identifier", c.Name),
				Code:    ErrCategoryNameForm,
			})
		}

		if j, dup := names[c.Name]; dup && c.Name != "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate category name %q (first at categories[%d])", c.Name, j),
				Code:    ErrDuplicateName,
			})
		} else {
			names[c.Name] = i
		}

		if j, dup := flags[c.Flags]; dup {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("category %q repeats flags %s of categories[%d]", c.Name, c.Flags, j),
				Code:    ErrDuplicateFlags,
			})
		} else {
			flags[c.Flags] = i
		}

		if !c.Flags.Valid() {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("category %q admits neither sign", c.Name),
				Code:    ErrNoSign,
			})
		}

		if c.Flags == (ir.Flags{Inf: true, Zero: true, Pos: true, Neg: true}) {
			widest = true
		}
	}

	// E207: the widest category is the resolver's backstop
	if len(cats) > 0 && !widest {
		errs = append(errs, ValidationError{
			Field:   "categories",
			Message: "catalog has no category accepting every non-NaN value",
			Code:    ErrNoWidest,
		})
	}

	return errs
}
