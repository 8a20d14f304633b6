// Package resolver matches a derived flag-set against the catalog and picks
// the tightest category that is still a safe superset.
//
// A candidate is safe when every flag set in the derived flags is also set
// in the candidate. Among safe candidates the one agreeing with the derived
// flags on the most positions wins. A NaN-capable result is rejected
// outright. A tie or an empty candidate set means the catalog and the
// rules disagree; both are reported as *DefectError and must abort the
// generation pass.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/floatlat/internal/ir"
	"github.com/roach88/floatlat/internal/rules"
)

// Defect codes (E300-E399)
const (
	ErrCodeAmbiguous = "E301" // several categories tie for tightest match
	ErrCodeCoverage  = "E302" // no category is a safe superset
)

// Source lists candidate categories in catalog order.
// *catalog.Catalog implements it.
type Source interface {
	Categories() []ir.Category
}

// DefectError is a design-time inconsistency between rules and catalog.
type DefectError struct {
	Code       string
	Operator   ir.Operator // empty when resolving outside a surface build
	Operands   []string    // operand category names, when known
	Derived    ir.Flags
	Candidates []string // tied names for ErrCodeAmbiguous
}

func (e *DefectError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", e.Code)
	if e.Operator != "" {
		fmt.Fprintf(&b, "%s(%s): ", e.Operator, strings.Join(e.Operands, ", "))
	}
	switch e.Code {
	case ErrCodeAmbiguous:
		fmt.Fprintf(&b, "derived flags %s match %s equally well", e.Derived, strings.Join(e.Candidates, ", "))
	default:
		fmt.Fprintf(&b, "no category covers derived flags %s", e.Derived)
	}
	return b.String()
}

// Resolve returns the outcome for d. Rejected is a normal outcome, not an
// error. An Ambiguous outcome is returned together with a *DefectError so
// callers can report the tied candidates.
func Resolve(d rules.Derived, cat Source) (ir.Outcome, error) {
	if d.NaN {
		return ir.Rejected(), nil
	}

	best := -1
	var top []ir.Category
	for _, c := range cat.Categories() {
		if !d.Flags.Subset(c.Flags) {
			continue
		}
		score := d.Flags.Agreement(c.Flags)
		switch {
		case score > best:
			best = score
			top = append(top[:0], c)
		case score == best:
			top = append(top, c)
		}
	}

	switch len(top) {
	case 0:
		return ir.Outcome{}, &DefectError{Code: ErrCodeCoverage, Derived: d.Flags}
	case 1:
		return ir.Resolved(top[0]), nil
	default:
		names := make([]string, len(top))
		for i, c := range top {
			names[i] = c.Name
		}
		return ir.Ambiguous(names), &DefectError{Code: ErrCodeAmbiguous, Derived: d.Flags, Candidates: names}
	}
}

// ResolveOp derives and resolves op over named operand categories.
// rhs is ignored for unary operators. Defects carry the operator and operands.
func ResolveOp(cat Source, op ir.Operator, lhs, rhs ir.Category) (ir.Outcome, rules.Derived, error) {
	d, err := rules.Derive(op, lhs.Flags, rhs.Flags)
	if err != nil {
		return ir.Outcome{}, rules.Derived{}, err
	}

	out, err := Resolve(d, cat)
	if err != nil {
		var defect *DefectError
		if errors.As(err, &defect) {
			defect.Operator = op
			defect.Operands = []string{lhs.Name}
			if op.Arity() == 2 {
				defect.Operands = append(defect.Operands, rhs.Name)
			}
		}
		return out, d, err
	}
	return out, d, nil
}
