package ir

// OutcomeKind classifies a resolution.
type OutcomeKind string

const (
	// OutcomeResolved means a unique catalog category soundly describes the result.
	OutcomeResolved OutcomeKind = "resolved"
	// OutcomeRejected means the operator may produce NaN for these operands.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeAmbiguous means several categories tie for the tightest match.
	// It never appears in a finished decision surface.
	OutcomeAmbiguous OutcomeKind = "ambiguous"
)

// Outcome is the result of resolving one derived flag-set against the catalog.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	Category   *Category   `json:"category,omitempty"`
	Candidates []string    `json:"candidates,omitempty"` // tied names when ambiguous
}

// Resolved returns an outcome selecting c.
func Resolved(c Category) Outcome {
	return Outcome{Kind: OutcomeResolved, Category: &c}
}

// Rejected returns the NaN-possible outcome.
func Rejected() Outcome {
	return Outcome{Kind: OutcomeRejected}
}

// Ambiguous returns an outcome listing the tied candidate names.
func Ambiguous(names []string) Outcome {
	return Outcome{Kind: OutcomeAmbiguous, Candidates: names}
}

// Name returns the resolved category name, or the outcome kind otherwise.
func (o Outcome) Name() string {
	if o.Kind == OutcomeResolved && o.Category != nil {
		return o.Category.Name
	}
	return string(o.Kind)
}

// Cell is one entry of the decision surface:
// operator x LHS category (x RHS category for binary operators).
type Cell struct {
	Operator Operator `json:"operator"`
	LHS      string   `json:"lhs"`
	RHS      string   `json:"rhs,omitempty"`
	Outcome  Outcome  `json:"outcome"`

	// Derived holds the rule's flag-set; zero value when the rule rejected.
	Derived Flags `json:"derived"`

	// CompoundAssign is set when a binary result fits into the LHS category,
	// so "lhs op= rhs" can keep the LHS type.
	CompoundAssign bool `json:"compound_assign,omitempty"`
}

// Binary reports whether the cell belongs to a two-operand operator.
func (c Cell) Binary() bool {
	return c.RHS != ""
}
