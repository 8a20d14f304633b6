package catalog

import (
	"errors"
	"fmt"

	"github.com/roach88/floatlat/internal/ir"
)

// Rejection reasons for raw values, one per property.
var (
	ErrNaN      = errors.New("value is NaN")
	ErrInfinite = errors.New("value is infinite")
	ErrZero     = errors.New("value is zero")
	ErrPositive = errors.New("value is positive")
	ErrNegative = errors.New("value is negative")
)

var propertyErrors = map[ir.Property]error{
	ir.PropNaN:      ErrNaN,
	ir.PropInfinite: ErrInfinite,
	ir.PropZero:     ErrZero,
	ir.PropPositive: ErrPositive,
	ir.PropNegative: ErrNegative,
}

// InvalidValueError reports a raw value rejected by a category.
type InvalidValueError struct {
	Category string
	Value    float64
	Err      error // one of ErrNaN, ErrInfinite, ErrZero, ErrPositive, ErrNegative
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %g rejected: %v", e.Category, e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// Check returns nil if x satisfies cat's predicate, or an *InvalidValueError
// wrapping the first violated property (NaN, infinite, zero, positive,
// negative in that order).
func Check(cat ir.Category, x float64) error {
	prop, bad := cat.Flags.Violation(x)
	if !bad {
		return nil
	}
	return &InvalidValueError{Category: cat.Name, Value: x, Err: propertyErrors[prop]}
}
