package ir

import (
	"math"
	"strings"
)

// Flags is the four-way conservative description of a set of float values.
// Each field says whether a value in the set MAY exhibit the property.
type Flags struct {
	Inf  bool `json:"inf"`
	Zero bool `json:"zero"`
	Pos  bool `json:"pos"`
	Neg  bool `json:"neg"`
}

// Property names one of the behaviors a float value can exhibit.
// PropNaN is not a flag; it is listed so rejections share one vocabulary.
type Property string

const (
	PropNaN      Property = "nan"
	PropInfinite Property = "infinite"
	PropZero     Property = "zero"
	PropPositive Property = "positive"
	PropNegative Property = "negative"
)

// Valid reports whether at least one sign flag holds.
// A flag-set with neither sign describes no value at all.
func (f Flags) Valid() bool {
	return f.Pos || f.Neg
}

// Subset reports whether every flag set in f is also set in other.
// A category with Subset(other) true "fits into" other.
func (f Flags) Subset(other Flags) bool {
	return (!f.Inf || other.Inf) &&
		(!f.Zero || other.Zero) &&
		(!f.Pos || other.Pos) &&
		(!f.Neg || other.Neg)
}

// Union returns the flags allowed by either f or other.
func (f Flags) Union(other Flags) Flags {
	return Flags{
		Inf:  f.Inf || other.Inf,
		Zero: f.Zero || other.Zero,
		Pos:  f.Pos || other.Pos,
		Neg:  f.Neg || other.Neg,
	}
}

// Agreement counts the flags on which f and other hold the same value (0..4).
func (f Flags) Agreement(other Flags) int {
	n := 0
	if f.Inf == other.Inf {
		n++
	}
	if f.Zero == other.Zero {
		n++
	}
	if f.Pos == other.Pos {
		n++
	}
	if f.Neg == other.Neg {
		n++
	}
	return n
}

// Swapped exchanges the sign flags.
func (f Flags) Swapped() Flags {
	f.Pos, f.Neg = f.Neg, f.Pos
	return f
}

// String renders flags as {inf zero pos neg} using T/F, e.g. {F,F,T,F}.
func (f Flags) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range [4]bool{f.Inf, f.Zero, f.Pos, f.Neg} {
		if i > 0 {
			b.WriteByte(',')
		}
		if v {
			b.WriteByte('T')
		} else {
			b.WriteByte('F')
		}
	}
	b.WriteByte('}')
	return b.String()
}

// Exhibits returns the properties a concrete value shows.
// NaN shows none of them; use math.IsNaN to detect it.
func Exhibits(x float64) Flags {
	if math.IsNaN(x) {
		return Flags{}
	}
	neg := math.Signbit(x)
	return Flags{
		Inf:  math.IsInf(x, 0),
		Zero: x == 0,
		Pos:  !neg,
		Neg:  neg,
	}
}

// Violation returns the first property of x that f rules out.
// Order: NaN, infinite, zero, positive, negative.
func (f Flags) Violation(x float64) (Property, bool) {
	if math.IsNaN(x) {
		return PropNaN, true
	}
	got := Exhibits(x)
	switch {
	case got.Inf && !f.Inf:
		return PropInfinite, true
	case got.Zero && !f.Zero:
		return PropZero, true
	case got.Pos && !f.Pos:
		return PropPositive, true
	case got.Neg && !f.Neg:
		return PropNegative, true
	}
	return "", false
}

// Accepts reports whether x belongs to the set described by f.
func (f Flags) Accepts(x float64) bool {
	_, bad := f.Violation(x)
	return !bad
}

// Category is a named, immutable flag-set from the catalog.
type Category struct {
	Name  string `json:"name"`
	Flags Flags  `json:"flags"`
}

// Accepts reports whether x satisfies the category's predicate.
func (c Category) Accepts(x float64) bool {
	return c.Flags.Accepts(x)
}

// FitsInto reports whether every value of c is also a value of other.
func (c Category) FitsInto(other Category) bool {
	return c.Flags.Subset(other.Flags)
}

func (c Category) String() string {
	return c.Name + c.Flags.String()
}
