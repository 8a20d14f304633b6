package rules

import "github.com/roach88/floatlat/internal/ir"

// Neg flips the sign bit; nothing else changes.
func Neg(a ir.Flags) Derived {
	return Derived{Flags: a.Swapped()}
}

// Abs clears the sign bit.
func Abs(a ir.Flags) Derived {
	switch {
	case !a.Neg:
		return Derived{Flags: a}
	case !a.Pos:
		return Derived{Flags: a.Swapped()}
	default:
		return spec(a.Inf, a.Zero, true, false)
	}
}

// Floor can reach +0 from (0, 1); negative values never round up to zero.
func Floor(a ir.Flags) Derived {
	return spec(a.Inf, a.Zero || a.Pos, a.Pos, a.Neg)
}

// Ceil can reach -0 from (-1, 0).
func Ceil(a ir.Flags) Derived {
	return spec(a.Inf, a.Zero || a.Neg, a.Pos, a.Neg)
}

// Round covers round-half-away-from-zero and trunc: both send (-0.5, 0.5)
// to a zero of the operand's sign.
func Round(a ir.Flags) Derived {
	return spec(a.Inf, true, a.Pos, a.Neg)
}

// Fract is x - trunc(x) carrying x's sign; fract(±Inf) is NaN.
func Fract(a ir.Flags) Derived {
	if a.Inf {
		return MayProduceNaN
	}
	return spec(false, true, a.Pos, a.Neg)
}

// Signum is copysign(1, x): ±1, never zero, even for ±0.
func Signum(a ir.Flags) Derived {
	return spec(false, false, a.Pos, a.Neg)
}

// Sqrt of a negative nonzero value is NaN; sqrt(-0) is -0 but every
// negative category also holds nonzero values.
func Sqrt(a ir.Flags) Derived {
	if a.Neg {
		return MayProduceNaN
	}
	return spec(a.Inf, a.Zero, true, false)
}

// Recip is 1/x. Subnormals overflow to infinity, so the result may always
// be infinite; only ±Inf maps to zero.
func Recip(a ir.Flags) Derived {
	return spec(true, a.Inf, a.Pos, a.Neg)
}

// Exp overflows for large positive inputs and underflows to +0 for large
// negative ones. The result is never negative.
func Exp(a ir.Flags) Derived {
	return spec(a.Pos, a.Neg, true, false)
}

// Ln is NaN below zero (ln(-0) is -Inf, but negative categories also hold
// nonzero values). ln(0) = -Inf, ln(+Inf) = +Inf, ln(1) = +0.
func Ln(a ir.Flags) Derived {
	if a.Neg {
		return MayProduceNaN
	}
	return spec(a.Zero || a.Inf, true, true, true)
}
