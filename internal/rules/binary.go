package rules

import "github.com/roach88/floatlat/internal/ir"

// Add follows IEEE addition. Opposite-signed infinities give NaN. Same-sign
// operands may overflow; opposite-sign operands may cancel to +0.
func Add(a, b ir.Flags) Derived {
	if (a.Inf && a.Neg && b.Inf && b.Pos) || (a.Inf && a.Pos && b.Inf && b.Neg) {
		return MayProduceNaN
	}

	sameSign := (a.Neg && b.Neg) || (a.Pos && b.Pos)
	oppositeSign := (a.Neg && b.Pos) || (a.Pos && b.Neg)

	return spec(
		a.Inf || b.Inf || sameSign,
		oppositeSign || (a.Zero && b.Zero),
		a.Pos || b.Pos,
		a.Neg || b.Neg,
	)
}

// Sub is a + (-b), which IEEE defines to be exact for every pair,
// signed zeros included.
func Sub(a, b ir.Flags) Derived {
	return Add(a, b.Swapped())
}

// productSign applies the sign rule shared by mul and div.
func productSign(a, b ir.Flags) (pos, neg bool) {
	pos = (a.Pos && b.Pos) || (a.Neg && b.Neg)
	neg = (a.Pos && b.Neg) || (a.Neg && b.Pos)
	return pos, neg
}

// Mul is NaN for 0*Inf in either order. Otherwise the product may overflow
// or underflow whatever the operands, so inf and zero always hold.
func Mul(a, b ir.Flags) Derived {
	if (a.Zero && b.Inf) || (a.Inf && b.Zero) {
		return MayProduceNaN
	}
	pos, neg := productSign(a, b)
	return spec(true, true, pos, neg)
}

// Div is NaN for 0/0 and Inf/Inf. Otherwise the quotient may overflow or
// underflow.
func Div(a, b ir.Flags) Derived {
	if (a.Zero && b.Zero) || (a.Inf && b.Inf) {
		return MayProduceNaN
	}
	pos, neg := productSign(a, b)
	return spec(true, true, pos, neg)
}

// Rem is the truncated remainder (fmod). It is NaN for a zero divisor or
// an infinite dividend; the result is finite and takes the dividend's sign.
func Rem(a, b ir.Flags) Derived {
	if b.Zero || a.Inf {
		return MayProduceNaN
	}
	return spec(false, true, a.Pos, a.Neg)
}

// Hypot is never negative and never NaN for non-NaN operands. It
// overflows for large operands and is zero only when both are zero.
func Hypot(a, b ir.Flags) Derived {
	return spec(true, a.Zero && b.Zero, true, false)
}

// zeroAmbiguous reports whether min/max may see +0 and -0 together,
// in which case either operand may be returned.
func zeroAmbiguous(a, b ir.Flags) bool {
	return a.Zero && b.Zero && ((a.Pos && b.Neg) || (a.Neg && b.Pos))
}

// Min returns the lesser operand. -Inf from either side wins, while +Inf
// needs both sides infinite. A positive result needs both operands
// positive unless the signed-zero ambiguity applies.
func Min(a, b ir.Flags) Derived {
	canBeNegInf := (a.Inf && a.Neg) || (b.Inf && b.Neg)
	canBePosInf := (a.Inf && a.Pos) && (b.Inf && b.Pos)

	return spec(
		canBeNegInf || canBePosInf,
		(a.Zero && b.Zero) || (a.Zero && b.Pos) || (b.Zero && a.Pos),
		(a.Pos && b.Pos) || zeroAmbiguous(a, b),
		a.Neg || b.Neg,
	)
}

// Max mirrors Min: +Inf from either side wins, -Inf needs both.
func Max(a, b ir.Flags) Derived {
	canBePosInf := (a.Inf && a.Pos) || (b.Inf && b.Pos)
	canBeNegInf := (a.Inf && a.Neg) && (b.Inf && b.Neg)

	return spec(
		canBePosInf || canBeNegInf,
		(a.Zero && b.Zero) || (a.Zero && b.Neg) || (b.Zero && a.Neg),
		a.Pos || b.Pos,
		(a.Neg && b.Neg) || zeroAmbiguous(a, b),
	)
}

// Copysign takes a's magnitude and b's sign.
func Copysign(a, b ir.Flags) Derived {
	return spec(a.Inf, a.Zero, b.Pos, b.Neg)
}
