package rules

import (
	"fmt"

	"github.com/roach88/floatlat/internal/ir"
)

// Derived is a rule's answer: either the flags of every possible result,
// or NaN when some operand combination yields NaN.
type Derived struct {
	Flags ir.Flags
	NaN   bool
}

// MayProduceNaN is the sentinel answer for NaN-capable operand combinations.
var MayProduceNaN = Derived{NaN: true}

// spec wraps flags into a non-NaN answer.
func spec(inf, zero, pos, neg bool) Derived {
	return Derived{Flags: ir.Flags{Inf: inf, Zero: zero, Pos: pos, Neg: neg}}
}

func (d Derived) String() string {
	if d.NaN {
		return "MayProduceNaN"
	}
	return d.Flags.String()
}

// Derive applies op's rule. b is ignored for unary operators.
// It fails for unknown operators and for operands that admit no sign.
func Derive(op ir.Operator, a, b ir.Flags) (Derived, error) {
	if !a.Valid() {
		return Derived{}, fmt.Errorf("rules: %s: operand %s admits no sign", op, a)
	}
	if op.Arity() == 2 && !b.Valid() {
		return Derived{}, fmt.Errorf("rules: %s: operand %s admits no sign", op, b)
	}

	switch op {
	case ir.OpNeg:
		return Neg(a), nil
	case ir.OpAbs:
		return Abs(a), nil
	case ir.OpFloor:
		return Floor(a), nil
	case ir.OpCeil:
		return Ceil(a), nil
	case ir.OpRound, ir.OpTrunc:
		return Round(a), nil
	case ir.OpFract:
		return Fract(a), nil
	case ir.OpSignum:
		return Signum(a), nil
	case ir.OpSqrt:
		return Sqrt(a), nil
	case ir.OpRecip:
		return Recip(a), nil
	case ir.OpExp:
		return Exp(a), nil
	case ir.OpLn:
		return Ln(a), nil
	case ir.OpAdd:
		return Add(a, b), nil
	case ir.OpSub:
		return Sub(a, b), nil
	case ir.OpMul:
		return Mul(a, b), nil
	case ir.OpDiv:
		return Div(a, b), nil
	case ir.OpRem:
		return Rem(a, b), nil
	case ir.OpHypot:
		return Hypot(a, b), nil
	case ir.OpMin:
		return Min(a, b), nil
	case ir.OpMax:
		return Max(a, b), nil
	case ir.OpCopysign:
		return Copysign(a, b), nil
	default:
		return Derived{}, fmt.Errorf("rules: unknown operator %q", op)
	}
}
