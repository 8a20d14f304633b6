package probe

import (
	"fmt"
	"math"

	"github.com/roach88/floatlat/internal/ir"
)

var magnitudes = []float64{
	0,
	math.SmallestNonzeroFloat64,
	0x1p-1022, // smallest normal
	1e-300,
	0.25, 0.5, 1, 1.5, 2, 3,
	1e300,
	math.MaxFloat64,
	math.Inf(1),
}

// Samples returns the probe values: NaN, then each magnitude with both signs.
func Samples() []float64 {
	out := make([]float64, 0, 1+2*len(magnitudes))
	out = append(out, math.NaN())
	for _, m := range magnitudes {
		out = append(out, m, -m)
	}
	return out
}

// Eval computes every result op may return for the given operands.
// Most operators have exactly one result. min and max of two zeros may
// return either operand, so both are reported.
func Eval(op ir.Operator, x, y float64) ([]float64, error) {
	switch op {
	case ir.OpNeg:
		return one(-x)
	case ir.OpAbs:
		return one(math.Abs(x))
	case ir.OpFloor:
		return one(math.Floor(x))
	case ir.OpCeil:
		return one(math.Ceil(x))
	case ir.OpRound:
		return one(math.Round(x))
	case ir.OpTrunc:
		return one(math.Trunc(x))
	case ir.OpFract:
		_, frac := math.Modf(x)
		return one(frac)
	case ir.OpSignum:
		return one(math.Copysign(1, x))
	case ir.OpSqrt:
		return one(math.Sqrt(x))
	case ir.OpRecip:
		return one(1 / x)
	case ir.OpExp:
		return one(math.Exp(x))
	case ir.OpLn:
		return one(math.Log(x))
	case ir.OpAdd:
		return one(x + y)
	case ir.OpSub:
		return one(x - y)
	case ir.OpMul:
		return one(x * y)
	case ir.OpDiv:
		return one(x / y)
	case ir.OpRem:
		return one(math.Mod(x, y))
	case ir.OpHypot:
		return one(math.Hypot(x, y))
	case ir.OpMin:
		if x == 0 && y == 0 {
			return []float64{x, y}, nil
		}
		return one(math.Min(x, y))
	case ir.OpMax:
		if x == 0 && y == 0 {
			return []float64{x, y}, nil
		}
		return one(math.Max(x, y))
	case ir.OpCopysign:
		return one(math.Copysign(x, y))
	}
	return nil, fmt.Errorf("probe: no evaluator for operator %q", op)
}

func one(x float64) ([]float64, error) {
	return []float64{x}, nil
}
