package ir

// Operator identifies an arithmetic operation with a semantics rule.
type Operator string

// Unary operators.
const (
	OpNeg    Operator = "neg"
	OpAbs    Operator = "abs"
	OpFloor  Operator = "floor"
	OpCeil   Operator = "ceil"
	OpRound  Operator = "round"
	OpTrunc  Operator = "trunc"
	OpFract  Operator = "fract"
	OpSignum Operator = "signum"
	OpSqrt   Operator = "sqrt"
	OpRecip  Operator = "recip"
	OpExp    Operator = "exp"
	OpLn     Operator = "ln"
)

// Binary operators.
const (
	OpAdd      Operator = "add"
	OpSub      Operator = "sub"
	OpMul      Operator = "mul"
	OpDiv      Operator = "div"
	OpRem      Operator = "rem"
	OpHypot    Operator = "hypot"
	OpMin      Operator = "min"
	OpMax      Operator = "max"
	OpCopysign Operator = "copysign"
)

var unaryOperators = []Operator{
	OpNeg, OpAbs, OpFloor, OpCeil, OpRound, OpTrunc,
	OpFract, OpSignum, OpSqrt, OpRecip, OpExp, OpLn,
}

var binaryOperators = []Operator{
	OpAdd, OpSub, OpMul, OpDiv, OpRem, OpHypot, OpMin, OpMax, OpCopysign,
}

// Operators returns every supported operator, unary first, in table order.
func Operators() []Operator {
	ops := make([]Operator, 0, len(unaryOperators)+len(binaryOperators))
	ops = append(ops, unaryOperators...)
	return append(ops, binaryOperators...)
}

// Arity returns 1 or 2 for known operators and 0 otherwise.
func (op Operator) Arity() int {
	for _, u := range unaryOperators {
		if u == op {
			return 1
		}
	}
	for _, b := range binaryOperators {
		if b == op {
			return 2
		}
	}
	return 0
}

// ParseOperator looks up an operator by name.
func ParseOperator(name string) (Operator, bool) {
	op := Operator(name)
	return op, op.Arity() != 0
}
