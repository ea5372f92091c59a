package spectre

import (
	"math"
	"math/cmplx"
)

// promote returns the kind in the numeric tower to which operands of kinds a
// and b are both converted.
func promote(a, b Kind) Kind {
	if a > b {
		return a
	}
	return b
}

// binop applies an arithmetic or comparison operator to evaluated operands.
// The logical operators short-circuit and are handled by the evaluator.
func binop(op nodeKind, a, b Value) (Value, error) {
	switch op {
	case nodeEq:
		return Bool(a.Equal(b)), nil
	case nodeNe:
		return Bool(!a.Equal(b)), nil
	}
	if a.kind == KindFunc || b.kind == KindFunc {
		return rewrite(op, a, b)
	}
	if !a.kind.numeric() || !b.kind.numeric() {
		return Value{}, operandError(binops[op], a, b)
	}
	switch op {
	case nodeLt, nodeLe, nodeGt, nodeGe:
		return compare(op, a, b), nil
	}
	switch promote(a.kind, b.kind) {
	case KindInt:
		return intop(op, a.i, b.i)
	case KindReal:
		x, _ := a.Float64()
		y, _ := b.Float64()
		return realop(op, x, y), nil
	default:
		x, _ := a.Complex128()
		y, _ := b.Complex128()
		return complexop(op, x, y)
	}
}

func intop(op nodeKind, a, b int32) (Value, error) {
	switch op {
	case nodeAdd:
		return Int(a + b), nil
	case nodeSub:
		return Int(a - b), nil
	case nodeMul:
		return Int(a * b), nil
	case nodeDiv:
		if b == 0 {
			return Value{}, &EvalError{Kind: ErrDivideByZero, Msg: "integer division by zero"}
		}
		return Int(a / b), nil
	case nodeRem:
		if b == 0 {
			return Value{}, &EvalError{Kind: ErrDivideByZero, Msg: "integer remainder by zero"}
		}
		return Int(a % b), nil
	case nodePow:
		if b < 0 {
			return Real(math.Pow(float64(a), float64(b))), nil
		}
		return Int(ipow(a, b)), nil
	}
	panic("spectre: invalid integer operator " + op.String())
}

// ipow computes a^b for b >= 0, wrapping on overflow.
func ipow(a, b int32) int32 {
	r := int32(1)
	for b > 0 {
		if b&1 != 0 {
			r *= a
		}
		a *= a
		b >>= 1
	}
	return r
}

func realop(op nodeKind, a, b float64) Value {
	switch op {
	case nodeAdd:
		return Real(a + b)
	case nodeSub:
		return Real(a - b)
	case nodeMul:
		return Real(a * b)
	case nodeDiv:
		return Real(a / b)
	case nodeRem:
		return Real(math.Mod(a, b))
	case nodePow:
		return Real(math.Pow(a, b))
	}
	panic("spectre: invalid real operator " + op.String())
}

func complexop(op nodeKind, a, b complex128) (Value, error) {
	var r complex128
	switch op {
	case nodeAdd:
		r = a + b
	case nodeSub:
		r = a - b
	case nodeMul:
		r = a * b
	case nodeDiv:
		r = a / b
	case nodePow:
		r = cpow(a, b)
	case nodeRem:
		return Value{}, operandError("%", Value{kind: KindComplex, c: a}, Value{kind: KindComplex, c: b})
	default:
		panic("spectre: invalid complex operator " + op.String())
	}
	return Complex(real(r), imag(r)), nil
}

// cpow raises a to b by taking each operand's magnitude and angle, raising
// the magnitudes and the angles separately, and recombining. It agrees with
// the complex power only in special cases.
func cpow(a, b complex128) complex128 {
	polar := func(z complex128) (m, t float64) {
		m = math.Hypot(real(z), imag(z))
		return m, math.Atan2(imag(z), m)
	}
	m1, t1 := polar(a)
	m2, t2 := polar(b)
	m, t := math.Pow(m1, m2), math.Pow(t1, t2)
	return complex(m*math.Cos(t), m*math.Sin(t))
}

// compare orders two numbers. If either is complex, the squared magnitudes
// are compared instead.
func compare(op nodeKind, a, b Value) Value {
	var x, y float64
	switch promote(a.kind, b.kind) {
	case KindInt:
		return Bool(order(op, a.i < b.i, a.i == b.i))
	case KindReal:
		x, _ = a.Float64()
		y, _ = b.Float64()
	default:
		x, y = sqmag(a), sqmag(b)
	}
	return Bool(order(op, x < y, x == y))
}

func order(op nodeKind, lt, eq bool) bool {
	switch op {
	case nodeLt:
		return lt
	case nodeLe:
		return lt || eq
	case nodeGt:
		return !lt && !eq
	case nodeGe:
		return !lt
	}
	panic("spectre: invalid comparison " + op.String())
}

func sqmag(v Value) float64 {
	z, _ := v.Complex128()
	return real(z)*real(z) + imag(z)*imag(z)
}

// rewrite combines a function and an integer or real scalar under *, /, %,
// or ^ into a new function whose body applies the operator to the original
// body and the scalar, which keeps the side it was written on.
func rewrite(op nodeKind, a, b Value) (Value, error) {
	switch op {
	case nodeMul, nodeDiv, nodeRem, nodePow:
	default:
		return Value{}, operandError(binops[op], a, b)
	}
	var fn *Function
	var body *node
	switch {
	case a.kind == KindFunc && scalar(b.kind):
		fn = a.fn
		body = &node{kind: op, left: fn.body, right: literal(b), span: fn.body.span}
	case b.kind == KindFunc && scalar(a.kind):
		fn = b.fn
		body = &node{kind: op, left: literal(a), right: fn.body, span: fn.body.span}
	default:
		return Value{}, operandError(binops[op], a, b)
	}
	return funcValue(&Function{Name: fn.Name, Params: fn.Params, body: body}), nil
}

func scalar(k Kind) bool {
	return k == KindInt || k == KindReal
}

// literal creates a literal node for an integer or real.
func literal(v Value) *node {
	if v.kind == KindInt {
		return &node{kind: nodeInt, ival: v.i}
	}
	return &node{kind: nodeReal, rval: v.x}
}

// unops are the spellings of unary operators in error messages.
var unops = map[nodeKind]string{
	nodePos:    "+",
	nodeNeg:    "-",
	nodeNot:    "not",
	nodeAbs:    "|x|",
	nodeFloor:  "⌊x⌋",
	nodeCeil:   "⌈x⌉",
	nodeRound:  "round",
	nodeDegree: "°",
	nodeFact:   "!",
	nodeSqrt:   "√",
	nodeCbrt:   "∛",
	nodeFort:   "∜",
}

// unop applies a unary operator to an evaluated operand.
func unop(op nodeKind, v Value) (Value, error) {
	if op == nodeNot {
		return Bool(!v.Truthy()), nil
	}
	if !v.kind.numeric() {
		return Value{}, operandError(unops[op], v)
	}
	switch op {
	case nodePos:
		return v, nil
	case nodeNeg:
		switch v.kind {
		case KindInt:
			return Int(-v.i), nil
		case KindReal:
			return Real(-v.x), nil
		}
		return Complex(-real(v.c), -imag(v.c)), nil
	case nodeAbs:
		switch v.kind {
		case KindInt:
			if v.i < 0 {
				return Int(-v.i), nil
			}
			return v, nil
		case KindReal:
			return Real(math.Abs(v.x)), nil
		}
		return Real(cmplx.Abs(v.c)), nil
	case nodeFloor:
		return rounding("⌊x⌋", v, math.Floor)
	case nodeCeil:
		return rounding("⌈x⌉", v, math.Ceil)
	case nodeRound:
		return rounding("round", v, math.Round)
	case nodeDegree:
		const rad = math.Pi / 180
		switch v.kind {
		case KindInt, KindReal:
			x, _ := v.Float64()
			return Real(x * rad), nil
		}
		return Complex(real(v.c)*rad, imag(v.c)*rad), nil
	case nodeFact:
		return factorial(v)
	case nodeSqrt:
		switch v.kind {
		case KindInt, KindReal:
			x, _ := v.Float64()
			return Real(math.Sqrt(x)), nil
		}
		return Value{}, operandError("√", v)
	case nodeCbrt:
		switch v.kind {
		case KindInt:
			return Int(int32(math.Cbrt(float64(v.i)))), nil
		case KindReal:
			return Real(math.Cbrt(v.x)), nil
		}
		return Value{}, operandError("∛", v)
	case nodeFort:
		switch v.kind {
		case KindInt:
			if v.i < 0 {
				return Value{}, &DomainError{X: v, Func: "∜"}
			}
			return Int(int32(math.Sqrt(math.Sqrt(float64(v.i))))), nil
		case KindReal:
			return Real(math.Sqrt(math.Sqrt(v.x))), nil
		}
		return Value{}, operandError("∜", v)
	}
	panic("spectre: invalid unary operator " + op.String())
}

// rounding applies a rounding function to a real. Integers are unchanged.
func rounding(name string, v Value, f func(float64) float64) (Value, error) {
	switch v.kind {
	case KindInt:
		return v, nil
	case KindReal:
		return Real(f(v.x)), nil
	}
	return Value{}, operandError(name, v)
}

// factorial computes n! for integer n, wrapping on overflow. Reals are
// truncated first. Negative arguments are outside the domain.
func factorial(v Value) (Value, error) {
	var n int32
	switch v.kind {
	case KindInt:
		n = v.i
	case KindReal:
		t := math.Trunc(v.x)
		if math.IsNaN(t) || t < math.MinInt32 || t > math.MaxInt32 {
			return Value{}, &DomainError{X: v, Func: "!"}
		}
		n = int32(t)
	default:
		return Value{}, operandError("!", v)
	}
	if n < 0 {
		return Value{}, &DomainError{X: v, Func: "!"}
	}
	r := int32(1)
	// Once the product is a multiple of 2³², it stays zero.
	for k := int32(2); k <= n && r != 0; k++ {
		r *= k
	}
	return Int(r), nil
}
