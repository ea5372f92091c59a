package spectre

import (
	"io"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Func is a function implemented in Go.
type Func interface {
	// Call evaluates the function. The arguments have already been
	// evaluated in the caller's scope, and len(args) is a number for which
	// CanCall returned true. Call may modify the elements of args. Errors
	// should be *DomainError for arguments outside the function's domain.
	Call(ip *Interpreter, args []Value) (Value, error)

	// CanCall returns whether the function can be called with n arguments.
	CanCall(n int) bool
}

type monadic struct {
	f func(x Value) (Value, error)
}

func (m monadic) Call(ip *Interpreter, args []Value) (Value, error) {
	return m.f(args[0])
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one argument into a Func.
func Monadic(f func(x Value) (Value, error)) Func {
	return monadic{f}
}

type dyadic struct {
	f func(x, y Value) (Value, error)
}

func (d dyadic) Call(ip *Interpreter, args []Value) (Value, error) {
	return d.f(args[0], args[1])
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a function of two arguments into a Func.
func Dyadic(f func(x, y Value) (Value, error)) Func {
	return dyadic{f}
}

type variadic struct {
	min, max int
	f        func(ip *Interpreter, args []Value) (Value, error)
}

func (v variadic) Call(ip *Interpreter, args []Value) (Value, error) {
	return v.f(ip, args)
}

func (v variadic) CanCall(n int) bool {
	return v.min <= n && (v.max < 0 || n <= v.max)
}

// Fixed wraps a function of exactly n arguments into a Func.
func Fixed(n int, f func(ip *Interpreter, args []Value) (Value, error)) Func {
	return variadic{n, n, f}
}

// Variadic wraps a function of at least min arguments into a Func.
func Variadic(min int, f func(ip *Interpreter, args []Value) (Value, error)) Func {
	return variadic{min, -1, f}
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// builtins is the table of names bound in every new scope.
var builtins = []struct {
	name string
	val  Value
}{
	{"π", Real(math.Pi)},
	{"τ", Real(2 * math.Pi)},
	{"e", Real(math.E)},
	{"φ", Real(math.Phi)},
	{"ϕ", Real(math.Phi)},
	{"∞", Real(math.Inf(1))},
	{"i", Complex(0, 1)},

	{"abs", NativeFunc("abs", unary(nodeAbs))},
	{"floor", NativeFunc("floor", unary(nodeFloor))},
	{"ceil", NativeFunc("ceil", unary(nodeCeil))},
	{"round", NativeFunc("round", unary(nodeRound))},
	{"trunc", NativeFunc("trunc", Monadic(func(x Value) (Value, error) {
		return rounding("trunc", x, math.Trunc)
	}))},
	{"fract", NativeFunc("fract", realfunc("fract", func(x float64) float64 {
		return x - math.Trunc(x)
	}, nil))},
	{"sqrt", NativeFunc("sqrt", unary(nodeSqrt))},
	{"cbrt", NativeFunc("cbrt", realfunc("cbrt", math.Cbrt, nil))},

	{"exp", NativeFunc("exp", bigExp)},
	{"ln", NativeFunc("ln", bigLn)},
	{"log", NativeFunc("log", bigLog)},

	{"sin", NativeFunc("sin", realfunc("sin", math.Sin, cmplx.Sin))},
	{"cos", NativeFunc("cos", realfunc("cos", math.Cos, cmplx.Cos))},
	{"tan", NativeFunc("tan", realfunc("tan", math.Tan, cmplx.Tan))},
	{"asin", NativeFunc("asin", realfunc("asin", math.Asin, cmplx.Asin))},
	{"acos", NativeFunc("acos", realfunc("acos", math.Acos, cmplx.Acos))},
	{"atan", NativeFunc("atan", realfunc("atan", math.Atan, cmplx.Atan))},

	{"gcd", NativeFunc("gcd", Dyadic(gcd))},
	{"lcm", NativeFunc("lcm", Dyadic(lcm))},
	{"min", NativeFunc("min", Variadic(1, minimum))},
	{"max", NativeFunc("max", Variadic(1, maximum))},
	{"clamp", NativeFunc("clamp", Fixed(3, clamp))},

	{"Re", NativeFunc("Re", complexfunc("Re", func(z complex128) Value { return Real(real(z)) }))},
	{"Im", NativeFunc("Im", complexfunc("Im", func(z complex128) Value { return Real(imag(z)) }))},
	{"arg", NativeFunc("arg", complexfunc("arg", func(z complex128) Value { return Real(cmplx.Phase(z)) }))},
	{"phase", NativeFunc("phase", complexfunc("phase", func(z complex128) Value { return Real(cmplx.Phase(z)) }))},
	{"conj", NativeFunc("conj", complexfunc("conj", func(z complex128) Value { return Complex(real(z), -imag(z)) }))},
	{"cis", NativeFunc("cis", Monadic(cis))},

	{"print", NativeFunc("print", Variadic(0, printValues))},
}

// seed binds the built-ins in a scope.
func seed(s *Scope) {
	for _, b := range builtins {
		s.Set(b.name, b.val)
	}
}

// unary makes a native function of a unary operator.
func unary(op nodeKind) Func {
	return Monadic(func(x Value) (Value, error) {
		return unop(op, x)
	})
}

type realfn struct {
	name string
	f    func(float64) float64
	c    func(complex128) complex128
}

func (r realfn) Call(ip *Interpreter, args []Value) (Value, error) {
	x := args[0]
	switch {
	case scalar(x.kind):
		t, _ := x.Float64()
		return Real(r.f(t)), nil
	case x.kind == KindComplex && r.c != nil:
		z := r.c(x.c)
		return Complex(real(z), imag(z)), nil
	}
	return Value{}, operandError(r.name, x)
}

func (r realfn) CanCall(n int) bool {
	return n == 1
}

// realfunc makes a native function of one real argument. Integers are
// converted to reals. Complex arguments use c, or are rejected if c is nil.
func realfunc(name string, f func(float64) float64, c func(complex128) complex128) Func {
	return realfn{name, f, c}
}

// complexfunc makes a native function of one number, converted to complex.
func complexfunc(name string, f func(complex128) Value) Func {
	return Monadic(func(x Value) (Value, error) {
		z, ok := x.Complex128()
		if !ok {
			return Value{}, operandError(name, x)
		}
		return f(z), nil
	})
}

// cis(x) is cos(x) + i sin(x).
func cis(x Value) (Value, error) {
	t, ok := x.Float64()
	if !ok {
		return Value{}, operandError("cis", x)
	}
	return Complex(math.Cos(t), math.Sin(t)), nil
}

func ints(name string, x, y Value) (a, b int32, err error) {
	a, ok := x.Int32()
	if !ok {
		return 0, 0, operandError(name, x, y)
	}
	b, ok = y.Int32()
	if !ok {
		return 0, 0, operandError(name, x, y)
	}
	return a, b, nil
}

func gcd(x, y Value) (Value, error) {
	a, b, err := ints("gcd", x, y)
	if err != nil {
		return Value{}, err
	}
	return Int(igcd(a, b)), nil
}

func igcd(a, b int32) int32 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		a = -a
	}
	return a
}

func lcm(x, y Value) (Value, error) {
	a, b, err := ints("lcm", x, y)
	if err != nil {
		return Value{}, err
	}
	if a == 0 || b == 0 {
		return Int(0), nil
	}
	r := a / igcd(a, b) * b
	if r < 0 {
		r = -r
	}
	return Int(r), nil
}

// extremum makes min or max. The result has the kind to which all arguments
// promote.
func extremum(op nodeKind) func(ip *Interpreter, args []Value) (Value, error) {
	name := "min"
	if op == nodeGt {
		name = "max"
	}
	return func(ip *Interpreter, args []Value) (Value, error) {
		r := args[0]
		k := r.kind
		for _, x := range args {
			if !scalar(x.kind) {
				return Value{}, operandError(name, x)
			}
			k = promote(k, x.kind)
			if b, _ := compare(op, x, r).Boolean(); b {
				r = x
			}
		}
		if k == KindReal && r.kind == KindInt {
			r = Real(float64(r.i))
		}
		return r, nil
	}
}

var (
	minimum = extremum(nodeLt)
	maximum = extremum(nodeGt)
)

// clamp(x, lo, hi) is min(max(x, lo), hi).
func clamp(ip *Interpreter, args []Value) (Value, error) {
	x, err := maximum(ip, args[:2])
	if err != nil {
		return Value{}, err
	}
	return minimum(ip, []Value{x, args[2]})
}

// printValues writes its arguments separated by spaces to the interpreter's
// output.
func printValues(ip *Interpreter, args []Value) (Value, error) {
	s := make([]string, len(args))
	for i, x := range args {
		s[i] = x.String()
	}
	if _, err := io.WriteString(ip.out, strings.Join(s, " ")+"\n"); err != nil {
		return Value{}, err
	}
	return Int(0), nil
}
