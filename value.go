package spectre

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the kind of a value.
type Kind int8

const (
	// KindInt, KindReal, and KindComplex form the numeric tower, in order.
	KindInt Kind = iota
	KindReal
	KindComplex
	KindBool
	KindFunc
	KindNative
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindReal:
		return "real"
	case KindComplex:
		return "complex"
	case KindBool:
		return "bool"
	case KindFunc:
		return "function"
	case KindNative:
		return "native function"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// numeric reports whether k is in the numeric tower.
func (k Kind) numeric() bool {
	return k <= KindComplex
}

// Value is a value of the language. The zero Value is the integer 0.
type Value struct {
	kind Kind
	i    int32
	x    float64
	c    complex128
	b    bool
	fn   *Function
	nat  *Native
}

// Function is a user-defined function. It has no bindings of its own: its
// body sees only its parameters and the built-ins.
type Function struct {
	// Name is the name the function was defined with.
	Name string
	// Params is the parameter names in order.
	Params []string
	body   *node
}

// Body returns the printed form of the function's body.
func (f *Function) Body() string {
	return f.body.String()
}

// Native is a function implemented in Go.
type Native struct {
	Name string
	Fn   Func
}

// Int returns an integer value.
func Int(i int32) Value {
	return Value{kind: KindInt, i: i}
}

// Real returns a real value.
func Real(x float64) Value {
	return Value{kind: KindReal, x: x}
}

// Complex returns a complex value.
func Complex(re, im float64) Value {
	return Value{kind: KindComplex, c: complex(re, im)}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NativeFunc returns a value calling fn.
func NativeFunc(name string, fn Func) Value {
	return Value{kind: KindNative, nat: &Native{Name: name, Fn: fn}}
}

func funcValue(fn *Function) Value {
	return Value{kind: KindFunc, fn: fn}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Int32 returns the value of an integer.
func (v Value) Int32() (int32, bool) {
	return v.i, v.kind == KindInt
}

// Float64 returns the value of an integer or real as a float64.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindReal:
		return v.x, true
	}
	return 0, false
}

// Complex128 returns the value of any numeric kind as a complex128.
func (v Value) Complex128() (complex128, bool) {
	switch v.kind {
	case KindInt:
		return complex(float64(v.i), 0), true
	case KindReal:
		return complex(v.x, 0), true
	case KindComplex:
		return v.c, true
	}
	return 0, false
}

// Boolean returns the value of a bool.
func (v Value) Boolean() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Function returns the function of a user-defined function value.
func (v Value) Function() (*Function, bool) {
	return v.fn, v.kind == KindFunc
}

// Native returns the function of a native function value.
func (v Value) Native() (*Native, bool) {
	return v.nat, v.kind == KindNative
}

// Truthy converts the value to a condition. Numbers are true when nonzero,
// except that complex numbers are true only when both parts are nonzero.
// Functions are always true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindInt:
		return v.i != 0
	case KindReal:
		return v.x != 0
	case KindComplex:
		return real(v.c) != 0 && imag(v.c) != 0
	case KindBool:
		return v.b
	default:
		return true
	}
}

// Equal reports whether two values are equal. Values of different kinds are
// never equal, so 2 and 2.0 differ. Functions are equal only to themselves.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == w.i
	case KindReal:
		return v.x == w.x
	case KindComplex:
		return v.c == w.c
	case KindBool:
		return v.b == w.b
	case KindFunc:
		return v.fn == w.fn
	case KindNative:
		return v.nat == w.nat
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(int64(v.i), 10)
	case KindReal:
		return formatReal(v.x)
	case KindComplex:
		re, im := real(v.c), imag(v.c)
		if math.Signbit(im) && !math.IsNaN(im) {
			return formatReal(re) + " - " + formatReal(-im) + "i"
		}
		return formatReal(re) + " + " + formatReal(im) + "i"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindFunc:
		return "<fn " + v.fn.Name + ">"
	case KindNative:
		return "<native fn " + v.nat.Name + ">"
	default:
		panic("spectre: invalid value kind " + v.kind.String())
	}
}

func formatReal(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if i := strings.Index(s, "e+"); i >= 0 {
		// 1e+21 -> 1e21
		s = s[:i+1] + s[i+2:]
	}
	return s
}
