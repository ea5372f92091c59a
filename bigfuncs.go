package spectre

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// bigfn is a native function of reals computed with arbitrary precision and
// rounded to a real.
type bigfn struct {
	name string
	// f sets out to its result, to the precision of out. If f is called on
	// an argument outside its domain, it should panic with big.ErrNaN.
	f func(out *big.Float, in []*big.Float) *big.Float
	// small computes the function for non-finite arguments and for zero.
	small func(x []float64) float64
	// n is the allowed numbers of arguments.
	n []int
	// positive is whether the function is defined only for non-negative
	// arguments.
	positive bool
}

func (b bigfn) Call(ip *Interpreter, args []Value) (r Value, err error) {
	xs := make([]float64, len(args))
	exact := true
	for i, a := range args {
		x, ok := a.Float64()
		if !ok {
			return Value{}, operandError(b.name, args...)
		}
		if b.positive && x < 0 {
			return Value{}, &DomainError{X: a, Arg: i + 1, Func: b.name}
		}
		exact = exact && x != 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
		xs[i] = x
	}
	if !exact {
		return Real(b.small(xs)), nil
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok || !errors.As(e, &big.ErrNaN{}) {
			panic(p)
		}
		r, err = Value{}, &DomainError{X: args[0], Func: b.name}
	}()
	in := make([]*big.Float, len(xs))
	for i, x := range xs {
		in[i] = new(big.Float).SetPrec(ip.prec).SetFloat64(x)
	}
	out := new(big.Float).SetPrec(ip.prec)
	b.f(out, in)
	y, _ := out.Float64()
	return Real(y), nil
}

func (b bigfn) CanCall(n int) bool {
	for _, k := range b.n {
		if k == n {
			return true
		}
	}
	return false
}

var (
	bigExp = bigfn{
		name: "exp",
		f: func(out *big.Float, in []*big.Float) *big.Float {
			return bigfloat.Exp(out, in[0])
		},
		small: func(x []float64) float64 { return math.Exp(x[0]) },
		n:     []int{1},
	}

	bigLn = bigfn{
		name: "ln",
		f: func(out *big.Float, in []*big.Float) *big.Float {
			return bigfloat.Log(out, in[0])
		},
		small:    func(x []float64) float64 { return math.Log(x[0]) },
		n:        []int{1},
		positive: true,
	}

	// log(x) is the common logarithm, and log(x, b) is the logarithm of x to
	// the base b.
	bigLog = bigfn{
		name: "log",
		f: func(out *big.Float, in []*big.Float) *big.Float {
			base := new(big.Float).SetPrec(out.Prec()).SetFloat64(10)
			if len(in) > 1 {
				base.Set(in[1])
			}
			bigfloat.Log(out, in[0])
			bigfloat.Log(base, base)
			return out.Quo(out, base)
		},
		small: func(x []float64) float64 {
			if len(x) > 1 {
				return math.Log(x[0]) / math.Log(x[1])
			}
			return math.Log10(x[0])
		},
		n:        []int{1, 2},
		positive: true,
	}
)
