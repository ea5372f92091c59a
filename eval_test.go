package spectre_test

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"reflect"
	"regexp"
	"testing"

	"github.com/zephyrtronium/spectre"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    spectre.Value
	}{
		{"empty", "", spectre.Int(0)},
		{"blank", "\n;\n", spectre.Int(0)},
		{"int", "1", spectre.Int(1)},
		{"real", "1.5", spectre.Real(1.5)},
		{"juxt", "2 3", spectre.Int(6)},
		{"juxt-var", "x = 5; 2x", spectre.Int(10)},
		{"juxt-paren", "x = 3; 2(x + 1)", spectre.Int(8)},
		{"sub", "1 - 2 - 3", spectre.Int(2)},
		{"div", "8 / 2 / 2", spectre.Int(8)},
		{"int-div", "7 / 2", spectre.Int(3)},
		{"real-div", "7.0 / 2", spectre.Real(3.5)},
		{"int-rem", "-7 % 3", spectre.Int(-1)},
		{"real-rem", "7.5 % 2", spectre.Real(1.5)},
		{"div-inf", "1 / 0.0", spectre.Real(math.Inf(1))},
		{"wrap", "2147483647 + 1", spectre.Int(math.MinInt32)},
		{"neg-pow", "-2^2", spectre.Int(-4)},
		{"pow-neg", "2^-2", spectre.Real(0.25)},
		{"pow-chain", "2^3^2", spectre.Int(512)},
		{"pow-wrap", "2^31", spectre.Int(math.MinInt32)},
		{"sqrt", "√16", spectre.Real(4)},
		{"sqrt-pow", "√4^2", spectre.Real(4)},
		{"cbrt", "∛27", spectre.Int(3)},
		{"fort", "∜16", spectre.Int(2)},
		{"fact", "5!", spectre.Int(120)},
		{"fact-zero", "0!", spectre.Int(1)},
		{"fact-wrap", "13!", spectre.Int(1932053504)},
		{"fact-vanish", "34!", spectre.Int(0)},
		{"fact-real", "3.7!", spectre.Int(6)},
		{"abs", "|-3|", spectre.Int(3)},
		{"abs-complex", "|3 - 4i|", spectre.Real(5)},
		{"floor", "⌊2.5⌋", spectre.Real(2)},
		{"floor-int", "⌊7⌋", spectre.Int(7)},
		{"ceil", "⌈2.5⌉", spectre.Real(3)},
		{"floor-ceil", "⌊-2.5⌉", spectre.Real(2.5)},
		{"square", "x = 3; x²", spectre.Int(9)},
		{"sup-expr", "2⁽¹⁺²⁾", spectre.Int(8)},
		{"complex", "1 + 2i", spectre.Complex(1, 2)},
		{"i-squared", "i * i", spectre.Complex(-1, 0)},
		{"complex-mul", "1 + 2*i", spectre.Complex(1, 2)},
		{"complex-div", "(1 + 2i) / (1 - i)", spectre.Complex(-0.5, 1.5)},
		{"complex-pow-real", "2^i", spectre.Complex(2, 0)},
		{"pi", "π", spectre.Real(math.Pi)},
		{"tau", "τ", spectre.Real(2 * math.Pi)},
		{"e", "e", spectre.Real(math.E)},
		{"inf", "∞", spectre.Real(math.Inf(1))},

		// comparison and logic
		{"eq-complex", "(1 + 2i) == (1 + 2i)", spectre.Bool(true)},
		{"eq-kinds", "2 == 2.0", spectre.Bool(false)},
		{"eq-kinds-complex", "1 == 1 + 0i", spectre.Bool(false)},
		{"ne-kinds", "2.0 != 2", spectre.Bool(true)},
		{"eq-real", "2.0 == 4 / 2.0", spectre.Bool(true)},
		{"ne", "1 != 2", spectre.Bool(true)},
		{"lt", "1 < 2", spectre.Bool(true)},
		{"le", "2 <= 2", spectre.Bool(true)},
		{"gt", "3 > 4", spectre.Bool(false)},
		{"ge", "3 >= 3.5", spectre.Bool(false)},
		{"cmp-complex", "3i > 2", spectre.Bool(true)},
		{"not", "not 0", spectre.Bool(true)},
		{"and", "1 and 0", spectre.Bool(false)},
		{"or", "0 or 2", spectre.Bool(true)},
		{"and-short", "0 and undefined", spectre.Bool(false)},
		{"or-short", "1 or undefined", spectre.Bool(true)},

		// control flow
		{"if", "if 1 { 2 } else { 3 }", spectre.Int(2)},
		{"if-no-else", "if 0 { 2 }", spectre.Int(0)},
		{"if-complex", "if 1i { 2 } else { 3 }", spectre.Int(3)},
		{"else-if", "if 0 { 1 } else if 1 { 2 } else { 3 }", spectre.Int(2)},
		{"while", "x = 0; while x < 5 { x = x + 1 }", spectre.Int(5)},
		{"while-after", "x = 0 while x < 3 { x = x + 1 }", spectre.Int(3)},
		{"while-never", "while 0 { 1 }", spectre.Int(0)},
		{"while-no-sep", "n = 1; k = 0 while k < 4 { k = k + 1; n = 2n }", spectre.Int(16)},

		// functions
		{"call", "f(x) = x² + 1; f(3)", spectre.Int(10)},
		{"call2", "f(x, y) = x - y; f(5, 3)", spectre.Int(2)},
		{"call0", "f() = 7; f()", spectre.Int(7)},
		{"caller-args", "y = 5; f(x) = x; f(y)", spectre.Int(5)},
		{"scale", "f(x) = 2x; g = 3 * f; g(2)", spectre.Int(12)},
		{"power", "f(x) = x; g = f ^ 2; g(3)", spectre.Int(9)},
		{"divide", "f(x) = x; g = f / 2.0; g(3)", spectre.Real(1.5)},
		{"divide-left", "f(x) = x; g = 12 / f; g(4)", spectre.Int(3)},
		{"rewrite-call", "f(x) = x + 1; g = 2 * f; g(3)", spectre.Int(8)},
		{"rewrite-juxt", "f(x) = x^2 + 1; g = 2f; g(3)", spectre.Int(20)},
		{"rewrite-keeps", "f(x) = x + 1; g = 2 * f; f(1)", spectre.Int(2)},

		// built-ins
		{"abs-fn", "abs(-2.5)", spectre.Real(2.5)},
		{"sqrt-fn", "sqrt(9)", spectre.Real(3)},
		{"trunc", "trunc(-2.7)", spectre.Real(-2)},
		{"fract", "fract(2.5)", spectre.Real(0.5)},
		{"cbrt-fn", "cbrt(27)", spectre.Real(3)},
		{"gcd", "gcd(12, 18)", spectre.Int(6)},
		{"lcm", "lcm(4, 6)", spectre.Int(12)},
		{"lcm-zero", "lcm(0, 5)", spectre.Int(0)},
		{"min", "min(3, 1, 2)", spectre.Int(1)},
		{"max", "max(1, 2.5, 2)", spectre.Real(2.5)},
		{"min-promote", "min(1, 2.5)", spectre.Real(1)},
		{"clamp", "clamp(5, 0, 3)", spectre.Int(3)},
		{"re", "Re(1 + 2i)", spectre.Real(1)},
		{"im", "Im(1 + 2i)", spectre.Real(2)},
		{"re-int", "Re(3)", spectre.Real(3)},
		{"conj", "conj(1 + 2i)", spectre.Complex(1, -2)},
		{"cis", "cis(0)", spectre.Complex(1, 0)},
		{"sin", "sin(0)", spectre.Real(0)},
		{"exp-zero", "exp(0)", spectre.Real(1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := spectre.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if r.Kind() != c.r.Kind() || !r.Equal(c.r) {
				t.Errorf("wrong result from %q: want %v (%v), got %v (%v)", c.src, c.r, c.r.Kind(), r, r.Kind())
			}
		})
	}
}

func TestEvalApprox(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"degree", "180°", math.Pi},
		{"degree-real", "90.0°", math.Pi / 2},
		{"exp", "exp(1)", math.E},
		{"ln", "ln(e)", 1},
		{"log", "log(1000)", 3},
		{"log-base", "log(8, 2)", 3},
		{"root-two", "2^0.5", math.Sqrt2},
		{"sin-pi", "sin(π)", 0},
		{"phase", "arg(i)", math.Pi / 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := spectre.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			x, ok := r.Float64()
			if !ok {
				t.Fatalf("%q gave %v, not a real", c.src, r.Kind())
			}
			if math.Abs(x-c.r) > 1e-12*math.Max(1, math.Abs(c.r)) {
				t.Errorf("wrong result from %q: want %g, got %g", c.src, c.r, x)
			}
		})
	}
}

func TestEvalComplexPow(t *testing.T) {
	// Complex powers raise magnitudes and angles separately, and the angle of
	// z is atan2(Im z, |z|).
	cases := []struct {
		name string
		src  string
		r    complex128
	}{
		{"i-squared", "i^2", complex(math.Cos(1), math.Sin(1))},
		{"one-plus-i", "(1 + i)^2", complex(1.0806046117362798, 1.6829419696157935)},
		{"real-base", "2^i", complex(2, 0)},
		{"zero-angles", "2.0^(1 + 0i)", complex(2*math.Cos(1), 2*math.Sin(1))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := spectre.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if r.Kind() != spectre.KindComplex {
				t.Fatalf("%q gave %v, not a complex", c.src, r.Kind())
			}
			z, _ := r.Complex128()
			if cmplx.Abs(z-c.r) > 1e-12 {
				t.Errorf("wrong result from %q: want %v, got %v", c.src, c.r, z)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind spectre.ErrorKind
		fn   string
		span spectre.Span
	}{
		{"undefined", "x", spectre.ErrUndefined, "x", spectre.Span{Start: 0, End: 1}},
		{"undefined-call", "g(1)", spectre.ErrUndefined, "g", spectre.Span{Start: 0, End: 4}},
		{"isolated-var", "y = 1; f(x) = x + y; f(2)", spectre.ErrUndefined, "y", spectre.Span{Start: 18, End: 19}},
		{"isolated-func", "sq(x) = x*x; f(x) = sq(x); f(2)", spectre.ErrUndefined, "sq", spectre.Span{Start: 20, End: 25}},
		{"isolated-self", "f(x) = f(x); f(1)", spectre.ErrUndefined, "f", spectre.Span{Start: 7, End: 11}},
		{"arity", "f(x) = x; f(1, 2)", spectre.ErrArity, "f", spectre.Span{Start: 10, End: 17}},
		{"arity-native", "sin(1, 2)", spectre.ErrArity, "sin", spectre.Span{Start: 0, End: 9}},
		{"not-callable", "x = 1; x(2)", spectre.ErrNotCallable, "x", spectre.Span{Start: 7, End: 11}},
		{"div-zero", "1 / 0", spectre.ErrDivideByZero, "", spectre.Span{Start: 0, End: 5}},
		{"rem-zero", "5 % 0", spectre.ErrDivideByZero, "", spectre.Span{Start: 0, End: 5}},
		{"rem-complex", "(1 + i) % 2", spectre.ErrOperand, "", spectre.Span{Start: 0, End: 11}},
		{"bool-add", "(1 == 1) + 1", spectre.ErrOperand, "", spectre.Span{Start: 0, End: 12}},
		{"bool-neg", "-(1 == 1)", spectre.ErrOperand, "", spectre.Span{Start: 0, End: 9}},
		{"func-add", "f(x) = x; f + 1", spectre.ErrOperand, "", spectre.Span{Start: 10, End: 15}},
		{"func-func", "f(x) = x; f * f", spectre.ErrOperand, "", spectre.Span{Start: 10, End: 15}},
		{"sqrt-complex", "√(1 + i)", spectre.ErrOperand, "", spectre.Span{Start: 0, End: 10}},
		{"fact-neg", "(-3)!", spectre.ErrDomain, "", spectre.Span{Start: 0, End: 5}},
		{"fort-neg", "∜(-16)", spectre.ErrDomain, "", spectre.Span{Start: 0, End: 8}},
		{"ln-neg", "ln(-1)", spectre.ErrDomain, "ln", spectre.Span{Start: 0, End: 6}},
		{"gcd-real", "gcd(1.5, 2)", spectre.ErrOperand, "gcd", spectre.Span{Start: 0, End: 11}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := spectre.EvalString(c.src)
			var e *spectre.EvalError
			if !errors.As(err, &e) {
				t.Fatalf("%q gave %#v, not *EvalError", c.src, err)
			}
			if e.Kind != c.kind {
				t.Errorf("%q gave wrong kind: want %v, got %v (%v)", c.src, c.kind, e.Kind, err)
			}
			if e.Name != c.fn {
				t.Errorf("%q gave wrong name: want %q, got %q", c.src, c.fn, e.Name)
			}
			if e.Span != c.span {
				t.Errorf("%q gave wrong span: want %v, got %v", c.src, c.span, e.Span)
			}
			if e.Message() != c.kind.String() {
				t.Errorf("message %q does not name the kind %v", e.Message(), c.kind)
			}
		})
	}
}

func TestEvalErrorMessages(t *testing.T) {
	cases := []struct {
		src string
		res []string
	}{
		{"x", []string{`^0: undefined variable: "x" is not defined$`}},
		{"g(1)", []string{`\bfunction "g" is not defined\b`}},
		{"x = 1; x(2)", []string{`"x" is an integer`}},
		{"b = 1 == 1; b()", []string{`"b" is a bool`}},
		{"f(x) = x; f()", []string{`\bf takes 1 argument, got 0\b`}},
		{"sin(1, 2)", []string{`\bsin cannot take 2 arguments\b`}},
		{"(1 == 1) + 1", []string{`cannot apply \+ to bool and integer`}},
		{"ln(-1)", []string{`-1 outside domain of ln \(argument 1\)`}},
		{"(-3)!", []string{`-3 outside domain of !`}},
	}
	for _, c := range cases {
		_, err := spectre.EvalString(c.src)
		if err == nil {
			t.Errorf("%q gave no error", c.src)
			continue
		}
		for _, re := range c.res {
			if !regexp.MustCompile(re).MatchString(err.Error()) {
				t.Errorf("error from %q does not match %s: %v", c.src, re, err)
			}
		}
	}
}

func TestEvalDomainUnwrap(t *testing.T) {
	_, err := spectre.EvalString("ln(-2)")
	var d *spectre.DomainError
	if !errors.As(err, &d) {
		t.Fatalf("%#v does not wrap *DomainError", err)
	}
	if d.Func != "ln" || d.Arg != 1 || !d.X.Equal(spectre.Int(-2)) {
		t.Errorf("wrong domain error %+v", d)
	}
}

func TestEvalErrorFunc(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		policy spectre.ScopePolicy
		fn     string
	}{
		{"top-level", "1 / 0", nil, ""},
		{"call-site", "f(x) = x; f(1 / 0)", nil, ""},
		{"body", "f(x) = x + y; f(1)", nil, "f"},
		{"innermost", "g(x) = 1 / x; f(x) = g(x - 1); f(1)", spectre.SharedScope, "g"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := spectre.EvalString(c.src, spectre.Policy(c.policy))
			var e *spectre.EvalError
			if !errors.As(err, &e) {
				t.Fatalf("%q gave %#v, not *EvalError", c.src, err)
			}
			if e.Func != c.fn {
				t.Errorf("%q gave error in %q, want %q (%v)", c.src, e.Func, c.fn, err)
			}
		})
	}
}

func TestScopePolicy(t *testing.T) {
	const fact = "fact(n) = if n <= 1 { 1 } else { n * fact(n - 1) }\n"
	t.Run("isolated", func(t *testing.T) {
		_, err := spectre.EvalString(fact + "fact(5)")
		var e *spectre.EvalError
		if !errors.As(err, &e) || e.Kind != spectre.ErrUndefined || e.Name != "fact" {
			t.Errorf("recursion should fail with an isolated scope, got %v", err)
		}
	})
	t.Run("shared", func(t *testing.T) {
		r, err := spectre.EvalString(fact+"fact(5)", spectre.Policy(spectre.SharedScope))
		if err != nil {
			t.Fatal(err)
		}
		if !r.Equal(spectre.Int(120)) {
			t.Errorf("wrong result %v", r)
		}
	})
	t.Run("shared-no-leak", func(t *testing.T) {
		ip := spectre.NewInterpreter(spectre.Policy(spectre.SharedScope))
		r, err := ip.RunString("y = 2; f(x) = (y = x) + y; f(5)")
		if err != nil {
			t.Fatal(err)
		}
		if !r.Equal(spectre.Int(10)) {
			t.Errorf("wrong result %v", r)
		}
		if y, _ := ip.Lookup("y"); !y.Equal(spectre.Int(2)) {
			t.Errorf("assignment in body changed caller's y to %v", y)
		}
	})
	t.Run("depth", func(t *testing.T) {
		_, err := spectre.EvalString("f(x) = f(x); f(1)", spectre.Policy(spectre.SharedScope), spectre.MaxDepth(10))
		var e *spectre.EvalError
		if !errors.As(err, &e) || e.Kind != spectre.ErrDepth {
			t.Errorf("unbounded recursion gave %v", err)
		}
	})
	t.Run("nil", func(t *testing.T) {
		// A nil policy restores the default.
		_, err := spectre.EvalString(fact+"fact(5)", spectre.Policy(nil))
		if err == nil {
			t.Error("recursion succeeded with the default policy")
		}
	})
}

func TestInterpreter(t *testing.T) {
	ip := spectre.NewInterpreter(spectre.SetVar("x", spectre.Int(2)), nil)
	if x, ok := ip.Lookup("x"); !ok || !x.Equal(spectre.Int(2)) {
		t.Errorf("x should be 2 but is %v (%t)", x, ok)
	}
	if _, ok := ip.Lookup("y"); ok {
		t.Error("interpreter has y")
	}
	if _, ok := ip.Lookup("π"); !ok {
		t.Error("interpreter has no π")
	}

	r, err := ip.RunString("y = x * 3")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(spectre.Int(6)) {
		t.Errorf("assignment gave %v", r)
	}
	if r, _ := ip.RunString("y + 1"); !r.Equal(spectre.Int(7)) {
		t.Errorf("bindings did not persist: got %v", r)
	}

	c := ip.Clone(spectre.SetVars(map[string]spectre.Value{"y": spectre.Real(0.5), "z": spectre.Bool(true)}))
	c.Set("x", spectre.Int(10)).Set("w", spectre.Int(1))
	if y, _ := ip.Lookup("y"); !y.Equal(spectre.Int(6)) {
		t.Errorf("clone changed the original's y to %v", y)
	}
	if _, ok := ip.Lookup("w"); ok {
		t.Error("clone added w to the original")
	}
	if x, _ := c.Lookup("x"); !x.Equal(spectre.Int(10)) {
		t.Errorf("Set on clone gave x = %v", x)
	}
	if z, _ := c.Lookup("z"); !z.Equal(spectre.Bool(true)) {
		t.Errorf("SetVars on clone gave z = %v", z)
	}

	if _, err := ip.RunString("a = 1; b = undefined; c = 3"); err == nil {
		t.Error("undefined name gave no error")
	}
	if _, ok := ip.Lookup("a"); !ok {
		t.Error("binding before the error was lost")
	}
	if _, ok := ip.Lookup("c"); ok {
		t.Error("binding after the error was made")
	}

	if ip.Prec() != 64 {
		t.Errorf("default precision is %d", ip.Prec())
	}
	if p := ip.Clone(spectre.Prec(128)).Prec(); p != 128 {
		t.Errorf("Prec option gave %d", p)
	}
}

func TestScopeNames(t *testing.T) {
	ip := spectre.NewInterpreter()
	n := ip.Scope().Len()
	ip.Set("zz", spectre.Int(1)).Set("aa", spectre.Int(2))
	if ip.Scope().Len() != n+2 {
		t.Errorf("scope has %d names, want %d", ip.Scope().Len(), n+2)
	}
	names := ip.Scope().Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names out of order: %q before %q", names[i-1], names[i])
		}
	}
}

func TestFunctionValue(t *testing.T) {
	ip := spectre.NewInterpreter()
	v, err := ip.RunString("f(x, y) = x + y")
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := v.Function()
	if !ok {
		t.Fatalf("definition gave %v, not a function", v.Kind())
	}
	if fn.Name != "f" || !reflect.DeepEqual(fn.Params, []string{"x", "y"}) || fn.Body() != "(x + y)" {
		t.Errorf("wrong function %s(%q) = %s", fn.Name, fn.Params, fn.Body())
	}
	if v.String() != "<fn f>" {
		t.Errorf("wrong string %q", v.String())
	}
	if f, _ := ip.Lookup("f"); !f.Equal(v) {
		t.Error("bound function is not the returned one")
	}
	g, err := ip.RunString("g = 2 * f; g")
	if err != nil {
		t.Fatal(err)
	}
	if gf, _ := g.Function(); gf.Body() != "(2 * (x + y))" {
		t.Errorf("wrong rewritten body %q", gf.Body())
	}
	if g.Equal(v) {
		t.Error("rewritten function equals the original")
	}
	if !v.Truthy() {
		t.Error("function is not truthy")
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v spectre.Value
		s string
	}{
		{spectre.Value{}, "0"},
		{spectre.Int(-3), "-3"},
		{spectre.Real(2.5), "2.5"},
		{spectre.Real(2), "2"},
		{spectre.Real(1e21), "1e21"},
		{spectre.Real(math.Inf(1)), "∞"},
		{spectre.Real(math.Inf(-1)), "-∞"},
		{spectre.Complex(1, 2), "1 + 2i"},
		{spectre.Complex(1, -2), "1 - 2i"},
		{spectre.Complex(0, 1), "0 + 1i"},
		{spectre.Bool(true), "true"},
		{spectre.NativeFunc("nargs", nil), "<native fn nargs>"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.s {
			t.Errorf("wrong string for %v value: want %q, got %q", c.v.Kind(), c.s, got)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	cases := []struct {
		v spectre.Value
		b bool
	}{
		{spectre.Int(0), false},
		{spectre.Int(-1), true},
		{spectre.Real(0), false},
		{spectre.Real(math.NaN()), true},
		{spectre.Complex(1, 1), true},
		{spectre.Complex(1, 0), false},
		{spectre.Complex(0, 1), false},
		{spectre.Bool(false), false},
		{spectre.Bool(true), true},
		{spectre.NativeFunc("f", nil), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.b {
			t.Errorf("%v is truthy %t, want %t", c.v, got, c.b)
		}
	}
}

func TestValueEqual(t *testing.T) {
	f := spectre.NativeFunc("f", nil)
	cases := []struct {
		a, b spectre.Value
		eq   bool
	}{
		{spectre.Int(2), spectre.Int(2), true},
		{spectre.Int(2), spectre.Real(2), false},
		{spectre.Complex(2, 0), spectre.Int(2), false},
		{spectre.Complex(2, 0), spectre.Complex(2, 0), true},
		{spectre.Complex(2, 1), spectre.Real(2), false},
		{spectre.Real(math.NaN()), spectre.Real(math.NaN()), false},
		{spectre.Bool(true), spectre.Int(1), false},
		{spectre.Bool(true), spectre.Bool(true), true},
		{f, f, true},
		{f, spectre.NativeFunc("f", nil), false},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.eq {
			t.Errorf("%v == %v is %t, want %t", c.a, c.b, got, c.eq)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"nums", "2+3+4"},
		{"vars", "x+y+z"},
		{"loop", "n = 0; while n < 100 { n = n + 1 }"},
		{"call", "f(x) = x² + 1; f(x) + f(y) + f(z)"},
	}
	vars := spectre.SetVars(map[string]spectre.Value{
		"x": spectre.Int(2),
		"y": spectre.Real(3),
		"z": spectre.Complex(4, 1),
	})
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			ip := spectre.NewInterpreter(vars)
			p, err := spectre.ParseString(c.src)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < b.N; i++ {
				ip.Clone().Run(p)
			}
		})
	}
}

func Example() {
	ip := spectre.NewInterpreter()
	if _, err := ip.RunString("f(x) = x³/2.0 - x"); err != nil {
		panic(err)
	}
	for x := int32(0); x < 4; x++ {
		y, err := ip.Set("x", spectre.Int(x)).RunString("f(x)")
		if err != nil {
			panic(err)
		}
		fmt.Printf("x = %v   y = %v\n", x, y)
	}

	// Output:
	// x = 0   y = 0
	// x = 1   y = -0.5
	// x = 2   y = 2
	// x = 3   y = 10.5
}

func ExampleDiagnose() {
	_, err := spectre.EvalString("2 * (3 + 4")
	d, ok := spectre.Diagnose(err)
	if !ok {
		panic(err)
	}
	fmt.Println(d.Message)
	fmt.Println(d.Reason)
	fmt.Println(d.Span)

	// Output:
	// unbalanced bracket "("
	// expected ")" before end of input
	// {4 10}
}
