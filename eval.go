package spectre

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// Interpreter evaluates programs. It owns exactly one scope, which programs
// modify with assignments and function definitions. It is not safe to use an
// Interpreter concurrently.
type Interpreter struct {
	scope  *Scope
	out    io.Writer
	prec   uint
	policy ScopePolicy
	// depth is the number of calls to user-defined functions in progress
	// that led to this interpreter, and max is the limit on it.
	depth, max int
}

// Option is an option used when creating an interpreter.
type Option interface {
	interpOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt   map[string]Value
	precopt   uint
	outopt    struct{ w io.Writer }
	policyopt ScopePolicy
	depthopt  int
)

func (varopt) interpOption()    {}
func (varsopt) interpOption()   {}
func (precopt) interpOption()   {}
func (outopt) interpOption()    {}
func (policyopt) interpOption() {}
func (depthopt) interpOption()  {}

// SetVar sets the value of a variable in the interpreter.
func SetVar(name string, val Value) Option {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the interpreter.
func SetVars(vars map[string]Value) Option {
	return varsopt(vars)
}

// Prec sets the precision in bits of the functions that compute with
// arbitrary precision before rounding to a real.
func Prec(prec uint) Option {
	return precopt(prec)
}

// Output sets the writer used by print. The default is os.Stdout.
func Output(w io.Writer) Option {
	return outopt{w}
}

// Policy sets how calls to user-defined functions obtain their scope. The
// default is IsolatedScope.
func Policy(p ScopePolicy) Option {
	return policyopt(p)
}

// MaxDepth sets the limit on nested calls to user-defined functions.
func MaxDepth(n int) Option {
	return depthopt(n)
}

// NewInterpreter creates an interpreter whose scope holds the built-in
// constants and functions. If no precision is given, the default is 64.
func NewInterpreter(opts ...Option) *Interpreter {
	ip := Interpreter{
		scope:  newScope(),
		out:    os.Stdout,
		prec:   64,
		policy: IsolatedScope,
		max:    256,
	}
	seed(ip.scope)
	return ip.Clone(opts...)
}

// Clone creates a copy of an interpreter and applies options to it. The copy
// has its own scope, initially with the same bindings.
func (ip *Interpreter) Clone(opts ...Option) *Interpreter {
	n := Interpreter{
		scope:  ip.scope.clone(),
		out:    ip.out,
		prec:   ip.prec,
		policy: ip.policy,
		depth:  ip.depth,
		max:    ip.max,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.scope.Set(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.scope.Set(k, v)
			}
		case precopt:
			n.prec = uint(opt)
		case outopt:
			n.out = opt.w
		case policyopt:
			n.policy = ScopePolicy(opt)
			if n.policy == nil {
				n.policy = IsolatedScope
			}
		case depthopt:
			n.max = int(opt)
		default:
			panic("spectre: unknown option type")
		}
	}
	return &n
}

// fresh creates an interpreter with the same settings as ip and a scope
// holding only the built-ins.
func (ip *Interpreter) fresh() *Interpreter {
	n := Interpreter{
		scope:  newScope(),
		out:    ip.out,
		prec:   ip.prec,
		policy: ip.policy,
		depth:  ip.depth + 1,
		max:    ip.max,
	}
	seed(n.scope)
	return &n
}

// Run evaluates a program and returns the value of its last statement.
// Bindings made before an error remain in the scope.
func (ip *Interpreter) Run(p *Program) (Value, error) {
	return ip.eval(p.root)
}

// RunString is a shortcut to parse and run source text.
func (ip *Interpreter) RunString(src string) (Value, error) {
	p, err := ParseString(src)
	if err != nil {
		return Value{}, err
	}
	return ip.Run(p)
}

// Set sets the value of a variable. Returns ip for chaining.
func (ip *Interpreter) Set(name string, v Value) *Interpreter {
	ip.scope.Set(name, v)
	return ip
}

// Lookup returns the value bound to a name.
func (ip *Interpreter) Lookup(name string) (Value, bool) {
	return ip.scope.Get(name)
}

// Scope returns the interpreter's scope.
func (ip *Interpreter) Scope() *Scope {
	return ip.scope
}

// Prec returns the precision in bits of arbitrary-precision functions.
func (ip *Interpreter) Prec() uint {
	return ip.prec
}

// Output returns the writer used by print.
func (ip *Interpreter) Output() io.Writer {
	return ip.out
}

// EvalString is a shortcut to evaluate source text in a new interpreter.
func EvalString(src string, opts ...Option) (Value, error) {
	return NewInterpreter(opts...).RunString(src)
}

func (ip *Interpreter) eval(n *node) (Value, error) {
	switch n.kind {
	case nodeInt:
		return Int(n.ival), nil
	case nodeReal:
		return Real(n.rval), nil
	case nodeName:
		v, ok := ip.scope.Get(n.name)
		if !ok {
			return Value{}, &EvalError{Kind: ErrUndefined, Name: n.name, Msg: strconv.Quote(n.name) + " is not defined", Span: n.span}
		}
		return v, nil
	case nodeAssign:
		v, err := ip.eval(n.left)
		if err != nil {
			return Value{}, err
		}
		ip.scope.Set(n.name, v)
		return v, nil
	case nodeIf:
		c, err := ip.eval(n.left)
		if err != nil {
			return Value{}, err
		}
		switch {
		case c.Truthy():
			return ip.eval(n.right)
		case n.alt != nil:
			return ip.eval(n.alt)
		}
		return Int(0), nil
	case nodeWhile:
		r := Int(0)
		for {
			c, err := ip.eval(n.left)
			if err != nil {
				return Value{}, err
			}
			if !c.Truthy() {
				return r, nil
			}
			if r, err = ip.eval(n.right); err != nil {
				return Value{}, err
			}
		}
	case nodeFunc:
		v := funcValue(&Function{Name: n.name, Params: n.params, body: n.left})
		ip.scope.Set(n.name, v)
		return v, nil
	case nodeCall:
		return ip.call(n)
	case nodeBlock:
		r := Int(0)
		for _, s := range n.list {
			var err error
			if r, err = ip.eval(s); err != nil {
				return Value{}, err
			}
		}
		return r, nil
	case nodeEnd:
		return Int(0), nil
	case nodeAnd, nodeOr:
		l, err := ip.eval(n.left)
		if err != nil {
			return Value{}, err
		}
		if l.Truthy() == (n.kind == nodeOr) {
			return Bool(l.Truthy()), nil
		}
		r, err := ip.eval(n.right)
		if err != nil {
			return Value{}, err
		}
		return Bool(r.Truthy()), nil
	}
	switch {
	case n.kind.unary():
		x, err := ip.eval(n.left)
		if err != nil {
			return Value{}, err
		}
		r, err := unop(n.kind, x)
		return r, at(n, err)
	case n.kind.binary():
		x, err := ip.eval(n.left)
		if err != nil {
			return Value{}, err
		}
		y, err := ip.eval(n.right)
		if err != nil {
			return Value{}, err
		}
		r, err := binop(n.kind, x, y)
		return r, at(n, err)
	}
	panic("spectre: invalid AST node " + n.kind.String())
}

// call evaluates a call. Arguments are evaluated in the caller's scope before
// the function is looked up.
func (ip *Interpreter) call(n *node) (Value, error) {
	args := make([]Value, len(n.list))
	for i, a := range n.list {
		var err error
		if args[i], err = ip.eval(a); err != nil {
			return Value{}, err
		}
	}
	f, ok := ip.scope.Get(n.name)
	if !ok {
		return Value{}, &EvalError{Kind: ErrUndefined, Name: n.name, Msg: "function " + strconv.Quote(n.name) + " is not defined", Span: n.span}
	}
	switch f.kind {
	case KindFunc:
		return ip.callFunc(n, f.fn, args)
	case KindNative:
		if f.nat.Fn == nil {
			return Value{}, &EvalError{Kind: ErrNotCallable, Name: n.name, Msg: strconv.Quote(n.name) + " has no implementation", Span: n.span}
		}
		if !f.nat.Fn.CanCall(len(args)) {
			return Value{}, &EvalError{Kind: ErrArity, Name: n.name, Msg: f.nat.Name + " cannot take " + plural(len(args), "argument"), Span: n.span}
		}
		r, err := f.nat.Fn.Call(ip, args)
		if err != nil {
			return Value{}, at(n, err)
		}
		return r, nil
	}
	return Value{}, &EvalError{Kind: ErrNotCallable, Name: n.name, Msg: strconv.Quote(n.name) + " is " + article(f.kind), Span: n.span}
}

func (ip *Interpreter) callFunc(n *node, fn *Function, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return Value{}, &EvalError{Kind: ErrArity, Name: n.name, Msg: fn.Name + " takes " + plural(len(fn.Params), "argument") + ", got " + strconv.Itoa(len(args)), Span: n.span}
	}
	if ip.depth >= ip.max {
		return Value{}, &EvalError{Kind: ErrDepth, Name: n.name, Msg: "more than " + plural(ip.max, "nested call"), Span: n.span}
	}
	callee := ip.policy(ip, fn)
	callee.depth = ip.depth + 1
	for i, p := range fn.Params {
		callee.scope.Set(p, args[i])
	}
	r, err := callee.eval(fn.body)
	if e, ok := err.(*EvalError); ok && e.Func == "" {
		e.Func = fn.Name
	}
	return r, err
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

func article(k Kind) string {
	s := k.String()
	if strings.IndexByte("aeiou", s[0]) >= 0 {
		return "an " + s
	}
	return "a " + s
}

// ErrorKind classifies evaluation errors.
type ErrorKind int8

const (
	// ErrUndefined is a use of a name that has no binding.
	ErrUndefined ErrorKind = iota + 1
	// ErrArity is a call with the wrong number of arguments.
	ErrArity
	// ErrOperand is an operator applied to values of kinds it does not
	// accept.
	ErrOperand
	// ErrDivideByZero is integer division or remainder by zero.
	ErrDivideByZero
	// ErrNotCallable is a call of a value that is not a function.
	ErrNotCallable
	// ErrDomain is a function or operator applied outside its domain.
	ErrDomain
	// ErrDepth is a call nested more deeply than the interpreter allows.
	ErrDepth
	// ErrNative is any other failure of a native function.
	ErrNative
)

var errorKindNames = [...]string{
	ErrUndefined:    "undefined variable",
	ErrArity:        "wrong number of arguments",
	ErrOperand:      "invalid operand",
	ErrDivideByZero: "division by zero",
	ErrNotCallable:  "not a function",
	ErrDomain:       "argument outside domain",
	ErrDepth:        "calls nested too deeply",
	ErrNative:       "native function failed",
}

func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(errorKindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return errorKindNames[k]
}

// EvalError is an error that occurred while evaluating a program.
type EvalError struct {
	// Kind classifies the error.
	Kind ErrorKind
	// Name is the variable or function involved, if any.
	Name string
	// Msg describes the error.
	Msg string
	// Span is the range of the expression being evaluated.
	Span Span
	// Func is the name of the user-defined function whose body raised the
	// error. When it is set, Span is in the source of the definition rather
	// than the source being run.
	Func string
	// Err is the underlying error, if any.
	Err error
}

func (err *EvalError) Error() string {
	return errpos(err.Span.Start, err.Message()+": "+err.Reason())
}

func (err *EvalError) Pos() int        { return err.Span.Start }
func (err *EvalError) Range() Span     { return err.Span }
func (err *EvalError) Message() string { return err.Kind.String() }
func (err *EvalError) Reason() string  { return err.Msg }
func (err *EvalError) Unwrap() error   { return err.Err }

// at attaches the span of n to an error from an operator or native function.
func at(n *node, err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *EvalError:
		if e.Span == (Span{}) {
			e.Span = n.span
		}
		if e.Name == "" {
			e.Name = n.name
		}
		return e
	case *DomainError:
		return &EvalError{Kind: ErrDomain, Name: n.name, Msg: e.Error(), Span: n.span, Err: e}
	}
	return &EvalError{Kind: ErrNative, Name: n.name, Msg: err.Error(), Span: n.span, Err: err}
}

// operandError creates an error for an operator applied to the wrong kinds.
func operandError(op string, vs ...Value) *EvalError {
	kinds := make([]string, len(vs))
	for i, v := range vs {
		kinds[i] = v.kind.String()
	}
	return &EvalError{Kind: ErrOperand, Msg: "cannot apply " + op + " to " + strings.Join(kinds, " and ")}
}
