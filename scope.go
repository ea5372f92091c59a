package spectre

// Scope is a mapping of names to values. A scope has no parent: a name is
// either bound in it or undefined.
type Scope struct {
	names map[string]Value
}

func newScope() *Scope {
	return &Scope{names: make(map[string]Value, len(builtins))}
}

// Get returns the value bound to a name.
func (s *Scope) Get(name string) (Value, bool) {
	v, ok := s.names[name]
	return v, ok
}

// Set binds a name, replacing any previous binding.
func (s *Scope) Set(name string, v Value) {
	s.names[name] = v
}

// Len returns the number of bound names.
func (s *Scope) Len() int {
	return len(s.names)
}

// Names returns the bound names in sorted order.
func (s *Scope) Names() []string {
	r := make([]string, 0, len(s.names))
	for k := range s.names {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

func (s *Scope) clone() *Scope {
	n := &Scope{names: make(map[string]Value, len(s.names))}
	for k, v := range s.names {
		n.names[k] = v
	}
	return n
}

// sortstrs sorts a slice of strings. Scopes are small, so insertion sort is
// fine.
func sortstrs(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// ScopePolicy creates the interpreter that evaluates the body of a call to a
// user-defined function. The caller has already evaluated the arguments; the
// interpreter binds them in the scope of the returned interpreter.
type ScopePolicy func(caller *Interpreter, fn *Function) *Interpreter

// IsolatedScope is the default ScopePolicy. The body of every call runs in a
// fresh interpreter that has only the built-ins, so functions see neither the
// caller's variables nor each other, including themselves.
func IsolatedScope(caller *Interpreter, fn *Function) *Interpreter {
	return caller.fresh()
}

// SharedScope is a ScopePolicy that evaluates calls in a copy of the caller's
// scope. Functions can then use the caller's variables and call any function
// visible to the caller, including themselves, but assignments in the body
// do not leak back to the caller.
func SharedScope(caller *Interpreter, fn *Function) *Interpreter {
	ip := caller.fresh()
	ip.scope = caller.scope.clone()
	return ip
}
