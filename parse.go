package spectre

import (
	"strconv"
)

// Program = Block
// Block = [ Statement { Newline Statement } ]
// Statement = name '=' Or | name '(' Args ')' '=' Statement | Or
// Or = And [ 'or' Or ]
// And = Not [ 'and' And ]
// Not = 'not' Not | Cmp
// Cmp = Add [ ('==' | '!=' | '<' | '<=' | '>' | '>=') Cmp ]
// Add = Term [ ('+' | '-') Add ]
// Term = number Term | Factor [ ('*' | '/' | '%') Term ]    (number Term only when an operand follows the number)
// Factor = ('+' | '-') Factor | Power
// Power = Prefix [ '^' Factor ]
// Prefix = ('√' | '∛' | '∜') Prefix | Postfix
// Postfix = Call { '!' | '°' | superscript }
// Call = name '(' Args ')' | Atom
// Atom = number | name | '(' Statement ')' | '|' Statement '|' | '⌊' Statement ('⌋' | '⌉') | '⌈' Statement '⌉' | If | While
// If = 'if' Statement '{' Block '}' [ 'else' ( '{' Block '}' | If ) ]
// While = 'while' Statement '{' Block '}'

// Program is a parsed program that can be run by an interpreter.
type Program struct {
	// root is the statement block of the program.
	root *node
}

// String creates a string representation of the parsed program with every
// operation bracketed. Statements are separated by semicolons.
func (p *Program) String() string {
	return p.root.String()
}

// Len returns the number of top-level statements in the program.
func (p *Program) Len() int {
	return len(p.root.list)
}

type parser struct {
	toks []Token
	// i is the index of the current token.
	i int
	// end is the byte offset of the end of the last consumed token.
	end int
}

// Parse parses a token sequence as produced by Lex into a program. If the
// sequence does not end with an end marker, one is supplied.
func Parse(toks []Token) (*Program, error) {
	p := parser{toks: terminate(toks)}
	root, err := p.block(false)
	if err != nil {
		return nil, err
	}
	if t := p.tok(); t.Kind != TokenEnd {
		return nil, p.unexpected(t.Span.Start, "end of input")
	}
	return &Program{root: root}, nil
}

// ParseString is a shortcut to lex and parse source text.
func ParseString(src string) (*Program, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

func terminate(toks []Token) []Token {
	if len(toks) > 0 && toks[len(toks)-1].Kind == TokenEnd {
		return toks
	}
	end := 0
	if len(toks) > 0 {
		end = toks[len(toks)-1].Span.End
	}
	return append(toks[:len(toks):len(toks)], Token{Kind: TokenEnd, Span: Span{end, end}})
}

// tok returns the current token.
func (p *parser) tok() Token {
	return p.toks[p.i]
}

// peek returns the token after the current one.
func (p *parser) peek() Token {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

// advance consumes the current token. The end marker is never consumed.
func (p *parser) advance() {
	t := p.toks[p.i]
	p.end = t.Span.End
	if t.Kind != TokenEnd {
		p.i++
	}
}

// skipNewlines consumes statement separators and reports how many there were.
func (p *parser) skipNewlines() int {
	n := 0
	for p.tok().Kind == TokenNewline {
		p.advance()
		n++
	}
	return n
}

// unexpected creates an error for the current token. start is the start of
// the construct being parsed.
func (p *parser) unexpected(start int, want ...string) error {
	t := p.tok()
	return &TokenError{Span: Span{start, t.Span.End}, Got: t, Want: want}
}

// unbalanced creates an error for a missing closing bracket.
func (p *parser) unbalanced(start int, left string, right ...string) error {
	t := p.tok()
	return &BracketError{Span: Span{start, t.Span.End}, Left: left, Right: right, Got: t}
}

// block parses statements until the end of input or, if braced, a closing
// brace. The closing brace is not consumed.
func (p *parser) block(braced bool) (*node, error) {
	start := p.tok().Span.Start
	n := &node{kind: nodeBlock}
	p.skipNewlines()
	for {
		if braced && p.tok().Kind == TokenRBrace {
			break
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		if s.kind == nodeEnd {
			break
		}
		n.list = append(n.list, s)
		if p.skipNewlines() > 0 {
			continue
		}
		switch p.tok().Kind {
		case TokenEnd:
		case TokenRBrace:
			if !braced {
				return nil, p.unexpected(p.tok().Span.Start, "newline", "end of input")
			}
		case TokenIf, TokenWhile:
			// A conditional or loop can start a statement without a separator.
			continue
		default:
			if braced {
				return nil, p.unexpected(s.span.Start, "newline", "';'", "'}'")
			}
			return nil, p.unexpected(s.span.Start, "newline", "';'", "end of input")
		}
		break
	}
	n.span = Span{start, p.end}
	return n, nil
}

func (p *parser) statement() (*node, error) {
	if t := p.tok(); t.Kind == TokenEnd {
		return &node{kind: nodeEnd, span: t.Span}, nil
	}
	return p.expr()
}

func (p *parser) expr() (*node, error) {
	t := p.tok()
	if t.Kind != TokenIdent || p.peek().Kind != TokenAssign {
		return p.or()
	}
	p.advance()
	p.advance()
	rhs, err := p.or()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeAssign, name: t.Text, left: rhs, span: Span{t.Span.Start, p.end}}, nil
}

// binary parses a right-recursive binary level. ops maps the operator tokens
// of the level to node kinds. operand parses the left operand and rest parses
// the right.
func (p *parser) binary(ops map[TokenKind]nodeKind, operand, rest func() (*node, error)) (*node, error) {
	start := p.tok().Span.Start
	lhs, err := operand()
	if err != nil {
		return nil, err
	}
	op, ok := ops[p.tok().Kind]
	if !ok {
		return lhs, nil
	}
	p.advance()
	rhs, err := rest()
	if err != nil {
		return nil, err
	}
	return &node{kind: op, left: lhs, right: rhs, span: Span{start, p.end}}, nil
}

var (
	orops  = map[TokenKind]nodeKind{TokenOr: nodeOr}
	andops = map[TokenKind]nodeKind{TokenAnd: nodeAnd}
	cmpops = map[TokenKind]nodeKind{
		TokenEq: nodeEq,
		TokenNe: nodeNe,
		TokenLt: nodeLt,
		TokenLe: nodeLe,
		TokenGt: nodeGt,
		TokenGe: nodeGe,
	}
	addops = map[TokenKind]nodeKind{
		TokenPlus:  nodeAdd,
		TokenMinus: nodeSub,
	}
	mulops = map[TokenKind]nodeKind{
		TokenStar:    nodeMul,
		TokenSlash:   nodeDiv,
		TokenPercent: nodeRem,
	}
	powops  = map[TokenKind]nodeKind{TokenCaret: nodePow}
	signops = map[TokenKind]nodeKind{
		TokenPlus:  nodePos,
		TokenMinus: nodeNeg,
	}
	rootops = map[TokenKind]nodeKind{
		TokenSqrt: nodeSqrt,
		TokenCbrt: nodeCbrt,
		TokenFort: nodeFort,
	}
)

func (p *parser) or() (*node, error) {
	return p.binary(orops, p.and, p.or)
}

func (p *parser) and() (*node, error) {
	return p.binary(andops, p.not, p.and)
}

func (p *parser) not() (*node, error) {
	t := p.tok()
	if t.Kind != TokenNot {
		return p.comparison()
	}
	p.advance()
	x, err := p.not()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeNot, left: x, span: Span{t.Span.Start, p.end}}, nil
}

func (p *parser) comparison() (*node, error) {
	return p.binary(cmpops, p.additive, p.comparison)
}

func (p *parser) additive() (*node, error) {
	return p.binary(addops, p.term, p.additive)
}

func (p *parser) term() (*node, error) {
	t := p.tok()
	if (t.Kind == TokenInt || t.Kind == TokenReal) && juxtaposes(p.peek().Kind) {
		// 2x -> (2) * (x)
		// 3(x+1) -> (3) * (x+1)
		lhs, err := p.atom()
		if err != nil {
			return nil, err
		}
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeMul, left: lhs, right: rhs, span: Span{t.Span.Start, p.end}}, nil
	}
	return p.binary(mulops, p.factor, p.term)
}

// juxtaposes reports whether a token of kind k following a number makes an
// implicit multiplication, i.e. whether it can begin an operand.
func juxtaposes(k TokenKind) bool {
	switch k {
	case TokenInt, TokenReal, TokenIdent, TokenLParen, TokenLFloor, TokenLCeil, TokenSqrt, TokenCbrt, TokenFort:
		return true
	}
	return false
}

func (p *parser) factor() (*node, error) {
	t := p.tok()
	op, ok := signops[t.Kind]
	if !ok {
		return p.power()
	}
	p.advance()
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	return &node{kind: op, left: x, span: Span{t.Span.Start, p.end}}, nil
}

func (p *parser) power() (*node, error) {
	// The exponent is a factor so that 2^-2 has a signed exponent, while the
	// sign in -2^2 applies to the whole power.
	return p.binary(powops, p.prefix, p.factor)
}

func (p *parser) prefix() (*node, error) {
	t := p.tok()
	op, ok := rootops[t.Kind]
	if !ok {
		return p.postfix()
	}
	p.advance()
	x, err := p.prefix()
	if err != nil {
		return nil, err
	}
	return &node{kind: op, left: x, span: Span{t.Span.Start, p.end}}, nil
}

func (p *parser) postfix() (*node, error) {
	start := p.tok().Span.Start
	x, err := p.call()
	if err != nil {
		return nil, err
	}
	for {
		t := p.tok()
		switch t.Kind {
		case TokenBang:
			p.advance()
			x = &node{kind: nodeFact, left: x, span: Span{start, p.end}}
		case TokenDegree:
			p.advance()
			x = &node{kind: nodeDegree, left: x, span: Span{start, p.end}}
		case TokenSuperscript:
			p.advance()
			exp, err := p.exponent(t)
			if err != nil {
				return nil, err
			}
			x = &node{kind: nodePow, left: x, right: exp, span: Span{start, p.end}}
		default:
			return x, nil
		}
	}
}

// exponent parses the payload of a superscript token as an additive
// expression.
func (p *parser) exponent(t Token) (*node, error) {
	sub := parser{toks: terminate(t.Sup)}
	sub.toks[len(sub.toks)-1].Span = Span{t.Span.End, t.Span.End}
	x, err := sub.additive()
	if err != nil {
		return nil, err
	}
	if e := sub.tok(); e.Kind != TokenEnd {
		return nil, sub.unexpected(x.span.Start, "end of superscript")
	}
	return x, nil
}

func (p *parser) call() (*node, error) {
	t := p.tok()
	if t.Kind != TokenIdent || p.peek().Kind != TokenLParen {
		return p.atom()
	}
	p.advance()
	args, err := p.args()
	if err != nil {
		return nil, err
	}
	if p.tok().Kind != TokenAssign {
		return &node{kind: nodeCall, name: t.Text, list: args, span: Span{t.Span.Start, p.end}}, nil
	}
	// f(x, y) = body
	p.advance()
	params := make([]string, len(args))
	for i, a := range args {
		if a.kind != nodeName {
			return nil, &ParamError{Span: a.span, Func: t.Text}
		}
		for _, q := range params[:i] {
			if q == a.name {
				return nil, &ParamError{Span: a.span, Func: t.Text, Dup: q}
			}
		}
		params[i] = a.name
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeFunc, name: t.Text, params: params, left: body, span: Span{t.Span.Start, p.end}}, nil
}

// args parses a parenthesized, comma-separated list of expressions, including
// both parentheses.
func (p *parser) args() ([]*node, error) {
	start := p.tok().Span.Start
	p.advance()
	var args []*node
	for p.tok().Kind != TokenRParen {
		if p.tok().Kind == TokenEnd {
			return nil, p.unbalanced(start, "(", ")")
		}
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch p.tok().Kind {
		case TokenComma:
			p.advance()
		case TokenRParen, TokenEnd:
		default:
			return nil, p.unexpected(start, "','", "')'")
		}
	}
	p.advance()
	return args, nil
}

func (p *parser) atom() (*node, error) {
	t := p.tok()
	start := t.Span.Start
	switch t.Kind {
	case TokenInt:
		v, err := strconv.ParseInt(t.Text, 10, 32)
		if err != nil {
			return nil, &NumberError{Span: t.Span, Text: t.Text, Err: err}
		}
		p.advance()
		return &node{kind: nodeInt, ival: int32(v), span: t.Span}, nil
	case TokenReal:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, &NumberError{Span: t.Span, Text: t.Text, Err: err}
		}
		p.advance()
		return &node{kind: nodeReal, rval: v, span: t.Span}, nil
	case TokenIdent:
		p.advance()
		return &node{kind: nodeName, name: t.Text, span: t.Span}, nil
	case TokenLParen:
		p.advance()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok().Kind != TokenRParen {
			return nil, p.unbalanced(start, "(", ")")
		}
		p.advance()
		return x, nil
	case TokenPipe:
		return p.bracketed("|", map[TokenKind]nodeKind{TokenPipe: nodeAbs})
	case TokenLFloor:
		// ⌊x⌉ is the absolute value.
		return p.bracketed("⌊", map[TokenKind]nodeKind{TokenRFloor: nodeFloor, TokenRCeil: nodeAbs})
	case TokenLCeil:
		return p.bracketed("⌈", map[TokenKind]nodeKind{TokenRCeil: nodeCeil})
	case TokenIf:
		return p.ifExpr()
	case TokenWhile:
		return p.whileExpr()
	}
	return nil, p.unexpected(start, "number", "identifier", "'('", "'|'", "'⌊'", "'⌈'", "'if'", "'while'")
}

// bracketed parses an expression between an opening bracket and one of the
// closing brackets in closers, which determine the operation.
func (p *parser) bracketed(left string, closers map[TokenKind]nodeKind) (*node, error) {
	start := p.tok().Span.Start
	p.advance()
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	op, ok := closers[p.tok().Kind]
	if !ok {
		right := make([]string, 0, len(closers))
		for _, k := range [...]TokenKind{TokenPipe, TokenRFloor, TokenRCeil} {
			if _, ok := closers[k]; ok {
				right = append(right, glyphOf(k))
			}
		}
		return nil, p.unbalanced(start, left, right...)
	}
	p.advance()
	return &node{kind: op, left: x, span: Span{start, p.end}}, nil
}

func glyphOf(k TokenKind) string {
	s := k.String()
	return s[1 : len(s)-1]
}

func (p *parser) ifExpr() (*node, error) {
	start := p.tok().Span.Start
	p.advance()
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.braced()
	if err != nil {
		return nil, err
	}
	n := &node{kind: nodeIf, left: cond, right: body}
	// else may be on a later line. If it isn't, leave the newlines to end the
	// statement.
	i, end := p.i, p.end
	p.skipNewlines()
	if p.tok().Kind != TokenElse {
		p.i, p.end = i, end
		n.span = Span{start, p.end}
		return n, nil
	}
	p.advance()
	switch p.tok().Kind {
	case TokenLBrace:
		n.alt, err = p.braced()
	case TokenIf:
		n.alt, err = p.ifExpr()
	default:
		return nil, p.unexpected(p.tok().Span.Start, "'{'", "'if'")
	}
	if err != nil {
		return nil, err
	}
	n.span = Span{start, p.end}
	return n, nil
}

func (p *parser) whileExpr() (*node, error) {
	start := p.tok().Span.Start
	p.advance()
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.braced()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeWhile, left: cond, right: body, span: Span{start, p.end}}, nil
}

// braced parses a block between braces.
func (p *parser) braced() (*node, error) {
	t := p.tok()
	if t.Kind != TokenLBrace {
		return nil, p.unexpected(t.Span.Start, "'{'")
	}
	p.advance()
	b, err := p.block(true)
	if err != nil {
		return nil, err
	}
	if p.tok().Kind != TokenRBrace {
		return nil, p.unbalanced(t.Span.Start, "{", "}")
	}
	p.advance()
	b.span = Span{t.Span.Start, p.end}
	return b, nil
}
