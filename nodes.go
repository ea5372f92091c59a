package spectre

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of a program. Nodes are never
// modified after parsing; rewrites build new nodes around old subtrees.
type node struct {
	kind nodeKind

	// name is the identifier of a name, assignment, call, or definition.
	name string
	// ival and rval are the values of integer and real literals.
	ival int32
	rval float64

	// left is the operand of unary operators, the left operand of binary
	// operators, the value of assignments, the condition of conditionals and
	// loops, and the body of definitions.
	left *node
	// right is the right operand of binary operators and the body of
	// conditionals and loops.
	right *node
	// alt is the else branch of a conditional, or nil.
	alt *node
	// list is the arguments of a call or the statements of a block.
	list []*node
	// params is the parameter names of a definition.
	params []string

	span Span
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeInt    // ival
	nodeReal   // rval
	nodeName   // lookup(name)
	nodeAssign // name = left
	nodeIf     // if left { right } else { alt }
	nodeWhile  // while left { right }
	nodeFunc   // name(params...) = left
	nodeCall   // name(list...)
	nodeBlock  // list
	nodeEnd    // end of input

	// Unary operators. The operand is left.
	nodePos
	nodeNeg
	nodeNot
	nodeAbs
	nodeFloor
	nodeCeil
	nodeRound
	nodeDegree
	nodeFact
	nodeSqrt
	nodeCbrt
	nodeFort

	// Binary operators.
	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
	nodeRem
	nodePow
	nodeEq
	nodeNe
	nodeLt
	nodeLe
	nodeGt
	nodeGe
	nodeAnd
	nodeOr
)

var nodeNames = [...]string{
	nodeNone:   "None",
	nodeInt:    "Int",
	nodeReal:   "Real",
	nodeName:   "Name",
	nodeAssign: "Assign",
	nodeIf:     "If",
	nodeWhile:  "While",
	nodeFunc:   "Func",
	nodeCall:   "Call",
	nodeBlock:  "Block",
	nodeEnd:    "End",
	nodePos:    "Pos",
	nodeNeg:    "Neg",
	nodeNot:    "Not",
	nodeAbs:    "Abs",
	nodeFloor:  "Floor",
	nodeCeil:   "Ceil",
	nodeRound:  "Round",
	nodeDegree: "Degree",
	nodeFact:   "Fact",
	nodeSqrt:   "Sqrt",
	nodeCbrt:   "Cbrt",
	nodeFort:   "Fort",
	nodeAdd:    "Add",
	nodeSub:    "Sub",
	nodeMul:    "Mul",
	nodeDiv:    "Div",
	nodeRem:    "Rem",
	nodePow:    "Pow",
	nodeEq:     "Eq",
	nodeNe:     "Ne",
	nodeLt:     "Lt",
	nodeLe:     "Le",
	nodeGt:     "Gt",
	nodeGe:     "Ge",
	nodeAnd:    "And",
	nodeOr:     "Or",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

func (k nodeKind) unary() bool {
	return nodePos <= k && k <= nodeFort
}

func (k nodeKind) binary() bool {
	return nodeAdd <= k && k <= nodeOr
}

// binops are the spellings of binary operators in printed trees.
var binops = map[nodeKind]string{
	nodeAdd: "+",
	nodeSub: "-",
	nodeMul: "*",
	nodeDiv: "/",
	nodeRem: "%",
	nodePow: "^",
	nodeEq:  "==",
	nodeNe:  "!=",
	nodeLt:  "<",
	nodeLe:  "<=",
	nodeGt:  ">",
	nodeGe:  ">=",
	nodeAnd: "and",
	nodeOr:  "or",
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node with every operation bracketed.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeInt:
		b.WriteString(strconv.FormatInt(int64(n.ival), 10))
	case nodeReal:
		s := strconv.FormatFloat(n.rval, 'f', -1, 64)
		b.WriteString(s)
		if !strings.ContainsAny(s, ".IN") {
			// Keep reals distinguishable from integers.
			b.WriteString(".0")
		}
	case nodeName:
		b.WriteString(n.name)
	case nodeAssign:
		b.WriteByte('(')
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeIf:
		b.WriteString("if ")
		n.left.fmt(b)
		b.WriteByte(' ')
		n.right.fmtblock(b)
		if n.alt != nil {
			b.WriteString(" else ")
			n.alt.fmtblock(b)
		}
	case nodeWhile:
		b.WriteString("while ")
		n.left.fmt(b)
		b.WriteByte(' ')
		n.right.fmtblock(b)
	case nodeFunc:
		b.WriteString(n.name)
		b.WriteByte('(')
		b.WriteString(strings.Join(n.params, ", "))
		b.WriteString(") = ")
		n.left.fmt(b)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.list {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case nodeBlock:
		for i, s := range n.list {
			if i > 0 {
				b.WriteString("; ")
			}
			s.fmt(b)
		}
	case nodeEnd:
		b.WriteString("<end>")
	case nodePos:
		b.WriteString("(+")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNot:
		b.WriteString("(not ")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAbs:
		b.WriteByte('|')
		n.left.fmt(b)
		b.WriteByte('|')
	case nodeFloor:
		b.WriteString("⌊")
		n.left.fmt(b)
		b.WriteString("⌋")
	case nodeCeil:
		b.WriteString("⌈")
		n.left.fmt(b)
		b.WriteString("⌉")
	case nodeRound:
		b.WriteString("round(")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeDegree:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString("°)")
	case nodeFact:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString("!)")
	case nodeSqrt:
		b.WriteString("(√")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeCbrt:
		b.WriteString("(∛")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeFort:
		b.WriteString("(∜")
		n.left.fmt(b)
		b.WriteByte(')')
	default:
		op, ok := binops[n.kind]
		if !ok {
			panic("spectre: invalid node kind " + n.kind.String() + " after writing " + b.String())
		}
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(op)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	}
}

func (n *node) fmtblock(b *strings.Builder) {
	if n.kind != nodeBlock {
		// else if
		n.fmt(b)
		return
	}
	b.WriteString("{ ")
	n.fmt(b)
	b.WriteString(" }")
}
