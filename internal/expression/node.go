// Package expression implements the arithmetic expression tree over a
// pluggable ring, its evaluator, and the single-pass right-to-left parser
// that builds precedence-ordered trees by in-place rotation.
package expression

import (
	"math"

	"github.com/aritexpr/ringexpr/internal/ring"
)

type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "(unknown)"
	}
}

// precedence returns the operator's precedence class: additive operators
// bind weaker than multiplicative ones. Equal precedence associates left.
func (op Operator) precedence() int {
	switch op {
	case Mul, Div:
		return 1
	default:
		return 0
	}
}

// atomicPrecedence is the precedence of non-operator nodes: they are never
// restructured by the parser's rotation step.
const atomicPrecedence = math.MaxInt32

// Node is one node of a parsed expression tree. The variant set is closed:
// Literal, Paren, Negate and Binary. Trees are strict (each compound node
// exclusively owns its children) and immutable after parsing.
type Node[E ring.Element] interface {
	evaluate(r ring.Ring[E]) (E, error)
	isOperator() bool
	precedence() int
}

// Literal is a ring element appearing literally in the source.
type Literal[E ring.Element] struct {
	Value E
}

func (n *Literal[E]) evaluate(r ring.Ring[E]) (E, error) {
	return n.Value, nil
}

func (n *Literal[E]) isOperator() bool { return false }
func (n *Literal[E]) precedence() int  { return atomicPrecedence }

// Paren preserves explicit parenthesization in the tree shape. It has no
// semantic effect on the evaluated value.
type Paren[E ring.Element] struct {
	Inner Node[E]
}

func (n *Paren[E]) evaluate(r ring.Ring[E]) (E, error) {
	return n.Inner.evaluate(r)
}

func (n *Paren[E]) isOperator() bool { return false }
func (n *Paren[E]) precedence() int  { return atomicPrecedence }

// Negate is unary minus. The ring contract has no dedicated negation, so it
// evaluates as the additive inverse: FromInt64(0) minus the child.
type Negate[E ring.Element] struct {
	Inner Node[E]
}

func (n *Negate[E]) evaluate(r ring.Ring[E]) (E, error) {
	v, err := n.Inner.evaluate(r)
	if err != nil {
		var zero E
		return zero, err
	}
	return r.Sub(r.FromInt64(0), v)
}

func (n *Negate[E]) isOperator() bool { return false }
func (n *Negate[E]) precedence() int  { return atomicPrecedence }

// Binary is a binary operator node. Left and Right are only reassigned by
// the parser's rotation step; after parsing the node is immutable.
type Binary[E ring.Element] struct {
	Op    Operator
	Left  Node[E]
	Right Node[E]
}

func (n *Binary[E]) evaluate(r ring.Ring[E]) (E, error) {
	var zero E

	left, err := n.Left.evaluate(r)
	if err != nil {
		return zero, err
	}
	right, err := n.Right.evaluate(r)
	if err != nil {
		return zero, err
	}

	switch n.Op {
	case Add:
		return r.Add(left, right)
	case Sub:
		return r.Sub(left, right)
	case Mul:
		return r.Mul(left, right)
	default:
		return r.Div(left, right)
	}
}

func (n *Binary[E]) isOperator() bool { return true }
func (n *Binary[E]) precedence() int  { return n.Op.precedence() }
