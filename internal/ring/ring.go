// Package ring defines the algebraic structure expressions are evaluated
// over: a set with fallible add/sub/mul/div. Division in particular is not
// guaranteed to be defined for every operand pair.
package ring

import "fmt"

// Element is the value type of a ring: comparable (equality, map keys),
// printable, and cheap to copy by value.
type Element interface {
	comparable
	fmt.Stringer
}

// Ring is the operation set for an element type. The four arithmetic
// operations may fail with a *Error. FromInt64 constructs the ring's
// representation of an integer literal; FromInt64(0) is the additive
// identity used to evaluate unary minus.
type Ring[E Element] interface {
	FromInt64(value int64) E
	Add(a, b E) (E, error)
	Sub(a, b E) (E, error)
	Mul(a, b E) (E, error)
	Div(a, b E) (E, error)
}
