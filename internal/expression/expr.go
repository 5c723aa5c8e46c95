package expression

import (
	"fmt"

	"github.com/aritexpr/ringexpr/internal/ring"
)

// Expr is a parsed expression together with the source text it came from.
type Expr[E ring.Element] struct {
	Source string
	Root   Node[E]
}

func (e *Expr[E]) String() string {
	return e.Source
}

// EvalError is an evaluation failure. It carries no position: the tree no
// longer has source spans after parsing.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("Error evaluating expression: %s", e.Message)
}

// Evaluator reduces expression trees to ring elements using an injected
// ring.
type Evaluator[E ring.Element] struct {
	Ring ring.Ring[E]
}

// Evaluate reduces the tree left to right, stopping at the first failed
// ring operation. The tree is never mutated and every call returns exactly
// one of a value or an error.
func (ev *Evaluator[E]) Evaluate(expr *Expr[E]) (E, error) {
	v, err := expr.Root.evaluate(ev.Ring)
	if err != nil {
		var zero E
		return zero, &EvalError{Message: err.Error()}
	}
	return v, nil
}

// Evaluate is shorthand for evaluating with a one-off Evaluator.
func (e *Expr[E]) Evaluate(r ring.Ring[E]) (E, error) {
	ev := Evaluator[E]{Ring: r}
	return ev.Evaluate(e)
}
