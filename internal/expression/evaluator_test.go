package expression_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/aritexpr/ringexpr/internal/expression"
	"github.com/aritexpr/ringexpr/internal/ring"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name       string
		root       expression.Node[ring.IntElement]
		expected   int64
		evalErrMsg string
	}{
		{
			name:     "simple value",
			root:     lit(5),
			expected: 5,
		},
		{
			name:     "addition",
			root:     binary(expression.Add, lit(5), lit(7)),
			expected: 12,
		},
		{
			name:       "addition overflow",
			root:       binary(expression.Add, lit(math.MaxInt64), lit(7)),
			evalErrMsg: "Overflow",
		},
		{
			name:     "subtraction",
			root:     binary(expression.Sub, lit(5), lit(7)),
			expected: -2,
		},
		{
			name:     "multiplication",
			root:     binary(expression.Mul, lit(5), lit(7)),
			expected: 35,
		},
		{
			name:     "division",
			root:     binary(expression.Div, lit(6), lit(2)),
			expected: 3,
		},
		{
			name:     "parentheses are transparent",
			root:     paren(lit(5)),
			expected: 5,
		},
		{
			name:     "negation",
			root:     neg(lit(5)),
			expected: -5,
		},
		{
			name:       "negation overflow",
			root:       neg(lit(math.MinInt64)),
			evalErrMsg: "Overflow",
		},
		{
			name:       "left operand error wins",
			root:       binary(expression.Add, binary(expression.Div, lit(5), lit(2)), binary(expression.Div, lit(1), lit(0))),
			evalErrMsg: "Result not in ring",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr := &expression.Expr[ring.IntElement]{Source: "(test)", Root: tt.root}
			ev := expression.Evaluator[ring.IntElement]{Ring: ring.Int}

			value, err := ev.Evaluate(expr)
			if tt.evalErrMsg != "" {
				var evalErr *expression.EvalError
				if !errors.As(err, &evalErr) {
					t.Fatalf("should be an evaluation error, got: %v", err)
				}
				if evalErr.Message != tt.evalErrMsg {
					t.Errorf("unexpected message: %q (expected %q)", evalErr.Message, tt.evalErrMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("should be evaluated: %v", err)
			}
			if value.Int64() != tt.expected {
				t.Errorf("unexpected value: %d (expected %d)", value.Int64(), tt.expected)
			}
		})
	}
}

// modElement and mod7Ring verify that parser and evaluator work over any
// Ring implementation, not only the integer ring.
type modElement uint8

func (e modElement) String() string {
	return strconv.Itoa(int(e))
}

type mod7Ring struct{}

func (mod7Ring) FromInt64(v int64) modElement {
	return modElement(((v % 7) + 7) % 7)
}

func (mod7Ring) Add(a, b modElement) (modElement, error) {
	return (a + b) % 7, nil
}

func (mod7Ring) Sub(a, b modElement) (modElement, error) {
	return (a + 7 - b) % 7, nil
}

func (mod7Ring) Mul(a, b modElement) (modElement, error) {
	return (a * b) % 7, nil
}

func (mod7Ring) Div(a, b modElement) (modElement, error) {
	if b == 0 {
		return 0, &ring.Error{Kind: ring.DivisionByZeroError, Message: "Overflow"}
	}
	for inverse := modElement(1); inverse < 7; inverse++ {
		if (b*inverse)%7 == 1 {
			return (a * inverse) % 7, nil
		}
	}
	return 0, &ring.Error{Kind: ring.NotInRingError, Message: "Result not in ring"}
}

func TestEvaluateOverModularRing(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source   string
		expected modElement
	}{
		{source: "2 + 6 * 2", expected: 0},
		{source: "10", expected: 3},
		{source: "(-5)", expected: 2},
		{source: "3 / 2", expected: 5},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			expr, err := expression.Parse[modElement](tt.source, mod7Ring{})
			if err != nil {
				t.Fatalf("should be parsed: %v", err)
			}

			value, err := expr.Evaluate(mod7Ring{})
			if err != nil {
				t.Fatalf("should be evaluated: %v", err)
			}
			if value != tt.expected {
				t.Errorf("unexpected value: %v (expected %v)", value, tt.expected)
			}
		})
	}
}
