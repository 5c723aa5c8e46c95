package expression

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/aritexpr/ringexpr/internal/ring"
	"github.com/aritexpr/ringexpr/internal/token"
	"github.com/k0kubun/pp"
)

type ParseErrorKind int

const (
	Unspecified ParseErrorKind = iota
	TokenParseError
	NoExpression
)

type ParseError struct {
	Message  string
	Position int
	Kind     ParseErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error parsing expression at position %d: %s", e.Position, e.Message)
}

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("RINGEXPR_PARSER_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

// Parse parses source into an expression tree over the given ring.
func Parse[E ring.Element](source string, r ring.Ring[E]) (*Expr[E], error) {
	p := &parser[E]{source: source, ring: r, debug: parserDebugLog}
	return p.parse()
}

func ParseWithDebugOutput[E ring.Element](source string, r ring.Ring[E]) (*Expr[E], error) {
	p := &parser[E]{source: source, ring: r, debug: true}
	return p.parse()
}

// ParseInt parses over the reference integer ring.
func ParseInt(source string) (*Expr[ring.IntElement], error) {
	return Parse[ring.IntElement](source, ring.Int)
}

type parser[E ring.Element] struct {
	source string
	ring   ring.Ring[E]
	debug  bool

	tokens []token.Positioned
	cursor int // scans right to left

	// pending is the expression waiting to become an operator's right-hand
	// operand, shared across recursion levels.
	pending Node[E]
}

func (p *parser[E]) parse() (*Expr[E], error) {
	tokens, err := token.Tokenize(p.source)
	if err != nil {
		var lexErr *token.Error
		if errors.As(err, &lexErr) {
			return nil, &ParseError{Message: lexErr.Message, Position: lexErr.Position, Kind: TokenParseError}
		}
		return nil, err
	}

	p.tokens = tokens
	p.cursor = len(tokens) - 1

	root, err := p.parseRec(false)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, &ParseError{Message: "No expression", Position: 0, Kind: NoExpression}
	}
	if p.cursor >= 0 {
		panic(fmt.Sprintf("tokens left after full parse: source=%s", p.source))
	}

	if p.debug {
		pp.Println(p.source)
		pp.Println(root)
		log.Println(RenderNode(root))
	}

	return &Expr[E]{Source: p.source, Root: root}, nil
}

// parseRec consumes tokens right to left and returns the expression they
// form, or nil when there is none. hasOpenParen is set while parsing the
// interior of a parenthesized group; the matching left parenthesis then
// terminates the call without being consumed, so the right-parenthesis
// handler one level up can match it.
func (p *parser[E]) parseRec(hasOpenParen bool) (Node[E], error) {
	if p.cursor < 0 {
		node := p.pending
		p.pending = nil
		return node, nil
	}

	tok := p.tokens[p.cursor]
	if p.debug {
		log.Println("token: ", tok.Token.String())
	}

	switch tok.Kind {
	case token.IntegerLiteral:
		p.cursor--
		if p.pending != nil {
			return nil, &ParseError{
				Message:  "Ring element cannot be followed by another ring element in expression",
				Position: tok.Position,
				Kind:     Unspecified,
			}
		}
		p.pending = &Literal[E]{Value: p.ring.FromInt64(tok.Value)}

		rest, err := p.parseRec(hasOpenParen)
		if err != nil {
			return nil, err
		}
		if rest != nil {
			return rest, nil
		}
		node := p.pending
		p.pending = nil
		return node, nil

	case token.Plus, token.Minus, token.Star, token.Slash:
		p.cursor--
		op := operatorFor(tok.Kind)

		if p.pending == nil {
			return nil, &ParseError{
				Message:  "Missing right hand side expression for operator",
				Position: tok.Position,
				Kind:     Unspecified,
			}
		}
		rhs := p.pending
		p.pending = nil

		lhs, err := p.parseRec(hasOpenParen)
		if err != nil {
			return nil, err
		}
		if lhs == nil {
			// A minus with no left-hand operand in reach (start of input or
			// an enclosing left parenthesis) is unary.
			if op == Sub {
				return &Negate[E]{Inner: rhs}, nil
			}
			return nil, &ParseError{
				Message:  "Missing left hand side expression for operator",
				Position: tok.Position,
				Kind:     Unspecified,
			}
		}

		node := &Binary[E]{Op: op, Right: rhs}
		if lhs.isOperator() && lhs.precedence() < node.precedence() {
			// Precedence repair: the weaker-binding operator to the left
			// keeps the root and the new node is spliced into its right
			// subtree, taking over the old right child as its left operand.
			lower := lhs.(*Binary[E])
			if p.debug {
				log.Println("rotate: ", RenderNode[E](lower), " <- ", node.Op.String())
			}
			node.Left = lower.Right
			lower.Right = node
			return lower, nil
		}
		node.Left = lhs
		return node, nil

	case token.RightParen:
		p.cursor--
		inner, err := p.parseRec(true)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, &ParseError{Message: "No expression", Position: tok.Position, Kind: NoExpression}
		}
		if p.cursor < 0 || p.tokens[p.cursor].Kind != token.LeftParen {
			return nil, &ParseError{
				Message:  "Missing left parenthesis for right parenthesis",
				Position: tok.Position,
				Kind:     Unspecified,
			}
		}
		p.cursor--
		p.pending = &Paren[E]{Inner: inner}
		return p.parseRec(hasOpenParen)

	case token.LeftParen:
		if hasOpenParen {
			// Terminates the enclosed parse. Not consumed here: the
			// right-parenthesis handler matches it.
			return nil, nil
		}
		return nil, &ParseError{
			Message:  "Missing right parenthesis for left parenthesis",
			Position: tok.Position,
			Kind:     Unspecified,
		}

	default:
		return nil, &ParseError{
			Message:  fmt.Sprintf("Unhandled token: %s", tok.Token),
			Position: tok.Position,
			Kind:     Unspecified,
		}
	}
}

func operatorFor(kind token.Kind) Operator {
	switch kind {
	case token.Plus:
		return Add
	case token.Minus:
		return Sub
	case token.Star:
		return Mul
	case token.Slash:
		return Div
	default:
		panic(fmt.Sprintf("not an operator token: %d", kind))
	}
}

// RenderNode renders a tree in prefix form for debug output.
func RenderNode[E ring.Element](n Node[E]) string {
	switch v := n.(type) {
	case *Literal[E]:
		return v.Value.String()
	case *Paren[E]:
		return "(" + RenderNode(v.Inner) + ")"
	case *Negate[E]:
		return "(- " + RenderNode(v.Inner) + ")"
	case *Binary[E]:
		return "(" + v.Op.String() + " " + RenderNode(v.Left) + " " + RenderNode(v.Right) + ")"
	default:
		return "nil"
	}
}
