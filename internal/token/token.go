package token

import "strconv"

type Kind int

const (
	LeftParen Kind = iota
	RightParen
	Plus
	Minus
	Star
	Slash
	IntegerLiteral
	// Modulo is lexed for the "mod" keyword but has no parser rule yet.
	Modulo
)

// Token is a single lexical unit. Value is set for IntegerLiteral only.
type Token struct {
	Kind  Kind
	Value int64
}

func (t Token) String() string {
	switch t.Kind {
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case IntegerLiteral:
		return strconv.FormatInt(t.Value, 10)
	case Modulo:
		return "mod"
	default:
		return "(unknown)"
	}
}

// Positioned pairs a token with the zero-based character offset of its
// first character in the source string.
type Positioned struct {
	Token
	Position int
}
