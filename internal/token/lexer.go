package token

import (
	"fmt"
	"io"
	"strconv"
	"unicode"
)

// Error is a lexical error at a character offset in the source.
type Error struct {
	Message  string
	Position int
}

func (e *Error) Error() string {
	return fmt.Sprintf("Unparseable input at position %d: %s", e.Position, e.Message)
}

// Lexer produces positioned tokens from source text, one Consume call at a
// time. A Lexer is single-use: create a fresh one per input. After Consume
// returns a non-EOF error the cursor state is unspecified and the caller
// must not call Consume again.
type Lexer struct {
	source []rune
	index  int
}

func NewLexer(source string) *Lexer {
	return &Lexer{source: []rune(source)}
}

// Consume returns the next token, or io.EOF once the input is exhausted.
func (l *Lexer) Consume() (Positioned, error) {
	for l.index != len(l.source) && unicode.IsSpace(l.source[l.index]) {
		l.index++
	}
	if l.index == len(l.source) {
		return Positioned{}, io.EOF
	}

	pos := l.index
	switch c := l.source[l.index]; c {
	case '(':
		l.index++
		return Positioned{Token: Token{Kind: LeftParen}, Position: pos}, nil
	case ')':
		l.index++
		return Positioned{Token: Token{Kind: RightParen}, Position: pos}, nil
	case '+':
		l.index++
		return Positioned{Token: Token{Kind: Plus}, Position: pos}, nil
	case '-':
		l.index++
		return Positioned{Token: Token{Kind: Minus}, Position: pos}, nil
	case '*':
		l.index++
		return Positioned{Token: Token{Kind: Star}, Position: pos}, nil
	case '/':
		l.index++
		return Positioned{Token: Token{Kind: Slash}, Position: pos}, nil
	case 'm':
		if l.index+3 <= len(l.source) && string(l.source[l.index:l.index+3]) == "mod" {
			l.index += 3
			return Positioned{Token: Token{Kind: Modulo}, Position: pos}, nil
		}
		l.index += 3
		return Positioned{}, &Error{Message: "Invalid token", Position: pos}
	default:
		if c < '0' || c > '9' {
			return Positioned{}, &Error{Message: "Invalid token", Position: pos}
		}

		for l.index != len(l.source) && l.source[l.index] >= '0' && l.source[l.index] <= '9' {
			l.index++
		}
		v, err := strconv.ParseInt(string(l.source[pos:l.index]), 10, 64)
		if err != nil {
			return Positioned{}, &Error{Message: "Decimal number too big", Position: pos}
		}
		return Positioned{Token: Token{Kind: IntegerLiteral, Value: v}, Position: pos}, nil
	}
}

// Tokenize drains the whole source eagerly. On a lexical error it returns
// the tokens produced so far and the error.
func Tokenize(source string) ([]Positioned, error) {
	l := NewLexer(source)

	var tokens []Positioned
	for {
		tok, err := l.Consume()
		if err == io.EOF {
			return tokens, nil
		} else if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}
