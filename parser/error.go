package parser

import (
	"fmt"

	"github.com/dhamidi/formula/lexer"
)

// Error is a syntax error. It is always returned, never panicked, and is
// passed up unchanged by every enclosing step.
type Error struct {
	Message  string
	Position lexer.Position
	Expected string
	Found    string
}

func (e *Error) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s: expected %s, found %s", e.Position, e.Message, e.Expected, e.Found)
}

func unexpected(tok lexer.Token, expected string) *Error {
	msg := "unexpected " + tok.Describe()
	switch tok.Kind {
	case lexer.TokenError:
		msg = "invalid token " + fmt.Sprintf("%q", tok.Literal)
	case lexer.TokenEOF:
		msg = "unexpected end of input"
	}
	return &Error{
		Message:  msg,
		Position: tok.Span.Start,
		Expected: expected,
		Found:    tok.Describe(),
	}
}
