package parser

import "github.com/dhamidi/formula/lexer"

// State is an immutable cursor over a token stream. Steps receive a State
// and return a new one; the underlying token slice is never written to.
type State struct {
	tokens []lexer.Token
	pos    int
	depth  int
}

func NewState(tokens []lexer.Token) State {
	return State{tokens: tokens}
}

// Pos is the index of the current token, always <= len(tokens).
func (s State) Pos() int {
	return s.pos
}

// Depth is the current recursion depth of the parse.
func (s State) Depth() int {
	return s.depth
}

func (s State) AtEnd() bool {
	return s.current().Kind == lexer.TokenEOF
}

func (s State) current() lexer.Token {
	if s.pos < len(s.tokens) {
		return s.tokens[s.pos]
	}
	return s.eof()
}

// eof synthesizes the end-of-stream token when the stream does not carry
// one of its own.
func (s State) eof() lexer.Token {
	n := len(s.tokens)
	if n == 0 {
		start := lexer.Position{Line: 1, Column: 1}
		return lexer.Token{Kind: lexer.TokenEOF, Span: lexer.Span{Start: start, End: start}}
	}
	last := s.tokens[n-1]
	if last.Kind == lexer.TokenEOF {
		return last
	}
	return lexer.Token{Kind: lexer.TokenEOF, Span: lexer.Span{Start: last.Span.End, End: last.Span.End}}
}

// CurrentToken reads the token under the cursor without consuming it.
func CurrentToken(s State) (lexer.Token, State, error) {
	return s.current(), s, nil
}

// Advance consumes the current token. At the end of the stream the
// position stays put and the end-of-stream token is returned again.
func Advance(s State) (lexer.Token, State, error) {
	tok := s.current()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok, s, nil
}
