package lexer

import (
	"testing"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"   \n\t", []TokenKind{TokenEOF}},
		{"a", []TokenKind{TokenIdent, TokenEOF}},
		{"true false", []TokenKind{TokenTrue, TokenFalse, TokenEOF}},
		{"123", []TokenKind{TokenNumber, TokenEOF}},
		{"3.14", []TokenKind{TokenNumber, TokenEOF}},
		{".5", []TokenKind{TokenNumber, TokenEOF}},
		{"1e10 2E-3", []TokenKind{TokenNumber, TokenNumber, TokenEOF}},
		{`"hello"`, []TokenKind{TokenString, TokenEOF}},
		{`"say \"hi\""`, []TokenKind{TokenString, TokenEOF}},
		{"+ - * / % ^", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenCaret, TokenEOF}},
		{"= == != <> < <= > >=", []TokenKind{TokenAssign, TokenEQ, TokenNE, TokenLTGT, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || ! &", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenConcat, TokenEOF}},
		{"a ? b : c", []TokenKind{TokenIdent, TokenQuestion, TokenIdent, TokenColon, TokenIdent, TokenEOF}},
		{"sum(a, b.c)", []TokenKind{TokenIdent, TokenLParen, TokenIdent, TokenComma, TokenIdent, TokenDot, TokenIdent, TokenRParen, TokenEOF}},
		{"größe", []TokenKind{TokenIdent, TokenEOF}},
		{"a | b", []TokenKind{TokenIdent, TokenError, TokenIdent, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
		{"€", []TokenKind{TokenError, TokenEOF}},
		{`"open`, []TokenKind{TokenError, TokenEOF}},
		{"\"a\\\nb\"", []TokenKind{TokenError, TokenIdent, TokenError, TokenEOF}},
		{`"a\`, []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize([]byte(tt.input), "test.formula")
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.expected), tokens)
			}
			for i := range tokens {
				if tokens[i].Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Tokenize([]byte("a +\n  bc"), "f")

	tests := []struct {
		literal    string
		line, col  int
		endCol     int
		startIndex int
	}{
		{"a", 1, 1, 2, 0},
		{"+", 1, 3, 4, 2},
		{"bc", 2, 3, 5, 6},
		{"", 2, 5, 5, 8},
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Literal != tt.literal {
			t.Errorf("token %d: literal %q, want %q", i, tok.Literal, tt.literal)
		}
		if tok.Span.Start.Line != tt.line || tok.Span.Start.Column != tt.col {
			t.Errorf("token %d: start %v, want %d:%d", i, tok.Span.Start, tt.line, tt.col)
		}
		if tok.Span.End.Column != tt.endCol {
			t.Errorf("token %d: end column %d, want %d", i, tok.Span.End.Column, tt.endCol)
		}
		if tok.Span.Start.Offset != tt.startIndex {
			t.Errorf("token %d: offset %d, want %d", i, tok.Span.Start.Offset, tt.startIndex)
		}
		if tok.Span.Start.File != "f" {
			t.Errorf("token %d: file %q, want %q", i, tok.Span.Start.File, "f")
		}
	}
}

func TestLexerColumnsCountRunes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"é + x", 5},
		{`"é" + x`, 7},
		{`"😀\u00e9" + x`, 13},
		{"€ x", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize([]byte(tt.input), "")
			x := tokens[len(tokens)-2]
			if x.Literal != "x" {
				t.Fatalf("got last token %q, want x", x.Literal)
			}
			if x.Span.Start.Column != tt.want {
				t.Errorf("got column %v, want %v", x.Span.Start.Column, tt.want)
			}
		})
	}
}

func TestLexerStringStopsAtNewlineAfterBackslash(t *testing.T) {
	tokens := Tokenize([]byte("\"a\\\nb"), "")
	if tokens[0].Kind != TokenError || tokens[0].Literal != `"a\` {
		t.Fatalf("got %v %q, want an unterminated string", tokens[0].Kind, tokens[0].Literal)
	}
	if tokens[1].Span.Start.Line != 2 || tokens[1].Literal != "b" {
		t.Errorf("got %q at %v, want b on line 2", tokens[1].Literal, tokens[1].Span.Start)
	}
}

func TestLexerNumberStopsBeforeDanglingExponent(t *testing.T) {
	tokens := Tokenize([]byte("2e"), "")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[0].Literal != "2" || tokens[1].Literal != "e" {
		t.Errorf("got %q %q, want \"2\" \"e\"", tokens[0].Literal, tokens[1].Literal)
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("got %q, want %q", got, "3:7")
	}
	if got := (Position{File: "x.formula", Line: 1, Column: 2}).String(); got != "x.formula:1:2" {
		t.Errorf("got %q, want %q", got, "x.formula:1:2")
	}
}
