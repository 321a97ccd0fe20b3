package lexer

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenNumber
	TokenString
	TokenTrue
	TokenFalse

	// Punctuation
	TokenLParen
	TokenRParen
	TokenComma
	TokenDot
	TokenQuestion
	TokenColon

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLTGT
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenConcat
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenCaret
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:      "EOF",
	TokenError:    "Error",
	TokenIdent:    "Identifier",
	TokenNumber:   "Number",
	TokenString:   "String",
	TokenTrue:     "true",
	TokenFalse:    "false",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenComma:    ",",
	TokenDot:      ".",
	TokenQuestion: "?",
	TokenColon:    ":",
	TokenAssign:   "=",
	TokenEQ:       "==",
	TokenNE:       "!=",
	TokenLTGT:     "<>",
	TokenLT:       "<",
	TokenLE:       "<=",
	TokenGT:       ">",
	TokenGE:       ">=",
	TokenAnd:      "&&",
	TokenOr:       "||",
	TokenNot:      "!",
	TokenConcat:   "&",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenStar:     "*",
	TokenSlash:    "/",
	TokenPercent:  "%",
	TokenCaret:    "^",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenNumber, TokenString, TokenError:
		return fmt.Sprintf("%s %q", t.Kind, t.Literal)
	}
	return fmt.Sprintf("%q", t.Kind.String())
}

var keywords = map[string]TokenKind{
	"true":  TokenTrue,
	"false": TokenFalse,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

var operators map[string]TokenKind

func init() {
	operators = make(map[string]TokenKind)
	for kind := TokenAssign; kind <= TokenCaret; kind++ {
		operators[tokenKindNames[kind]] = kind
	}
}

// LookupOperator maps an operator symbol such as "<=" to its token kind.
func LookupOperator(symbol string) (TokenKind, bool) {
	kind, ok := operators[symbol]
	return kind, ok
}
