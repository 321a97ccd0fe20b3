package parser

import (
	"strconv"

	"github.com/dhamidi/formula/lexer"
)

const expectedExpression = "an expression"

// Primary is the default operand grammar: numbers, strings, booleans,
// references, calls, parenthesised expressions and the prefix operators
// `-`, `+` and `!`. A prefix operator applies to everything binding at
// least as tight as the parser's unary precedence.
func Primary(p *Parser, minPrecedence int) Step[Node] {
	return func(s State) (Node, State, error) {
		tok, _, _ := CurrentToken(s)
		switch tok.Kind {
		case lexer.TokenNumber:
			_, s, _ = Advance(s)
			return &Number{Token: tok}, s, nil

		case lexer.TokenString:
			value, err := strconv.Unquote(tok.Literal)
			if err != nil {
				return nil, s, &Error{
					Message:  "invalid string literal",
					Position: tok.Span.Start,
					Expected: "a valid escape sequence",
					Found:    tok.Describe(),
				}
			}
			_, s, _ = Advance(s)
			return &String{Token: tok, Value: value}, s, nil

		case lexer.TokenTrue, lexer.TokenFalse:
			_, s, _ = Advance(s)
			return &Boolean{Token: tok, Value: tok.Kind == lexer.TokenTrue}, s, nil

		case lexer.TokenIdent:
			return referenceOrCall(p)(s)

		case lexer.TokenLParen:
			return group(p)(s)

		case lexer.TokenMinus, lexer.TokenPlus, lexer.TokenNot:
			return prefix(p)(s)
		}
		return nil, s, unexpected(tok, expectedExpression)
	}
}

func reference() Step[*Reference] {
	return Map(SeparatedBy(Expect(lexer.TokenIdent), lexer.TokenDot), func(parts []lexer.Token) *Reference {
		return &Reference{Parts: parts}
	})
}

func referenceOrCall(p *Parser) Step[Node] {
	return Bind(reference(), func(ref *Reference) Step[Node] {
		return func(s State) (Node, State, error) {
			if s.current().Kind != lexer.TokenLParen {
				return ref, s, nil
			}
			return call(p, ref)(s)
		}
	})
}

func call(p *Parser, callee *Reference) Step[Node] {
	return Then(Expect(lexer.TokenLParen),
		Bind(arguments(p), func(args []Node) Step[Node] {
			return Map(Expect(lexer.TokenRParen), func(rparen lexer.Token) Node {
				return &Call{Callee: callee, Args: args, Close: rparen}
			})
		}))
}

func arguments(p *Parser) Step[[]Node] {
	return func(s State) ([]Node, State, error) {
		if s.current().Kind == lexer.TokenRParen {
			return nil, s, nil
		}
		return SeparatedBy(p.Expression(), lexer.TokenComma)(s)
	}
}

func group(p *Parser) Step[Node] {
	return Bind(Expect(lexer.TokenLParen), func(open lexer.Token) Step[Node] {
		return Bind(p.Expression(), func(inner Node) Step[Node] {
			return Map(Expect(lexer.TokenRParen), func(rparen lexer.Token) Node {
				return &Group{Open: open, Inner: inner, Close: rparen}
			})
		})
	})
}

func prefix(p *Parser) Step[Node] {
	return Bind(Step[lexer.Token](Advance), func(op lexer.Token) Step[Node] {
		return Map(p.Binary(p.unaryPrecedence), func(operand Node) Node {
			return &Unary{Op: op, Operand: operand}
		})
	})
}
