// Package parser turns a formula token stream into a syntax tree.
//
// # Overview
//
// Parsing is a chain of pure steps over an immutable cursor:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Tokens    │────▶│ Conditional │────▶│   Binary    │────▶│   Primary   │
//	│  (lexer)    │     │   a ? b : c │     │ (climbing)  │     │ (pluggable) │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	                           ▲                                       │
//	                           └───────── ( … ) and call args ─────────┘
//
// # Steps
//
// A Step[T] takes a State and returns a value, the next State, and an
// error. State is a value type holding the token slice, the cursor and the
// current nesting depth, so two parses never share mutable data and the
// same tokens always produce the same tree.
//
//	tok, s, _ := parser.CurrentToken(s) // read, never fails
//	tok, s, _ = parser.Advance(s)       // consume, capped at end of stream
//
// Steps compose with Bind, Then, Skip, Map and Sequence. Each stops at the
// first error and hands it up unchanged:
//
//	group := parser.Bind(parser.Expect(lexer.TokenLParen), func(lexer.Token) parser.Step[parser.Node] {
//	    return parser.Skip(p.Expression(), parser.Expect(lexer.TokenRParen))
//	})
//
// # Operators
//
// Binary operators come from an OperatorTable (precedence and
// associativity per token kind). Binary(min) parses an operand and then
// absorbs operators of precedence >= min, parsing the right operand at
// precedence+1 for left-associative operators and at the same precedence
// for right-associative ones. Tokens that are not in the table end the
// expression and are left for the caller.
//
// # Conditionals
//
// Conditional parses a binary expression and, if a `?` follows, two more
// conditional expressions separated by `:`. Because both branches recurse
// into Conditional, `a ? b : c ? d : e` groups as `a ? b : (c ? d : e)`.
//
// # Errors
//
// Syntax errors are *Error values carrying a message, the position, what
// was expected and what was found. Parsing is fail-fast: the first error
// aborts the whole parse and no partial node is ever built. Nesting deeper
// than the configured maximum is reported as an error rather than growing
// the stack without bound.
package parser
