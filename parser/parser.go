package parser

import (
	"fmt"

	"github.com/dhamidi/formula/lexer"
	"github.com/tliron/commonlog"
)

const (
	DefaultMaxDepth = 512

	// DefaultUnaryPrecedence makes prefix operators bind looser than `^` and
	// tighter than everything else in the default table.
	DefaultUnaryPrecedence = 8
)

// PrimaryFunc parses a single operand for the binary parser. It receives
// the parser so it can re-enter the full expression grammar, e.g. for
// parenthesised sub-expressions.
type PrimaryFunc func(p *Parser, minPrecedence int) Step[Node]

type Option func(*Parser)

func WithOperators(ops *OperatorTable) Option {
	return func(p *Parser) {
		p.operators = ops
	}
}

func WithPrimary(primary PrimaryFunc) Option {
	return func(p *Parser) {
		p.primary = primary
	}
}

func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

func WithUnaryPrecedence(prec int) Option {
	return func(p *Parser) {
		p.unaryPrecedence = prec
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser holds configuration only. It is safe for concurrent use; all
// parse progress lives in the State values threaded through its steps.
type Parser struct {
	operators       *OperatorTable
	primary         PrimaryFunc
	maxDepth        int
	unaryPrecedence int
	log             commonlog.Logger
}

func New(opts ...Option) *Parser {
	p := &Parser{
		operators:       DefaultOperators(),
		primary:         Primary,
		maxDepth:        DefaultMaxDepth,
		unaryPrecedence: DefaultUnaryPrecedence,
		log:             commonlog.GetLogger("formula.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Operators() *OperatorTable {
	return p.operators
}

func (p *Parser) MaxDepth() int {
	return p.maxDepth
}

func (p *Parser) UnaryPrecedence() int {
	return p.unaryPrecedence
}

// ParseExpression parses a complete token stream with a parser built from
// opts.
func ParseExpression(tokens []lexer.Token, opts ...Option) (Node, error) {
	return New(opts...).Parse(tokens)
}

// ParseString tokenizes src and parses it. file is only used in positions.
func ParseString(file, src string, opts ...Option) (Node, error) {
	return New(opts...).Parse(lexer.Tokenize([]byte(src), file))
}

// Parse parses tokens as a single expression that must span the whole
// stream. Exactly one of the results is non-nil.
func (p *Parser) Parse(tokens []lexer.Token) (Node, error) {
	node, s, err := p.Expression()(NewState(tokens))
	if err != nil {
		p.log.Debugf("parse failed after %d of %d tokens: %s", s.Pos(), len(tokens), err)
		return nil, err
	}
	if tok := s.current(); tok.Kind != lexer.TokenEOF {
		err := unexpected(tok, describeKind(lexer.TokenEOF))
		p.log.Debugf("trailing input: %s", err)
		return nil, err
	}
	return node, nil
}

// Expression is the top-level expression step.
func (p *Parser) Expression() Step[Node] {
	return p.Conditional()
}

// Conditional parses `cond ? ifTrue : ifFalse`. Both branches are full
// conditional expressions, which makes nesting right-associative. Without a
// `?` the condition is returned as is.
func (p *Parser) Conditional() Step[Node] {
	return p.nested(p.conditional)
}

func (p *Parser) conditional(s State) (Node, State, error) {
	condition, s, err := p.Binary(0)(s)
	if err != nil {
		return nil, s, err
	}

	tok, s, _ := CurrentToken(s)
	if tok.Kind != lexer.TokenQuestion {
		return condition, s, nil
	}
	_, s, _ = Advance(s)

	ifTrue, s, err := p.Conditional()(s)
	if err != nil {
		return nil, s, err
	}

	tok, s, _ = CurrentToken(s)
	if tok.Kind != lexer.TokenColon {
		return nil, s, &Error{
			Message:  "missing ':' in conditional expression",
			Position: tok.Span.Start,
			Expected: describeKind(lexer.TokenColon),
			Found:    tok.Describe(),
		}
	}
	_, s, _ = Advance(s)

	ifFalse, s, err := p.Conditional()(s)
	if err != nil {
		return nil, s, err
	}

	return &Conditional{Condition: condition, IfTrue: ifTrue, IfFalse: ifFalse}, s, nil
}

// Binary parses operators binding at least as tight as minPrecedence by
// precedence climbing. The right operand of a left-associative operator is
// parsed one level tighter; a right-associative one at the same level.
func (p *Parser) Binary(minPrecedence int) Step[Node] {
	return p.nested(func(s State) (Node, State, error) {
		left, s, err := p.primary(p, minPrecedence)(s)
		if err != nil {
			return nil, s, err
		}

		for {
			tok, _, _ := CurrentToken(s)
			op, ok := p.operators.Lookup(tok.Kind)
			if !ok || op.Precedence < minPrecedence {
				return left, s, nil
			}
			_, s, _ = Advance(s)

			next := op.Precedence + 1
			if op.Assoc == AssocRight {
				next = op.Precedence
			}
			right, after, err := p.Binary(next)(s)
			if err != nil {
				return nil, after, err
			}
			s = after
			left = &Binary{Op: tok, Left: left, Right: right}
		}
	})
}

// nested guards a recursive entry point against runaway nesting.
func (p *Parser) nested(step Step[Node]) Step[Node] {
	return func(s State) (Node, State, error) {
		if s.depth >= p.maxDepth {
			tok := s.current()
			p.log.Debugf("nesting limit %d reached at %s", p.maxDepth, tok.Span.Start)
			return nil, s, &Error{
				Message:  "expression nested too deeply",
				Position: tok.Span.Start,
				Expected: fmt.Sprintf("at most %d levels of nesting", p.maxDepth),
				Found:    tok.Describe(),
			}
		}
		s.depth++
		node, s, err := step(s)
		s.depth--
		return node, s, err
	}
}
