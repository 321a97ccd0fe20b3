package parser

import (
	"fmt"
	"sort"

	"github.com/dhamidi/formula/lexer"
)

type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

func (a Assoc) String() string {
	if a == AssocRight {
		return "right"
	}
	return "left"
}

func ParseAssoc(s string) (Assoc, error) {
	switch s {
	case "", "left":
		return AssocLeft, nil
	case "right":
		return AssocRight, nil
	}
	return AssocLeft, fmt.Errorf("unknown associativity %q (expected left or right)", s)
}

// Operator describes how a binary operator token binds.
type Operator struct {
	Kind       lexer.TokenKind
	Precedence int
	Assoc      Assoc
}

// OperatorTable maps token kinds to binary operators. Tokens missing from
// the table are not operators. A table is read-only once built.
type OperatorTable struct {
	ops map[lexer.TokenKind]Operator
}

// NewOperatorTable builds a table. Precedences start at 1 so that a
// minimum precedence of 0 admits every operator.
func NewOperatorTable(ops ...Operator) (*OperatorTable, error) {
	return (&OperatorTable{}).With(ops...)
}

// MustOperatorTable is like NewOperatorTable but panics on an invalid table.
// It is meant for tables written out in source.
func MustOperatorTable(ops ...Operator) *OperatorTable {
	t, err := NewOperatorTable(ops...)
	if err != nil {
		panic(err)
	}
	return t
}

// With returns a copy of t with ops added. An entry for a kind already in
// t replaces it; listing the same kind twice in ops is an error.
func (t *OperatorTable) With(ops ...Operator) (*OperatorTable, error) {
	out := &OperatorTable{ops: make(map[lexer.TokenKind]Operator, len(t.ops)+len(ops))}
	for kind, op := range t.ops {
		out.ops[kind] = op
	}
	seen := make(map[lexer.TokenKind]bool, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case lexer.TokenEOF, lexer.TokenError, lexer.TokenQuestion, lexer.TokenColon,
			lexer.TokenLParen, lexer.TokenRParen, lexer.TokenComma:
			return nil, fmt.Errorf("token %q cannot be a binary operator", op.Kind)
		}
		if op.Precedence < 1 {
			return nil, fmt.Errorf("operator %q: precedence must be at least 1, got %d", op.Kind, op.Precedence)
		}
		if seen[op.Kind] {
			return nil, fmt.Errorf("operator %q listed twice", op.Kind)
		}
		seen[op.Kind] = true
		out.ops[op.Kind] = op
	}
	return out, nil
}

func (t *OperatorTable) Lookup(kind lexer.TokenKind) (Operator, bool) {
	if t == nil {
		return Operator{}, false
	}
	op, ok := t.ops[kind]
	return op, ok
}

// Operators lists the table ordered by precedence, loosest first.
func (t *OperatorTable) Operators() []Operator {
	if t == nil {
		return nil
	}
	ops := make([]Operator, 0, len(t.ops))
	for _, op := range t.ops {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Precedence != ops[j].Precedence {
			return ops[i].Precedence < ops[j].Precedence
		}
		return ops[i].Kind < ops[j].Kind
	})
	return ops
}

// MaxPrecedence is the tightest binding precedence in the table.
func (t *OperatorTable) MaxPrecedence() int {
	max := 0
	if t == nil {
		return max
	}
	for _, op := range t.ops {
		if op.Precedence > max {
			max = op.Precedence
		}
	}
	return max
}

var defaultOperators = MustOperatorTable(
	Operator{Kind: lexer.TokenOr, Precedence: 1},
	Operator{Kind: lexer.TokenAnd, Precedence: 2},
	Operator{Kind: lexer.TokenAssign, Precedence: 3},
	Operator{Kind: lexer.TokenEQ, Precedence: 3},
	Operator{Kind: lexer.TokenNE, Precedence: 3},
	Operator{Kind: lexer.TokenLTGT, Precedence: 3},
	Operator{Kind: lexer.TokenLT, Precedence: 4},
	Operator{Kind: lexer.TokenLE, Precedence: 4},
	Operator{Kind: lexer.TokenGT, Precedence: 4},
	Operator{Kind: lexer.TokenGE, Precedence: 4},
	Operator{Kind: lexer.TokenConcat, Precedence: 5},
	Operator{Kind: lexer.TokenPlus, Precedence: 6},
	Operator{Kind: lexer.TokenMinus, Precedence: 6},
	Operator{Kind: lexer.TokenStar, Precedence: 7},
	Operator{Kind: lexer.TokenSlash, Precedence: 7},
	Operator{Kind: lexer.TokenPercent, Precedence: 7},
	Operator{Kind: lexer.TokenCaret, Precedence: 8, Assoc: AssocRight},
)

// DefaultOperators is the formula operator table: logical, comparison,
// concatenation, additive, multiplicative and right-associative power.
func DefaultOperators() *OperatorTable {
	return defaultOperators
}
