package parser

import (
	"strings"

	"github.com/dhamidi/formula/lexer"
)

type NodeKind int

const (
	KindConditional NodeKind = iota
	KindBinary
	KindUnary
	KindNumber
	KindString
	KindBoolean
	KindReference
	KindCall
	KindGroup
)

var nodeKindNames = map[NodeKind]string{
	KindConditional: "Conditional",
	KindBinary:      "Binary",
	KindUnary:       "Unary",
	KindNumber:      "Number",
	KindString:      "String",
	KindBoolean:     "Boolean",
	KindReference:   "Reference",
	KindCall:        "Call",
	KindGroup:       "Group",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is a node of the formula syntax tree. Every node owns its children.
// String renders the node as an S-expression.
type Node interface {
	Kind() NodeKind
	Span() lexer.Span
	String() string
}

// Conditional is `Condition ? IfTrue : IfFalse`.
type Conditional struct {
	Condition Node
	IfTrue    Node
	IfFalse   Node
}

func (n *Conditional) Kind() NodeKind { return KindConditional }

func (n *Conditional) Span() lexer.Span {
	return lexer.Span{Start: n.Condition.Span().Start, End: n.IfFalse.Span().End}
}

func (n *Conditional) String() string {
	return "(? " + n.Condition.String() + " " + n.IfTrue.String() + " " + n.IfFalse.String() + ")"
}

type Binary struct {
	Op    lexer.Token
	Left  Node
	Right Node
}

func (n *Binary) Kind() NodeKind { return KindBinary }

// Operator is the token kind of the operator.
func (n *Binary) Operator() lexer.TokenKind { return n.Op.Kind }

func (n *Binary) Span() lexer.Span {
	return lexer.Span{Start: n.Left.Span().Start, End: n.Right.Span().End}
}

func (n *Binary) String() string {
	return "(" + n.Op.Kind.String() + " " + n.Left.String() + " " + n.Right.String() + ")"
}

type Unary struct {
	Op      lexer.Token
	Operand Node
}

func (n *Unary) Kind() NodeKind { return KindUnary }

func (n *Unary) Span() lexer.Span {
	return lexer.Span{Start: n.Op.Span.Start, End: n.Operand.Span().End}
}

func (n *Unary) String() string {
	return "(" + n.Op.Kind.String() + " " + n.Operand.String() + ")"
}

type Number struct {
	Token lexer.Token
}

func (n *Number) Kind() NodeKind   { return KindNumber }
func (n *Number) Span() lexer.Span { return n.Token.Span }
func (n *Number) String() string   { return n.Token.Literal }

// String is a string literal; Value holds the unescaped contents.
type String struct {
	Token lexer.Token
	Value string
}

func (n *String) Kind() NodeKind   { return KindString }
func (n *String) Span() lexer.Span { return n.Token.Span }
func (n *String) String() string   { return n.Token.Literal }

type Boolean struct {
	Token lexer.Token
	Value bool
}

func (n *Boolean) Kind() NodeKind   { return KindBoolean }
func (n *Boolean) Span() lexer.Span { return n.Token.Span }
func (n *Boolean) String() string   { return n.Token.Literal }

// Reference names a value, possibly qualified: `sheet.total`.
type Reference struct {
	Parts []lexer.Token
}

func (n *Reference) Kind() NodeKind { return KindReference }

func (n *Reference) Span() lexer.Span {
	return lexer.Span{Start: n.Parts[0].Span.Start, End: n.Parts[len(n.Parts)-1].Span.End}
}

func (n *Reference) Name() string {
	names := make([]string, len(n.Parts))
	for i, part := range n.Parts {
		names[i] = part.Literal
	}
	return strings.Join(names, ".")
}

func (n *Reference) String() string { return n.Name() }

type Call struct {
	Callee *Reference
	Args   []Node
	Close  lexer.Token
}

func (n *Call) Kind() NodeKind { return KindCall }

func (n *Call) Span() lexer.Span {
	return lexer.Span{Start: n.Callee.Span().Start, End: n.Close.Span.End}
}

func (n *Call) String() string {
	var b strings.Builder
	b.WriteString("(call ")
	b.WriteString(n.Callee.Name())
	for _, arg := range n.Args {
		b.WriteString(" ")
		b.WriteString(arg.String())
	}
	b.WriteString(")")
	return b.String()
}

// Group is a parenthesised expression. It renders as its inner expression.
type Group struct {
	Open  lexer.Token
	Inner Node
	Close lexer.Token
}

func (n *Group) Kind() NodeKind { return KindGroup }

func (n *Group) Span() lexer.Span {
	return lexer.Span{Start: n.Open.Span.Start, End: n.Close.Span.End}
}

func (n *Group) String() string { return n.Inner.String() }

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Conditional:
		return []Node{n.Condition, n.IfTrue, n.IfFalse}
	case *Binary:
		return []Node{n.Left, n.Right}
	case *Unary:
		return []Node{n.Operand}
	case *Call:
		return append([]Node{n.Callee}, n.Args...)
	case *Group:
		return []Node{n.Inner}
	}
	return nil
}

// Walk visits n and its descendants depth-first. Returning false from visit
// skips the children of that node.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, visit)
	}
}

// NodeAt returns the innermost node whose span contains offset, or nil.
func NodeAt(root Node, offset int) Node {
	var found Node
	Walk(root, func(n Node) bool {
		span := n.Span()
		if offset < span.Start.Offset || offset >= span.End.Offset {
			return false
		}
		found = n
		return true
	})
	return found
}
