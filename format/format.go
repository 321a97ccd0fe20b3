// Package format renders formula syntax trees as JSON, indented trees or
// S-expressions.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/formula/parser"
)

type Encoder interface {
	Encode(node parser.Node) error
}

// New returns the encoder registered under name: "json", "tree" or "sexpr".
func New(name string, w io.Writer, withPositions bool) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w, withPositions), nil
	case "sexpr":
		return NewSexprEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (expected json, tree or sexpr)", name)
}

// label is the token text a node carries, if any.
func label(n parser.Node) string {
	switch n := n.(type) {
	case *parser.Binary:
		return n.Op.Literal
	case *parser.Unary:
		return n.Op.Literal
	case *parser.Number:
		return n.Token.Literal
	case *parser.String:
		return n.Token.Literal
	case *parser.Boolean:
		return n.Token.Literal
	case *parser.Reference:
		return n.Name()
	}
	return ""
}

// children lists the nodes printed under n. A call's callee is already part
// of its label.
func children(n parser.Node) []parser.Node {
	if call, ok := n.(*parser.Call); ok {
		return call.Args
	}
	return parser.Children(n)
}
