package format

import (
	"io"
	"strings"

	"github.com/dhamidi/formula/parser"
)

// TreeEncoder prints one node per line, children indented by two spaces.
type TreeEncoder struct {
	w             io.Writer
	showPositions bool
}

func NewTreeEncoder(w io.Writer, showPositions bool) *TreeEncoder {
	return &TreeEncoder{w: w, showPositions: showPositions}
}

func (e *TreeEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(node parser.Node) ([]byte, error) {
	var b strings.Builder
	e.writeIndent(&b, node, 0)
	return []byte(b.String()), nil
}

func (e *TreeEncoder) writeIndent(b *strings.Builder, n parser.Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind().String())
	if e.showPositions {
		span := n.Span()
		b.WriteString(" [" + span.Start.String() + "-" + span.End.String() + "]")
	}
	if text := label(n); text != "" {
		b.WriteString(" " + text)
	}
	if call, ok := n.(*parser.Call); ok {
		b.WriteString(" " + call.Callee.Name())
	}
	b.WriteString("\n")

	for _, child := range children(n) {
		e.writeIndent(b, child, indent+1)
	}
}
