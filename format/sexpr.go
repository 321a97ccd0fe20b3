package format

import (
	"io"

	"github.com/dhamidi/formula/parser"
)

// SexprEncoder writes the canonical S-expression of a tree on one line.
type SexprEncoder struct {
	w io.Writer
}

func NewSexprEncoder(w io.Writer) *SexprEncoder {
	return &SexprEncoder{w: w}
}

func (e *SexprEncoder) Encode(node parser.Node) error {
	_, err := io.WriteString(e.w, node.String()+"\n")
	return err
}
