package format

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/dhamidi/formula/lexer"
	"github.com/dhamidi/formula/parser"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText(node parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

// EncodeError writes err as a JSON object. Syntax errors keep their
// position and expectation.
func (e *JSONEncoder) EncodeError(err error) error {
	out := jsonError{Message: err.Error()}
	var perr *parser.Error
	if errors.As(err, &perr) {
		pos := positionToJSON(perr.Position)
		out = jsonError{
			Message:  perr.Message,
			Position: &pos,
			Expected: perr.Expected,
			Found:    perr.Found,
		}
	}
	text, merr := json.MarshalIndent(struct {
		Error jsonError `json:"error"`
	}{out}, "", "  ")
	if merr != nil {
		return merr
	}
	_, werr := e.w.Write(append(text, '\n'))
	return werr
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     jsonSpan    `json:"span"`
	Operator string      `json:"operator,omitempty"`
	Name     string      `json:"name,omitempty"`
	Value    any         `json:"value,omitempty"`
	Literal  string      `json:"literal,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

type jsonError struct {
	Message  string        `json:"message"`
	Position *jsonPosition `json:"position,omitempty"`
	Expected string        `json:"expected,omitempty"`
	Found    string        `json:"found,omitempty"`
}

func positionToJSON(p lexer.Position) jsonPosition {
	return jsonPosition{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func nodeToJSON(n parser.Node) *jsonNode {
	span := n.Span()
	jn := &jsonNode{
		Kind: n.Kind().String(),
		Span: jsonSpan{Start: positionToJSON(span.Start), End: positionToJSON(span.End)},
	}

	switch n := n.(type) {
	case *parser.Binary:
		jn.Operator = n.Op.Literal
	case *parser.Unary:
		jn.Operator = n.Op.Literal
	case *parser.Number:
		// source spellings like .5 or 007 are not JSON numbers
		jn.Literal = n.Token.Literal
		if f, err := strconv.ParseFloat(n.Token.Literal, 64); err == nil {
			jn.Value = json.Number(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case *parser.String:
		jn.Value = n.Value
	case *parser.Boolean:
		jn.Value = n.Value
	case *parser.Reference:
		jn.Name = n.Name()
	case *parser.Call:
		jn.Name = n.Callee.Name()
	}

	for _, child := range children(n) {
		jn.Children = append(jn.Children, nodeToJSON(child))
	}
	return jn
}
