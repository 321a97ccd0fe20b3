package lsp

import (
	"errors"
	"strings"
	"unicode/utf16"

	"github.com/dhamidi/formula/lexer"
	"github.com/dhamidi/formula/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Formula is one parsed line of a document.
type Formula struct {
	Line int // zero-based
	Text string
	Node parser.Node
	Err  error
}

// Document holds the formulas of an open file: one per line, blank lines
// and lines starting with # are skipped.
type Document struct {
	URI      protocol.DocumentUri
	Formulas []Formula
}

func Analyze(uri protocol.DocumentUri, text string, cache *Cache) *Document {
	doc := &Document{URI: uri}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		node, err := cache.Parse(line)
		doc.Formulas = append(doc.Formulas, Formula{Line: i, Text: line, Node: node, Err: err})
	}
	return doc
}

func (d *Document) Errors() int {
	n := 0
	for _, f := range d.Formulas {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Diagnostics reports one error per failing line. The range covers the
// offending token, or the rest of the line when it is not known.
func (d *Document) Diagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	source := lsName

	for _, f := range d.Formulas {
		if f.Err == nil {
			continue
		}
		start, end := 0, len(f.Text)
		message := f.Err.Error()
		var perr *parser.Error
		if errors.As(f.Err, &perr) {
			start = min(perr.Position.Offset, len(f.Text))
			end = tokenEnd(f.Text, start)
			message = perr.Message
			if perr.Expected != "" {
				message += ": expected " + perr.Expected + ", found " + perr.Found
			}
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(f.Line), Character: utf16Len(f.Text[:start])},
				End:   protocol.Position{Line: protocol.UInteger(f.Line), Character: utf16Len(f.Text[:end])},
			},
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}
	return diagnostics
}

// HoverAt describes the innermost node under the cursor as its kind and
// S-expression.
func (d *Document) HoverAt(pos protocol.Position) (string, bool) {
	for _, f := range d.Formulas {
		if f.Line != int(pos.Line) || f.Node == nil {
			continue
		}
		offset := byteOffset(f.Text, int(pos.Character))
		node := parser.NodeAt(f.Node, offset)
		if node == nil {
			return "", false
		}
		return node.Kind().String() + ": " + node.String(), true
	}
	return "", false
}

// tokenEnd is the byte offset where the token starting at start ends.
func tokenEnd(line string, start int) int {
	if start >= len(line) {
		return start
	}
	tok := lexer.NewLexer([]byte(line[start:]), "").NextToken()
	if tok.Kind == lexer.TokenEOF {
		return start
	}
	return start + tok.Span.End.Offset
}

func utf16Len(s string) protocol.UInteger {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return protocol.UInteger(n)
}

// byteOffset converts a UTF-16 column into a byte offset within line.
func byteOffset(line string, character int) int {
	units := 0
	for i, r := range line {
		if units >= character {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}
