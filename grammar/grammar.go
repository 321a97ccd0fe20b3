// Package grammar carries the EBNF description of the formula language and
// checks EBNF grammars with golang.org/x/exp/ebnf.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"reflect"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of the formula grammar.
const Start = "Formula"

//go:embed formula.ebnf
var source []byte

// Source returns the formula grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded formula grammar.
func Load() (ebnf.Grammar, error) {
	return ebnf.Parse("formula.ebnf", bytes.NewReader(source))
}

// Check parses the grammar read from r and, when start is not empty,
// verifies that every production is defined and reachable from start.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return g, err
	}
	return g, nil
}

// Errors flattens the error lists returned by the ebnf package.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		} else {
			errs = append(errs, fmt.Errorf("%v", v.Index(i).Interface()))
		}
	}
	return errs
}

// Tokens returns the literal tokens a production lists as alternatives,
// e.g. the operator symbols of BinaryOp.
func Tokens(g ebnf.Grammar, name string) []string {
	prod, ok := g[name]
	if !ok {
		return nil
	}
	var tokens []string
	collectTokens(prod.Expr, &tokens)
	return tokens
}

func collectTokens(expr ebnf.Expression, tokens *[]string) {
	switch x := expr.(type) {
	case ebnf.Alternative:
		for _, alt := range x {
			collectTokens(alt, tokens)
		}
	case *ebnf.Token:
		*tokens = append(*tokens, x.String)
	}
}
