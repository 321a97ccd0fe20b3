package lsp

import (
	"strings"
	"testing"

	"github.com/dhamidi/formula/parser"
	"github.com/google/go-cmp/cmp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const sheet = `# totals
a + b

price * (1 + rate
ok ? "yes" : "no"
`

func TestAnalyze(t *testing.T) {
	doc := Analyze("file:///sheet.formula", sheet, NewCache(parser.New(), 16))

	lines := make([]int, len(doc.Formulas))
	for i, f := range doc.Formulas {
		lines[i] = f.Line
	}
	if diff := cmp.Diff([]int{1, 3, 4}, lines); diff != "" {
		t.Errorf("formula lines mismatch (-want +got):\n%s", diff)
	}
	if doc.Errors() != 1 {
		t.Errorf("got %d errors, want 1", doc.Errors())
	}
}

func TestDiagnostics(t *testing.T) {
	doc := Analyze("file:///sheet.formula", sheet, NewCache(parser.New(), 16))
	diags := doc.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}

	d := diags[0]
	want := protocol.Range{
		Start: protocol.Position{Line: 3, Character: 17},
		End:   protocol.Position{Line: 3, Character: 17},
	}
	if diff := cmp.Diff(want, d.Range); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(d.Message, "expected ')'") {
		t.Errorf("message: got %q", d.Message)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity: got %v", d.Severity)
	}
}

func TestDiagnosticRangeCoversToken(t *testing.T) {
	doc := Analyze("x", "a b", NewCache(parser.New(), 16))
	diags := doc.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if got := diags[0].Range; got.Start.Character != 2 || got.End.Character != 3 {
		t.Errorf("got range %+v, want 2-3", got)
	}
}

func TestDiagnosticsUseUTF16Columns(t *testing.T) {
	doc := Analyze("x", `"😀" +`, NewCache(parser.New(), 16))
	diags := doc.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	// the quoted emoji is four UTF-16 units, then " +"
	if got := diags[0].Range.Start.Character; got != 6 {
		t.Errorf("got start %d, want 6", got)
	}
}

func TestHoverAt(t *testing.T) {
	doc := Analyze("x", "# header\nprice * (1 + rate)", NewCache(parser.New(), 16))

	tests := []struct {
		pos    protocol.Position
		want   string
		wantOK bool
	}{
		{protocol.Position{Line: 1, Character: 0}, "Reference: price", true},
		{protocol.Position{Line: 1, Character: 6}, "Binary: (* price (+ 1 rate))", true},
		{protocol.Position{Line: 1, Character: 12}, "Binary: (+ 1 rate)", true},
		{protocol.Position{Line: 1, Character: 14}, "Reference: rate", true},
		{protocol.Position{Line: 0, Character: 2}, "", false},
		{protocol.Position{Line: 1, Character: 40}, "", false},
	}

	for _, tt := range tests {
		got, ok := doc.HoverAt(tt.pos)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("HoverAt(%d:%d) = %q, %v; want %q, %v", tt.pos.Line, tt.pos.Character, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestServerPublishesDiagnostics(t *testing.T) {
	ls := NewLSPServer("test")

	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				t.Errorf("unexpected notification %s", method)
			}
			published = append(published, params.(protocol.PublishDiagnosticsParams))
		},
	}

	uri := protocol.DocumentUri("file:///a.formula")
	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "a +"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if len(published) != 1 || len(published[0].Diagnostics) != 1 {
		t.Fatalf("got %+v, want one diagnostic", published)
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "a + b"}},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	if len(published) != 2 || len(published[1].Diagnostics) != 0 {
		t.Fatalf("got %+v, want diagnostics cleared", published)
	}

	hover, err := ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 0, Character: 4},
		},
	})
	if err != nil || hover == nil {
		t.Fatalf("hover: %v, %v", hover, err)
	}
	if got := hover.Contents.(protocol.MarkupContent).Value; got != "Reference: b" {
		t.Errorf("hover: got %q", got)
	}

	err = ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if _, ok := ls.Document(uri); ok {
		t.Error("document still open after close")
	}
}

func TestCacheReusesParses(t *testing.T) {
	cache := NewCache(parser.New(), 2)

	first, err := cache.Parse("a + b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := cache.Parse("a + b")
	if first != second {
		t.Error("second parse of the same line was not cached")
	}

	_, err1 := cache.Parse("a +")
	_, err2 := cache.Parse("a +")
	if err1 == nil || err1 != err2 {
		t.Errorf("got errors %v and %v, want the same cached error", err1, err2)
	}

	cache.Parse("c")
	cache.Parse("d")
	if cache.Len() > 2 {
		t.Errorf("cache holds %d lines, want at most 2", cache.Len())
	}
}
