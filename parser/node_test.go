package parser

import (
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindConditional, "Conditional"},
		{KindBinary, "Binary"},
		{KindUnary, "Unary"},
		{KindCall, "Call"},
		{KindGroup, "Group"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	node, err := ParseString("", "a ? f(b, -c) : (d)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kinds []NodeKind
	Walk(node, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	want := []NodeKind{
		KindConditional,
		KindReference,
		KindCall, KindReference, KindReference, KindUnary, KindReference,
		KindGroup, KindReference,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("node %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	node, err := ParseString("", "a + b * c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	Walk(node, func(n Node) bool {
		count++
		return n.Kind() != KindBinary
	})
	if count != 1 {
		t.Errorf("visited %d nodes, want 1", count)
	}
}

func TestNodeAt(t *testing.T) {
	node, err := ParseString("", "a + b * c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		offset int
		want   string
	}{
		{0, "a"},
		{2, "(+ a (* b c))"},
		{4, "b"},
		{6, "(* b c)"},
		{8, "c"},
	}
	for _, tt := range tests {
		got := NodeAt(node, tt.offset)
		if got == nil || got.String() != tt.want {
			t.Errorf("NodeAt(%d) = %v, want %s", tt.offset, got, tt.want)
		}
	}

	if got := NodeAt(node, 20); got != nil {
		t.Errorf("NodeAt(20) = %v, want nil", got)
	}
}
