package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"sexpr", "", []string{"parse", "-f", "sexpr", "a + b * c"}, "(+ a (* b c))\n"},
		{"joined args", "", []string{"parse", "-f", "sexpr", "a", "?", "b", ":", "c"}, "(? a b c)\n"},
		{"stdin", "f(x, 1)\n", []string{"parse", "-f", "sexpr"}, "(call f x 1)\n"},
		{"dash", "!ok\n", []string{"parse", "-f", "sexpr", "-"}, "(! ok)\n"},
		{"tree", "", []string{"parse", "-f", "tree", "--", "-x"}, "Unary -\n  Reference x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCommandReportsErrors(t *testing.T) {
	out, err := run(t, "", "parse", "a +")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, `"error"`) || !strings.Contains(out, "unexpected end of input") {
		t.Errorf("json error missing from output:\n%s", out)
	}

	if _, err := run(t, "", "parse", "-f", "xml", "a"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestParseCommandUsesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yaml")
	data := "operators:\n  - {symbol: \"-\", precedence: 6, assoc: right}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "", "--config", path, "parse", "-f", "sexpr", "a - b - c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "(- a (- b c))\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokensCommand(t *testing.T) {
	got, err := run(t, "", "tokens", "a<=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), got)
	}
	if fields := strings.Fields(lines[1]); len(fields) != 3 || fields[0] != "1:2" || fields[2] != "<=" {
		t.Errorf("got line %q", lines[1])
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.formula")
	data := "# prices\nprice * qty\n\ntotal > 100 ? 0.9 :\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "check", path)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	if !strings.Contains(err.Error(), "1 of 2 formulas") {
		t.Errorf("got error %q", err)
	}
	want := path + ":4:20: unexpected end of input: expected an expression, found end of input\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	good := filepath.Join(dir, "good.formula")
	if err := os.WriteFile(good, []byte("a\nb + c\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "check", good); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGrammarCommand(t *testing.T) {
	out, err := run(t, "", "grammar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Formula     = Conditional .") {
		t.Errorf("grammar text missing start production:\n%s", out)
	}

	out, err = run(t, "", "grammar", "--check")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok: ") {
		t.Errorf("got %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.ebnf")
	if err := os.WriteFile(bad, []byte(`A = B .`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "grammar", "--file", bad, "--start", "A"); err == nil {
		t.Error("expected an undefined production to fail")
	}
}
