package hilang

import (
	"errors"
	"strings"
	"testing"
)

func Test_WrapError_ParseSnippet(t *testing.T) {
	src := "\"a\" -> output ->\nshout ->\n\"b\" -> output"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	wrapped := WrapErrorWithSource(err, src)
	got := wrapped.Error()
	want := strings.Join([]string{
		`PARSE ERROR at 2:1: unknown instruction "shout"`,
		``,
		`   1 | "a" -> output ->`,
		`   2 | shout ->`,
		`     | ^`,
		`   3 | "b" -> output`,
		``,
	}, "\n")
	if got != want {
		t.Fatalf("snippet mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func Test_WrapError_WithName(t *testing.T) {
	src := `"x" -> @`
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected lex error")
	}
	got := WrapErrorWithName(err, "demo.hl", src).Error()
	if !strings.HasPrefix(got, "LEXICAL ERROR in demo.hl at 1:8: ") {
		t.Fatalf("header: got %q", got)
	}
	if !strings.Contains(got, "     |        ^\n") {
		t.Fatalf("caret column: got %q", got)
	}
}

func Test_WrapError_Runtime(t *testing.T) {
	src := "\"ok\" -> output ->\n<gone>.load"
	ip := NewInterpreter()
	ip.Out = &strings.Builder{}
	_, err := ip.EvalSource(src)
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	got := WrapErrorWithSource(err, src).Error()
	if !strings.HasPrefix(got, "RUNTIME ERROR (NameError) at 2:1: ") {
		t.Fatalf("header: got %q", got)
	}
	if !strings.Contains(got, "   2 | <gone>.load\n     | ^\n") {
		t.Fatalf("snippet body: got %q", got)
	}
}

func Test_WrapError_ForeignErrorPassesThrough(t *testing.T) {
	plain := errors.New("boom")
	if WrapErrorWithSource(plain, "src") != plain {
		t.Fatalf("unrelated errors must pass through untouched")
	}
}

func Test_WrapError_ClampsStalePosition(t *testing.T) {
	re := &RuntimeError{Kind: ErrType, Line: 99, Col: 99, Msg: "late"}
	got := WrapErrorWithSource(re, "one line").Error()
	if !strings.Contains(got, "   1 | one line\n") {
		t.Fatalf("out-of-range position must clamp, got %q", got)
	}
}
