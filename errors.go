// errors.go: user-facing error wrapping and caret-snippet rendering.
//
// WrapErrorWithSource turns the interpreter's structured diagnostics
// (*LexError, *ParseError, *RuntimeError) into readable multi-line snippets
// with a caret pointing at the offending column:
//
//	PARSE ERROR in fizzbuzz.hl at 3:12: expected ')'
//
//	   2 | "1" -> int -> <i>.store ->
//	   3 | (<<i>.load, "30" -> int>.le
//	     |            ^
//	   4 |  -> output
//
// The snippet shows up to one line of context before and after the error.
// Any other error kind is returned unchanged, so callers can wrap blindly.
// Output is plain text (no ANSI escapes); the CLI applies color on top.
package hilang

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource is WrapErrorWithName without a source name in the
// header.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName returns err rewritten as a caret-annotated snippet of src
// when err is a lex, parse, or runtime error; other errors pass through.
// Lex/parse columns are stored 0-based and rendered 1-based; runtime errors
// are already 1-based.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		header := fmt.Sprintf("RUNTIME ERROR (%s)", e.Kind)
		return fmt.Errorf("%s", snippet(src, header, srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// snippet builds the caret view. Coordinates are 1-based and clamped to the
// source bounds so a stale position can never crash rendering.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
