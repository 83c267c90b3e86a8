// Package hilang implements an interpreter for hilang, a minimal
// pipeline-oriented language. A program is a single expression that threads a
// value through a chain of stages connected by "->":
//
//	"2" -> int -> <n>.store -> <<n>.load, "3" -> int>.add -> output
//
// Stages are literals, conversions (int, str), variable access
// (<name>.store / <name>.load), tuples feeding binary operators
// (<left, right>.add), output, input, pass, guarded alternation
// (a | b | ...) and loops ((body).loop). The full surface grammar is
// documented in parser.go.
//
// The package exposes three layers:
//
//   - lexing and parsing: NewLexer/Scan, Parse, ParseInteractive;
//   - evaluation: Interpreter with Run, EvalSource, EvalPersistentSource;
//   - error presentation: WrapErrorWithSource renders lex, parse and runtime
//     errors as caret-annotated source snippets.
//
// Programs are single-threaded; the evaluator is a plain recursive tree walk
// over an immutable AST with one mutable variable environment per run.
package hilang

// Version is the interpreter version reported by the CLI.
const Version = "0.1.0"
