// interpreter.go — public surface of the hilang runtime.
//
// The runtime value model (Value and its constructors), variable environments
// (Env), the Interpreter with its entry points, and the structured
// RuntimeError live here. The evaluation engine itself is private and lives
// in interpreter_exec.go; it reports failures by panicking with an internal
// signal that the entry points below recover into a *RuntimeError.
//
// Scoping: the Interpreter owns a persistent Global environment. Run and
// EvalSource evaluate in a fresh child of Global, so one program run cannot
// leak variables into the next; EvalPersistentSource evaluates in Global
// itself, which is what the REPL wants.
package hilang

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTUnit  ValueTag = iota // no payload; result of pass, loops, empty branches
	VTBool                  // bool
	VTInt                   // int64
	VTStr                   // string
	VTTuple                 // *TupleObject
)

// Value is the tagged carrier threaded through every pipeline stage. The tag
// determines which Go type Data holds (see ValueTag).
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// TupleObject pairs two values for consumption by a binary operator.
type TupleObject struct {
	Left  Value
	Right Value
}

// Unit is the singleton unit Value.
var Unit = Value{Tag: VTUnit}

// Primitive constructors.
func Bool(b bool) Value { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value { return Value{Tag: VTInt, Data: n} }
func Str(s string) Value { return Value{Tag: VTStr, Data: s} }
func Tup(left, right Value) Value {
	return Value{Tag: VTTuple, Data: &TupleObject{Left: left, Right: right}}
}

// String renders a debug representation; Output-stage rendering is separate.
func (v Value) String() string {
	switch v.Tag {
	case VTUnit:
		return "()"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTTuple:
		t := v.Data.(*TupleObject)
		return fmt.Sprintf("<%s, %s>", t.Left, t.Right)
	default:
		return "<unknown>"
	}
}

// Env is a variable environment frame with a parent link; lookups walk
// parent-ward. Store writes always land in the current frame.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name or returns an error.
// An absent name is an error, never an implicit default.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, fmt.Errorf("undefined variable: %s", name)
}

// ErrKind classifies runtime failures.
type ErrKind int

const (
	ErrType ErrKind = iota // wrong value tag or malformed conversion
	ErrName                // load of an unset variable
	ErrDivision            // mod with a zero divisor
	ErrIO                  // input/output stream failure
)

func (k ErrKind) String() string {
	switch k {
	case ErrType:
		return "TypeError"
	case ErrName:
		return "NameError"
	case ErrDivision:
		return "DivisionError"
	case ErrIO:
		return "IOError"
	default:
		return "RuntimeError"
	}
}

// RuntimeError represents an execution-time failure with a 1-based source
// position of the failing stage.
type RuntimeError struct {
	Kind ErrKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR (%s) at %d:%d: %s", e.Kind, e.Line, e.Col, e.Msg)
}

// Interpreter evaluates hilang programs.
//
// Out receives one line of text per executed output stage; In feeds the input
// stage. Both default to the process's stdio and may be replaced before (not
// during) an evaluation — tests inject a bytes.Buffer and a strings.Reader.
type Interpreter struct {
	Global *Env
	Out    io.Writer
	In     io.Reader

	stdin *bufio.Reader // lazy wrapper around In
}

// NewInterpreter returns an interpreter with an empty Global environment,
// writing to stdout and reading from stdin.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Global: NewEnv(nil),
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// Run parses and evaluates a whole program against the Unit value in a fresh
// child of Global, discarding the result. It returns nil on success or one of
// *LexError, *ParseError, *RuntimeError.
func (ip *Interpreter) Run(src string) error {
	_, err := ip.EvalSource(src)
	return err
}

// EvalSource parses and evaluates source in a fresh child of Global and
// returns the pipeline's final value. Variables defined by the program land
// in the throwaway child; Global is unchanged.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	pipe, err := Parse(src)
	if err != nil {
		return Unit, err
	}
	return ip.EvalPipeline(pipe, Unit, NewEnv(ip.Global))
}

// EvalPersistentSource parses and evaluates source in Global (REPL-style):
// stored variables survive into later calls.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	pipe, err := Parse(src)
	if err != nil {
		return Unit, err
	}
	return ip.EvalPipeline(pipe, Unit, ip.Global)
}

// EvalPipeline evaluates a parsed pipeline against an incoming value in the
// given environment. On failure it returns a *RuntimeError; any output
// already written before the failing stage remains written.
func (ip *Interpreter) EvalPipeline(p *Pipeline, in Value, env *Env) (out Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(rtErr)
			if !ok {
				panic(r)
			}
			out = Unit
			err = &RuntimeError{Kind: sig.kind, Line: sig.line, Col: sig.col, Msg: sig.msg}
		}
	}()
	return ip.evalPipeline(p, in, env), nil
}
