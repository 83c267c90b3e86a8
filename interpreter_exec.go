// interpreter_exec.go — PRIVATE: the tree-walking evaluation engine.
//
// Every stage consumes exactly one Value and produces exactly one Value; a
// pipeline folds its stages left to right. Failures raise an internal rtErr
// panic carrying the error kind and the failing stage's position; the public
// EvalPipeline recovers it into a *RuntimeError. No formatting happens here.
package hilang

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// rtErr is the internal runtime-failure signal.
type rtErr struct {
	kind ErrKind
	line int
	col  int
	msg  string
}

func failAt(kind ErrKind, s *Stage, format string, args ...interface{}) {
	panic(rtErr{kind: kind, line: s.Line, col: s.Col + 1, msg: fmt.Sprintf(format, args...)})
}

func tagName(t ValueTag) string {
	switch t {
	case VTUnit:
		return "unit"
	case VTBool:
		return "boolean"
	case VTInt:
		return "integer"
	case VTStr:
		return "text"
	case VTTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

func (ip *Interpreter) evalPipeline(p *Pipeline, in Value, env *Env) Value {
	v := in
	for _, s := range p.Stages {
		v = ip.evalStage(s, v, env)
	}
	return v
}

func (ip *Interpreter) evalStage(s *Stage, in Value, env *Env) Value {
	switch s.Kind {
	case StLiteral:
		return Str(s.Text)
	case StConvert:
		return ip.evalConvert(s, in)
	case StStore:
		// Pipe-through: the stored value continues down the pipeline.
		env.Define(s.Text, in)
		return in
	case StLoad:
		v, err := env.Get(s.Text)
		if err != nil {
			failAt(ErrName, s, "undefined variable: %s", s.Text)
		}
		return v
	case StTuple:
		// Both operands receive the same incoming value; they do not chain.
		left := ip.evalPipeline(s.Left, in, env)
		right := ip.evalPipeline(s.Right, in, env)
		return Tup(left, right)
	case StBinOp:
		return ip.evalBinOp(s, in)
	case StOutput:
		ip.writeLine(s, in)
		return in
	case StInput:
		return ip.readLine(s)
	case StPass:
		return Unit
	case StGroup:
		return ip.evalPipeline(s.Body, in, env)
	case StAlt:
		return ip.evalAlt(s, in, env)
	case StLoop:
		return ip.evalLoop(s, in, env)
	default:
		failAt(ErrType, s, "internal: unknown stage kind %d", s.Kind)
		return Unit
	}
}

func (ip *Interpreter) evalConvert(s *Stage, in Value) Value {
	switch s.Text {
	case "int":
		switch in.Tag {
		case VTInt:
			return in
		case VTStr:
			n, err := strconv.ParseInt(in.Data.(string), 10, 64)
			if err != nil {
				failAt(ErrType, s, "cannot convert %q to integer", in.Data.(string))
			}
			return Int(n)
		default:
			failAt(ErrType, s, "int expects text, found %s", tagName(in.Tag))
		}
	case "str":
		switch in.Tag {
		case VTStr:
			return in
		case VTInt:
			return Str(strconv.FormatInt(in.Data.(int64), 10))
		default:
			failAt(ErrType, s, "str expects integer or text, found %s", tagName(in.Tag))
		}
	default:
		failAt(ErrType, s, "internal: unknown conversion %q", s.Text)
	}
	return Unit
}

func (ip *Interpreter) evalBinOp(s *Stage, in Value) Value {
	if in.Tag != VTTuple {
		failAt(ErrType, s, "%s expects a tuple, found %s", s.Op, tagName(in.Tag))
	}
	t := in.Data.(*TupleObject)

	// eq/ne compare like-tagged primitives; everything else is integer-only.
	if s.Op == OpEq || s.Op == OpNe {
		if t.Left.Tag != t.Right.Tag {
			failAt(ErrType, s, "%s expects matching operands, found %s and %s",
				s.Op, tagName(t.Left.Tag), tagName(t.Right.Tag))
		}
		var eq bool
		switch t.Left.Tag {
		case VTInt:
			eq = t.Left.Data.(int64) == t.Right.Data.(int64)
		case VTStr:
			eq = t.Left.Data.(string) == t.Right.Data.(string)
		case VTBool:
			eq = t.Left.Data.(bool) == t.Right.Data.(bool)
		default:
			failAt(ErrType, s, "%s cannot compare %s values", s.Op, tagName(t.Left.Tag))
		}
		if s.Op == OpNe {
			eq = !eq
		}
		return Bool(eq)
	}

	if t.Left.Tag != VTInt || t.Right.Tag != VTInt {
		failAt(ErrType, s, "%s expects a tuple of integers, found <%s, %s>",
			s.Op, tagName(t.Left.Tag), tagName(t.Right.Tag))
	}
	a := t.Left.Data.(int64)
	b := t.Right.Data.(int64)
	switch s.Op {
	case OpLe:
		return Bool(a <= b)
	case OpLt:
		return Bool(a < b)
	case OpAdd:
		return Int(a + b)
	case OpSub:
		return Int(a - b)
	case OpMul:
		return Int(a * b)
	case OpMod:
		if b == 0 {
			failAt(ErrDivision, s, "mod by zero")
		}
		return Int(a % b)
	default:
		failAt(ErrType, s, "internal: unknown operator %s", s.Op)
		return Unit
	}
}

// evalAlt tries branches in source order. A guarded branch runs its action
// only when the guard yields true and stops the chain; a false guard falls
// through to the next branch. An unconditional branch always runs and stops
// the chain. When every guard is false the result is Unit.
func (ip *Interpreter) evalAlt(s *Stage, in Value, env *Env) Value {
	for _, br := range s.Branches {
		if br.Guard == nil {
			return ip.evalPipeline(br.Action, in, env)
		}
		g := ip.evalPipeline(br.Guard, in, env)
		if g.Tag != VTBool {
			failAt(ErrType, s, "guard must yield a boolean, found %s", tagName(g.Tag))
		}
		if g.Data.(bool) {
			if len(br.Action.Stages) == 0 {
				return g
			}
			return ip.evalPipeline(br.Action, g, env)
		}
	}
	return Unit
}

// evalLoop re-evaluates the guard before every iteration, the first included.
// While it yields true the action runs; the action's result becomes the next
// iteration's input. The loop's own result is always Unit, and no iteration
// cap is imposed: a program whose guard never turns false is a valid,
// intentionally non-terminating program.
func (ip *Interpreter) evalLoop(s *Stage, in Value, env *Env) Value {
	cur := in
	for {
		g := ip.evalPipeline(s.Guard, cur, env)
		if g.Tag != VTBool {
			failAt(ErrType, s, "loop guard must yield a boolean, found %s", tagName(g.Tag))
		}
		if !g.Data.(bool) {
			return Unit
		}
		if len(s.Action.Stages) == 0 {
			cur = g
			continue
		}
		cur = ip.evalPipeline(s.Action, g, env)
	}
}

// writeLine renders the value and appends it with a newline to the output
// sink. Integers render in decimal, text verbatim, booleans as true/false;
// unit and tuples have no textual rendering and fail.
func (ip *Interpreter) writeLine(s *Stage, v Value) {
	var text string
	switch v.Tag {
	case VTInt:
		text = strconv.FormatInt(v.Data.(int64), 10)
	case VTStr:
		text = v.Data.(string)
	case VTBool:
		text = strconv.FormatBool(v.Data.(bool))
	default:
		failAt(ErrType, s, "cannot output a %s value", tagName(v.Tag))
	}
	if _, err := io.WriteString(ip.Out, text+"\n"); err != nil {
		failAt(ErrIO, s, "output: %v", err)
	}
}

// readLine reads one line from the input reader, without the trailing
// newline. A final unterminated line is returned as-is; reading past the end
// of input fails.
func (ip *Interpreter) readLine(s *Stage) Value {
	if ip.stdin == nil {
		ip.stdin = bufio.NewReader(ip.In)
	}
	line, err := ip.stdin.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			failAt(ErrIO, s, "input: end of input")
		}
	} else if err != nil {
		failAt(ErrIO, s, "input: %v", err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return Str(line)
}
