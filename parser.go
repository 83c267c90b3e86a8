// parser.go — recursive-descent parser for hilang.
//
// Surface grammar (the canonical concrete syntax; "->" is the lowest-binding
// sequencing combinator inside a pipeline, "|" binds lower still):
//
//	Program    := Alt
//	Alt        := Pipeline ("|" Pipeline)*
//	Pipeline   := Stage ("->" Stage)*
//	Stage      := STRING
//	            | "int" | "str" | "output" | "input" | "pass"
//	            | "<" ID ">" "." ("store" | "load")
//	            | "<" Pipeline "," Pipeline ">" "." Op
//	            | "(" Alt ")" ["." "loop"]
//	Op         := "le" | "lt" | "eq" | "ne" | "add" | "sub" | "mul" | "mod"
//	            | "=<" | "<"  | "==" | "!=" | "+"   | "-"   | "*"   | "%"
//
// A parenthesized Alt with a single alternative is plain grouping; with two or
// more it is an alternation stage. "<a, b>.add" produces two stages, Tuple
// then BinaryOp, so every stage keeps the one-value-in/one-value-out shape.
//
// Operator names are resolved here into the closed BinOp enumeration; an
// unknown name after "." is a parse error, never a runtime one. The parser
// also performs the guard/action split for alternation branches and loop
// bodies: a pipeline's guard is its prefix up to and including its single
// top-level comparison stage (le/lt/eq/ne). A branch may have no comparison
// (it becomes unconditional, the conventional trailing default); a loop body
// must have exactly one; more than one anywhere is rejected.
package hilang

import "fmt"

// StageKind enumerates the AST stage variants.
type StageKind int

const (
	StLiteral StageKind = iota // quoted literal; Text holds the content
	StConvert                  // "int" or "str"; Text holds the target
	StStore                    // <name>.store; Text holds the variable name
	StLoad                     // <name>.load; Text holds the variable name
	StTuple                    // <Left, Right>; pairs two sub-pipelines
	StBinOp                    // binary operator consuming a tuple
	StOutput
	StInput
	StPass
	StGroup // parenthesized sub-pipeline; Body
	StAlt   // alternation; Branches
	StLoop  // loop; Guard/Action split of the body
)

// BinOp is the closed set of binary operators, resolved at parse time.
type BinOp int

const (
	OpLe BinOp = iota
	OpLt
	OpEq
	OpNe
	OpAdd
	OpSub
	OpMul
	OpMod
)

func (op BinOp) String() string {
	switch op {
	case OpLe:
		return "le"
	case OpLt:
		return "lt"
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpMod:
		return "mod"
	default:
		return "?"
	}
}

// IsComparison reports whether the operator produces a Boolean.
func (op BinOp) IsComparison() bool {
	switch op {
	case OpLe, OpLt, OpEq, OpNe:
		return true
	default:
		return false
	}
}

var binOpNames = map[string]BinOp{
	"le": OpLe, "lt": OpLt, "eq": OpEq, "ne": OpNe,
	"add": OpAdd, "sub": OpSub, "mul": OpMul, "mod": OpMod,
}

// Stage is a single pipeline step. Exactly one field group is populated,
// selected by Kind. Stages own their children exclusively; the tree is built
// once by Parse and never mutated afterwards.
type Stage struct {
	Kind StageKind
	Text string // literal content, variable name, or conversion target
	Op   BinOp

	Left, Right   *Pipeline // StTuple operands
	Body          *Pipeline // StGroup
	Guard, Action *Pipeline // StLoop; Action may be empty
	Branches      []Branch  // StAlt

	Line int // 1-based
	Col  int // 0-based
}

// Pipeline is an ordered stage sequence; each stage's output feeds the next.
type Pipeline struct {
	Stages []*Stage
}

// Branch is one alternative of an alternation. Guard is nil for an
// unconditional branch; otherwise it ends in a comparison stage and Action
// holds the remainder (possibly empty).
type Branch struct {
	Guard  *Pipeline
	Action *Pipeline
}

// ParseError reports a syntactic failure at a source position. Incomplete
// marks an interactive-mode failure at end of input (see IsIncomplete).
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a lex or parse error caused solely by
// the input ending too early in interactive mode. REPLs use it to read a
// continuation line instead of failing.
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *LexError:
		return e.Incomplete
	case *ParseError:
		return e.Incomplete
	default:
		return false
	}
}

// Parse parses a complete hilang source string and returns the program
// pipeline. An empty program is a parse error.
func Parse(src string) (*Pipeline, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseInteractive parses in REPL-friendly mode: constructs left unterminated
// at end of input produce an error for which IsIncomplete reports true.
func ParseInteractive(src string) (*Pipeline, error) {
	lex := NewLexerInteractive(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: true}
	return p.program()
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) peekN(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errHere(msg)
}

// errHere builds a ParseError at the current token, flagging Incomplete when
// the parser ran off the end of interactive input.
func (p *parser) errHere(msg string) error {
	g := p.peek()
	return &ParseError{
		Line:       g.Line,
		Col:        g.Col,
		Msg:        msg,
		Incomplete: p.interactive && g.Type == EOF,
	}
}

func (p *parser) errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

// program parses Alt EOF and wraps a multi-branch top level in an StAlt stage.
func (p *parser) program() (*Pipeline, error) {
	pipes, first, err := p.altList()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(EOF, "unexpected trailing input"); err != nil {
		return nil, err
	}
	return p.foldAlt(pipes, first)
}

// altList parses Pipeline ("|" Pipeline)* and returns the alternatives along
// with the token that opened the first one.
func (p *parser) altList() ([]*Pipeline, Token, error) {
	first := p.peek()
	pipe, err := p.pipeline()
	if err != nil {
		return nil, first, err
	}
	pipes := []*Pipeline{pipe}
	for p.match(PIPE) {
		next, err := p.pipeline()
		if err != nil {
			return nil, first, err
		}
		pipes = append(pipes, next)
	}
	return pipes, first, nil
}

// foldAlt turns one alternative into the pipeline itself and several into a
// single-stage pipeline holding an StAlt with guard-split branches.
func (p *parser) foldAlt(pipes []*Pipeline, first Token) (*Pipeline, error) {
	if len(pipes) == 1 {
		return pipes[0], nil
	}
	branches := make([]Branch, 0, len(pipes))
	for _, pipe := range pipes {
		br, err := p.splitBranch(pipe)
		if err != nil {
			return nil, err
		}
		branches = append(branches, br)
	}
	alt := &Stage{Kind: StAlt, Branches: branches, Line: first.Line, Col: first.Col}
	return &Pipeline{Stages: []*Stage{alt}}, nil
}

// splitBranch applies the guard/action split to one alternation branch.
func (p *parser) splitBranch(pipe *Pipeline) (Branch, error) {
	idx, err := p.guardIndex(pipe)
	if err != nil {
		return Branch{}, err
	}
	if idx < 0 {
		return Branch{Action: pipe}, nil
	}
	return Branch{
		Guard:  &Pipeline{Stages: pipe.Stages[:idx+1]},
		Action: &Pipeline{Stages: pipe.Stages[idx+1:]},
	}, nil
}

// guardIndex returns the index of the pipeline's single top-level comparison
// stage, -1 when there is none, or an error when there are several.
func (p *parser) guardIndex(pipe *Pipeline) (int, error) {
	idx := -1
	for i, s := range pipe.Stages {
		if s.Kind == StBinOp && s.Op.IsComparison() {
			if idx >= 0 {
				return 0, &ParseError{
					Line: s.Line, Col: s.Col,
					Msg: "a branch may contain only one guard comparison",
				}
			}
			idx = i
		}
	}
	return idx, nil
}

// pipeline parses Stage ("->" Stage)*.
func (p *parser) pipeline() (*Pipeline, error) {
	pipe := &Pipeline{}
	if err := p.stage(pipe); err != nil {
		return nil, err
	}
	for p.match(ARROW) {
		if err := p.stage(pipe); err != nil {
			return nil, err
		}
	}
	return pipe, nil
}

// stage parses one stage and appends it (or, for tuples, the Tuple and BinOp
// pair) to pipe.
func (p *parser) stage(pipe *Pipeline) error {
	tok := p.peek()
	switch tok.Type {
	case STRING:
		p.i++
		pipe.Stages = append(pipe.Stages, &Stage{
			Kind: StLiteral, Text: tok.Literal, Line: tok.Line, Col: tok.Col,
		})
		return nil
	case ID:
		p.i++
		switch tok.Lexeme {
		case "int", "str":
			pipe.Stages = append(pipe.Stages, &Stage{
				Kind: StConvert, Text: tok.Lexeme, Line: tok.Line, Col: tok.Col,
			})
		case "output":
			pipe.Stages = append(pipe.Stages, &Stage{Kind: StOutput, Line: tok.Line, Col: tok.Col})
		case "input":
			pipe.Stages = append(pipe.Stages, &Stage{Kind: StInput, Line: tok.Line, Col: tok.Col})
		case "pass":
			pipe.Stages = append(pipe.Stages, &Stage{Kind: StPass, Line: tok.Line, Col: tok.Col})
		default:
			return p.errAt(tok, fmt.Sprintf("unknown instruction %q", tok.Lexeme))
		}
		return nil
	case LANGLE:
		return p.angle(pipe)
	case LROUND:
		return p.group(pipe)
	default:
		return p.errHere("expected a pipeline stage")
	}
}

// angle parses variable access (<name>.store / <name>.load) or a tuple with
// its binary operator (<left, right>.op).
func (p *parser) angle(pipe *Pipeline) error {
	open := p.peek()
	p.i++ // consume '<'

	if p.peek().Type == ID && p.peekN(1).Type == RANGLE {
		name := p.peek().Lexeme
		p.i += 2
		if _, err := p.need(PERIOD, "expected '.' after variable"); err != nil {
			return err
		}
		meth, err := p.need(ID, "expected 'store' or 'load'")
		if err != nil {
			return err
		}
		switch meth.Lexeme {
		case "store":
			pipe.Stages = append(pipe.Stages, &Stage{
				Kind: StStore, Text: name, Line: open.Line, Col: open.Col,
			})
		case "load":
			pipe.Stages = append(pipe.Stages, &Stage{
				Kind: StLoad, Text: name, Line: open.Line, Col: open.Col,
			})
		default:
			return p.errAt(meth, fmt.Sprintf("expected 'store' or 'load', found %q", meth.Lexeme))
		}
		return nil
	}

	left, err := p.pipeline()
	if err != nil {
		return err
	}
	if _, err := p.need(COMMA, "expected ',' in tuple"); err != nil {
		return err
	}
	right, err := p.pipeline()
	if err != nil {
		return err
	}
	if _, err := p.need(RANGLE, "expected '>' to close tuple"); err != nil {
		return err
	}
	dot, err := p.need(PERIOD, "expected '.' and an operator after tuple")
	if err != nil {
		return err
	}
	op, err := p.binOpName()
	if err != nil {
		return err
	}
	pipe.Stages = append(pipe.Stages,
		&Stage{Kind: StTuple, Left: left, Right: right, Line: open.Line, Col: open.Col},
		&Stage{Kind: StBinOp, Op: op, Line: dot.Line, Col: dot.Col},
	)
	return nil
}

// binOpName resolves the token after '.' into a BinOp, accepting both the
// word spellings (add, le, ...) and the symbolic ones (+, =<, ...).
func (p *parser) binOpName() (BinOp, error) {
	tok := p.peek()
	switch tok.Type {
	case ID:
		if op, ok := binOpNames[tok.Lexeme]; ok {
			p.i++
			return op, nil
		}
		return 0, p.errAt(tok, fmt.Sprintf("unknown operator %q", tok.Lexeme))
	case OPLE:
		p.i++
		return OpLe, nil
	case LANGLE:
		p.i++
		return OpLt, nil
	case OPEQ:
		p.i++
		return OpEq, nil
	case OPNE:
		p.i++
		return OpNe, nil
	case OPADD:
		p.i++
		return OpAdd, nil
	case OPSUB:
		p.i++
		return OpSub, nil
	case OPMUL:
		p.i++
		return OpMul, nil
	case OPMOD:
		p.i++
		return OpMod, nil
	default:
		return 0, p.errHere("expected an operator name")
	}
}

// group parses "(" Alt ")" and the optional ".loop" suffix.
func (p *parser) group(pipe *Pipeline) error {
	open := p.peek()
	p.i++ // consume '('

	pipes, first, err := p.altList()
	if err != nil {
		return err
	}
	if _, err := p.need(RROUND, "expected ')'"); err != nil {
		return err
	}

	if p.match(PERIOD) {
		meth, err := p.need(ID, "expected 'loop'")
		if err != nil {
			return err
		}
		if meth.Lexeme != "loop" {
			return p.errAt(meth, fmt.Sprintf("expected 'loop', found %q", meth.Lexeme))
		}
		body, err := p.foldAlt(pipes, first)
		if err != nil {
			return err
		}
		guard, action, err := p.splitLoop(body, open)
		if err != nil {
			return err
		}
		pipe.Stages = append(pipe.Stages, &Stage{
			Kind: StLoop, Guard: guard, Action: action, Line: open.Line, Col: open.Col,
		})
		return nil
	}

	if len(pipes) == 1 {
		pipe.Stages = append(pipe.Stages, &Stage{
			Kind: StGroup, Body: pipes[0], Line: open.Line, Col: open.Col,
		})
		return nil
	}
	folded, err := p.foldAlt(pipes, first)
	if err != nil {
		return err
	}
	pipe.Stages = append(pipe.Stages, folded.Stages[0])
	return nil
}

// splitLoop applies the guard/action split to a loop body, which must carry
// exactly one top-level comparison.
func (p *parser) splitLoop(body *Pipeline, open Token) (*Pipeline, *Pipeline, error) {
	idx, err := p.guardIndex(body)
	if err != nil {
		return nil, nil, err
	}
	if idx < 0 {
		return nil, nil, p.errAt(open, "loop body requires a guard comparison")
	}
	guard := &Pipeline{Stages: body.Stages[:idx+1]}
	action := &Pipeline{Stages: body.Stages[idx+1:]}
	return guard, action, nil
}
