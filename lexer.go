package hilang

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LANGLE // "<"; also the symbolic spelling of lt after "."
	RANGLE // ">"
	LROUND // "("
	RROUND // ")"
	PERIOD // "."
	COMMA  // ","
	ARROW  // "->"
	PIPE   // "|"

	// Symbolic operator spellings
	OPLE  // "=<"
	OPEQ  // "=="
	OPNE  // "!="
	OPADD // "+"
	OPSUB // "-"
	OPMUL // "*"
	OPMOD // "%"

	// Literals & identifiers
	ID
	STRING
)

// Token is a lexical token with its source position (1-based line,
// 0-based column of the first byte).
type Token struct {
	Type    TokenType
	Lexeme  string // raw text slice
	Literal string // decoded content for STRING
	Line    int
	Col     int
}

// Lexer scans a hilang source string into tokens.
type Lexer struct {
	src         string
	start       int // start index of current token
	cur         int // current index
	line        int // 1-based
	col         int // 0-based column within line
	interactive bool

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// NewLexerInteractive creates a lexer whose at-end-of-input failure
// (an unterminated string) is flagged Incomplete, for REPL probing.
func NewLexerInteractive(src string) *Lexer {
	l := NewLexer(src)
	l.interactive = true
	return l
}

// LexError reports a lexical failure at a source position. Incomplete marks
// an interactive-mode failure caused solely by running out of input; REPLs
// use it to prompt for a continuation line.
type LexError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func (l *Lexer) errAtEnd(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg, Incomplete: l.interactive}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

func isAlpha(b byte) bool    { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool { return isAlpha(b) || (b >= '0' && b <= '9') }

func (l *Lexer) mkToken(tt TokenType, lit string) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.start = l.cur
	return tok
}

// scanString reads until the closing quote. The content between the quotes is
// taken verbatim: hilang strings have no escape sequences.
func (l *Lexer) scanString() (Token, error) {
	contentStart := l.cur
	for {
		ch, ok := l.advance()
		if !ok {
			return Token{}, l.errAtEnd("string was not terminated")
		}
		if ch == '"' {
			return l.mkToken(STRING, l.src[contentStart:l.cur-1]), nil
		}
	}
}

func (l *Lexer) scanIdentifier() Token {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.mkToken(ID, l.src[l.start:l.cur])
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.mkToken(EOF, ""), nil
	}

	ch, _ := l.advance()
	switch ch {
	case '<':
		return l.mkToken(LANGLE, ""), nil
	case '>':
		return l.mkToken(RANGLE, ""), nil
	case '(':
		return l.mkToken(LROUND, ""), nil
	case ')':
		return l.mkToken(RROUND, ""), nil
	case '.':
		return l.mkToken(PERIOD, ""), nil
	case ',':
		return l.mkToken(COMMA, ""), nil
	case '|':
		return l.mkToken(PIPE, ""), nil
	case '+':
		return l.mkToken(OPADD, ""), nil
	case '*':
		return l.mkToken(OPMUL, ""), nil
	case '%':
		return l.mkToken(OPMOD, ""), nil
	case '-':
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			return l.mkToken(ARROW, ""), nil
		}
		return l.mkToken(OPSUB, ""), nil
	case '=':
		if b, ok := l.peek(); ok && b == '<' {
			l.advance()
			return l.mkToken(OPLE, ""), nil
		}
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.mkToken(OPEQ, ""), nil
		}
		return Token{}, l.err("unexpected character: '='")
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.mkToken(OPNE, ""), nil
		}
		return Token{}, l.err("unexpected character: '!'")
	case '"':
		return l.scanString()
	}

	if isAlpha(ch) {
		return l.scanIdentifier(), nil
	}
	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
