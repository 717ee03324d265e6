package token

import (
	"fmt"

	"github.com/dfeneyrou/styml-go/internal/tree"
)

// Error is a tokenizer-level fatal error; the parser driver wraps it with
// the source line number and a copy of the offending line before handing
// it to the caller (see internal/parse/errors.go).
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (line %d)", e.Message, e.Line+1)
}

func newError(line int, format string, args ...any) *Error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Lexer is the tokenizer described by the core spec: given a cursor into
// the source text, it produces the next token on each call to Next,
// materializing scalar payloads into the shared arena via the session
// mechanism.
type Lexer struct {
	src         []byte
	pos         int
	line        int
	col         int
	atLineStart bool
	arena       *tree.Arena
}

// NewLexer creates a tokenizer over src, writing materialized scalars
// into arena.
func NewLexer(src []byte, arena *tree.Arena) *Lexer {
	return &Lexer{src: src, atLineStart: true, arena: arena}
}

func (lx *Lexer) eof() bool { return lx.pos >= len(lx.src) }

func (lx *Lexer) peekByte() byte {
	if lx.eof() {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *Lexer) peekByteAt(off int) byte {
	if lx.pos+off >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+off]
}

func (lx *Lexer) advance() byte {
	b := lx.src[lx.pos]
	lx.pos++
	if b == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}
	return b
}

// skipIndentSpaces consumes leading spaces, erroring on a tab encountered
// before any non-space character: indentation is measured in spaces only.
func (lx *Lexer) skipIndentSpaces() error {
	for !lx.eof() && lx.peekByte() == ' ' {
		lx.advance()
	}
	if !lx.eof() && lx.peekByte() == '\t' {
		return newError(lx.line, "using tabulation is not accepted for indentation")
	}
	return nil
}

// skipSeparatorSpaces consumes a run of plain spaces that is not itself
// being measured as indentation (e.g. the space after "key:" or after the
// caret's dash).
func (lx *Lexer) skipSeparatorSpaces() {
	for !lx.eof() && lx.peekByte() == ' ' {
		lx.advance()
	}
}

// Next produces the next token. parentIndent is the enclosing indentation
// context, consulted only when opening a block scalar (| or >) to resolve
// an explicit-indent indicator.
func (lx *Lexer) Next(parentIndent int) (Token, error) {
	wasAtLineStart := lx.atLineStart

	if wasAtLineStart {
		if err := lx.skipIndentSpaces(); err != nil {
			return Token{}, err
		}
	} else {
		lx.skipSeparatorSpaces()
	}

	if lx.eof() {
		return Token{Kind: Eos, Line: lx.line, Column: lx.col}, nil
	}

	line, col := lx.line, lx.col

	switch ch := lx.peekByte(); {
	case ch == '\n':
		lx.advance()
		lx.atLineStart = true
		return Token{Kind: Newline, Line: line, Column: col}, nil

	case ch == '#':
		lx.atLineStart = false
		return lx.scanComment(line, col, wasAtLineStart)

	case ch == '-' && lx.isCaretLead():
		lx.advance()
		lx.atLineStart = false
		return Token{Kind: CaretTok, Line: line, Column: col}, nil

	default:
		lx.atLineStart = false
		return lx.scanScalar(line, col, parentIndent)
	}
}

func (lx *Lexer) isCaretLead() bool {
	next := lx.peekByteAt(1)
	return next == 0 || next == ' ' || next == '\n'
}

func (lx *Lexer) scanComment(line, col int, standalone bool) (Token, error) {
	lx.advance() // '#'
	s := lx.arena.StartSession()
	for !lx.eof() && lx.peekByte() != '\n' {
		s = s.AddByteToSession(lx.advance())
	}
	off, ln := s.CommitSession()
	return Token{Kind: CommentTok, Line: line, Column: col, StrOff: off, StrLen: ln, Standalone: standalone}, nil
}

// scanScalar dispatches on the lead character to the right scalar style
// and turns the result into a Key or StringValue token.
func (lx *Lexer) scanScalar(line, col, parentIndent int) (Token, error) {
	var text []byte
	var becameKey bool
	var err error

	switch lx.peekByte() {
	case '\'':
		text, err = lx.scanSingleQuoted()
	case '"':
		text, err = lx.scanDoubleQuoted()
	case '|':
		text, err = lx.scanBlock(false, parentIndent)
	case '>':
		text, err = lx.scanBlock(true, parentIndent)
	default:
		text, becameKey, err = lx.scanPlain(col, line)
	}
	if err != nil {
		return Token{}, err
	}

	s := lx.arena.StartSession()
	s = s.AddToSession(text)
	off, ln := s.CommitSession()

	kind := StringValue
	if becameKey {
		kind = KeyTok
	}
	return Token{Kind: kind, Line: line, Column: col, StrOff: off, StrLen: ln}, nil
}
