package token

import "strings"

// scanSingleQuoted scans a single-quoted scalar. Terminates at the next
// unescaped '; a doubled '' becomes a literal '. Line breaks inside the
// string fold to a single space; a blank line becomes a literal newline.
func (lx *Lexer) scanSingleQuoted() ([]byte, error) {
	startLine := lx.line
	lx.advance() // opening '
	var out []byte
	blanks := 0
	sawLine := false

	for {
		if lx.eof() {
			return nil, newError(startLine, "unfinished single-quote string")
		}
		ch := lx.peekByte()
		switch {
		case ch == '\'' && lx.peekByteAt(1) == '\'':
			lx.advance()
			lx.advance()
			out = append(out, '\'')
		case ch == '\'':
			lx.advance()
			return out, nil
		case ch == '\n':
			lx.advance()
			if err := lx.skipIndentSpaces(); err != nil {
				return nil, err
			}
			if !lx.eof() && lx.peekByte() == '\n' {
				blanks++
				continue
			}
			if sawLine || len(out) > 0 {
				out = foldNewline(out, blanks)
			}
			sawLine = true
			blanks = 0
		default:
			lx.advance()
			out = append(out, ch)
		}
	}
}

// scanDoubleQuoted scans a double-quoted scalar with the recognized
// escapes \n \r \t \" \\. \x.. \u.... \U........ are preserved verbatim
// (a known limitation, see spec.md §9 Open Questions). A backslash
// followed directly by a newline joins lines, stripping the following
// line's leading spaces.
func (lx *Lexer) scanDoubleQuoted() ([]byte, error) {
	startLine := lx.line
	lx.advance() // opening "
	var out []byte
	blanks := 0
	sawLine := false

	for {
		if lx.eof() {
			return nil, newError(startLine, "unfinished double-quote string")
		}
		ch := lx.peekByte()
		switch {
		case ch == '"':
			lx.advance()
			return out, nil
		case ch == '\\' && lx.peekByteAt(1) == '\n':
			lx.advance()
			lx.advance()
			if err := lx.skipIndentSpaces(); err != nil {
				return nil, err
			}
		case ch == '\\':
			lx.advance()
			esc := lx.escapeByte()
			out = append(out, esc...)
		case ch == '\n':
			lx.advance()
			if err := lx.skipIndentSpaces(); err != nil {
				return nil, err
			}
			if !lx.eof() && lx.peekByte() == '\n' {
				blanks++
				continue
			}
			if sawLine || len(out) > 0 {
				out = foldNewline(out, blanks)
			}
			sawLine = true
			blanks = 0
		default:
			lx.advance()
			out = append(out, ch)
		}
	}
}

// escapeByte consumes the character after a backslash and returns its
// expansion. Unknown escapes are preserved as \X; \x \u \U are preserved
// verbatim rather than expanded.
func (lx *Lexer) escapeByte() []byte {
	if lx.eof() {
		return []byte{'\\'}
	}
	ch := lx.peekByte()
	switch ch {
	case 'n':
		lx.advance()
		return []byte{'\n'}
	case 'r':
		lx.advance()
		return []byte{'\r'}
	case 't':
		lx.advance()
		return []byte{'\t'}
	case '"':
		lx.advance()
		return []byte{'"'}
	case '\\':
		lx.advance()
		return []byte{'\\'}
	case 'x', 'u', 'U':
		// Known limitation: not expanded, backslash preserved verbatim.
		return []byte{'\\'}
	default:
		lx.advance()
		return []byte{'\\', ch}
	}
}

func foldNewline(out []byte, blanks int) []byte {
	if blanks > 0 {
		for i := 0; i < blanks; i++ {
			out = append(out, '\n')
		}
		return out
	}
	return append(out, ' ')
}

// scanBlock scans a literal (|) or folded (>) block scalar: an optional
// chomp indicator (-, +) and/or an explicit indent digit (1..9), each at
// most once, followed by the rest of the opener line (ignored), then the
// indented body.
func (lx *Lexer) scanBlock(folded bool, parentIndent int) ([]byte, error) {
	openLine := lx.line
	lx.advance() // '|' or '>'

	chomp := byte(0)
	explicitIndent := -1
	sawChomp := false
	sawExplicit := false

	for {
		ch := lx.peekByte()
		if ch == '-' || ch == '+' {
			if sawChomp {
				return nil, newError(openLine, "chomp cannot be provided more than once")
			}
			sawChomp = true
			chomp = ch
			lx.advance()
			continue
		}
		if ch >= '1' && ch <= '9' {
			if sawExplicit {
				return nil, newError(openLine, "explicit indentation cannot be provided more than once")
			}
			sawExplicit = true
			explicitIndent = int(ch - '0')
			lx.advance()
			continue
		}
		break
	}

	// Ignore the rest of the opener line.
	for !lx.eof() && lx.peekByte() != '\n' {
		lx.advance()
	}
	if !lx.eof() {
		lx.advance() // consume the newline
	}

	blockIndent := -1
	if explicitIndent >= 0 {
		blockIndent = parentIndent + explicitIndent
	}

	var lines []string
	var isBreak []bool

	for {
		if lx.eof() {
			break
		}
		save := lx.save()
		ind, blank, err := lx.peekLineIndent()
		if err != nil {
			return nil, err
		}
		if blank {
			lines = append(lines, "")
			isBreak = append(isBreak, true)
			lx.restore(save)
			lx.skipBlankLine()
			continue
		}
		if blockIndent < 0 {
			if ind == 0 || lx.eof() {
				lx.restore(save)
				break
			}
			blockIndent = ind
		}
		if ind < blockIndent || lx.eof() {
			lx.restore(save)
			break
		}
		lx.restore(save)
		for i := 0; i < blockIndent; i++ {
			lx.advance()
		}
		text := lx.scanRestOfLine()
		lines = append(lines, text)
		isBreak = append(isBreak, false)
		if !lx.eof() && lx.peekByte() == '\n' {
			lx.advance()
		}
	}

	body := assembleBlock(lines, isBreak, folded)
	return []byte(applyChomp(body, chomp)), nil
}

func (lx *Lexer) scanRestOfLine() string {
	start := lx.pos
	for !lx.eof() && lx.peekByte() != '\n' {
		lx.advance()
	}
	return string(lx.src[start:lx.pos])
}

func (lx *Lexer) skipBlankLine() {
	for !lx.eof() && lx.peekByte() != '\n' {
		lx.advance()
	}
	if !lx.eof() {
		lx.advance()
	}
}

type lexState struct {
	pos, line, col int
	atLineStart    bool
}

func (lx *Lexer) save() lexState {
	return lexState{lx.pos, lx.line, lx.col, lx.atLineStart}
}

func (lx *Lexer) restore(s lexState) {
	lx.pos, lx.line, lx.col, lx.atLineStart = s.pos, s.line, s.col, s.atLineStart
}

// peekLineIndent measures the indentation of the line at the current
// cursor without consuming it, reporting whether the line is blank
// (only spaces, then newline or EOS).
func (lx *Lexer) peekLineIndent() (indent int, blank bool, err error) {
	p := lx.pos
	for p < len(lx.src) && lx.src[p] == ' ' {
		p++
		indent++
	}
	if p < len(lx.src) && lx.src[p] == '\t' {
		return 0, false, newError(lx.line, "using tabulation is not accepted for indentation")
	}
	blank = p >= len(lx.src) || lx.src[p] == '\n'
	return indent, blank, nil
}

func assembleBlock(lines []string, isBreak []bool, folded bool) string {
	var b strings.Builder
	for i, ln := range lines {
		if isBreak[i] {
			b.WriteByte('\n')
			continue
		}
		if i > 0 && !isBreak[i-1] {
			if folded {
				b.WriteByte(' ')
			} else {
				b.WriteByte('\n')
			}
		} else if i > 0 {
			// previous was a break already written as \n
		}
		b.WriteString(ln)
	}
	if len(lines) > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

// applyChomp implements the block-scalar chomp policy: '-' strips all
// trailing newlines, '+' preserves them, and the default keeps exactly
// one.
func applyChomp(body string, chomp byte) string {
	trimmed := strings.TrimRight(body, "\n")
	switch chomp {
	case '-':
		return trimmed
	case '+':
		return body
	default:
		return trimmed + "\n"
	}
}

// scanPlain scans an unquoted scalar. col is the column at which the
// scalar started, used as the continuation threshold for multi-line
// plain scalars. It terminates at end-of-line, at a ':' followed by
// space/newline/EOS (which turns it into a Key and swallows the colon),
// or at a space directly before '#' (which leaves the cursor on that
// space, so the next token is the comment). Trailing spaces are stripped from each physical
// line before folding.
func (lx *Lexer) scanPlain(col, startLine int) ([]byte, bool, error) {
	var out []byte
	becameKey := false

	for {
		lineStart := len(out)
		for {
			if lx.eof() {
				break
			}
			ch := lx.peekByte()
			if ch == '\n' {
				break
			}
			if ch == ':' {
				next := lx.peekByteAt(1)
				if next == 0 || next == ' ' || next == '\n' || next == '\r' {
					lx.advance() // ':'
					becameKey = true
					break
				}
			}
			if ch == ' ' && lx.peekByteAt(1) == '#' {
				break
			}
			out = append(out, lx.advance())
		}
		out = append(out[:lineStart], bytesTrimRightSpace(out[lineStart:])...)

		if becameKey {
			return out, true, nil
		}
		if lx.eof() || lx.peekByte() != '\n' {
			return out, false, nil
		}

		// Look ahead across the newline: if the next physical line is
		// indented further than this scalar's own starting column, it is
		// a continuation; otherwise leave the newline for Next() to
		// tokenize and stop here.
		save := lx.save()
		lx.advance() // consume '\n'
		blanks := 0
		for {
			if lx.eof() {
				lx.restore(save)
				return out, false, nil
			}
			ind, blank, err := lx.peekLineIndent()
			if err != nil {
				return nil, false, err
			}
			if !blank {
				if ind <= col {
					lx.restore(save)
					return out, false, nil
				}
				for i := 0; i < ind; i++ {
					lx.advance()
				}
				out = foldNewline(out, blanks)
				break
			}
			lx.skipBlankLine()
			blanks++
		}
	}
}

func bytesTrimRightSpace(b []byte) []byte {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == '\t') {
		end--
	}
	return b[:end]
}
