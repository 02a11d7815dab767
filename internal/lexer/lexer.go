package lexer

import (
	"pyfix/internal/source"
	"pyfix/internal/token"
)

// Lexer turns Python source bytes into a token stream. Logical-line
// structure (NEWLINE, INDENT, DEDENT) is produced here so the parser can
// stay a plain recursive descent over tokens.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	pending []token.Token // queued indents/dedents and pushed-back tokens
	indents []uint32      // indentation column stack, always starts at 0
	depth   uint32        // open bracket nesting; newlines inside are joined
	atLineStart  bool
	lineHadToken bool
	eof          bool
}

// New creates a lexer over file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		atLineStart: true,
	}
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}

		if lx.eof {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		if lx.atLineStart && lx.depth == 0 {
			lx.scanIndentation()
			continue
		}

		if lx.cursor.EOF() {
			lx.flushAtEOF()
			continue
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\f':
			lx.cursor.Bump()

		case ch == '#':
			lx.skipComment()

		case ch == '\\' && lx.cursor.PeekAt(1) == '\n':
			lx.cursor.Skip(2)

		case ch == '\n':
			start := lx.cursor.Off
			lx.cursor.Bump()
			if lx.depth > 0 {
				continue // implicit line joining
			}
			lx.atLineStart = true
			if lx.lineHadToken {
				lx.lineHadToken = false
				return token.Token{
					Kind: token.Newline,
					Span: source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off},
					Text: "\n",
				}
			}

		default:
			tok := lx.scanToken(ch)
			lx.lineHadToken = true
			return tok
		}
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.pending = append([]token.Token{t}, lx.pending...)
	return t
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.emptySpan()
}

func (lx *Lexer) scanToken(ch byte) token.Token {
	switch {
	case isIdentStartByte(ch) || ch >= 0x80:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '\'' || ch == '"':
		return lx.scanString(lx.cursor.Off, "")
	default:
		return lx.scanOperatorOrPunct()
	}
}

// scanIndentation measures the leading whitespace of the next content line
// and queues Indent/Dedent tokens. Blank and comment-only lines produce
// nothing.
func (lx *Lexer) scanIndentation() {
	tab := lx.opts.tabSize()
	for {
		col := uint32(0)
		for {
			switch lx.cursor.Peek() {
			case ' ':
				col++
			case '\t':
				col = (col/tab + 1) * tab
			case '\f':
				// form feed resets the column count, matching CPython
				col = 0
			default:
				goto measured
			}
			lx.cursor.Bump()
		}
	measured:
		if lx.cursor.EOF() {
			lx.flushAtEOF()
			return
		}

		switch lx.cursor.Peek() {
		case '\n':
			lx.cursor.Bump()
			continue
		case '#':
			lx.skipComment()
			if !lx.cursor.EOF() {
				lx.cursor.Bump() // consume the newline
			}
			continue
		}

		lx.applyIndent(col)
		lx.atLineStart = false
		return
	}
}

func (lx *Lexer) applyIndent(col uint32) {
	top := lx.indents[len(lx.indents)-1]
	switch {
	case col > top:
		lx.indents = append(lx.indents, col)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: lx.emptySpan()})
	case col < top:
		for len(lx.indents) > 1 && col < lx.indents[len(lx.indents)-1] {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
		}
		if col != lx.indents[len(lx.indents)-1] {
			lx.report(diagBadIndent, lx.emptySpan(), "unindent does not match any outer indentation level")
			// force-align so one mistake does not cascade
			lx.indents[len(lx.indents)-1] = col
		}
	}
}

// flushAtEOF emits a trailing Newline for an unterminated last line, then
// dedents for the whole stack, then latches the EOF state.
func (lx *Lexer) flushAtEOF() {
	if lx.lineHadToken {
		lx.lineHadToken = false
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: lx.emptySpan()})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
	}
	lx.eof = true
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) spanFrom(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off}
}

func (lx *Lexer) text(span source.Span) string {
	return string(lx.file.Content[span.Start:span.End])
}
