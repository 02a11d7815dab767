package lexer

import (
	"fmt"

	"pyfix/internal/token"
)

// scanOperatorOrPunct consumes one operator or punctuation token with
// longest-match lookahead, and keeps the bracket depth current for implicit
// line joining.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off
	b := lx.cursor.Bump()

	kind := token.Invalid
	switch b {
	case '(':
		kind = token.LParen
		lx.depth++
	case ')':
		kind = token.RParen
		lx.closeBracket()
	case '[':
		kind = token.LBracket
		lx.depth++
	case ']':
		kind = token.RBracket
		lx.closeBracket()
	case '{':
		kind = token.LBrace
		lx.depth++
	case '}':
		kind = token.RBrace
		lx.closeBracket()
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '.':
		kind = token.Dot
	case '~':
		kind = token.Tilde
	case ':':
		kind = lx.pick('=', token.ColonAssign, token.Colon)
	case '=':
		kind = lx.pick('=', token.EqEq, token.Assign)
	case '+':
		kind = lx.pick('=', token.PlusAssign, token.Plus)
	case '-':
		switch lx.cursor.Peek() {
		case '=':
			lx.cursor.Bump()
			kind = token.MinusAssign
		case '>':
			lx.cursor.Bump()
			kind = token.Arrow
		default:
			kind = token.Minus
		}
	case '%':
		kind = lx.pick('=', token.PctAssign, token.Percent)
	case '@':
		kind = lx.pick('=', token.AtAssign, token.At)
	case '&':
		kind = lx.pick('=', token.AmpAssign, token.Amp)
	case '|':
		kind = lx.pick('=', token.PipeAssign, token.Pipe)
	case '^':
		kind = lx.pick('=', token.CaretAssign, token.Caret)
	case '!':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.BangEq
		}
	case '*':
		switch lx.cursor.Peek() {
		case '*':
			lx.cursor.Bump()
			kind = lx.pick('=', token.DStarAssign, token.DoubleStar)
		case '=':
			lx.cursor.Bump()
			kind = token.StarAssign
		default:
			kind = token.Star
		}
	case '/':
		switch lx.cursor.Peek() {
		case '/':
			lx.cursor.Bump()
			kind = lx.pick('=', token.DSlashAssign, token.DoubleSlash)
		case '=':
			lx.cursor.Bump()
			kind = token.SlashAssign
		default:
			kind = token.Slash
		}
	case '<':
		switch lx.cursor.Peek() {
		case '<':
			lx.cursor.Bump()
			kind = lx.pick('=', token.ShlAssign, token.Shl)
		case '=':
			lx.cursor.Bump()
			kind = token.LtEq
		default:
			kind = token.Lt
		}
	case '>':
		switch lx.cursor.Peek() {
		case '>':
			lx.cursor.Bump()
			kind = lx.pick('=', token.ShrAssign, token.Shr)
		case '=':
			lx.cursor.Bump()
			kind = token.GtEq
		default:
			kind = token.Gt
		}
	}

	span := lx.spanFrom(start)
	if kind == token.Invalid {
		lx.report(diagUnknownChar, span, fmt.Sprintf("unexpected character %q", b))
	}
	return token.Token{Kind: kind, Span: span, Text: lx.text(span)}
}

// pick consumes next and returns withNext when the next byte matches,
// otherwise returns without.
func (lx *Lexer) pick(next byte, withNext, without token.Kind) token.Kind {
	if lx.cursor.Peek() == next {
		lx.cursor.Bump()
		return withNext
	}
	return without
}

func (lx *Lexer) closeBracket() {
	if lx.depth > 0 {
		lx.depth--
	}
}
