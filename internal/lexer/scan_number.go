package lexer

import (
	"pyfix/internal/token"
)

// scanNumber consumes an integer or float literal, including 0x/0o/0b
// radix forms, underscore separators, exponents, and the j imaginary suffix.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if b1 := lx.cursor.PeekAt(1); b1 == 'x' || b1 == 'X' || b1 == 'o' || b1 == 'O' || b1 == 'b' || b1 == 'B' {
			lx.cursor.Skip(2)
			digits := 0
			for !lx.cursor.EOF() {
				b := lx.cursor.Peek()
				if b == '_' {
					lx.cursor.Bump()
					continue
				}
				if !isHex(b) {
					break
				}
				digits++
				lx.cursor.Bump()
			}
			span := lx.spanFrom(start)
			if digits == 0 {
				lx.report(diagBadNumber, span, "radix literal needs at least one digit")
			}
			return token.Token{Kind: token.IntLit, Span: span, Text: lx.text(span)}
		}
	}

	lx.consumeDigits()
	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.consumeDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Off
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// not an exponent after all ("1e" could start "1 else ...")
			lx.cursor.Off = mark
		} else {
			kind = token.FloatLit
			lx.consumeDigits()
		}
	}
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
	}

	span := lx.spanFrom(start)
	return token.Token{Kind: kind, Span: span, Text: lx.text(span)}
}

func (lx *Lexer) consumeDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b != '_' && !isDec(b) {
			break
		}
		lx.cursor.Bump()
	}
}
