package lexer

import (
	"pyfix/internal/token"
)

// scanString consumes a string literal starting at start (which may cover an
// already-consumed prefix such as r, b, or f). The cursor sits on the opening
// quote. F-string interiors are kept opaque: the rule never needs to look
// inside literal text.
func (lx *Lexer) scanString(start uint32, prefix string) token.Token {
	raw := prefixIsRaw(prefix)
	quote := lx.cursor.Bump()

	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		triple = true
		lx.cursor.Skip(2)
	} else if lx.cursor.Peek() == quote {
		// empty string: the pair was open+close
		lx.cursor.Bump()
		span := lx.spanFrom(start)
		return token.Token{Kind: token.StringLit, Span: span, Text: lx.text(span)}
	}

	for {
		if lx.cursor.EOF() {
			span := lx.spanFrom(start)
			lx.report(diagUnterminated, span, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: span, Text: lx.text(span)}
		}
		b := lx.cursor.Peek()

		if !raw && b == '\\' {
			lx.cursor.Skip(2)
			continue
		}
		if raw && b == '\\' {
			// raw strings still cannot end on a lone backslash
			lx.cursor.Skip(2)
			continue
		}

		if b == '\n' && !triple {
			span := lx.spanFrom(start)
			lx.report(diagUnterminated, span, "unterminated string literal (newline before closing quote)")
			return token.Token{Kind: token.StringLit, Span: span, Text: lx.text(span)}
		}

		if b == quote {
			if !triple {
				lx.cursor.Bump()
				break
			}
			if b1 := lx.cursor.PeekAt(1); b1 == quote && lx.cursor.PeekAt(2) == quote {
				lx.cursor.Skip(3)
				break
			}
		}
		lx.cursor.Bump()
	}

	span := lx.spanFrom(start)
	return token.Token{Kind: token.StringLit, Span: span, Text: lx.text(span)}
}
