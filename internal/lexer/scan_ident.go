package lexer

import (
	"golang.org/x/text/unicode/norm"

	"pyfix/internal/token"
)

// scanIdentOrKeyword consumes an identifier or keyword. When the identifier
// turns out to be a string prefix directly followed by a quote, it consumes
// the whole string literal instead.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	nonASCII := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isIdentContinueByte(b) {
			break
		}
		if b >= 0x80 {
			nonASCII = true
		}
		lx.cursor.Bump()
	}

	span := lx.spanFrom(start)
	text := lx.text(span)

	if b := lx.cursor.Peek(); (b == '\'' || b == '"') && isStringPrefix(text) {
		return lx.scanString(start, text)
	}

	if nonASCII {
		// Python identifiers compare NFKC-equal; normalize so the rule's
		// lexical matching sees one canonical spelling.
		text = norm.NFKC.String(text)
	}

	kind := token.LookupKeyword(text)
	return token.Token{Kind: kind, Span: span, Text: text}
}
