package lexer

import (
	"pyfix/internal/diag"
	"pyfix/internal/source"
)

// diag codes used by the lexer, aliased for brevity at call sites
const (
	diagUnknownChar  = diag.LexUnknownChar
	diagUnterminated = diag.LexUnterminatedString
	diagBadNumber    = diag.LexBadNumber
	diagBadIndent    = diag.LexBadIndent
)

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, span, msg, nil, nil)
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b >= 0x80
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// isStringPrefix reports whether text is a valid Python string literal
// prefix: r, b, f, u, rb, br, fr, rf in any case mix.
func isStringPrefix(text string) bool {
	if len(text) == 0 || len(text) > 2 {
		return false
	}
	var hasR, hasB, hasF, hasU bool
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case 'r', 'R':
			if hasR {
				return false
			}
			hasR = true
		case 'b', 'B':
			if hasB {
				return false
			}
			hasB = true
		case 'f', 'F':
			if hasF {
				return false
			}
			hasF = true
		case 'u', 'U':
			if hasU {
				return false
			}
			hasU = true
		default:
			return false
		}
	}
	if hasU && len(text) > 1 {
		return false
	}
	if hasB && hasF {
		return false
	}
	return true
}

func prefixIsRaw(prefix string) bool {
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == 'r' || prefix[i] == 'R' {
			return true
		}
	}
	return false
}
