package token

import (
	"pyfix/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFalse && t.Kind <= KwYield
}

// IsAugAssign reports whether the token is an augmented assignment operator.
func (t Token) IsAugAssign() bool {
	switch t.Kind {
	case PlusAssign, MinusAssign, StarAssign, DStarAssign, SlashAssign,
		DSlashAssign, PctAssign, AtAssign, AmpAssign, PipeAssign,
		CaretAssign, ShlAssign, ShrAssign:
		return true
	default:
		return false
	}
}

// IsLineEnd reports whether the token terminates a logical line.
func (t Token) IsLineEnd() bool {
	return t.Kind == Newline || t.Kind == EOF
}
