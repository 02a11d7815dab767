package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline terminates a logical line.
	Newline
	// Indent opens an indented block.
	Indent
	// Dedent closes an indented block.
	Dedent

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a string literal of any prefix/quote flavor.
	StringLit

	// Keywords.
	KwFalse    // False
	KwNone     // None
	KwTrue     // True
	KwAnd      // and
	KwAs       // as
	KwAssert   // assert
	KwAsync    // async
	KwAwait    // await
	KwBreak    // break
	KwClass    // class
	KwContinue // continue
	KwDef      // def
	KwDel      // del
	KwElif     // elif
	KwElse     // else
	KwExcept   // except
	KwFinally  // finally
	KwFor      // for
	KwFrom     // from
	KwGlobal   // global
	KwIf       // if
	KwImport   // import
	KwIn       // in
	KwIs       // is
	KwLambda   // lambda
	KwNonlocal // nonlocal
	KwNot      // not
	KwOr       // or
	KwPass     // pass
	KwRaise    // raise
	KwReturn   // return
	KwTry      // try
	KwWhile    // while
	KwWith     // with
	KwYield    // yield

	// Operators and punctuation.
	LParen       // (
	RParen       // )
	LBracket     // [
	RBracket     // ]
	LBrace       // {
	RBrace       // }
	Comma        // ,
	Colon        // :
	Semicolon    // ;
	Dot          // .
	Arrow        // ->
	Assign       // =
	ColonAssign  // :=
	Plus         // +
	Minus        // -
	Star         // *
	DoubleStar   // **
	Slash        // /
	DoubleSlash  // //
	Percent      // %
	At           // @
	Amp          // &
	Pipe         // |
	Caret        // ^
	Tilde        // ~
	Shl          // <<
	Shr          // >>
	Lt           // <
	Gt           // >
	LtEq         // <=
	GtEq         // >=
	EqEq         // ==
	BangEq       // !=
	PlusAssign   // +=
	MinusAssign  // -=
	StarAssign   // *=
	DStarAssign  // **=
	SlashAssign  // /=
	DSlashAssign // //=
	PctAssign    // %=
	AtAssign     // @=
	AmpAssign    // &=
	PipeAssign   // |=
	CaretAssign  // ^=
	ShlAssign    // <<=
	ShrAssign    // >>=
)

var kindNames = map[Kind]string{
	Invalid:      "invalid",
	EOF:          "eof",
	Newline:      "newline",
	Indent:       "indent",
	Dedent:       "dedent",
	Ident:        "ident",
	IntLit:       "int",
	FloatLit:     "float",
	StringLit:    "string",
	KwFalse:      "False",
	KwNone:       "None",
	KwTrue:       "True",
	KwAnd:        "and",
	KwAs:         "as",
	KwAssert:     "assert",
	KwAsync:      "async",
	KwAwait:      "await",
	KwBreak:      "break",
	KwClass:      "class",
	KwContinue:   "continue",
	KwDef:        "def",
	KwDel:        "del",
	KwElif:       "elif",
	KwElse:       "else",
	KwExcept:     "except",
	KwFinally:    "finally",
	KwFor:        "for",
	KwFrom:       "from",
	KwGlobal:     "global",
	KwIf:         "if",
	KwImport:     "import",
	KwIn:         "in",
	KwIs:         "is",
	KwLambda:     "lambda",
	KwNonlocal:   "nonlocal",
	KwNot:        "not",
	KwOr:         "or",
	KwPass:       "pass",
	KwRaise:      "raise",
	KwReturn:     "return",
	KwTry:        "try",
	KwWhile:      "while",
	KwWith:       "with",
	KwYield:      "yield",
	LParen:       "(",
	RParen:       ")",
	LBracket:     "[",
	RBracket:     "]",
	LBrace:       "{",
	RBrace:       "}",
	Comma:        ",",
	Colon:        ":",
	Semicolon:    ";",
	Dot:          ".",
	Arrow:        "->",
	Assign:       "=",
	ColonAssign:  ":=",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	DoubleStar:   "**",
	Slash:        "/",
	DoubleSlash:  "//",
	Percent:      "%",
	At:           "@",
	Amp:          "&",
	Pipe:         "|",
	Caret:        "^",
	Tilde:        "~",
	Shl:          "<<",
	Shr:          ">>",
	Lt:           "<",
	Gt:           ">",
	LtEq:         "<=",
	GtEq:         ">=",
	EqEq:         "==",
	BangEq:       "!=",
	PlusAssign:   "+=",
	MinusAssign:  "-=",
	StarAssign:   "*=",
	DStarAssign:  "**=",
	SlashAssign:  "/=",
	DSlashAssign: "//=",
	PctAssign:    "%=",
	AtAssign:     "@=",
	AmpAssign:    "&=",
	PipeAssign:   "|=",
	CaretAssign:  "^=",
	ShlAssign:    "<<=",
	ShrAssign:    ">>=",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
