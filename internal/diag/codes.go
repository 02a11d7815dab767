package diag

import (
	"fmt"
)

// Code is a compact numeric identifier with a stable string form.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified diagnostics.
	UnknownCode Code = 0

	// Lexical diagnostics.
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadIndent          Code = 1004

	// Syntax diagnostics.
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectColon      Code = 2004
	SynExpectIn         Code = 2005
	SynExpectNewline    Code = 2006
	SynExpectIndent     Code = 2007
	SynUnclosedBracket  Code = 2008
	SynBadAssignTarget  Code = 2009

	// Lint diagnostics.
	LntInfo               Code = 3000
	LntRedundantDictIndex Code = 3001

	// I/O diagnostics.
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexBadNumber:          "Bad numeric literal",
	LexBadIndent:          "Inconsistent indentation",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectExpression:   "Expect expression",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectColon:        "Expect colon",
	SynExpectIn:           "Expect 'in'",
	SynExpectNewline:      "Expect end of line",
	SynExpectIndent:       "Expect indented block",
	SynUnclosedBracket:    "Unclosed bracket",
	SynBadAssignTarget:    "Invalid assignment target",
	LntInfo:               "Lint information",
	LntRedundantDictIndex: "Unnecessary lookup of dictionary value by key",
	IOLoadFileError:       "I/O load file error",
}

// ID returns the stable identifier (e.g. "LNT3001") used in output and
// fix ids.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the short description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
