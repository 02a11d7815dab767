package lexer

import (
	"pyfix/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. Nil disables reporting.
	Reporter diag.Reporter
	// TabSize is the tab stop width used for indentation columns.
	// Zero means the Python default of 8.
	TabSize uint32
}

func (o Options) tabSize() uint32 {
	if o.TabSize == 0 {
		return 8
	}
	return o.TabSize
}
