// Package fuzztests houses Go fuzz harnesses that exercise the pyfix
// pipeline (source -> lexer -> parser -> rules). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// It does not generate corpora, write files, or run the CLI.
package fuzztests
