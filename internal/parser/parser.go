// Package parser turns a token stream into an ast.Module using plain
// recursive descent. Errors are reported through diag.Reporter and recovery
// resynchronizes at logical line boundaries, so one malformed statement
// never takes down the whole file.
package parser

import (
	"fmt"

	"pyfix/internal/ast"
	"pyfix/internal/diag"
	"pyfix/internal/lexer"
	"pyfix/internal/source"
	"pyfix/internal/token"
)

// Options configures a parse run.
type Options struct {
	// Reporter receives syntax diagnostics. Nil disables reporting.
	Reporter diag.Reporter
	// MaxErrors stops the parser after this many errors. Zero means no limit.
	MaxErrors uint
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx   *lexer.Lexer
	opts Options
	tok  token.Token // current token
	prev token.Token // last consumed token
	errs uint
}

// ParseFile parses one file into a Module. The returned module always
// covers whatever statements could be recovered; check the reporter's bag
// for syntax errors.
func ParseFile(file *source.File, opts Options) *ast.Module {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := &Parser{lx: lx, opts: opts}
	p.advance()

	start := p.tok.Span
	var body []ast.Stmt
	for !p.at(token.EOF) && !p.enough() {
		switch p.tok.Kind {
		case token.Newline, token.Indent, token.Dedent:
			// stray block tokens left behind by error recovery
			p.advance()
			continue
		}
		body = append(body, p.parseStatement()...)
	}

	loc := start
	if len(body) > 0 {
		loc = loc.Cover(p.prev.Span)
	}
	return &ast.Module{Body: body, Loc: loc}
}

func (p *Parser) advance() {
	p.prev = p.tok
	p.tok = p.lx.Next()
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// accept consumes the current token when it matches k.
func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or reports code and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code) bool {
	if p.accept(k) {
		return true
	}
	p.report(code, p.tok.Span, fmt.Sprintf("expected %q, found %q", k.String(), p.describe()))
	return false
}

func (p *Parser) describe() string {
	if p.tok.Text != "" {
		return p.tok.Text
	}
	return p.tok.Kind.String()
}

func (p *Parser) report(code diag.Code, span source.Span, msg string) {
	p.errs++
	if p.opts.Reporter == nil {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, span, msg, nil, nil)
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errs >= p.opts.MaxErrors
}

// spanFrom builds a span from a start span to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return source.Span{File: start.File, Start: start.Start, End: p.prev.Span.End}
}

// resyncLine consumes tokens through the next Newline, leaving Dedent and
// EOF for the caller. Used after a syntax error inside one logical line.
func (p *Parser) resyncLine() {
	for {
		switch p.tok.Kind {
		case token.Newline:
			p.advance()
			return
		case token.Dedent, token.EOF:
			return
		default:
			p.advance()
		}
	}
}
