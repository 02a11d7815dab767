package parser

import (
	"pyfix/internal/ast"
	"pyfix/internal/diag"
	"pyfix/internal/token"
)

// parseStatement parses one compound statement or one logical line of
// simple statements.
func (p *Parser) parseStatement() []ast.Stmt {
	switch p.tok.Kind {
	case token.KwIf:
		return []ast.Stmt{p.parseIf()}
	case token.KwWhile:
		return []ast.Stmt{p.parseWhile()}
	case token.KwFor:
		return []ast.Stmt{p.parseFor(false)}
	case token.KwDef:
		return []ast.Stmt{p.parseFuncDef(false, nil)}
	case token.KwClass:
		return []ast.Stmt{p.parseClassDef(nil)}
	case token.KwWith:
		return []ast.Stmt{p.parseWith(false)}
	case token.KwTry:
		return []ast.Stmt{p.parseTry()}
	case token.At:
		return []ast.Stmt{p.parseDecorated()}
	case token.KwAsync:
		return []ast.Stmt{p.parseAsync()}
	default:
		return p.parseSimpleLine()
	}
}

// parseSimpleLine parses `small_stmt (';' small_stmt)* NEWLINE`.
func (p *Parser) parseSimpleLine() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		stmts = append(stmts, p.parseSmallStmt())
		if !p.accept(token.Semicolon) {
			break
		}
		if p.tok.IsLineEnd() || p.at(token.Dedent) {
			break
		}
	}
	if !p.accept(token.Newline) && !p.at(token.EOF) && !p.at(token.Dedent) {
		p.report(diag.SynExpectNewline, p.tok.Span, "expected end of line, found "+p.describe())
		p.resyncLine()
	}
	return stmts
}

func (p *Parser) parseSmallStmt() ast.Stmt {
	start := p.tok.Span
	switch p.tok.Kind {
	case token.KwPass:
		p.advance()
		return &ast.Pass{Loc: p.spanFrom(start)}
	case token.KwBreak:
		p.advance()
		return &ast.Break{Loc: p.spanFrom(start)}
	case token.KwContinue:
		p.advance()
		return &ast.Continue{Loc: p.spanFrom(start)}

	case token.KwReturn:
		p.advance()
		var value ast.Expr
		if !p.tok.IsLineEnd() && !p.at(token.Semicolon) && !p.at(token.Dedent) {
			value = p.parseTestListStar()
		}
		return &ast.Return{Value: value, Loc: p.spanFrom(start)}

	case token.KwRaise:
		p.advance()
		var exc, cause ast.Expr
		if !p.tok.IsLineEnd() && !p.at(token.Semicolon) && !p.at(token.Dedent) {
			exc = p.parseTest()
			if p.accept(token.KwFrom) {
				cause = p.parseTest()
			}
		}
		return &ast.Raise{Exc: exc, Cause: cause, Loc: p.spanFrom(start)}

	case token.KwDel:
		p.advance()
		targets := []ast.Expr{p.parseTarget()}
		for p.accept(token.Comma) {
			if p.tok.IsLineEnd() || p.at(token.Semicolon) {
				break
			}
			targets = append(targets, p.parseTarget())
		}
		return &ast.Delete{Targets: targets, Loc: p.spanFrom(start)}

	case token.KwGlobal, token.KwNonlocal:
		isGlobal := p.at(token.KwGlobal)
		p.advance()
		var names []string
		for {
			if !p.at(token.Ident) {
				p.report(diag.SynExpectIdentifier, p.tok.Span, "expected identifier, found "+p.describe())
				break
			}
			names = append(names, p.tok.Text)
			p.advance()
			if !p.accept(token.Comma) {
				break
			}
		}
		if isGlobal {
			return &ast.Global{Names: names, Loc: p.spanFrom(start)}
		}
		return &ast.Nonlocal{Names: names, Loc: p.spanFrom(start)}

	case token.KwImport, token.KwFrom:
		// imports carry no expressions the rules care about; keep the span
		for !p.tok.IsLineEnd() && !p.at(token.Semicolon) && !p.at(token.Dedent) {
			p.advance()
		}
		return &ast.Import{Loc: p.spanFrom(start)}

	case token.KwAssert:
		p.advance()
		cond := p.parseTest()
		var msg ast.Expr
		if p.accept(token.Comma) {
			msg = p.parseTest()
		}
		return &ast.Assert{Cond: cond, Msg: msg, Loc: p.spanFrom(start)}

	case token.KwYield:
		return &ast.ExprStmt{X: p.parseYield(), Loc: p.spanFrom(start)}

	default:
		return p.parseExprOrAssign()
	}
}

// parseExprOrAssign parses an expression statement, a (chained) assignment,
// an annotated assignment, or an augmented assignment.
func (p *Parser) parseExprOrAssign() ast.Stmt {
	start := p.tok.Span
	first := p.parseTestListStar()

	switch {
	case p.at(token.Colon):
		p.advance()
		annotation := p.parseTest()
		var value ast.Expr
		if p.accept(token.Assign) {
			value = p.parseTestListStar()
		}
		return &ast.AnnAssign{
			Target:     first,
			Annotation: annotation,
			Value:      value,
			Loc:        p.spanFrom(start),
		}

	case p.at(token.Assign):
		exprs := []ast.Expr{first}
		for p.accept(token.Assign) {
			if p.at(token.KwYield) {
				exprs = append(exprs, p.parseYield())
			} else {
				exprs = append(exprs, p.parseTestListStar())
			}
		}
		return &ast.Assign{
			Targets: exprs[:len(exprs)-1],
			Value:   exprs[len(exprs)-1],
			Loc:     p.spanFrom(start),
		}

	case p.tok.IsAugAssign():
		op := p.tok.Text
		p.advance()
		var value ast.Expr
		if p.at(token.KwYield) {
			value = p.parseYield()
		} else {
			value = p.parseTestListStar()
		}
		return &ast.AugAssign{Target: first, Op: op, Value: value, Loc: p.spanFrom(start)}

	default:
		return &ast.ExprStmt{X: first, Loc: p.spanFrom(start)}
	}
}

// parseBlock parses `':' (simple_line | NEWLINE INDENT stmt+ DEDENT)`.
func (p *Parser) parseBlock() []ast.Stmt {
	if !p.expect(token.Colon, diag.SynExpectColon) {
		p.resyncLine()
		return nil
	}
	if !p.accept(token.Newline) {
		// inline suite on the same line
		return p.parseSimpleLine()
	}
	if !p.expect(token.Indent, diag.SynExpectIndent) {
		return nil
	}
	var body []ast.Stmt
	for !p.at(token.Dedent) && !p.at(token.EOF) && !p.enough() {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		body = append(body, p.parseStatement()...)
	}
	p.accept(token.Dedent)
	return body
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.tok.Span
	p.advance() // if / elif
	cond := p.parseNamedTest()
	body := p.parseBlock()
	var orelse []ast.Stmt
	switch p.tok.Kind {
	case token.KwElif:
		orelse = []ast.Stmt{p.parseIf()}
	case token.KwElse:
		p.advance()
		orelse = p.parseBlock()
	}
	return &ast.If{Cond: cond, Body: body, Else: orelse, Loc: p.spanFrom(start)}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.tok.Span
	p.advance()
	cond := p.parseNamedTest()
	body := p.parseBlock()
	var orelse []ast.Stmt
	if p.accept(token.KwElse) {
		orelse = p.parseBlock()
	}
	return &ast.While{Cond: cond, Body: body, Else: orelse, Loc: p.spanFrom(start)}
}

func (p *Parser) parseFor(isAsync bool) ast.Stmt {
	start := p.tok.Span
	p.advance() // for
	target := p.parseTargetList()
	p.expect(token.KwIn, diag.SynExpectIn)
	iter := p.parseTestListStar()
	body := p.parseBlock()
	var orelse []ast.Stmt
	if p.accept(token.KwElse) {
		orelse = p.parseBlock()
	}
	return &ast.For{
		Target:  target,
		Iter:    iter,
		Body:    body,
		Else:    orelse,
		IsAsync: isAsync,
		Loc:     p.spanFrom(start),
	}
}

func (p *Parser) parseWith(isAsync bool) ast.Stmt {
	start := p.tok.Span
	p.advance() // with
	var items []ast.WithItem
	for {
		itemStart := p.tok.Span
		ctx := p.parseTest()
		var target ast.Expr
		if p.accept(token.KwAs) {
			target = p.parseTarget()
		}
		items = append(items, ast.WithItem{Context: ctx, Target: target, Loc: p.spanFrom(itemStart)})
		if !p.accept(token.Comma) {
			break
		}
	}
	body := p.parseBlock()
	return &ast.With{Items: items, Body: body, IsAsync: isAsync, Loc: p.spanFrom(start)}
}

func (p *Parser) parseTry() ast.Stmt {
	start := p.tok.Span
	p.advance() // try
	body := p.parseBlock()

	var handlers []ast.ExceptHandler
	for p.at(token.KwExcept) {
		hStart := p.tok.Span
		p.advance()
		var typ ast.Expr
		var name string
		if !p.at(token.Colon) {
			p.accept(token.Star) // except* groups: the star adds nothing for lint purposes
			typ = p.parseTest()
			if p.accept(token.KwAs) {
				if p.at(token.Ident) {
					name = p.tok.Text
					p.advance()
				} else {
					p.report(diag.SynExpectIdentifier, p.tok.Span, "expected identifier after 'as'")
				}
			}
		}
		hBody := p.parseBlock()
		handlers = append(handlers, ast.ExceptHandler{Type: typ, Name: name, Body: hBody, Loc: p.spanFrom(hStart)})
	}

	var orelse, finally []ast.Stmt
	if p.accept(token.KwElse) {
		orelse = p.parseBlock()
	}
	if p.accept(token.KwFinally) {
		finally = p.parseBlock()
	}
	return &ast.Try{Body: body, Handlers: handlers, Else: orelse, Finally: finally, Loc: p.spanFrom(start)}
}

func (p *Parser) parseFuncDef(isAsync bool, decorators []ast.Expr) ast.Stmt {
	start := p.tok.Span
	p.advance() // def
	name := "_"
	if p.at(token.Ident) {
		name = p.tok.Text
		p.advance()
	} else {
		p.report(diag.SynExpectIdentifier, p.tok.Span, "expected function name, found "+p.describe())
	}
	params := p.parseParams()
	var returns ast.Expr
	if p.accept(token.Arrow) {
		returns = p.parseTest()
	}
	body := p.parseBlock()
	return &ast.FuncDef{
		Name:       name,
		Params:     params,
		Body:       body,
		Decorators: decorators,
		Returns:    returns,
		IsAsync:    isAsync,
		Loc:        p.spanFrom(start),
	}
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if !p.expect(token.LParen, diag.SynUnexpectedToken) {
		return params
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pStart := p.tok.Span
		kind := ast.ParamRegular
		switch {
		case p.accept(token.Star):
			kind = ast.ParamStar
		case p.accept(token.DoubleStar):
			kind = ast.ParamDoubleStar
		case p.accept(token.Slash):
			// positional-only marker carries no binding
			p.accept(token.Comma)
			continue
		}

		name := ""
		if p.at(token.Ident) {
			name = p.tok.Text
			p.advance()
		} else if kind == ast.ParamRegular {
			p.report(diag.SynExpectIdentifier, p.tok.Span, "expected parameter name, found "+p.describe())
			p.advance() // guarantee progress
			continue
		}

		param := ast.Param{Name: name, Kind: kind}
		if p.accept(token.Colon) {
			param.Annotation = p.parseTest()
		}
		if p.accept(token.Assign) {
			param.Default = p.parseTest()
		}
		param.Loc = p.spanFrom(pStart)
		params = append(params, param)

		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedBracket)
	return params
}

func (p *Parser) parseClassDef(decorators []ast.Expr) ast.Stmt {
	start := p.tok.Span
	p.advance() // class
	name := "_"
	if p.at(token.Ident) {
		name = p.tok.Text
		p.advance()
	} else {
		p.report(diag.SynExpectIdentifier, p.tok.Span, "expected class name, found "+p.describe())
	}

	var bases []ast.Expr
	var keywords []ast.KeywordArg
	if p.accept(token.LParen) {
		bases, keywords = p.parseCallArgs()
	}
	body := p.parseBlock()
	return &ast.ClassDef{
		Name:       name,
		Bases:      bases,
		Keywords:   keywords,
		Body:       body,
		Decorators: decorators,
		Loc:        p.spanFrom(start),
	}
}

func (p *Parser) parseDecorated() ast.Stmt {
	var decorators []ast.Expr
	for p.at(token.At) {
		p.advance()
		decorators = append(decorators, p.parseNamedTest())
		if !p.accept(token.Newline) {
			p.report(diag.SynExpectNewline, p.tok.Span, "expected end of line after decorator")
			p.resyncLine()
		}
	}
	switch p.tok.Kind {
	case token.KwDef:
		return p.parseFuncDef(false, decorators)
	case token.KwClass:
		return p.parseClassDef(decorators)
	case token.KwAsync:
		start := p.tok.Span
		p.advance()
		if p.at(token.KwDef) {
			return p.parseFuncDef(true, decorators)
		}
		p.report(diag.SynUnexpectedToken, p.tok.Span, "expected 'def' after 'async'")
		p.resyncLine()
		return &ast.BadStmt{Loc: p.spanFrom(start)}
	default:
		p.report(diag.SynUnexpectedToken, p.tok.Span, "expected 'def' or 'class' after decorators")
		p.resyncLine()
		return &ast.BadStmt{Loc: p.tok.Span}
	}
}

func (p *Parser) parseAsync() ast.Stmt {
	start := p.tok.Span
	p.advance() // async
	switch p.tok.Kind {
	case token.KwDef:
		return p.parseFuncDef(true, nil)
	case token.KwFor:
		return p.parseFor(true)
	case token.KwWith:
		return p.parseWith(true)
	default:
		p.report(diag.SynUnexpectedToken, p.tok.Span, "expected 'def', 'for', or 'with' after 'async'")
		p.resyncLine()
		return &ast.BadStmt{Loc: p.spanFrom(start)}
	}
}
