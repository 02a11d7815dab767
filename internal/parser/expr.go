package parser

import (
	"pyfix/internal/ast"
	"pyfix/internal/diag"
	"pyfix/internal/token"
)

// startsExpr reports whether the current token can begin an expression.
func (p *Parser) startsExpr() bool {
	switch p.tok.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwNone,
		token.KwNot, token.KwLambda, token.KwAwait, token.KwYield,
		token.LParen, token.LBracket, token.LBrace,
		token.Plus, token.Minus, token.Tilde, token.Star:
		return true
	}
	return false
}

// parseTestListStar parses `(test|star_expr) (',' (test|star_expr))* [',']`
// and wraps multiple elements in a Tuple.
func (p *Parser) parseTestListStar() ast.Expr {
	start := p.tok.Span
	first := p.parseStarOrTest()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.Expr{first}
	for p.accept(token.Comma) {
		if !p.startsExpr() {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	return &ast.Tuple{Elts: elts, Loc: p.spanFrom(start)}
}

func (p *Parser) parseStarOrTest() ast.Expr {
	if p.at(token.Star) {
		start := p.tok.Span
		p.advance()
		value := p.parseBitOr()
		return &ast.Starred{Value: value, Loc: p.spanFrom(start)}
	}
	return p.parseNamedTest()
}

// parseNamedTest parses a test with an optional walrus binding.
func (p *Parser) parseNamedTest() ast.Expr {
	expr := p.parseTest()
	if p.at(token.ColonAssign) {
		if _, ok := expr.(*ast.Name); !ok {
			p.report(diag.SynBadAssignTarget, expr.Span(), "cannot use ':=' with this target")
		}
		p.advance()
		value := p.parseTest()
		return &ast.NamedExpr{Target: expr, Value: value, Loc: expr.Span().Cover(value.Span())}
	}
	return expr
}

// parseTest parses a conditional expression or lambda.
func (p *Parser) parseTest() ast.Expr {
	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	body := p.parseOrTest()
	if !p.accept(token.KwIf) {
		return body
	}
	cond := p.parseOrTest()
	p.expect(token.KwElse, diag.SynUnexpectedToken)
	els := p.parseTest()
	return &ast.IfExp{Cond: cond, Body: body, Else: els, Loc: body.Span().Cover(els.Span())}
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.tok.Span
	p.advance() // lambda
	var params []ast.Param
	for !p.at(token.Colon) && !p.tok.IsLineEnd() {
		pStart := p.tok.Span
		kind := ast.ParamRegular
		switch {
		case p.accept(token.Star):
			kind = ast.ParamStar
		case p.accept(token.DoubleStar):
			kind = ast.ParamDoubleStar
		}
		name := ""
		if p.at(token.Ident) {
			name = p.tok.Text
			p.advance()
		} else if kind == ast.ParamRegular {
			p.report(diag.SynExpectIdentifier, p.tok.Span, "expected parameter name, found "+p.describe())
			break
		}
		param := ast.Param{Name: name, Kind: kind}
		if p.accept(token.Assign) {
			param.Default = p.parseTest()
		}
		param.Loc = p.spanFrom(pStart)
		params = append(params, param)
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.Colon, diag.SynExpectColon)
	body := p.parseTest()
	return &ast.Lambda{Params: params, Body: body, Loc: p.spanFrom(start)}
}

func (p *Parser) parseOrTest() ast.Expr {
	left := p.parseAndTest()
	if !p.at(token.KwOr) {
		return left
	}
	values := []ast.Expr{left}
	for p.accept(token.KwOr) {
		values = append(values, p.parseAndTest())
	}
	return &ast.BoolOp{Op: "or", Values: values, Loc: left.Span().Cover(values[len(values)-1].Span())}
}

func (p *Parser) parseAndTest() ast.Expr {
	left := p.parseNotTest()
	if !p.at(token.KwAnd) {
		return left
	}
	values := []ast.Expr{left}
	for p.accept(token.KwAnd) {
		values = append(values, p.parseNotTest())
	}
	return &ast.BoolOp{Op: "and", Values: values, Loc: left.Span().Cover(values[len(values)-1].Span())}
}

func (p *Parser) parseNotTest() ast.Expr {
	if p.at(token.KwNot) {
		start := p.tok.Span
		p.advance()
		operand := p.parseNotTest()
		return &ast.UnaryOp{Op: "not", Operand: operand, Loc: p.spanFrom(start)}
	}
	return p.parseComparison()
}

// compOp consumes one comparison operator, returning "" when the current
// token is not one.
func (p *Parser) compOp() string {
	switch p.tok.Kind {
	case token.EqEq:
		p.advance()
		return "=="
	case token.BangEq:
		p.advance()
		return "!="
	case token.Lt:
		p.advance()
		return "<"
	case token.LtEq:
		p.advance()
		return "<="
	case token.Gt:
		p.advance()
		return ">"
	case token.GtEq:
		p.advance()
		return ">="
	case token.KwIn:
		p.advance()
		return "in"
	case token.KwNot:
		p.advance()
		p.expect(token.KwIn, diag.SynExpectIn)
		return "not in"
	case token.KwIs:
		p.advance()
		if p.accept(token.KwNot) {
			return "is not"
		}
		return "is"
	}
	return ""
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseBitOr()
	op := p.compOp()
	if op == "" {
		return left
	}
	var ops []string
	var comparators []ast.Expr
	for op != "" {
		ops = append(ops, op)
		comparators = append(comparators, p.parseBitOr())
		op = p.compOp()
	}
	last := comparators[len(comparators)-1]
	return &ast.Compare{Left: left, Ops: ops, Comparators: comparators, Loc: left.Span().Cover(last.Span())}
}

func (p *Parser) binOp(left ast.Expr, op string, right ast.Expr) ast.Expr {
	return &ast.BinOp{Left: left, Op: op, Right: right, Loc: left.Span().Cover(right.Span())}
}

func (p *Parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()
	for p.accept(token.Pipe) {
		left = p.binOp(left, "|", p.parseBitXor())
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()
	for p.accept(token.Caret) {
		left = p.binOp(left, "^", p.parseBitAnd())
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expr {
	left := p.parseShift()
	for p.accept(token.Amp) {
		left = p.binOp(left, "&", p.parseShift())
	}
	return left
}

func (p *Parser) parseShift() ast.Expr {
	left := p.parseArith()
	for {
		switch {
		case p.accept(token.Shl):
			left = p.binOp(left, "<<", p.parseArith())
		case p.accept(token.Shr):
			left = p.binOp(left, ">>", p.parseArith())
		default:
			return left
		}
	}
}

func (p *Parser) parseArith() ast.Expr {
	left := p.parseTerm()
	for {
		switch {
		case p.accept(token.Plus):
			left = p.binOp(left, "+", p.parseTerm())
		case p.accept(token.Minus):
			left = p.binOp(left, "-", p.parseTerm())
		default:
			return left
		}
	}
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for {
		switch {
		case p.accept(token.Star):
			left = p.binOp(left, "*", p.parseFactor())
		case p.accept(token.Slash):
			left = p.binOp(left, "/", p.parseFactor())
		case p.accept(token.DoubleSlash):
			left = p.binOp(left, "//", p.parseFactor())
		case p.accept(token.Percent):
			left = p.binOp(left, "%", p.parseFactor())
		case p.accept(token.At):
			left = p.binOp(left, "@", p.parseFactor())
		default:
			return left
		}
	}
}

func (p *Parser) parseFactor() ast.Expr {
	start := p.tok.Span
	switch p.tok.Kind {
	case token.Plus:
		p.advance()
		return &ast.UnaryOp{Op: "+", Operand: p.parseFactor(), Loc: p.spanFrom(start)}
	case token.Minus:
		p.advance()
		return &ast.UnaryOp{Op: "-", Operand: p.parseFactor(), Loc: p.spanFrom(start)}
	case token.Tilde:
		p.advance()
		return &ast.UnaryOp{Op: "~", Operand: p.parseFactor(), Loc: p.spanFrom(start)}
	}
	return p.parsePower()
}

func (p *Parser) parsePower() ast.Expr {
	var base ast.Expr
	if p.at(token.KwAwait) {
		start := p.tok.Span
		p.advance()
		value := p.parsePostfix(p.parseAtom())
		base = &ast.Await{Value: value, Loc: p.spanFrom(start)}
	} else {
		base = p.parsePostfix(p.parseAtom())
	}
	if p.accept(token.DoubleStar) {
		return p.binOp(base, "**", p.parseFactor())
	}
	return base
}

// parsePostfix applies call, subscript, and attribute trailers to expr.
func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		switch p.tok.Kind {
		case token.LParen:
			p.advance()
			args, keywords := p.parseCallArgs()
			expr = &ast.Call{
				Func:     expr,
				Args:     args,
				Keywords: keywords,
				Loc:      expr.Span().Cover(p.prev.Span),
			}
		case token.LBracket:
			p.advance()
			index := p.parseSubscriptIndex()
			p.expect(token.RBracket, diag.SynUnclosedBracket)
			expr = &ast.Subscript{
				Value: expr,
				Index: index,
				Loc:   expr.Span().Cover(p.prev.Span),
			}
		case token.Dot:
			p.advance()
			attr := "_"
			if p.at(token.Ident) {
				attr = p.tok.Text
				p.advance()
			} else {
				p.report(diag.SynExpectIdentifier, p.tok.Span, "expected attribute name, found "+p.describe())
			}
			expr = &ast.Attribute{Value: expr, Attr: attr, Loc: expr.Span().Cover(p.prev.Span)}
		default:
			return expr
		}
	}
}

// parseCallArgs parses argument lists up to and including the closing
// parenthesis. A bare `f(x for y in z)` generator argument is folded into a
// single GeneratorExp positional.
func (p *Parser) parseCallArgs() ([]ast.Expr, []ast.KeywordArg) {
	var args []ast.Expr
	var keywords []ast.KeywordArg
	for !p.at(token.RParen) && !p.at(token.EOF) {
		argStart := p.tok.Span
		switch {
		case p.accept(token.DoubleStar):
			value := p.parseTest()
			keywords = append(keywords, ast.KeywordArg{Value: value, Loc: p.spanFrom(argStart)})
		case p.accept(token.Star):
			value := p.parseBitOr()
			args = append(args, &ast.Starred{Value: value, Loc: p.spanFrom(argStart)})
		default:
			arg := p.parseNamedTest()
			if name, ok := arg.(*ast.Name); ok && p.accept(token.Assign) {
				value := p.parseTest()
				keywords = append(keywords, ast.KeywordArg{Name: name.ID, Value: value, Loc: p.spanFrom(argStart)})
				break
			}
			if (p.at(token.KwFor) || p.at(token.KwAsync)) && len(args) == 0 && len(keywords) == 0 {
				generators := p.parseCompClauses()
				args = append(args, &ast.GeneratorExp{Elt: arg, Generators: generators, Loc: p.spanFrom(argStart)})
			} else {
				args = append(args, arg)
			}
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedBracket)
	return args, keywords
}

// parseSubscriptIndex parses the content between `[` and `]`: single
// expressions, slices, and comma-separated combinations of the two.
func (p *Parser) parseSubscriptIndex() ast.Expr {
	start := p.tok.Span
	first := p.parseSliceItem()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.Expr{first}
	for p.accept(token.Comma) {
		if p.at(token.RBracket) {
			break
		}
		elts = append(elts, p.parseSliceItem())
	}
	return &ast.Tuple{Elts: elts, Loc: p.spanFrom(start)}
}

func (p *Parser) parseSliceItem() ast.Expr {
	start := p.tok.Span
	var lo ast.Expr
	if !p.at(token.Colon) {
		lo = p.parseStarOrTest()
		if !p.at(token.Colon) {
			return lo
		}
	}
	p.advance() // first ':'
	slice := &ast.SliceExpr{Lo: lo}
	if !p.at(token.Colon) && !p.at(token.Comma) && !p.at(token.RBracket) {
		slice.Hi = p.parseTest()
	}
	if p.accept(token.Colon) {
		if !p.at(token.Comma) && !p.at(token.RBracket) {
			slice.Step = p.parseTest()
		}
	}
	slice.Loc = p.spanFrom(start)
	return slice
}

// parseCompClauses parses one or more `[async] for target in or_test
// ['if' or_test]*` generator clauses.
func (p *Parser) parseCompClauses() []ast.Comprehension {
	var clauses []ast.Comprehension
	for p.at(token.KwFor) || p.at(token.KwAsync) {
		start := p.tok.Span
		isAsync := p.accept(token.KwAsync)
		if !p.expect(token.KwFor, diag.SynUnexpectedToken) {
			break
		}
		target := p.parseTargetList()
		p.expect(token.KwIn, diag.SynExpectIn)
		iter := p.parseOrTest()
		var ifs []ast.Expr
		for p.accept(token.KwIf) {
			ifs = append(ifs, p.parseOrTest())
		}
		clauses = append(clauses, ast.Comprehension{
			Target:  target,
			Iter:    iter,
			Ifs:     ifs,
			IsAsync: isAsync,
			Loc:     p.spanFrom(start),
		})
	}
	return clauses
}

// parseTargetList parses assignment/loop targets. Targets parse below the
// comparison level so `for k, v in d` keeps `in` as the loop keyword.
func (p *Parser) parseTargetList() ast.Expr {
	start := p.tok.Span
	first := p.parseTarget()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.Expr{first}
	for p.accept(token.Comma) {
		if !p.startsExpr() {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return &ast.Tuple{Elts: elts, Loc: p.spanFrom(start)}
}

func (p *Parser) parseTarget() ast.Expr {
	start := p.tok.Span
	switch p.tok.Kind {
	case token.Star:
		p.advance()
		return &ast.Starred{Value: p.parseTarget(), Loc: p.spanFrom(start)}
	case token.LParen:
		p.advance()
		inner := p.parseTargetList()
		p.expect(token.RParen, diag.SynUnclosedBracket)
		return inner
	case token.LBracket:
		p.advance()
		inner := p.parseTargetList()
		p.expect(token.RBracket, diag.SynUnclosedBracket)
		if _, ok := inner.(*ast.Tuple); !ok {
			inner = &ast.Tuple{Elts: []ast.Expr{inner}, Loc: p.spanFrom(start)}
		}
		return inner
	}
	return p.parsePostfix(p.parseAtom())
}

func (p *Parser) parseYield() ast.Expr {
	start := p.tok.Span
	p.advance() // yield
	if p.accept(token.KwFrom) {
		value := p.parseTest()
		return &ast.Yield{Value: value, IsFrom: true, Loc: p.spanFrom(start)}
	}
	var value ast.Expr
	if p.startsExpr() {
		value = p.parseTestListStar()
	}
	return &ast.Yield{Value: value, Loc: p.spanFrom(start)}
}

func (p *Parser) parseAtom() ast.Expr {
	start := p.tok.Span
	switch p.tok.Kind {
	case token.Ident:
		name := p.tok.Text
		p.advance()
		return &ast.Name{ID: name, Loc: start}

	case token.IntLit:
		text := p.tok.Text
		p.advance()
		return &ast.Literal{Kind: ast.LitInt, Text: text, Loc: start}

	case token.FloatLit:
		text := p.tok.Text
		p.advance()
		return &ast.Literal{Kind: ast.LitFloat, Text: text, Loc: start}

	case token.StringLit:
		// adjacent string literals concatenate into one literal
		text := p.tok.Text
		p.advance()
		for p.at(token.StringLit) {
			text += p.tok.Text
			p.advance()
		}
		return &ast.Literal{Kind: ast.LitString, Text: text, Loc: p.spanFrom(start)}

	case token.KwTrue:
		p.advance()
		return &ast.Literal{Kind: ast.LitTrue, Text: "True", Loc: start}
	case token.KwFalse:
		p.advance()
		return &ast.Literal{Kind: ast.LitFalse, Text: "False", Loc: start}
	case token.KwNone:
		p.advance()
		return &ast.Literal{Kind: ast.LitNone, Text: "None", Loc: start}

	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()

	case token.KwYield:
		return p.parseYield()

	default:
		p.report(diag.SynExpectExpression, p.tok.Span, "expected expression, found "+p.describe())
		if !p.tok.IsLineEnd() && !p.at(token.Dedent) {
			p.advance() // guarantee progress
		}
		return &ast.BadExpr{Loc: start}
	}
}

func (p *Parser) parseParenAtom() ast.Expr {
	start := p.tok.Span
	p.advance() // (
	if p.at(token.RParen) {
		p.advance()
		return &ast.Tuple{Loc: p.spanFrom(start)}
	}
	if p.at(token.KwYield) {
		inner := p.parseYield()
		p.expect(token.RParen, diag.SynUnclosedBracket)
		return inner
	}
	first := p.parseStarOrTest()
	switch {
	case p.at(token.KwFor) || p.at(token.KwAsync):
		generators := p.parseCompClauses()
		p.expect(token.RParen, diag.SynUnclosedBracket)
		return &ast.GeneratorExp{Elt: first, Generators: generators, Loc: p.spanFrom(start)}
	case p.at(token.Comma):
		elts := []ast.Expr{first}
		for p.accept(token.Comma) {
			if p.at(token.RParen) {
				break
			}
			elts = append(elts, p.parseStarOrTest())
		}
		p.expect(token.RParen, diag.SynUnclosedBracket)
		return &ast.Tuple{Elts: elts, Loc: p.spanFrom(start)}
	default:
		p.expect(token.RParen, diag.SynUnclosedBracket)
		// parenthesized expression: grouping only, no node of its own
		return first
	}
}

func (p *Parser) parseListAtom() ast.Expr {
	start := p.tok.Span
	p.advance() // [
	if p.at(token.RBracket) {
		p.advance()
		return &ast.List{Loc: p.spanFrom(start)}
	}
	first := p.parseStarOrTest()
	switch {
	case p.at(token.KwFor) || p.at(token.KwAsync):
		generators := p.parseCompClauses()
		p.expect(token.RBracket, diag.SynUnclosedBracket)
		return &ast.ListComp{Elt: first, Generators: generators, Loc: p.spanFrom(start)}
	default:
		elts := []ast.Expr{first}
		for p.accept(token.Comma) {
			if p.at(token.RBracket) {
				break
			}
			elts = append(elts, p.parseStarOrTest())
		}
		p.expect(token.RBracket, diag.SynUnclosedBracket)
		return &ast.List{Elts: elts, Loc: p.spanFrom(start)}
	}
}

func (p *Parser) parseBraceAtom() ast.Expr {
	start := p.tok.Span
	p.advance() // {
	if p.at(token.RBrace) {
		p.advance()
		return &ast.Dict{Loc: p.spanFrom(start)}
	}

	// `**expr` can only open a dict display
	if p.accept(token.DoubleStar) {
		keys := []ast.Expr{nil}
		values := []ast.Expr{p.parseBitOr()}
		p.parseDictRest(&keys, &values)
		p.expect(token.RBrace, diag.SynUnclosedBracket)
		return &ast.Dict{Keys: keys, Values: values, Loc: p.spanFrom(start)}
	}

	first := p.parseStarOrTest()
	if p.at(token.Colon) {
		p.advance()
		value := p.parseTest()
		if p.at(token.KwFor) || p.at(token.KwAsync) {
			generators := p.parseCompClauses()
			p.expect(token.RBrace, diag.SynUnclosedBracket)
			return &ast.DictComp{Key: first, Value: value, Generators: generators, Loc: p.spanFrom(start)}
		}
		keys := []ast.Expr{first}
		values := []ast.Expr{value}
		p.parseDictRest(&keys, &values)
		p.expect(token.RBrace, diag.SynUnclosedBracket)
		return &ast.Dict{Keys: keys, Values: values, Loc: p.spanFrom(start)}
	}

	if p.at(token.KwFor) || p.at(token.KwAsync) {
		generators := p.parseCompClauses()
		p.expect(token.RBrace, diag.SynUnclosedBracket)
		return &ast.SetComp{Elt: first, Generators: generators, Loc: p.spanFrom(start)}
	}

	elts := []ast.Expr{first}
	for p.accept(token.Comma) {
		if p.at(token.RBrace) {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	p.expect(token.RBrace, diag.SynUnclosedBracket)
	return &ast.Set{Elts: elts, Loc: p.spanFrom(start)}
}

// parseDictRest consumes the remaining `, key: value` and `, **spread`
// entries of a dict display.
func (p *Parser) parseDictRest(keys, values *[]ast.Expr) {
	for p.accept(token.Comma) {
		if p.at(token.RBrace) {
			return
		}
		if p.accept(token.DoubleStar) {
			*keys = append(*keys, nil)
			*values = append(*values, p.parseBitOr())
			continue
		}
		key := p.parseTest()
		p.expect(token.Colon, diag.SynExpectColon)
		*keys = append(*keys, key)
		*values = append(*values, p.parseTest())
	}
}
