package rules

import (
	"pyfix/internal/ast"
	"pyfix/internal/diag"
	"pyfix/internal/fix"
	"pyfix/internal/source"
)

// RedundantDictIndex flags `map[key]` lookups inside loops and
// comprehensions that already bind the value through `.items()`, as in
//
//	for name, price in prices.items():
//	    total += prices[name]
//
// where `prices[name]` is just `price`. The attached fix replaces the
// subscript with the bound value name.
type RedundantDictIndex struct{}

func (RedundantDictIndex) Code() diag.Code { return diag.LntRedundantDictIndex }

func (RedundantDictIndex) Name() string { return "redundant-dict-index" }

func (r RedundantDictIndex) Check(ctx *Context) {
	ast.Walk(&itemsLoopFinder{ctx: ctx}, ctx.Module)
}

// itemsBinding is the (mapping, key, value) name triple bound by one
// `for key, value in mapping.items()` header.
type itemsBinding struct {
	mapName   string
	keyName   string
	valueName string
}

// extractItemsBinding matches a loop header of the shape
// `key, value in mapping.items()`. The receiver must be a bare name, the
// call must carry no arguments, the target must be a two-name tuple, and
// neither name may be the wildcard `_`. Anything else is not a match.
func extractItemsBinding(iter, target ast.Expr) (itemsBinding, bool) {
	call, ok := iter.(*ast.Call)
	if !ok || len(call.Args) != 0 || len(call.Keywords) != 0 {
		return itemsBinding{}, false
	}
	attr, ok := call.Func.(*ast.Attribute)
	if !ok || attr.Attr != "items" {
		return itemsBinding{}, false
	}
	recv, ok := attr.Value.(*ast.Name)
	if !ok {
		return itemsBinding{}, false
	}
	tup, ok := target.(*ast.Tuple)
	if !ok || len(tup.Elts) != 2 {
		return itemsBinding{}, false
	}
	key, ok := tup.Elts[0].(*ast.Name)
	if !ok {
		return itemsBinding{}, false
	}
	value, ok := tup.Elts[1].(*ast.Name)
	if !ok {
		return itemsBinding{}, false
	}
	if key.ID == "_" || value.ID == "_" {
		return itemsBinding{}, false
	}
	return itemsBinding{mapName: recv.ID, keyName: key.ID, valueName: value.ID}, true
}

// itemsLoopFinder locates every for-loop and comprehension clause that
// binds through .items() and runs the subscript scan over its region.
type itemsLoopFinder struct {
	ctx *Context
}

func (f *itemsLoopFinder) Visit(n ast.Node) ast.Visitor {
	switch node := n.(type) {
	case *ast.For:
		if b, ok := extractItemsBinding(node.Iter, node.Target); ok {
			s := &subscriptScanner{binding: b}
			for _, st := range node.Body {
				s.scan(st)
			}
			for _, st := range node.Else {
				s.scan(st)
			}
			f.emit(b, s.found)
		}
	case *ast.ListComp:
		f.checkComp(node.Elt, node.Generators)
	case *ast.SetComp:
		f.checkComp(node.Elt, node.Generators)
	case *ast.GeneratorExp:
		f.checkComp(node.Elt, node.Generators)
	case *ast.DictComp:
		f.checkComp(node.Value, node.Generators)
	}
	return f
}

// checkComp scans the element expression once per matching generator
// clause. Each clause sees the element plus its own filters; the halt state
// never leaks between clauses.
func (f *itemsLoopFinder) checkComp(elt ast.Expr, generators []ast.Comprehension) {
	for _, gen := range generators {
		b, ok := extractItemsBinding(gen.Iter, gen.Target)
		if !ok {
			continue
		}
		s := &subscriptScanner{binding: b}
		s.scan(elt)
		for _, cond := range gen.Ifs {
			s.scan(cond)
		}
		f.emit(b, s.found)
	}
}

func (f *itemsLoopFinder) emit(b itemsBinding, spans []source.Span) {
	for _, sp := range spans {
		replace := fix.ReplaceSpan("use existing variable", sp, b.valueName, f.ctx.Text(sp),
			fix.WithID("redundant-dict-index"))
		diag.ReportWarning(f.ctx.Reporter, diag.LntRedundantDictIndex, sp,
			"unnecessary lookup of dictionary value by key").
			WithFix(replace).
			Emit()
	}
}

// subscriptScanner collects `map[key]` subscripts within one loop region.
// A write to that exact subscript halts all later collection. The halt is
// purely lexical: a write inside a branch that never runs still counts.
type subscriptScanner struct {
	binding itemsBinding
	halted  bool
	found   []source.Span
}

func (s *subscriptScanner) scan(n ast.Node) {
	ast.Walk(s, n)
}

func (s *subscriptScanner) Visit(n ast.Node) ast.Visitor {
	if s.halted {
		return nil
	}
	switch node := n.(type) {
	case *ast.Assign:
		for _, t := range node.Targets {
			s.checkWrite(t)
		}
		s.scan(node.Value)
		return nil
	case *ast.AnnAssign:
		if node.Value == nil {
			return nil
		}
		s.checkWrite(node.Target)
		s.scan(node.Value)
		return nil
	case *ast.AugAssign:
		s.checkWrite(node.Target)
		s.scan(node.Value)
		return nil
	case *ast.Subscript:
		// Subscripts are terminal: a lookup nested inside another
		// subscript expression is never collected.
		if s.matches(node) {
			s.found = append(s.found, node.Loc)
		}
		return nil
	}
	return s
}

// checkWrite halts the scan when the write target is the tracked
// `map[key]` subscript itself.
func (s *subscriptScanner) checkWrite(target ast.Expr) {
	if sub, ok := target.(*ast.Subscript); ok && s.matches(sub) {
		s.halted = true
	}
}

func (s *subscriptScanner) matches(sub *ast.Subscript) bool {
	value, ok := sub.Value.(*ast.Name)
	if !ok || value.ID != s.binding.mapName {
		return false
	}
	index, ok := sub.Index.(*ast.Name)
	return ok && index.ID == s.binding.keyName
}
