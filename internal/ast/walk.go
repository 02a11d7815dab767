package ast

// Visitor has its Visit method invoked for each node encountered by Walk.
// If the returned visitor w is non-nil, Walk visits each child of the node
// with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses the tree rooted at n in depth-first, source order. Every
// node kind has an explicit case; child order follows the source text so
// traversal results are deterministic.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if v = v.Visit(n); v == nil {
		return
	}

	switch x := n.(type) {
	case *Module:
		walkStmts(v, x.Body)

	// Expressions.
	case *Name, *Literal, *BadExpr:
		// leaves

	case *Attribute:
		Walk(v, x.Value)
	case *Subscript:
		Walk(v, x.Value)
		Walk(v, x.Index)
	case *SliceExpr:
		walkIfSet(v, x.Lo)
		walkIfSet(v, x.Hi)
		walkIfSet(v, x.Step)
	case *Call:
		Walk(v, x.Func)
		walkExprs(v, x.Args)
		for i := range x.Keywords {
			Walk(v, x.Keywords[i].Value)
		}
	case *Tuple:
		walkExprs(v, x.Elts)
	case *List:
		walkExprs(v, x.Elts)
	case *Set:
		walkExprs(v, x.Elts)
	case *Dict:
		for i := range x.Keys {
			walkIfSet(v, x.Keys[i])
			Walk(v, x.Values[i])
		}
	case *Starred:
		Walk(v, x.Value)
	case *UnaryOp:
		Walk(v, x.Operand)
	case *BinOp:
		Walk(v, x.Left)
		Walk(v, x.Right)
	case *BoolOp:
		walkExprs(v, x.Values)
	case *Compare:
		Walk(v, x.Left)
		walkExprs(v, x.Comparators)
	case *IfExp:
		// source order: body, condition, orelse
		Walk(v, x.Body)
		Walk(v, x.Cond)
		Walk(v, x.Else)
	case *Lambda:
		walkParams(v, x.Params)
		Walk(v, x.Body)
	case *NamedExpr:
		Walk(v, x.Target)
		Walk(v, x.Value)
	case *Await:
		Walk(v, x.Value)
	case *Yield:
		walkIfSet(v, x.Value)
	case *ListComp:
		Walk(v, x.Elt)
		walkGenerators(v, x.Generators)
	case *SetComp:
		Walk(v, x.Elt)
		walkGenerators(v, x.Generators)
	case *GeneratorExp:
		Walk(v, x.Elt)
		walkGenerators(v, x.Generators)
	case *DictComp:
		Walk(v, x.Key)
		Walk(v, x.Value)
		walkGenerators(v, x.Generators)

	// Statements.
	case *ExprStmt:
		Walk(v, x.X)
	case *Assign:
		walkExprs(v, x.Targets)
		Walk(v, x.Value)
	case *AnnAssign:
		Walk(v, x.Target)
		Walk(v, x.Annotation)
		walkIfSet(v, x.Value)
	case *AugAssign:
		Walk(v, x.Target)
		Walk(v, x.Value)
	case *For:
		Walk(v, x.Target)
		Walk(v, x.Iter)
		walkStmts(v, x.Body)
		walkStmts(v, x.Else)
	case *While:
		Walk(v, x.Cond)
		walkStmts(v, x.Body)
		walkStmts(v, x.Else)
	case *If:
		Walk(v, x.Cond)
		walkStmts(v, x.Body)
		walkStmts(v, x.Else)
	case *FuncDef:
		walkExprs(v, x.Decorators)
		walkParams(v, x.Params)
		walkIfSet(v, x.Returns)
		walkStmts(v, x.Body)
	case *ClassDef:
		walkExprs(v, x.Decorators)
		walkExprs(v, x.Bases)
		for i := range x.Keywords {
			Walk(v, x.Keywords[i].Value)
		}
		walkStmts(v, x.Body)
	case *Return:
		walkIfSet(v, x.Value)
	case *Pass, *Break, *Continue, *Global, *Nonlocal, *Import, *BadStmt:
		// leaves
	case *Delete:
		walkExprs(v, x.Targets)
	case *With:
		for i := range x.Items {
			Walk(v, x.Items[i].Context)
			walkIfSet(v, x.Items[i].Target)
		}
		walkStmts(v, x.Body)
	case *Raise:
		walkIfSet(v, x.Exc)
		walkIfSet(v, x.Cause)
	case *Assert:
		Walk(v, x.Cond)
		walkIfSet(v, x.Msg)
	case *Try:
		walkStmts(v, x.Body)
		for i := range x.Handlers {
			walkIfSet(v, x.Handlers[i].Type)
			walkStmts(v, x.Handlers[i].Body)
		}
		walkStmts(v, x.Else)
		walkStmts(v, x.Finally)
	}

	v.Visit(nil)
}

func walkIfSet(v Visitor, x Expr) {
	if x != nil {
		Walk(v, x)
	}
}

func walkExprs(v Visitor, xs []Expr) {
	for _, x := range xs {
		Walk(v, x)
	}
}

func walkStmts(v Visitor, ss []Stmt) {
	for _, s := range ss {
		Walk(v, s)
	}
}

func walkGenerators(v Visitor, gens []Comprehension) {
	for i := range gens {
		Walk(v, gens[i].Target)
		Walk(v, gens[i].Iter)
		walkExprs(v, gens[i].Ifs)
	}
}

// walkParams visits annotations and defaults; parameter names are not nodes.
func walkParams(v Visitor, params []Param) {
	for i := range params {
		walkIfSet(v, params[i].Annotation)
		walkIfSet(v, params[i].Default)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if n == nil {
		return nil
	}
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses the tree, calling f for each node. If f returns false
// for a node, its children are skipped.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}
