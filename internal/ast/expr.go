package ast

import (
	"pyfix/internal/source"
)

// Name is a bare identifier reference.
type Name struct {
	ID  string
	Loc source.Span
}

// LiteralKind distinguishes the atom literal flavors.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitTrue
	LitFalse
	LitNone
)

// Literal is a numeric, string, or constant literal. Text is the exact
// source spelling.
type Literal struct {
	Kind LiteralKind
	Text string
	Loc  source.Span
}

// Attribute is `Value.Attr`.
type Attribute struct {
	Value Expr
	Attr  string
	Loc   source.Span
}

// Subscript is `Value[Index]`.
type Subscript struct {
	Value Expr
	Index Expr
	Loc   source.Span
}

// SliceExpr is `Lo:Hi:Step` inside a subscript; any part may be nil.
type SliceExpr struct {
	Lo, Hi, Step Expr
	Loc          source.Span
}

// Call is `Func(Args..., Keywords...)`.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []KeywordArg
	Loc      source.Span
}

// KeywordArg is a `name=value` (or `**value` when Name is empty) argument.
type KeywordArg struct {
	Name  string
	Value Expr
	Loc   source.Span
}

// Tuple is a (possibly parenthesized) comma-separated expression list.
type Tuple struct {
	Elts []Expr
	Loc  source.Span
}

// List is a `[...]` display.
type List struct {
	Elts []Expr
	Loc  source.Span
}

// Set is a `{a, b}` display.
type Set struct {
	Elts []Expr
	Loc  source.Span
}

// Dict is a `{k: v, ...}` display. Keys[i] == nil marks a `**expr` spread
// (its value sits in Values[i]).
type Dict struct {
	Keys   []Expr
	Values []Expr
	Loc    source.Span
}

// Starred is `*Value` in a display or assignment target.
type Starred struct {
	Value Expr
	Loc   source.Span
}

// UnaryOp is `Op Operand` (not, -, +, ~).
type UnaryOp struct {
	Op      string
	Operand Expr
	Loc     source.Span
}

// BinOp is `Left Op Right` for arithmetic and bitwise operators.
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
	Loc   source.Span
}

// BoolOp is an `and`/`or` chain with two or more values.
type BoolOp struct {
	Op     string
	Values []Expr
	Loc    source.Span
}

// Compare is `Left Ops[0] Comparators[0] Ops[1] ...`.
type Compare struct {
	Left        Expr
	Ops         []string
	Comparators []Expr
	Loc         source.Span
}

// IfExp is the conditional expression `Body if Cond else Else`.
type IfExp struct {
	Cond Expr
	Body Expr
	Else Expr
	Loc  source.Span
}

// Lambda is `lambda params: Body`.
type Lambda struct {
	Params []Param
	Body   Expr
	Loc    source.Span
}

// NamedExpr is the walrus `Target := Value`.
type NamedExpr struct {
	Target Expr
	Value  Expr
	Loc    source.Span
}

// Await is `await Value`.
type Await struct {
	Value Expr
	Loc   source.Span
}

// Yield is `yield` / `yield Value` / `yield from Value`.
type Yield struct {
	Value  Expr // may be nil
	IsFrom bool
	Loc    source.Span
}

// Comprehension is one `for Target in Iter [if Ifs...]` generator clause.
type Comprehension struct {
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
	Loc     source.Span
}

// ListComp is `[Elt for ...]`.
type ListComp struct {
	Elt        Expr
	Generators []Comprehension
	Loc        source.Span
}

// SetComp is `{Elt for ...}`.
type SetComp struct {
	Elt        Expr
	Generators []Comprehension
	Loc        source.Span
}

// GeneratorExp is `(Elt for ...)`.
type GeneratorExp struct {
	Elt        Expr
	Generators []Comprehension
	Loc        source.Span
}

// DictComp is `{Key: Value for ...}`.
type DictComp struct {
	Key        Expr
	Value      Expr
	Generators []Comprehension
	Loc        source.Span
}

// BadExpr is a placeholder produced during error recovery.
type BadExpr struct {
	Loc source.Span
}

func (x *Name) Span() source.Span         { return x.Loc }
func (x *Literal) Span() source.Span      { return x.Loc }
func (x *Attribute) Span() source.Span    { return x.Loc }
func (x *Subscript) Span() source.Span    { return x.Loc }
func (x *SliceExpr) Span() source.Span    { return x.Loc }
func (x *Call) Span() source.Span         { return x.Loc }
func (x *Tuple) Span() source.Span        { return x.Loc }
func (x *List) Span() source.Span         { return x.Loc }
func (x *Set) Span() source.Span          { return x.Loc }
func (x *Dict) Span() source.Span         { return x.Loc }
func (x *Starred) Span() source.Span      { return x.Loc }
func (x *UnaryOp) Span() source.Span      { return x.Loc }
func (x *BinOp) Span() source.Span        { return x.Loc }
func (x *BoolOp) Span() source.Span       { return x.Loc }
func (x *Compare) Span() source.Span      { return x.Loc }
func (x *IfExp) Span() source.Span        { return x.Loc }
func (x *Lambda) Span() source.Span       { return x.Loc }
func (x *NamedExpr) Span() source.Span    { return x.Loc }
func (x *Await) Span() source.Span        { return x.Loc }
func (x *Yield) Span() source.Span        { return x.Loc }
func (x *ListComp) Span() source.Span     { return x.Loc }
func (x *SetComp) Span() source.Span      { return x.Loc }
func (x *GeneratorExp) Span() source.Span { return x.Loc }
func (x *DictComp) Span() source.Span     { return x.Loc }
func (x *BadExpr) Span() source.Span      { return x.Loc }

func (*Name) exprNode()         {}
func (*Literal) exprNode()      {}
func (*Attribute) exprNode()    {}
func (*Subscript) exprNode()    {}
func (*SliceExpr) exprNode()    {}
func (*Call) exprNode()         {}
func (*Tuple) exprNode()        {}
func (*List) exprNode()         {}
func (*Set) exprNode()          {}
func (*Dict) exprNode()         {}
func (*Starred) exprNode()      {}
func (*UnaryOp) exprNode()      {}
func (*BinOp) exprNode()        {}
func (*BoolOp) exprNode()       {}
func (*Compare) exprNode()      {}
func (*IfExp) exprNode()        {}
func (*Lambda) exprNode()       {}
func (*NamedExpr) exprNode()    {}
func (*Await) exprNode()        {}
func (*Yield) exprNode()        {}
func (*ListComp) exprNode()     {}
func (*SetComp) exprNode()      {}
func (*GeneratorExp) exprNode() {}
func (*DictComp) exprNode()     {}
func (*BadExpr) exprNode()      {}
