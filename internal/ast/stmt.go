package ast

import (
	"pyfix/internal/source"
)

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	X   Expr
	Loc source.Span
}

// Assign is `Targets[0] = Targets[1] = ... = Value`.
type Assign struct {
	Targets []Expr
	Value   Expr
	Loc     source.Span
}

// AnnAssign is `Target: Annotation [= Value]`. Value is nil for a bare
// annotation, which cannot mutate anything.
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr // may be nil
	Loc        source.Span
}

// AugAssign is `Target Op= Value`.
type AugAssign struct {
	Target Expr
	Op     string
	Value  Expr
	Loc    source.Span
}

// For is `for Target in Iter: Body [else: Else]`.
type For struct {
	Target  Expr
	Iter    Expr
	Body    []Stmt
	Else    []Stmt
	IsAsync bool
	Loc     source.Span
}

// While is `while Cond: Body [else: Else]`.
type While struct {
	Cond Expr
	Body []Stmt
	Else []Stmt
	Loc  source.Span
}

// If is `if Cond: Body [elif.../else: Else]`. An elif chain nests as a
// single-statement Else holding another If.
type If struct {
	Cond Expr
	Body []Stmt
	Else []Stmt
	Loc  source.Span
}

// ParamKind distinguishes regular, *args, and **kwargs parameters.
type ParamKind uint8

const (
	ParamRegular ParamKind = iota
	ParamStar
	ParamDoubleStar
)

// Param is one formal parameter of a def or lambda.
type Param struct {
	Name       string
	Kind       ParamKind
	Annotation Expr // may be nil
	Default    Expr // may be nil
	Loc        source.Span
}

// FuncDef is `def Name(Params) [-> Returns]: Body`.
type FuncDef struct {
	Name       string
	Params     []Param
	Body       []Stmt
	Decorators []Expr
	Returns    Expr // may be nil
	IsAsync    bool
	Loc        source.Span
}

// ClassDef is `class Name(Bases): Body`.
type ClassDef struct {
	Name       string
	Bases      []Expr
	Keywords   []KeywordArg
	Body       []Stmt
	Decorators []Expr
	Loc        source.Span
}

// Return is `return [Value]`.
type Return struct {
	Value Expr // may be nil
	Loc   source.Span
}

// Pass is the `pass` statement.
type Pass struct {
	Loc source.Span
}

// Break is the `break` statement.
type Break struct {
	Loc source.Span
}

// Continue is the `continue` statement.
type Continue struct {
	Loc source.Span
}

// Delete is `del Targets...`.
type Delete struct {
	Targets []Expr
	Loc     source.Span
}

// WithItem is one `expr [as target]` element of a with statement.
type WithItem struct {
	Context Expr
	Target  Expr // may be nil
	Loc     source.Span
}

// With is `with Items: Body`.
type With struct {
	Items   []WithItem
	Body    []Stmt
	IsAsync bool
	Loc     source.Span
}

// Raise is `raise [Exc [from Cause]]`.
type Raise struct {
	Exc   Expr // may be nil
	Cause Expr // may be nil
	Loc   source.Span
}

// Assert is `assert Cond [, Msg]`.
type Assert struct {
	Cond Expr
	Msg  Expr // may be nil
	Loc  source.Span
}

// Global is `global Names...`.
type Global struct {
	Names []string
	Loc   source.Span
}

// Nonlocal is `nonlocal Names...`.
type Nonlocal struct {
	Names []string
	Loc   source.Span
}

// Import covers both `import ...` and `from ... import ...`. The rule never
// looks inside imports, so only the span is retained.
type Import struct {
	Loc source.Span
}

// ExceptHandler is one `except [Type [as name]]: Body` clause.
type ExceptHandler struct {
	Type Expr // may be nil
	Name string
	Body []Stmt
	Loc  source.Span
}

// Try is `try: Body except...: [else: Else] [finally: Finally]`.
type Try struct {
	Body     []Stmt
	Handlers []ExceptHandler
	Else     []Stmt
	Finally  []Stmt
	Loc      source.Span
}

// BadStmt is a placeholder produced during error recovery.
type BadStmt struct {
	Loc source.Span
}

func (s *ExprStmt) Span() source.Span  { return s.Loc }
func (s *Assign) Span() source.Span    { return s.Loc }
func (s *AnnAssign) Span() source.Span { return s.Loc }
func (s *AugAssign) Span() source.Span { return s.Loc }
func (s *For) Span() source.Span       { return s.Loc }
func (s *While) Span() source.Span     { return s.Loc }
func (s *If) Span() source.Span        { return s.Loc }
func (s *FuncDef) Span() source.Span   { return s.Loc }
func (s *ClassDef) Span() source.Span  { return s.Loc }
func (s *Return) Span() source.Span    { return s.Loc }
func (s *Pass) Span() source.Span      { return s.Loc }
func (s *Break) Span() source.Span     { return s.Loc }
func (s *Continue) Span() source.Span  { return s.Loc }
func (s *Delete) Span() source.Span    { return s.Loc }
func (s *With) Span() source.Span      { return s.Loc }
func (s *Raise) Span() source.Span     { return s.Loc }
func (s *Assert) Span() source.Span    { return s.Loc }
func (s *Global) Span() source.Span    { return s.Loc }
func (s *Nonlocal) Span() source.Span  { return s.Loc }
func (s *Import) Span() source.Span    { return s.Loc }
func (s *Try) Span() source.Span       { return s.Loc }
func (s *BadStmt) Span() source.Span   { return s.Loc }

func (*ExprStmt) stmtNode()  {}
func (*Assign) stmtNode()    {}
func (*AnnAssign) stmtNode() {}
func (*AugAssign) stmtNode() {}
func (*For) stmtNode()       {}
func (*While) stmtNode()     {}
func (*If) stmtNode()        {}
func (*FuncDef) stmtNode()   {}
func (*ClassDef) stmtNode()  {}
func (*Return) stmtNode()    {}
func (*Pass) stmtNode()      {}
func (*Break) stmtNode()     {}
func (*Continue) stmtNode()  {}
func (*Delete) stmtNode()    {}
func (*With) stmtNode()      {}
func (*Raise) stmtNode()     {}
func (*Assert) stmtNode()    {}
func (*Global) stmtNode()    {}
func (*Nonlocal) stmtNode()  {}
func (*Import) stmtNode()    {}
func (*Try) stmtNode()       {}
func (*BadStmt) stmtNode()   {}
