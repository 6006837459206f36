// Package ast defines the parse-tree node types produced by pkg/parser and
// walked directly by pkg/eval — per spec.md §4.1, "the parse tree is the
// AST", there is no separate lowering pass.
package ast

import "github.com/kristofer/quest/pkg/token"

// Node is implemented by every statement and expression node.
type Node interface {
	Span() token.Position
	TokenLiteral() string
}

// Expression is any node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node executed for effect (and, as a block's last
// statement, also a value per spec.md §4.4.1).
type Statement interface {
	Node
	statementNode()
}

type base struct{ Pos token.Position }

func (b base) Span() token.Position { return b.Pos }

// Program is the root of every parsed Quest source file.
type Program struct {
	base
	Statements []Statement
}

func (p *Program) TokenLiteral() string { return "program" }

// ---------------------------------------------------------------- Literals

type Identifier struct {
	base
	Name string
}

func (i *Identifier) expressionNode()     {}
func (i *Identifier) TokenLiteral() string { return i.Name }

type SelfExpr struct{ base }

func (s *SelfExpr) expressionNode()      {}
func (s *SelfExpr) TokenLiteral() string { return "self" }

type IntLiteral struct {
	base
	Value int64
}

func (n *IntLiteral) expressionNode()      {}
func (n *IntLiteral) TokenLiteral() string { return "int" }

type BigIntLiteral struct {
	base
	Text string // decimal digits, parsed into *big.Int by the evaluator
}

func (n *BigIntLiteral) expressionNode()      {}
func (n *BigIntLiteral) TokenLiteral() string { return "bigint" }

type FloatLiteral struct {
	base
	Value float64
}

func (n *FloatLiteral) expressionNode()      {}
func (n *FloatLiteral) TokenLiteral() string { return "float" }

type StringLiteral struct {
	base
	Value         string
	Interpolated  bool // true for f"..." literals
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return "string" }

// InterpolatedString holds the parsed {{expr}} segments of an f"..."
// literal: Parts and Exprs alternate (Parts[0], Exprs[0], Parts[1], ...).
type InterpolatedString struct {
	base
	Parts []string
	Exprs []Expression
}

func (n *InterpolatedString) expressionNode()      {}
func (n *InterpolatedString) TokenLiteral() string { return "fstring" }

type BoolLiteral struct {
	base
	Value bool
}

func (n *BoolLiteral) expressionNode()      {}
func (n *BoolLiteral) TokenLiteral() string { return "bool" }

type NilLiteral struct{ base }

func (n *NilLiteral) expressionNode()      {}
func (n *NilLiteral) TokenLiteral() string { return "nil" }

type ArrayLiteral struct {
	base
	Elements []Expression
}

func (n *ArrayLiteral) expressionNode()      {}
func (n *ArrayLiteral) TokenLiteral() string { return "array" }

type DictEntry struct {
	Key   Expression
	Value Expression
}

type DictLiteral struct {
	base
	Entries []DictEntry
}

func (n *DictLiteral) expressionNode()      {}
func (n *DictLiteral) TokenLiteral() string { return "dict" }

type SetLiteral struct {
	base
	Elements []Expression
}

func (n *SetLiteral) expressionNode()      {}
func (n *SetLiteral) TokenLiteral() string { return "set" }

// RangeExpr is `start to end [step s]` / `start until end [step s]`, valid
// both as a standalone Range value and as a match-arm pattern (spec.md
// §4.4.9).
type RangeExpr struct {
	base
	Start     Expression
	End       Expression
	Step      Expression // nil => default step 1
	Inclusive bool       // true for `to`, false for `until`
}

func (n *RangeExpr) expressionNode()      {}
func (n *RangeExpr) TokenLiteral() string { return "range" }

// ------------------------------------------------------------- Expressions

type Param struct {
	Name     string
	TypeName string // advisory annotation, empty if absent
	Default  Expression
	Variadic bool // *args
	Kwargs   bool // **kwargs
}

type FunctionLiteral struct {
	base
	Name   string // empty for anonymous lambdas
	Params []Param
	Body   *BlockStmt
	Doc    string
}

func (n *FunctionLiteral) expressionNode()      {}
func (n *FunctionLiteral) TokenLiteral() string { return "fun" }

type Arg struct {
	Name       string // empty for positional
	Value      Expression
	SplatArray bool // *expr
	SplatDict  bool // **expr
}

type CallExpr struct {
	base
	Callee Expression
	Args   []Arg
}

func (n *CallExpr) expressionNode()      {}
func (n *CallExpr) TokenLiteral() string { return "call" }

type IndexExpr struct {
	base
	Receiver Expression
	Index    Expression
}

func (n *IndexExpr) expressionNode()      {}
func (n *IndexExpr) TokenLiteral() string { return "index" }

type MemberExpr struct {
	base
	Receiver Expression
	Name     string
}

func (n *MemberExpr) expressionNode()      {}
func (n *MemberExpr) TokenLiteral() string { return "member" }

type UnaryExpr struct {
	base
	Op   string // "-", "~", "not"
	Expr Expression
}

func (n *UnaryExpr) expressionNode()      {}
func (n *UnaryExpr) TokenLiteral() string { return n.Op }

type BinaryExpr struct {
	base
	Op    string
	Left  Expression
	Right Expression
}

func (n *BinaryExpr) expressionNode()      {}
func (n *BinaryExpr) TokenLiteral() string { return n.Op }

// LogicalExpr covers `and`/`or`, which short-circuit and yield the operand
// value rather than a coerced boolean (spec.md §4.2).
type LogicalExpr struct {
	base
	Op    string // "and" | "or"
	Left  Expression
	Right Expression
}

func (n *LogicalExpr) expressionNode()      {}
func (n *LogicalExpr) TokenLiteral() string { return n.Op }

// ElvisExpr is `a ?: b` (spec.md §4.2): only nil triggers the default.
type ElvisExpr struct {
	base
	Left  Expression
	Right Expression
}

func (n *ElvisExpr) expressionNode()      {}
func (n *ElvisExpr) TokenLiteral() string { return "?:" }

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	base
	Cond Expression
	Then Expression
	Else Expression
}

func (n *TernaryExpr) expressionNode()      {}
func (n *TernaryExpr) TokenLiteral() string { return "?" }

type AssignExpr struct {
	base
	Target Expression // Identifier, IndexExpr, or MemberExpr
	Op     string     // "=", "+=", "-=", "*=", "/=", "%="
	Value  Expression
}

func (n *AssignExpr) expressionNode()      {}
func (n *AssignExpr) TokenLiteral() string { return n.Op }

// -------------------------------------------------------------- Statements

type BlockStmt struct {
	base
	Statements []Statement
}

func (n *BlockStmt) statementNode()      {}
func (n *BlockStmt) TokenLiteral() string { return "block" }

type ExpressionStmt struct {
	base
	Expr Expression
}

func (n *ExpressionStmt) statementNode()      {}
func (n *ExpressionStmt) TokenLiteral() string { return "exprstmt" }

// LetStmt is a possibly multi-binding `let`/`const` declaration.
type LetStmt struct {
	base
	Names   []string
	Values  []Expression // parallel to Names; may be shorter (destructure) or length 1 with len(Names)>1 expecting array destructure
	Const   bool
	TypeAnn []string
}

func (n *LetStmt) statementNode()      {}
func (n *LetStmt) TokenLiteral() string { return "let" }

type IfStmt struct {
	base
	Cond Expression
	Then *BlockStmt
	Elif []ElifClause
	Else *BlockStmt // nil if absent
}

type ElifClause struct {
	Cond Expression
	Body *BlockStmt
}

func (n *IfStmt) statementNode()      {}
func (n *IfStmt) TokenLiteral() string { return "if" }

type WhileStmt struct {
	base
	Cond Expression
	Body *BlockStmt
}

func (n *WhileStmt) statementNode()      {}
func (n *WhileStmt) TokenLiteral() string { return "while" }

// ForInStmt is `for x in coll` / `for k, v in dict`.
type ForInStmt struct {
	base
	KeyName   string // set for `for k, v in dict`, else empty
	ValueName string
	Iterable  Expression
	Body      *BlockStmt
}

func (n *ForInStmt) statementNode()      {}
func (n *ForInStmt) TokenLiteral() string { return "for-in" }

// ForRangeStmt is `for i in start to/until end [step s]`.
type ForRangeStmt struct {
	base
	Name      string
	Start     Expression
	End       Expression
	Step      Expression
	Inclusive bool
	Body      *BlockStmt
}

func (n *ForRangeStmt) statementNode()      {}
func (n *ForRangeStmt) TokenLiteral() string { return "for-range" }

type BreakStmt struct{ base }

func (n *BreakStmt) statementNode()      {}
func (n *BreakStmt) TokenLiteral() string { return "break" }

type ContinueStmt struct{ base }

func (n *ContinueStmt) statementNode()      {}
func (n *ContinueStmt) TokenLiteral() string { return "continue" }

type ReturnStmt struct {
	base
	Value Expression // nil => bare return
}

func (n *ReturnStmt) statementNode()      {}
func (n *ReturnStmt) TokenLiteral() string { return "return" }

type RaiseStmt struct {
	base
	Value Expression // string or exception-producing expression
	Cause Expression // nil if absent
}

func (n *RaiseStmt) statementNode()      {}
func (n *RaiseStmt) TokenLiteral() string { return "raise" }

type CatchClause struct {
	Name string // bound variable, may be empty
	Type string // annotation, may be empty (matches any)
	Body *BlockStmt
}

type TryStmt struct {
	base
	Body    *BlockStmt
	Catches []CatchClause
	Ensure  *BlockStmt // nil if absent
}

func (n *TryStmt) statementNode()      {}
func (n *TryStmt) TokenLiteral() string { return "try" }

type WithItem struct {
	Expr Expression
	As   string // binding name, may be empty
}

type WithStmt struct {
	base
	Items []WithItem
	Body  *BlockStmt
}

func (n *WithStmt) statementNode()      {}
func (n *WithStmt) TokenLiteral() string { return "with" }

// UseStmt is `use "path" [as name]` or `use "path" { a, b, c }`.
type UseStmt struct {
	base
	Path    string
	As      string
	Members []string // destructured member names, empty if not used
}

func (n *UseStmt) statementNode()      {}
func (n *UseStmt) TokenLiteral() string { return "use" }

type FieldDecl struct {
	Name     string
	TypeName string
	Default  Expression
	Pub      bool
}

type MethodDecl struct {
	Fn       *FunctionLiteral
	IsStatic bool // `fun self.m()`
}

type TypeDecl struct {
	base
	Name    string
	Fields  []FieldDecl
	Methods []MethodDecl
	Traits  []string
}

func (n *TypeDecl) statementNode()      {}
func (n *TypeDecl) TokenLiteral() string { return "type" }

type TraitDecl struct {
	base
	Name     string
	Required []string // required method signatures (names)
}

func (n *TraitDecl) statementNode()      {}
func (n *TraitDecl) TokenLiteral() string { return "trait" }

// FunDecl is a top-level named function declaration; semantically sugar
// for `let name = fun (...) ... end` but kept distinct so module member
// listing (spec.md §3.4) can see it without evaluating an assignment.
type FunDecl struct {
	base
	Fn  *FunctionLiteral
	Pub bool
}

func (n *FunDecl) statementNode()      {}
func (n *FunDecl) TokenLiteral() string { return "fundecl" }

type DelStmt struct {
	base
	Name string
}

func (n *DelStmt) statementNode()      {}
func (n *DelStmt) TokenLiteral() string { return "del" }

// MatchArm is one `in PATTERN -> body` clause, or the `else` catch-all.
type MatchArm struct {
	Range  *RangeExpr   // set when this arm is a range pattern
	Values []Expression // set when this arm is a discrete-value list
	IsElse bool
	Body   *BlockStmt
}

type MatchStmt struct {
	base
	Subject Expression
	Arms    []MatchArm
}

func (n *MatchStmt) statementNode()      {}
func (n *MatchStmt) TokenLiteral() string { return "match" }
