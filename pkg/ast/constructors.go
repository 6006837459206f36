package ast

import "github.com/kristofer/quest/pkg/token"

// Constructors below let pkg/parser build nodes without reaching into the
// unexported base field directly.

func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{base{pos}, name}
}

func NewSelfExpr(pos token.Position) *SelfExpr { return &SelfExpr{base{pos}} }

func NewIntLiteral(pos token.Position, v int64) *IntLiteral {
	return &IntLiteral{base{pos}, v}
}

func NewBigIntLiteral(pos token.Position, text string) *BigIntLiteral {
	return &BigIntLiteral{base{pos}, text}
}

func NewFloatLiteral(pos token.Position, v float64) *FloatLiteral {
	return &FloatLiteral{base{pos}, v}
}

func NewStringLiteral(pos token.Position, v string, interpolated bool) *StringLiteral {
	return &StringLiteral{base{pos}, v, interpolated}
}

func NewInterpolatedString(pos token.Position, parts []string, exprs []Expression) *InterpolatedString {
	return &InterpolatedString{base{pos}, parts, exprs}
}

func NewBoolLiteral(pos token.Position, v bool) *BoolLiteral {
	return &BoolLiteral{base{pos}, v}
}

func NewNilLiteral(pos token.Position) *NilLiteral { return &NilLiteral{base{pos}} }

func NewArrayLiteral(pos token.Position, elems []Expression) *ArrayLiteral {
	return &ArrayLiteral{base{pos}, elems}
}

func NewDictLiteral(pos token.Position, entries []DictEntry) *DictLiteral {
	return &DictLiteral{base{pos}, entries}
}

func NewSetLiteral(pos token.Position, elems []Expression) *SetLiteral {
	return &SetLiteral{base{pos}, elems}
}

func NewRangeExpr(pos token.Position, start, end, step Expression, inclusive bool) *RangeExpr {
	return &RangeExpr{base{pos}, start, end, step, inclusive}
}

func NewFunctionLiteral(pos token.Position, name string, params []Param, body *BlockStmt) *FunctionLiteral {
	return &FunctionLiteral{base{pos}, name, params, body, ""}
}

func NewCallExpr(pos token.Position, callee Expression, args []Arg) *CallExpr {
	return &CallExpr{base{pos}, callee, args}
}

func NewIndexExpr(pos token.Position, receiver, index Expression) *IndexExpr {
	return &IndexExpr{base{pos}, receiver, index}
}

func NewMemberExpr(pos token.Position, receiver Expression, name string) *MemberExpr {
	return &MemberExpr{base{pos}, receiver, name}
}

func NewUnaryExpr(pos token.Position, op string, expr Expression) *UnaryExpr {
	return &UnaryExpr{base{pos}, op, expr}
}

func NewBinaryExpr(pos token.Position, op string, left, right Expression) *BinaryExpr {
	return &BinaryExpr{base{pos}, op, left, right}
}

func NewLogicalExpr(pos token.Position, op string, left, right Expression) *LogicalExpr {
	return &LogicalExpr{base{pos}, op, left, right}
}

func NewElvisExpr(pos token.Position, left, right Expression) *ElvisExpr {
	return &ElvisExpr{base{pos}, left, right}
}

func NewTernaryExpr(pos token.Position, cond, then, els Expression) *TernaryExpr {
	return &TernaryExpr{base{pos}, cond, then, els}
}

func NewAssignExpr(pos token.Position, target Expression, op string, value Expression) *AssignExpr {
	return &AssignExpr{base{pos}, target, op, value}
}

func NewBlockStmt(pos token.Position, stmts []Statement) *BlockStmt {
	return &BlockStmt{base{pos}, stmts}
}

func NewExpressionStmt(pos token.Position, expr Expression) *ExpressionStmt {
	return &ExpressionStmt{base{pos}, expr}
}

func NewLetStmt(pos token.Position, names []string, values []Expression, isConst bool, typeAnn []string) *LetStmt {
	return &LetStmt{base{pos}, names, values, isConst, typeAnn}
}

func NewIfStmt(pos token.Position, cond Expression, then *BlockStmt, elifs []ElifClause, els *BlockStmt) *IfStmt {
	return &IfStmt{base{pos}, cond, then, elifs, els}
}

func NewWhileStmt(pos token.Position, cond Expression, body *BlockStmt) *WhileStmt {
	return &WhileStmt{base{pos}, cond, body}
}

func NewForInStmt(pos token.Position, keyName, valueName string, iterable Expression, body *BlockStmt) *ForInStmt {
	return &ForInStmt{base{pos}, keyName, valueName, iterable, body}
}

func NewForRangeStmt(pos token.Position, name string, start, end, step Expression, inclusive bool, body *BlockStmt) *ForRangeStmt {
	return &ForRangeStmt{base{pos}, name, start, end, step, inclusive, body}
}

func NewBreakStmt(pos token.Position) *BreakStmt       { return &BreakStmt{base{pos}} }
func NewContinueStmt(pos token.Position) *ContinueStmt { return &ContinueStmt{base{pos}} }

func NewReturnStmt(pos token.Position, value Expression) *ReturnStmt {
	return &ReturnStmt{base{pos}, value}
}

func NewRaiseStmt(pos token.Position, value, cause Expression) *RaiseStmt {
	return &RaiseStmt{base{pos}, value, cause}
}

func NewTryStmt(pos token.Position, body *BlockStmt, catches []CatchClause, ensure *BlockStmt) *TryStmt {
	return &TryStmt{base{pos}, body, catches, ensure}
}

func NewWithStmt(pos token.Position, items []WithItem, body *BlockStmt) *WithStmt {
	return &WithStmt{base{pos}, items, body}
}

func NewUseStmt(pos token.Position, path, as string, members []string) *UseStmt {
	return &UseStmt{base{pos}, path, as, members}
}

func NewTypeDecl(pos token.Position, name string, fields []FieldDecl, methods []MethodDecl, traits []string) *TypeDecl {
	return &TypeDecl{base{pos}, name, fields, methods, traits}
}

func NewTraitDecl(pos token.Position, name string, required []string) *TraitDecl {
	return &TraitDecl{base{pos}, name, required}
}

func NewFunDecl(pos token.Position, fn *FunctionLiteral, pub bool) *FunDecl {
	return &FunDecl{base{pos}, fn, pub}
}

func NewDelStmt(pos token.Position, name string) *DelStmt {
	return &DelStmt{base{pos}, name}
}

func NewMatchStmt(pos token.Position, subject Expression, arms []MatchArm) *MatchStmt {
	return &MatchStmt{base{pos}, subject, arms}
}
