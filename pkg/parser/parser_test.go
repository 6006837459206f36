package parser

import (
	"testing"

	"github.com/kristofer/quest/pkg/ast"
)

func TestParseIntegerLiteral(t *testing.T) {
	input := "42"

	p := New(input)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}

	stmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", program.Statements[0])
	}
	intLit, ok := stmt.Expr.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expected IntLiteral, got %T", stmt.Expr)
	}
	if intLit.Value != 42 {
		t.Errorf("expected value 42, got %d", intLit.Value)
	}
}

func TestParseFloatLiteral(t *testing.T) {
	input := "3.14"
	p := New(input)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	floatLit, ok := stmt.Expr.(*ast.FloatLiteral)
	if !ok {
		t.Fatalf("expected FloatLiteral, got %T", stmt.Expr)
	}
	if floatLit.Value != 3.14 {
		t.Errorf("expected 3.14, got %v", floatLit.Value)
	}
}

func TestParseBigIntLiteral(t *testing.T) {
	p := New("123456789012345678901234567890n")
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	big, ok := stmt.Expr.(*ast.BigIntLiteral)
	if !ok {
		t.Fatalf("expected BigIntLiteral, got %T", stmt.Expr)
	}
	if big.Text != "123456789012345678901234567890" {
		t.Errorf("unexpected text: %s", big.Text)
	}
}

func TestParseLetStatement(t *testing.T) {
	p := New(`let x = 5`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt, ok := program.Statements[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected LetStmt, got %T", program.Statements[0])
	}
	if stmt.Const {
		t.Errorf("expected non-const let")
	}
	if stmt.Names[0] != "x" {
		t.Errorf("expected name x, got %s", stmt.Names[0])
	}
}

func TestParseConstStatement(t *testing.T) {
	p := New(`const PI = 3.14`)
	program, _ := p.ParseProgram()
	stmt := program.Statements[0].(*ast.LetStmt)
	if !stmt.Const {
		t.Errorf("expected const let")
	}
}

func TestParseMultiLet(t *testing.T) {
	p := New(`let a, b = 1, 2`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt := program.Statements[0].(*ast.LetStmt)
	if len(stmt.Names) != 2 || len(stmt.Values) != 2 {
		t.Fatalf("expected 2 names and 2 values, got %d/%d", len(stmt.Names), len(stmt.Values))
	}
}

func TestParseIfElifElse(t *testing.T) {
	input := `
if x < 0
  y = -1
elif x == 0
  y = 0
else
  y = 1
end
`
	p := New(input)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt, ok := program.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", program.Statements[0])
	}
	if len(stmt.Elif) != 1 {
		t.Fatalf("expected 1 elif clause, got %d", len(stmt.Elif))
	}
	if stmt.Else == nil {
		t.Fatalf("expected else block")
	}
}

func TestParseWhileLoop(t *testing.T) {
	p := New("while x < 10\n  x = x + 1\nend")
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	if _, ok := program.Statements[0].(*ast.WhileStmt); !ok {
		t.Fatalf("expected WhileStmt, got %T", program.Statements[0])
	}
}

func TestParseForRange(t *testing.T) {
	p := New("for i in 0 to 10 step 2\n  puts(i)\nend")
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt, ok := program.Statements[0].(*ast.ForRangeStmt)
	if !ok {
		t.Fatalf("expected ForRangeStmt, got %T", program.Statements[0])
	}
	if !stmt.Inclusive {
		t.Errorf("expected inclusive range for `to`")
	}
	if stmt.Step == nil {
		t.Errorf("expected step expression")
	}
}

func TestParseForIn(t *testing.T) {
	p := New("for item in items\n  puts(item)\nend")
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	if _, ok := program.Statements[0].(*ast.ForInStmt); !ok {
		t.Fatalf("expected ForInStmt, got %T", program.Statements[0])
	}
}

func TestParseFunctionLiteral(t *testing.T) {
	p := New("fun add(a, b = 1, *rest)\n  return a + b\nend")
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	decl, ok := program.Statements[0].(*ast.FunDecl)
	if !ok {
		t.Fatalf("expected FunDecl, got %T", program.Statements[0])
	}
	if decl.Fn.Name != "add" {
		t.Errorf("expected name add, got %s", decl.Fn.Name)
	}
	if len(decl.Fn.Params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(decl.Fn.Params))
	}
	if decl.Fn.Params[1].Default == nil {
		t.Errorf("expected default on second param")
	}
	if !decl.Fn.Params[2].Variadic {
		t.Errorf("expected third param variadic")
	}
}

func TestParseCallWithNamedAndSplatArgs(t *testing.T) {
	p := New(`f(1, x: 2, *rest, **opts)`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	call, ok := stmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", stmt.Expr)
	}
	if len(call.Args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(call.Args))
	}
	if call.Args[1].Name != "x" {
		t.Errorf("expected named arg x, got %q", call.Args[1].Name)
	}
	if !call.Args[2].SplatArray {
		t.Errorf("expected splat-array arg")
	}
	if !call.Args[3].SplatDict {
		t.Errorf("expected splat-dict arg")
	}
}

func TestParseTryCatchEnsure(t *testing.T) {
	input := `
try
  risky()
catch e: ValueErr
  puts(e)
catch e
  puts(e)
ensure
  cleanup()
end
`
	p := New(input)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt, ok := program.Statements[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("expected TryStmt, got %T", program.Statements[0])
	}
	if len(stmt.Catches) != 2 {
		t.Fatalf("expected 2 catch clauses, got %d", len(stmt.Catches))
	}
	if stmt.Catches[0].Type != "ValueErr" {
		t.Errorf("expected catch type ValueErr, got %q", stmt.Catches[0].Type)
	}
	if stmt.Ensure == nil {
		t.Fatalf("expected ensure block")
	}
}

func TestParseWithStatement(t *testing.T) {
	p := New("with open(\"f\") as f\n  puts(f)\nend")
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt, ok := program.Statements[0].(*ast.WithStmt)
	if !ok {
		t.Fatalf("expected WithStmt, got %T", program.Statements[0])
	}
	if stmt.Items[0].As != "f" {
		t.Errorf("expected binding f, got %q", stmt.Items[0].As)
	}
}

func TestParseTypeDecl(t *testing.T) {
	input := `
type Point
  x: Int = 0
  pub y
  fun magnitude()
    return x
  end
end
`
	p := New(input)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	decl, ok := program.Statements[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected TypeDecl, got %T", program.Statements[0])
	}
	if len(decl.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(decl.Fields))
	}
	if len(decl.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(decl.Methods))
	}
}

func TestParseMatchStatement(t *testing.T) {
	input := `
match age
in 0 to 12 -> puts("child")
in 13, 14, 15 -> puts("young teen")
else -> puts("adult")
end
`
	p := New(input)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt, ok := program.Statements[0].(*ast.MatchStmt)
	if !ok {
		t.Fatalf("expected MatchStmt, got %T", program.Statements[0])
	}
	if len(stmt.Arms) != 3 {
		t.Fatalf("expected 3 arms, got %d", len(stmt.Arms))
	}
	if stmt.Arms[0].Range == nil {
		t.Errorf("expected range pattern on first arm")
	}
	if len(stmt.Arms[1].Values) != 3 {
		t.Errorf("expected 3 discrete values on second arm")
	}
	if !stmt.Arms[2].IsElse {
		t.Errorf("expected else arm last")
	}
}

func TestParseArrayDictSetLiterals(t *testing.T) {
	p := New(`[1, 2, 3]`)
	program, _ := p.ParseProgram()
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	if _, ok := stmt.Expr.(*ast.ArrayLiteral); !ok {
		t.Fatalf("expected ArrayLiteral, got %T", stmt.Expr)
	}

	p = New(`{"a": 1, "b": 2}`)
	program, _ = p.ParseProgram()
	stmt = program.Statements[0].(*ast.ExpressionStmt)
	dict, ok := stmt.Expr.(*ast.DictLiteral)
	if !ok {
		t.Fatalf("expected DictLiteral, got %T", stmt.Expr)
	}
	if len(dict.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(dict.Entries))
	}

	p = New(`{1, 2, 3}`)
	program, _ = p.ParseProgram()
	stmt = program.Statements[0].(*ast.ExpressionStmt)
	if _, ok := stmt.Expr.(*ast.SetLiteral); !ok {
		t.Fatalf("expected SetLiteral, got %T", stmt.Expr)
	}
}

func TestParseInterpolatedString(t *testing.T) {
	p := New(`f"hello {{name}}!"`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	interp, ok := stmt.Expr.(*ast.InterpolatedString)
	if !ok {
		t.Fatalf("expected InterpolatedString, got %T", stmt.Expr)
	}
	if len(interp.Exprs) != 1 {
		t.Fatalf("expected 1 interpolated expr, got %d", len(interp.Exprs))
	}
	ident, ok := interp.Exprs[0].(*ast.Identifier)
	if !ok || ident.Name != "name" {
		t.Fatalf("expected identifier 'name', got %#v", interp.Exprs[0])
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	p := New(`x += 1`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	assign, ok := stmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %T", stmt.Expr)
	}
	if assign.Op != "+=" {
		t.Errorf("expected +=, got %s", assign.Op)
	}
}
