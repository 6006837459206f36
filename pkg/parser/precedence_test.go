package parser

import (
	"testing"

	"github.com/kristofer/quest/pkg/ast"
)

// exprOf parses a single expression statement and returns its Expression.
func exprOf(t *testing.T, input string) ast.Expression {
	t.Helper()
	p := New(input)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", input, err)
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", program.Statements[0])
	}
	return stmt.Expr
}

// TestPrecedenceMultiplicationBeforeAddition checks that `*` binds tighter
// than `+`, i.e. `1 + 2 * 3` parses as `1 + (2 * 3)`.
func TestPrecedenceMultiplicationBeforeAddition(t *testing.T) {
	expr := exprOf(t, "1 + 2 * 3")
	top, ok := expr.(*ast.BinaryExpr)
	if !ok || top.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", expr)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Op != "*" {
		t.Fatalf("expected right operand '*', got %#v", top.Right)
	}
}

// TestPrecedenceComparisonBelowAddition checks `1 + 2 < 4` parses as
// `(1 + 2) < 4`.
func TestPrecedenceComparisonBelowAddition(t *testing.T) {
	expr := exprOf(t, "1 + 2 < 4")
	top, ok := expr.(*ast.BinaryExpr)
	if !ok || top.Op != "<" {
		t.Fatalf("expected top-level '<', got %#v", expr)
	}
	if _, ok := top.Left.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected left operand to be the '+' expression, got %#v", top.Left)
	}
}

// TestPrecedenceLogicalAndBelowComparison checks `a < b and c < d` parses
// with `and` at the top.
func TestPrecedenceLogicalAndBelowComparison(t *testing.T) {
	expr := exprOf(t, "a < b and c < d")
	top, ok := expr.(*ast.LogicalExpr)
	if !ok || top.Op != "and" {
		t.Fatalf("expected top-level 'and', got %#v", expr)
	}
}

// TestPrecedenceLogicalOrBelowAnd checks `a and b or c and d` groups the
// `and` pairs under a top-level `or`.
func TestPrecedenceLogicalOrBelowAnd(t *testing.T) {
	expr := exprOf(t, "a and b or c and d")
	top, ok := expr.(*ast.LogicalExpr)
	if !ok || top.Op != "or" {
		t.Fatalf("expected top-level 'or', got %#v", expr)
	}
	if left, ok := top.Left.(*ast.LogicalExpr); !ok || left.Op != "and" {
		t.Fatalf("expected left 'and' group, got %#v", top.Left)
	}
}

// TestPrecedenceNotBindsTighterThanAnd checks `not a and b` parses as
// `(not a) and b`.
func TestPrecedenceNotBindsTighterThanAnd(t *testing.T) {
	expr := exprOf(t, "not a and b")
	top, ok := expr.(*ast.LogicalExpr)
	if !ok || top.Op != "and" {
		t.Fatalf("expected top-level 'and', got %#v", expr)
	}
	if _, ok := top.Left.(*ast.UnaryExpr); !ok {
		t.Fatalf("expected left 'not' unary, got %#v", top.Left)
	}
}

// TestPrecedenceElvisBelowTernary checks elvis is the loosest of the two,
// i.e. `a ? b : c ?: d` groups the ternary first.
func TestPrecedenceElvisBelowTernary(t *testing.T) {
	expr := exprOf(t, "a ? b : c ?: d")
	top, ok := expr.(*ast.ElvisExpr)
	if !ok {
		t.Fatalf("expected top-level ElvisExpr, got %#v", expr)
	}
	if _, ok := top.Left.(*ast.TernaryExpr); !ok {
		t.Fatalf("expected left operand to be a ternary, got %#v", top.Left)
	}
}

// TestPrecedenceConcatBelowAddition checks string concat `..` binds looser
// than `+`.
func TestPrecedenceConcatBelowAddition(t *testing.T) {
	expr := exprOf(t, `"x" .. 1 + 2`)
	top, ok := expr.(*ast.BinaryExpr)
	if !ok || top.Op != ".." {
		t.Fatalf("expected top-level '..', got %#v", expr)
	}
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected right operand '+' expression, got %#v", top.Right)
	}
}

// TestPrecedenceUnaryMinusBeforeMultiplication checks `-a * b` parses as
// `(-a) * b`, not `-(a * b)`.
func TestPrecedenceUnaryMinusBeforeMultiplication(t *testing.T) {
	expr := exprOf(t, "-a * b")
	top, ok := expr.(*ast.BinaryExpr)
	if !ok || top.Op != "*" {
		t.Fatalf("expected top-level '*', got %#v", expr)
	}
	if _, ok := top.Left.(*ast.UnaryExpr); !ok {
		t.Fatalf("expected left unary minus, got %#v", top.Left)
	}
}

// TestPrecedencePostfixBeforeUnary checks `-a.b` applies member access
// before negation: `-(a.b)`.
func TestPrecedencePostfixBeforeUnary(t *testing.T) {
	expr := exprOf(t, "-a.b")
	top, ok := expr.(*ast.UnaryExpr)
	if !ok || top.Op != "-" {
		t.Fatalf("expected top-level unary '-', got %#v", expr)
	}
	if _, ok := top.Expr.(*ast.MemberExpr); !ok {
		t.Fatalf("expected member-expr operand, got %#v", top.Expr)
	}
}

// TestPrecedenceShiftBelowComparison checks `1 << 2 == 4` parses as
// `1 << (2 == 4)`.
func TestPrecedenceShiftBelowComparison(t *testing.T) {
	expr := exprOf(t, "1 << 2 == 4")
	top, ok := expr.(*ast.BinaryExpr)
	if !ok || top.Op != "<<" {
		t.Fatalf("expected top-level '<<', got %#v", expr)
	}
	if right, ok := top.Right.(*ast.BinaryExpr); !ok || right.Op != "==" {
		t.Fatalf("expected right '==' expression, got %#v", top.Right)
	}
}

// TestPrecedenceChainedCallIndexMember checks postfix operators chain
// left-to-right: `a.b(1)[2]`.
func TestPrecedenceChainedCallIndexMember(t *testing.T) {
	expr := exprOf(t, "a.b(1)[2]")
	idx, ok := expr.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected top-level IndexExpr, got %#v", expr)
	}
	call, ok := idx.Receiver.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected call receiver, got %#v", idx.Receiver)
	}
	if _, ok := call.Callee.(*ast.MemberExpr); !ok {
		t.Fatalf("expected member-expr callee, got %#v", call.Callee)
	}
}
