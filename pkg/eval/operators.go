package eval

import (
	"math/big"
	"strings"

	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
	"github.com/shopspring/decimal"
)

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, env *scope.Scope) (object.Object, error) {
	v, err := e.Eval(n.Expr, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch x := v.(type) {
		case *object.Int:
			if x.Value == -9223372036854775808 {
				return nil, e.newExc("OverflowErr", "integer negation overflows 64 bits")
			}
			return object.NewInt(-x.Value), nil
		case *object.Float:
			return object.NewFloat(-x.Value), nil
		case *object.BigInt:
			return object.NewBigInt(new(big.Int).Neg(x.Value)), nil
		case *object.Decimal:
			return object.NewDecimal(x.Value.Neg()), nil
		}
		return nil, e.newExcf("TypeErr", "unary '-' not supported for %s", v.Kind())
	case "~":
		i, ok := v.(*object.Int)
		if !ok {
			return nil, e.newExcf("TypeErr", "bitwise '~' requires an Int, got %s", v.Kind())
		}
		return object.NewInt(^i.Value), nil
	case "not":
		return object.NativeBool(!v.IsTruthy()), nil
	}
	return nil, e.newExcf("RuntimeErr", "unknown unary operator %q", n.Op)
}

func (e *Evaluator) evalLogical(n *ast.LogicalExpr, env *scope.Scope) (object.Object, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "and":
		if !left.IsTruthy() {
			return left, nil
		}
		return e.Eval(n.Right, env)
	case "or":
		if left.IsTruthy() {
			return left, nil
		}
		return e.Eval(n.Right, env)
	}
	return nil, e.newExcf("RuntimeErr", "unknown logical operator %q", n.Op)
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr, env *scope.Scope) (object.Object, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "+":
		return e.evalAdd(left, right)
	case "-":
		return e.evalArith(left, right, "-")
	case "*":
		return e.evalArith(left, right, "*")
	case "/":
		return e.evalDivide(left, right)
	case "%":
		return e.evalModulo(left, right)
	case "..":
		return object.NewStr(left.Display() + right.Display()), nil
	case "==":
		return object.NativeBool(e.valuesEqual(left, right)), nil
	case "!=":
		return object.NativeBool(!e.valuesEqual(left, right)), nil
	case "<", ">", "<=", ">=":
		return e.evalCompare(left, right, n.Op)
	case "&":
		return e.evalBitwise(left, right, "&")
	case "|":
		return e.evalBitwise(left, right, "|")
	case "^":
		return e.evalBitwise(left, right, "^")
	case "<<":
		return e.evalShift(left, right, "<<")
	case ">>":
		return e.evalShift(left, right, ">>")
	case "in":
		return e.evalIn(left, right)
	}
	return nil, e.newExcf("RuntimeErr", "unknown binary operator %q", n.Op)
}

// numRank orders numeric kinds for promotion: Int < Float < Decimal < BigInt
// (spec.md §4.2 "+ on numerics promotes Int→Float→Decimal→BigInt").
func numRank(v object.Object) int {
	switch v.(type) {
	case *object.Int:
		return 0
	case *object.Float:
		return 1
	case *object.Decimal:
		return 2
	case *object.BigInt:
		return 3
	}
	return -1
}

func toFloat(v object.Object) float64 {
	switch n := v.(type) {
	case *object.Int:
		return float64(n.Value)
	case *object.Float:
		return n.Value
	}
	return 0
}

func toDecimal(v object.Object) decimal.Decimal {
	switch n := v.(type) {
	case *object.Int:
		return decimal.NewFromInt(n.Value)
	case *object.Float:
		return decimal.NewFromFloat(n.Value)
	case *object.Decimal:
		return n.Value
	}
	return decimal.Zero
}

func toBigInt(v object.Object) *big.Int {
	switch n := v.(type) {
	case *object.Int:
		return big.NewInt(n.Value)
	case *object.BigInt:
		return n.Value
	}
	return big.NewInt(0)
}

func addOverflows(a, b int64) bool {
	sum := a + b
	return ((a ^ sum) & (b ^ sum)) < 0
}

func subOverflows(a, b int64) bool {
	diff := a - b
	return ((a ^ b) & (a ^ diff)) < 0
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	p := a * b
	return p/b != a
}

func (e *Evaluator) evalAdd(left, right object.Object) (object.Object, error) {
	la, lok := left.(*object.Array)
	ra, rok := right.(*object.Array)
	if lok && rok {
		out := make([]object.Object, 0, len(la.Elements)+len(ra.Elements))
		out = append(out, la.Elements...)
		out = append(out, ra.Elements...)
		return object.NewArray(out), nil
	}
	if _, ok := left.(*object.Str); ok {
		return nil, e.newExc("TypeErr", "'+' is not defined on Str; use '..' to concatenate")
	}
	if _, ok := right.(*object.Str); ok {
		return nil, e.newExc("TypeErr", "'+' is not defined on Str; use '..' to concatenate")
	}
	return e.evalArith(left, right, "+")
}

func (e *Evaluator) evalArith(left, right object.Object, op string) (object.Object, error) {
	lr, rr := numRank(left), numRank(right)
	if lr < 0 || rr < 0 {
		return nil, e.newExcf("TypeErr", "'%s' not supported between %s and %s", op, left.Kind(), right.Kind())
	}
	rank := lr
	if rr > rank {
		rank = rr
	}
	switch rank {
	case 3: // BigInt
		a, b := toBigInt(left), toBigInt(right)
		r := new(big.Int)
		switch op {
		case "+":
			r.Add(a, b)
		case "-":
			r.Sub(a, b)
		case "*":
			r.Mul(a, b)
		}
		return object.NewBigInt(r), nil
	case 2: // Decimal
		a, b := toDecimal(left), toDecimal(right)
		switch op {
		case "+":
			return object.NewDecimal(a.Add(b)), nil
		case "-":
			return object.NewDecimal(a.Sub(b)), nil
		case "*":
			return object.NewDecimal(a.Mul(b)), nil
		}
	case 1: // Float
		a, b := toFloat(left), toFloat(right)
		switch op {
		case "+":
			return object.NewFloat(a + b), nil
		case "-":
			return object.NewFloat(a - b), nil
		case "*":
			return object.NewFloat(a * b), nil
		}
	case 0: // Int
		a, b := left.(*object.Int).Value, right.(*object.Int).Value
		switch op {
		case "+":
			if addOverflows(a, b) {
				return nil, e.newExc("OverflowErr", "integer addition overflows 64 bits")
			}
			return object.NewInt(a + b), nil
		case "-":
			if subOverflows(a, b) {
				return nil, e.newExc("OverflowErr", "integer subtraction overflows 64 bits")
			}
			return object.NewInt(a - b), nil
		case "*":
			if mulOverflows(a, b) {
				return nil, e.newExc("OverflowErr", "integer multiplication overflows 64 bits")
			}
			return object.NewInt(a * b), nil
		}
	}
	return nil, e.newExcf("RuntimeErr", "unhandled arithmetic operator %q", op)
}

// evalDivide implements `/`: exact Int/Int division stays Int, inexact
// promotes to Float (spec.md §9 Open Question 2, decided in DESIGN.md).
func (e *Evaluator) evalDivide(left, right object.Object) (object.Object, error) {
	lr, rr := numRank(left), numRank(right)
	if lr < 0 || rr < 0 {
		return nil, e.newExcf("TypeErr", "'/' not supported between %s and %s", left.Kind(), right.Kind())
	}
	rank := lr
	if rr > rank {
		rank = rr
	}
	switch rank {
	case 3:
		a, b := toBigInt(left), toBigInt(right)
		if b.Sign() == 0 {
			return nil, e.newExc("ValueErr", "division by zero")
		}
		q, m := new(big.Int), new(big.Int)
		q.QuoRem(a, b, m)
		if m.Sign() == 0 {
			return object.NewBigInt(q), nil
		}
		qf := new(big.Float).Quo(new(big.Float).SetInt(a), new(big.Float).SetInt(b))
		f, _ := qf.Float64()
		return object.NewFloat(f), nil
	case 2:
		a, b := toDecimal(left), toDecimal(right)
		if b.IsZero() {
			return nil, e.newExc("ValueErr", "division by zero")
		}
		return object.NewDecimal(a.Div(b)), nil
	case 1:
		a, b := toFloat(left), toFloat(right)
		if b == 0 {
			return nil, e.newExc("ValueErr", "division by zero")
		}
		return object.NewFloat(a / b), nil
	case 0:
		a, b := left.(*object.Int).Value, right.(*object.Int).Value
		if b == 0 {
			return nil, e.newExc("ValueErr", "division by zero")
		}
		if a%b == 0 {
			if a == -9223372036854775808 && b == -1 {
				return nil, e.newExc("OverflowErr", "integer division overflows 64 bits")
			}
			return object.NewInt(a / b), nil
		}
		return object.NewFloat(float64(a) / float64(b)), nil
	}
	return nil, e.newExc("RuntimeErr", "unhandled division")
}

// evalModulo implements `%`, following the sign of the dividend (spec.md
// §4.2).
func (e *Evaluator) evalModulo(left, right object.Object) (object.Object, error) {
	li, lok := left.(*object.Int)
	ri, rok := right.(*object.Int)
	if lok && rok {
		if ri.Value == 0 {
			return nil, e.newExc("ValueErr", "modulo by zero")
		}
		return object.NewInt(li.Value % ri.Value), nil
	}
	_, lok2 := left.(*object.Float)
	_, rok2 := right.(*object.Float)
	if (lok || lok2) && (rok || rok2) {
		a, b := toFloat(left), toFloat(right)
		if b == 0 {
			return nil, e.newExc("ValueErr", "modulo by zero")
		}
		m := a - b*float64(int64(a/b))
		return object.NewFloat(m), nil
	}
	return nil, e.newExcf("TypeErr", "'%%' not supported between %s and %s", left.Kind(), right.Kind())
}

func (e *Evaluator) evalBitwise(left, right object.Object, op string) (object.Object, error) {
	li, lok := left.(*object.Int)
	ri, rok := right.(*object.Int)
	if !lok || !rok {
		return nil, e.newExcf("TypeErr", "bitwise '%s' requires two Ints, got %s and %s", op, left.Kind(), right.Kind())
	}
	switch op {
	case "&":
		return object.NewInt(li.Value & ri.Value), nil
	case "|":
		return object.NewInt(li.Value | ri.Value), nil
	case "^":
		return object.NewInt(li.Value ^ ri.Value), nil
	}
	return nil, e.newExc("RuntimeErr", "unhandled bitwise operator")
}

func (e *Evaluator) evalShift(left, right object.Object, op string) (object.Object, error) {
	li, lok := left.(*object.Int)
	ri, rok := right.(*object.Int)
	if !lok || !rok {
		return nil, e.newExcf("TypeErr", "shift '%s' requires two Ints, got %s and %s", op, left.Kind(), right.Kind())
	}
	if ri.Value < 0 {
		return nil, e.newExc("ValueErr", "shift amount cannot be negative")
	}
	if op == "<<" {
		return object.NewInt(li.Value << uint(ri.Value)), nil
	}
	return object.NewInt(li.Value >> uint(ri.Value)), nil
}

func (e *Evaluator) evalCompare(left, right object.Object, op string) (object.Object, error) {
	var cmp int
	switch {
	case numRank(left) >= 0 && numRank(right) >= 0:
		switch {
		case numRank(left) == 3 || numRank(right) == 3:
			cmp = toBigInt(left).Cmp(toBigInt(right))
		case numRank(left) == 2 || numRank(right) == 2:
			cmp = toDecimal(left).Cmp(toDecimal(right))
		default:
			a, b := toFloat(left), toFloat(right)
			switch {
			case a < b:
				cmp = -1
			case a > b:
				cmp = 1
			default:
				cmp = 0
			}
		}
	case isStr(left) && isStr(right):
		a, b := left.(*object.Str).Value, right.(*object.Str).Value
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		default:
			cmp = 0
		}
	default:
		return nil, e.newExcf("TypeErr", "'%s' not supported between %s and %s", op, left.Kind(), right.Kind())
	}
	switch op {
	case "<":
		return object.NativeBool(cmp < 0), nil
	case ">":
		return object.NativeBool(cmp > 0), nil
	case "<=":
		return object.NativeBool(cmp <= 0), nil
	case ">=":
		return object.NativeBool(cmp >= 0), nil
	}
	return nil, e.newExc("RuntimeErr", "unhandled comparison operator")
}

func isStr(v object.Object) bool { _, ok := v.(*object.Str); return ok }

func (e *Evaluator) evalIn(left, right object.Object) (object.Object, error) {
	switch coll := right.(type) {
	case *object.Array:
		for _, el := range coll.Elements {
			if e.valuesEqual(left, el) {
				return object.True, nil
			}
		}
		return object.False, nil
	case *object.SetObj:
		return object.NativeBool(coll.Has(left)), nil
	case *object.Dict:
		_, ok := coll.Get(left)
		return object.NativeBool(ok), nil
	case *object.Str:
		sub, ok := left.(*object.Str)
		if !ok {
			return nil, e.newExc("TypeErr", "'in' on a Str requires a Str operand")
		}
		return object.NativeBool(strings.Contains(coll.Value, sub.Value)), nil
	case *object.Range:
		iv, ok := asInt(left)
		if !ok {
			return nil, e.newExc("TypeErr", "'in' on a Range requires a numeric operand")
		}
		return object.NativeBool(coll.Contains(iv)), nil
	}
	return nil, e.newExcf("TypeErr", "'in' not supported on %s", right.Kind())
}

// valuesEqual implements structural equality (spec.md §4.2 `equals`).
// Container equality recurses; cycles are not specially tracked (Go's own
// call stack will overflow the same way a naive recursive reference
// implementation would, an accepted cost given cyclic structures are
// already a documented leak in spec.md §5).
func (e *Evaluator) valuesEqual(a, b object.Object) bool {
	if eq, ok := a.(object.Equaler); ok {
		if eq.EqualsObj(b) {
			return true
		}
	}
	switch x := a.(type) {
	case *object.Array:
		y, ok := b.(*object.Array)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !e.valuesEqual(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *object.Dict:
		y, ok := b.(*object.Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, p := range x.Pairs() {
			yv, ok := y.Get(p.Key)
			if !ok || !e.valuesEqual(p.Value, yv) {
				return false
			}
		}
		return true
	case *object.SetObj:
		y, ok := b.(*object.SetObj)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, m := range x.Members() {
			if !y.Has(m) {
				return false
			}
		}
		return true
	case *object.Struct:
		y, ok := b.(*object.Struct)
		if !ok || x.TypeOf != y.TypeOf {
			return false
		}
		if x == y {
			return true
		}
		for k, v := range x.Fields {
			yv, ok := y.Fields[k]
			if !ok || !e.valuesEqual(v, yv) {
				return false
			}
		}
		return true
	}
	return a == b
}
