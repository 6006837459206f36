package eval

import (
	"math"
	"math/big"

	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
)

// execMatchStmt implements spec.md §4.4.9/§8.4: the subject is evaluated
// exactly once, arms are tried in declaration order, and the first matching
// arm's body runs.
func (e *Evaluator) execMatchStmt(env *scope.Scope, n *ast.MatchStmt) (object.Object, error) {
	subject, err := e.Eval(n.Subject, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		matched, err := e.matchArm(subject, arm, env)
		if err != nil {
			return nil, err
		}
		if matched {
			return e.execBlock(env.Push(), arm.Body)
		}
	}
	return object.NilValue, nil
}

func (e *Evaluator) matchArm(subject object.Object, arm ast.MatchArm, env *scope.Scope) (bool, error) {
	if arm.IsElse {
		return true, nil
	}
	if arm.Range != nil {
		return e.matchRange(subject, arm.Range, env)
	}
	for _, v := range arm.Values {
		val, err := e.Eval(v, env)
		if err != nil {
			return false, err
		}
		if e.valuesEqual(subject, val) {
			return true, nil
		}
	}
	return false, nil
}

func isNumericKind(v object.Object) bool {
	switch v.(type) {
	case *object.Int, *object.Float, *object.BigInt, *object.Decimal:
		return true
	}
	return false
}

// numericToFloat widens any numeric kind to float64 for range-bound
// comparison; match range patterns don't need BigInt/Decimal precision since
// the bounds themselves come from Int/Float literals in practice.
func numericToFloat(v object.Object) float64 {
	switch n := v.(type) {
	case *object.Int:
		return float64(n.Value)
	case *object.Float:
		return n.Value
	case *object.BigInt:
		f := new(big.Float).SetInt(n.Value)
		r, _ := f.Float64()
		return r
	case *object.Decimal:
		f, _ := n.Value.Float64()
		return f
	}
	return 0
}

// matchRange implements the `in LOW to/until HIGH [step S]` arm: the
// subject must be numeric, fall within the bound (inclusive for `to`,
// exclusive for `until`), and, if a step is given, land exactly on
// `LOW + k*step` for a non-negative integer k (spec.md §8.4 Scenario 6).
func (e *Evaluator) matchRange(subject object.Object, r *ast.RangeExpr, env *scope.Scope) (bool, error) {
	if !isNumericKind(subject) {
		return false, e.newExcf("TypeErr", "match range pattern requires a numeric subject, got %s", subject.Kind())
	}
	startV, err := e.Eval(r.Start, env)
	if err != nil {
		return false, err
	}
	endV, err := e.Eval(r.End, env)
	if err != nil {
		return false, err
	}
	if !isNumericKind(startV) || !isNumericKind(endV) {
		return false, e.newExc("TypeErr", "match range bounds must be numeric")
	}

	step := 1.0
	hasStep := false
	if r.Step != nil {
		stepV, err := e.Eval(r.Step, env)
		if err != nil {
			return false, err
		}
		if !isNumericKind(stepV) {
			return false, e.newExc("TypeErr", "match range step must be numeric")
		}
		step = numericToFloat(stepV)
		if step <= 0 || step != math.Trunc(step) {
			return false, e.newExc("ValueErr", "match range step must be a positive integer")
		}
		hasStep = true
	}

	x := numericToFloat(subject)
	low := numericToFloat(startV)
	high := numericToFloat(endV)

	if x < low {
		return false, nil
	}
	if r.Inclusive {
		if x > high {
			return false, nil
		}
	} else if x >= high {
		return false, nil
	}

	if hasStep {
		steps := (x - low) / step
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			return false, nil
		}
	}
	return true, nil
}
