package eval

import (
	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
)

// execStatement executes one statement, returning the value it produced
// (for the "last statement of a block is its value" rule) or a
// control-flow signal / exception as error.
func (e *Evaluator) execStatement(env *scope.Scope, stmt ast.Statement) (object.Object, error) {
	switch n := stmt.(type) {
	case *ast.ExpressionStmt:
		return e.Eval(n.Expr, env)
	case *ast.LetStmt:
		return nil, e.execLetStmt(env, n)
	case *ast.IfStmt:
		return e.execIfStmt(env, n)
	case *ast.WhileStmt:
		return nil, e.execWhileStmt(env, n)
	case *ast.ForInStmt:
		return nil, e.execForInStmt(env, n)
	case *ast.ForRangeStmt:
		return nil, e.execForRangeStmt(env, n)
	case *ast.BreakStmt:
		return nil, breakSignal{}
	case *ast.ContinueStmt:
		return nil, continueSignal{}
	case *ast.ReturnStmt:
		if n.Value == nil {
			return nil, &returnSignal{Value: object.NilValue}
		}
		v, err := e.Eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		return nil, &returnSignal{Value: v}
	case *ast.RaiseStmt:
		return nil, e.execRaiseStmt(env, n)
	case *ast.TryStmt:
		return e.execTryStmt(env, n)
	case *ast.WithStmt:
		return nil, e.execWithStmt(env, n)
	case *ast.UseStmt:
		return nil, e.execUseStmt(env, n)
	case *ast.TypeDecl:
		return nil, e.execTypeDecl(env, n)
	case *ast.TraitDecl:
		return nil, e.execTraitDecl(env, n)
	case *ast.FunDecl:
		fn := &object.UserFun{Name: n.Fn.Name, Params: n.Fn.Params, Body: n.Fn.Body, Closure: env, Doc: n.Fn.Doc}
		if err := e.declareName(env, n.Fn.Name, fn, false); err != nil {
			return nil, err
		}
		return nil, nil
	case *ast.DelStmt:
		return nil, e.execDelStmt(env, n)
	case *ast.MatchStmt:
		return e.execMatchStmt(env, n)
	case *ast.BlockStmt:
		return e.execBlock(env, n)
	}
	return nil, e.newExcf("RuntimeErr", "cannot execute statement of type %T", stmt)
}

// execBlock runs every statement of block in env (the caller is responsible
// for having pushed a frame, per spec.md §4.3's per-block-scope rule),
// returning the value of the final expression statement.
func (e *Evaluator) execBlock(env *scope.Scope, block *ast.BlockStmt) (object.Object, error) {
	var result object.Object = object.NilValue
	for _, stmt := range block.Statements {
		v, err := e.execStatement(env, stmt)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result = v
		} else {
			result = object.NilValue
		}
	}
	return result, nil
}

func (e *Evaluator) execLetStmt(env *scope.Scope, n *ast.LetStmt) error {
	if len(n.Values) == 1 && len(n.Names) > 1 {
		v, err := e.Eval(n.Values[0], env)
		if err != nil {
			return err
		}
		arr, ok := v.(*object.Array)
		if !ok || len(arr.Elements) != len(n.Names) {
			return e.newExcf("ValueErr", "cannot destructure %d names from %s", len(n.Names), v.Kind())
		}
		for i, name := range n.Names {
			if err := e.declareName(env, name, arr.Elements[i], n.Const); err != nil {
				return err
			}
		}
		return nil
	}
	for i, name := range n.Names {
		var v object.Object = object.NilValue
		if i < len(n.Values) {
			val, err := e.Eval(n.Values[i], env)
			if err != nil {
				return err
			}
			v = val
		}
		if err := e.declareName(env, name, v, n.Const); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execIfStmt(env *scope.Scope, n *ast.IfStmt) (object.Object, error) {
	cond, err := e.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if cond.IsTruthy() {
		return e.execBlock(env.Push(), n.Then)
	}
	for _, elif := range n.Elif {
		c, err := e.Eval(elif.Cond, env)
		if err != nil {
			return nil, err
		}
		if c.IsTruthy() {
			return e.execBlock(env.Push(), elif.Body)
		}
	}
	if n.Else != nil {
		return e.execBlock(env.Push(), n.Else)
	}
	return object.NilValue, nil
}

func (e *Evaluator) execWhileStmt(env *scope.Scope, n *ast.WhileStmt) error {
	for {
		cond, err := e.Eval(n.Cond, env)
		if err != nil {
			return err
		}
		if !cond.IsTruthy() {
			return nil
		}
		_, err = e.execBlock(env.Push(), n.Body)
		if err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

func (e *Evaluator) execForInStmt(env *scope.Scope, n *ast.ForInStmt) error {
	iterable, err := e.Eval(n.Iterable, env)
	if err != nil {
		return err
	}

	runBody := func(bind func(frame *scope.Scope)) (bool, error) {
		frame := env.Push()
		bind(frame)
		_, err := e.execBlock(frame, n.Body)
		if err != nil {
			if _, ok := err.(breakSignal); ok {
				return true, nil
			}
			if _, ok := err.(continueSignal); ok {
				return false, nil
			}
			return false, err
		}
		return false, nil
	}

	if n.KeyName != "" {
		d, ok := iterable.(*object.Dict)
		if !ok {
			return e.newExcf("TypeErr", "for k, v in x requires a Dict, got %s", iterable.Kind())
		}
		for _, pair := range d.Pairs() {
			stop, err := runBody(func(frame *scope.Scope) {
				frame.Declare(n.KeyName, pair.Key, false)
				frame.Declare(n.ValueName, pair.Value, false)
			})
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
		return nil
	}

	values, err := e.iterableValues(iterable)
	if err != nil {
		return err
	}
	for _, v := range values {
		stop, err := runBody(func(frame *scope.Scope) {
			frame.Declare(n.ValueName, v, false)
		})
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) iterableValues(v object.Object) ([]object.Object, error) {
	switch coll := v.(type) {
	case *object.Array:
		return coll.Elements, nil
	case *object.SetObj:
		return coll.Members(), nil
	case *object.Range:
		return coll.Values(), nil
	case *object.Str:
		runes := []rune(coll.Value)
		out := make([]object.Object, len(runes))
		for i, r := range runes {
			out[i] = object.NewStr(string(r))
		}
		return out, nil
	}
	return nil, e.newExcf("TypeErr", "%s is not iterable", v.Kind())
}

func (e *Evaluator) execForRangeStmt(env *scope.Scope, n *ast.ForRangeStmt) error {
	start, err := e.Eval(n.Start, env)
	if err != nil {
		return err
	}
	end, err := e.Eval(n.End, env)
	if err != nil {
		return err
	}
	step := int64(1)
	if n.Step != nil {
		sv, err := e.Eval(n.Step, env)
		if err != nil {
			return err
		}
		si, ok := asInt(sv)
		if !ok {
			return e.newExc("TypeErr", "for-range step must be an Int")
		}
		step = si
	}
	startI, ok1 := asInt(start)
	endI, ok2 := asInt(end)
	if !ok1 || !ok2 {
		return e.newExc("TypeErr", "for-range bounds must be Int")
	}
	if step == 0 {
		return e.newExc("ValueErr", "for-range step cannot be 0")
	}

	cond := func(i int64) bool {
		if step > 0 {
			if n.Inclusive {
				return i <= endI
			}
			return i < endI
		}
		if n.Inclusive {
			return i >= endI
		}
		return i > endI
	}

	for i := startI; cond(i); i += step {
		frame := env.Push()
		frame.Declare(n.Name, object.NewInt(i), false)
		_, err := e.execBlock(frame, n.Body)
		if err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func (e *Evaluator) execRaiseStmt(env *scope.Scope, n *ast.RaiseStmt) error {
	v, err := e.Eval(n.Value, env)
	if err != nil {
		return err
	}
	var exc *object.Exception
	switch val := v.(type) {
	case *object.Exception:
		exc = val
	case *object.Str:
		exc = object.NewException("RuntimeErr", val.Value)
	default:
		exc = object.NewException("RuntimeErr", val.Display())
	}
	if len(exc.Stack) == 0 {
		exc.Stack = append([]object.StackEntry(nil), e.callStack...)
	}
	if n.Cause != nil {
		cv, err := e.Eval(n.Cause, env)
		if err != nil {
			return err
		}
		if causeExc, ok := cv.(*object.Exception); ok {
			exc.Cause = causeExc
		}
	}
	return exc
}

func (e *Evaluator) execDelStmt(env *scope.Scope, n *ast.DelStmt) error {
	err := env.Delete(n.Name)
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *scope.ErrConstAssign:
		return e.newExcf("NameErr", "cannot delete const '%s'", n.Name)
	default:
		return e.newExcf("NameErr", "undefined name '%s'", n.Name)
	}
}

func (e *Evaluator) execTypeDecl(env *scope.Scope, n *ast.TypeDecl) error {
	t := object.NewType(n.Name)
	t.DefiningScope = env
	for _, f := range n.Fields {
		t.Fields = append(t.Fields, object.FieldSpec{Name: f.Name, TypeName: f.TypeName, Default: f.Default, Pub: f.Pub})
	}
	for _, m := range n.Methods {
		fn := &object.UserFun{Name: m.Fn.Name, Params: m.Fn.Params, Body: m.Fn.Body, Closure: env, Doc: m.Fn.Doc, IsStatic: m.IsStatic}
		if m.IsStatic {
			t.Statics[m.Fn.Name] = fn
		} else {
			t.Methods[m.Fn.Name] = fn
		}
	}
	for _, traitName := range n.Traits {
		tv, ok := env.Get(traitName)
		if !ok {
			return e.newExcf("NameErr", "undefined trait '%s'", traitName)
		}
		trait, ok := tv.(*object.Trait)
		if !ok {
			return e.newExcf("TypeErr", "'%s' is not a trait", traitName)
		}
		for _, req := range trait.Required {
			if _, ok := t.Methods[req]; !ok {
				return e.newExcf("TypeErr", "type '%s' does not implement required method '%s' of trait '%s'", n.Name, req, traitName)
			}
		}
		t.Traits = append(t.Traits, trait)
	}
	return e.declareName(env, n.Name, t, false)
}

func (e *Evaluator) execTraitDecl(env *scope.Scope, n *ast.TraitDecl) error {
	return e.declareName(env, n.Name, &object.Trait{Name: n.Name, Required: n.Required}, false)
}
