package eval

import (
	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
	"github.com/kristofer/quest/pkg/token"
)

// evaluatedArg is one call-site argument after splats have been expanded.
type evaluatedArg struct {
	name  string // empty for positional
	value object.Object
}

func (e *Evaluator) evalArgs(args []ast.Arg, env *scope.Scope) ([]evaluatedArg, error) {
	var out []evaluatedArg
	for _, a := range args {
		switch {
		case a.SplatArray:
			v, err := e.Eval(a.Value, env)
			if err != nil {
				return nil, err
			}
			arr, ok := v.(*object.Array)
			if !ok {
				return nil, e.newExcf("TypeErr", "'*' splat requires an Array, got %s", v.Kind())
			}
			for _, el := range arr.Elements {
				out = append(out, evaluatedArg{value: el})
			}
		case a.SplatDict:
			v, err := e.Eval(a.Value, env)
			if err != nil {
				return nil, err
			}
			d, ok := v.(*object.Dict)
			if !ok {
				return nil, e.newExcf("TypeErr", "'**' splat requires a Dict, got %s", v.Kind())
			}
			for _, p := range d.Pairs() {
				key, ok := p.Key.(*object.Str)
				if !ok {
					return nil, e.newExc("TypeErr", "'**' splat dict keys must be Str")
				}
				out = append(out, evaluatedArg{name: key.Value, value: p.Value})
			}
		default:
			v, err := e.Eval(a.Value, env)
			if err != nil {
				return nil, err
			}
			out = append(out, evaluatedArg{name: a.Name, value: v})
		}
	}
	return out, nil
}

// bindParams implements the argument-binding procedure of spec.md §4.4.3.
func (e *Evaluator) bindParams(params []ast.Param, args []evaluatedArg, defaultsEnv *scope.Scope) (map[string]object.Object, error) {
	bound := make(map[string]object.Object)
	boundSet := make(map[string]bool)

	var variadicName, kwargsName string
	for _, p := range params {
		if p.Variadic {
			variadicName = p.Name
		}
		if p.Kwargs {
			kwargsName = p.Name
		}
	}

	positional := make([]object.Object, 0, len(args))
	named := make(map[string]object.Object)
	for _, a := range args {
		if a.name == "" {
			positional = append(positional, a.value)
		} else {
			if _, dup := named[a.name]; dup {
				return nil, e.newExcf("ArgErr", "duplicate binding for '%s'", a.name)
			}
			named[a.name] = a.value
		}
	}

	nonVariadic := make([]ast.Param, 0, len(params))
	for _, p := range params {
		if !p.Variadic && !p.Kwargs {
			nonVariadic = append(nonVariadic, p)
		}
	}

	pi := 0
	for _, p := range nonVariadic {
		if pi < len(positional) {
			bound[p.Name] = positional[pi]
			boundSet[p.Name] = true
			pi++
		}
	}
	if pi < len(positional) {
		if variadicName == "" {
			return nil, e.newExcf("ArgErr", "too many positional arguments")
		}
		rest := make([]object.Object, len(positional)-pi)
		copy(rest, positional[pi:])
		bound[variadicName] = object.NewArray(rest)
		boundSet[variadicName] = true
	} else if variadicName != "" && !boundSet[variadicName] {
		bound[variadicName] = object.NewArray(nil)
		boundSet[variadicName] = true
	}

	kwargsDict := object.NewDict()
	for name, v := range named {
		isParam := false
		for _, p := range nonVariadic {
			if p.Name == name {
				isParam = true
				if boundSet[name] {
					return nil, e.newExcf("ArgErr", "duplicate binding for '%s'", name)
				}
				bound[name] = v
				boundSet[name] = true
				break
			}
		}
		if !isParam {
			if kwargsName == "" {
				return nil, e.newExcf("ArgErr", "unknown keyword argument '%s'", name)
			}
			_ = kwargsDict.Set(object.NewStr(name), v)
		}
	}
	if kwargsName != "" {
		bound[kwargsName] = kwargsDict
		boundSet[kwargsName] = true
	}

	for _, p := range nonVariadic {
		if boundSet[p.Name] {
			continue
		}
		if p.Default != nil {
			v, err := e.Eval(p.Default, defaultsEnv)
			if err != nil {
				return nil, err
			}
			bound[p.Name] = v
			boundSet[p.Name] = true
			continue
		}
		return nil, e.newExcf("ArgErr", "missing required argument '%s'", p.Name)
	}

	if err := e.checkParamTypes(params, bound); err != nil {
		return nil, err
	}
	return bound, nil
}

func (e *Evaluator) checkParamTypes(params []ast.Param, bound map[string]object.Object) error {
	for _, p := range params {
		if p.TypeName == "" {
			continue
		}
		v, ok := bound[p.Name]
		if !ok {
			continue
		}
		if !kindMatches(v, p.TypeName) {
			return e.newExcf("TypeErr", "argument '%s' expected %s, got %s", p.Name, p.TypeName, v.Kind())
		}
	}
	return nil
}

func kindMatches(v object.Object, typeName string) bool {
	if s, ok := v.(*object.Struct); ok {
		return s.TypeOf.Name == typeName || s.Does(typeName)
	}
	return v.Kind().String() == typeName
}

func (e *Evaluator) newCallScope(fn *object.UserFun) *scope.Scope {
	var base *scope.Scope
	if fn.ModuleBinding != nil {
		base = scope.New()
		for name, v := range fn.ModuleBinding.Bindings {
			base.Declare(name, v, false)
		}
	} else if cs, ok := fn.Closure.(*scope.Scope); ok && cs != nil {
		base = cs
	} else {
		base = scope.New()
	}
	return base.Push()
}

// callUserFun executes fn with the given already-evaluated arguments,
// implementing spec.md §4.4.4 (new scope, fresh frame, stack-frame push,
// body evaluation, pop on every exit path).
func (e *Evaluator) callUserFun(fn *object.UserFun, self object.Object, args []evaluatedArg, pos func() (int, int)) (object.Object, error) {
	callScope := e.newCallScope(fn)

	// An instance method's leading `self` parameter is supplied by the
	// receiver, not by the caller's argument list (spec.md §3.5's method
	// syntax writes `self` as an explicit first parameter).
	params := fn.Params
	if self != nil && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}

	bound, err := e.bindParams(params, args, callScope.Parent)
	if err != nil {
		return nil, err
	}
	for name, v := range bound {
		callScope.Declare(name, v, false)
	}
	if self != nil {
		callScope.Declare("self", self, false)
	}

	line, col := 0, 0
	if pos != nil {
		line, col = pos()
	}
	name := fn.Name
	if name == "" {
		name = "<lambda>"
	}
	if err := e.pushFrame(name, token.Position{Line: line, Col: col}); err != nil {
		return nil, err
	}
	defer e.popFrame()

	result, err := e.execBlock(callScope, fn.Body)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.Value, nil
		}
		return nil, err
	}
	return result, nil
}

// applyCallable invokes any callable Object with already-evaluated
// arguments.
func (e *Evaluator) applyCallable(callee object.Object, args []evaluatedArg, line, col int) (object.Object, error) {
	switch c := callee.(type) {
	case *object.Builtin:
		posArgs, kwargs := splitArgs(args)
		return c.Fn(posArgs, kwargs)
	case *object.UserFun:
		return e.callUserFun(c, nil, args, func() (int, int) { return line, col })
	case *object.BoundMethod:
		return e.callUserFun(c.Method, c.Receiver, args, func() (int, int) { return line, col })
	case *object.Type:
		return e.constructStruct(c, args)
	}
	return nil, e.newExcf("TypeErr", "%s is not callable", callee.Kind())
}

// constructStruct builds a Struct from a Type, binding its declared fields
// from the call's positional and named arguments in field-declaration
// order (spec.md §3.5's `Person(name: "Ada", age: 30)` construction form).
// A field left unbound falls back to its declared default expression,
// evaluated in the type's defining scope; an unbound field with no default
// is a construction error.
func (e *Evaluator) constructStruct(t *object.Type, args []evaluatedArg) (object.Object, error) {
	positional := make([]object.Object, 0, len(args))
	named := make(map[string]object.Object)
	for _, a := range args {
		if a.name == "" {
			positional = append(positional, a.value)
		} else {
			if _, dup := named[a.name]; dup {
				return nil, e.newExcf("ArgErr", "duplicate binding for '%s'", a.name)
			}
			named[a.name] = a.value
		}
	}

	defScope, _ := t.DefiningScope.(*scope.Scope)
	if defScope == nil {
		defScope = scope.New()
	}

	s := object.NewStruct(t)
	pi := 0
	for _, f := range t.Fields {
		if v, ok := named[f.Name]; ok {
			s.Fields[f.Name] = v
			delete(named, f.Name)
			continue
		}
		if pi < len(positional) {
			s.Fields[f.Name] = positional[pi]
			pi++
			continue
		}
		if f.Default != nil {
			v, err := e.Eval(f.Default, defScope)
			if err != nil {
				return nil, err
			}
			s.Fields[f.Name] = v
			continue
		}
		return nil, e.newExcf("ArgErr", "missing required field '%s' for type '%s'", f.Name, t.Name)
	}
	if pi < len(positional) {
		return nil, e.newExcf("ArgErr", "too many positional arguments for type '%s'", t.Name)
	}
	for name := range named {
		return nil, e.newExcf("ArgErr", "type '%s' has no field '%s'", t.Name, name)
	}

	for _, f := range t.Fields {
		if f.TypeName == "" {
			continue
		}
		if !kindMatches(s.Fields[f.Name], f.TypeName) {
			return nil, e.newExcf("TypeErr", "field '%s' expected %s, got %s", f.Name, f.TypeName, s.Fields[f.Name].Kind())
		}
	}
	return s, nil
}

func splitArgs(args []evaluatedArg) ([]object.Object, map[string]object.Object) {
	pos := make([]object.Object, 0, len(args))
	kwargs := make(map[string]object.Object)
	for _, a := range args {
		if a.name == "" {
			pos = append(pos, a.value)
		} else {
			kwargs[a.name] = a.value
		}
	}
	return pos, kwargs
}

func (e *Evaluator) evalCallExpr(n *ast.CallExpr, env *scope.Scope) (object.Object, error) {
	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	pos := n.Span()

	if member, ok := n.Callee.(*ast.MemberExpr); ok {
		recv, err := e.Eval(member.Receiver, env)
		if err != nil {
			return nil, err
		}
		callee, err := e.resolveMember(recv, member.Name)
		if err != nil {
			return nil, err
		}
		return e.applyCallable(callee, args, pos.Line, pos.Col)
	}

	callee, err := e.Eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	return e.applyCallable(callee, args, pos.Line, pos.Col)
}

// resolveMember implements spec.md §4.4.5's dispatch order for `obj.name`,
// stopping at the first rule that applies. A bare (uncalled) reference to a
// built-in method is wrapped in a Builtin closure over the receiver so that
// aliasing (`let f = arr.push`) yields a genuinely callable value, matching
// the aliasing guarantee spec.md §8.1 requires for module functions and
// generalized here to every dispatch step.
func (e *Evaluator) resolveMember(recv object.Object, name string) (object.Object, error) {
	switch r := recv.(type) {
	case *object.Struct:
		if m, ok := r.TypeOf.Methods[name]; ok {
			return &object.BoundMethod{Receiver: r, Method: m}, nil
		}
		if v, ok := r.Fields[name]; ok {
			return v, nil
		}
		if fn, ok := e.structBuiltinMethod(r, name); ok {
			return fn, nil
		}
		return nil, e.attrErr(r.TypeOf.Name, name)
	case *object.Type:
		if m, ok := r.Statics[name]; ok {
			return m, nil
		}
		return nil, e.attrErr("Type", name)
	case *object.Module:
		if v, ok := r.Get(name); ok {
			return v, nil
		}
		return nil, e.attrErr("Module", name)
	case *object.Exception:
		if fn, ok := e.exceptionBuiltinMethod(r, name); ok {
			return fn, nil
		}
		return nil, e.attrErr("Exception", name)
	}
	if fn, ok := e.builtinMethodFor(recv, name); ok {
		return fn, nil
	}
	return nil, e.attrErr(recv.Kind().String(), name)
}
