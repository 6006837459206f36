package eval

import (
	"strings"

	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
)

// installBuiltins populates a fresh root scope with Quest's global
// functions and the `sys`/`StringIO` built-in module surfaces (SPEC_FULL.md
// §5). Every script and every loaded module evaluates against its own such
// scope (spec.md §3.4).
func (e *Evaluator) installBuiltins(s *scope.Scope) {
	s.Declare("puts", bi("puts", e.builtinPuts), false)
	s.Declare("print", bi("print", e.builtinPrint), false)
	s.Declare("str", bi("str", e.builtinStr), false)
	s.Declare("len", bi("len", e.builtinLen), false)
	s.Declare("type", bi("type", e.builtinType), false)
	s.Declare("id", bi("id", e.builtinID), false)

	s.Declare("sys", e.newSysModule(), false)
	s.Declare("StringIO", e.newStringIOModule(), false)
}

func (e *Evaluator) builtinPuts(args []object.Object, _ map[string]object.Object) (object.Object, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Display()
	}
	_, err := e.Stdout.WriteString(strings.Join(parts, " ") + "\n")
	if err != nil {
		return nil, e.newExcf("IOErr", "%s", err.Error())
	}
	return object.NilValue, nil
}

func (e *Evaluator) builtinPrint(args []object.Object, _ map[string]object.Object) (object.Object, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Display()
	}
	_, err := e.Stdout.WriteString(strings.Join(parts, " "))
	if err != nil {
		return nil, e.newExcf("IOErr", "%s", err.Error())
	}
	return object.NilValue, nil
}

func (e *Evaluator) builtinStr(args []object.Object, _ map[string]object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.NewStr(""), nil
	}
	return object.NewStr(args[0].Display()), nil
}

func (e *Evaluator) builtinLen(args []object.Object, _ map[string]object.Object) (object.Object, error) {
	if len(args) == 0 {
		return nil, e.newExc("ArgErr", "len() requires one argument")
	}
	switch v := args[0].(type) {
	case *object.Array:
		return object.NewInt(int64(len(v.Elements))), nil
	case *object.Str:
		return object.NewInt(int64(len([]rune(v.Value)))), nil
	case *object.Bytes:
		return object.NewInt(int64(len(v.Value))), nil
	case *object.Dict:
		return object.NewInt(int64(v.Len())), nil
	case *object.SetObj:
		return object.NewInt(int64(v.Len())), nil
	}
	return nil, e.newExcf("TypeErr", "%s has no len()", args[0].Kind())
}

func (e *Evaluator) builtinType(args []object.Object, _ map[string]object.Object) (object.Object, error) {
	if len(args) == 0 {
		return nil, e.newExc("ArgErr", "type() requires one argument")
	}
	if s, ok := args[0].(*object.Struct); ok {
		return object.NewStr(s.TypeOf.Name), nil
	}
	return object.NewStr(args[0].Kind().String()), nil
}

func (e *Evaluator) builtinID(args []object.Object, _ map[string]object.Object) (object.Object, error) {
	if len(args) == 0 {
		return nil, e.newExc("ArgErr", "id() requires one argument")
	}
	ident, ok := args[0].(object.Identified)
	if !ok {
		return nil, e.newExcf("TypeErr", "%s has no stable identity", args[0].Kind())
	}
	return object.NewInt(int64(ident.ID())), nil
}

// newSysModule builds the `sys` surface: sys.exit, sys.redirect_stream,
// sys.get_call_depth, sys.get_depth_limits (SPEC_FULL.md §5).
func (e *Evaluator) newSysModule() *object.Module {
	mod := object.NewModule("sys", "sys")
	mod.Bindings["exit"] = bi("exit", func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
		code := 0
		if len(args) > 0 {
			if i, ok := asInt(args[0]); ok {
				code = int(i)
			}
		}
		e.exitCode = code
		e.exitCalled = true
		return nil, &exitSignal{Code: code}
	})
	mod.Bindings["redirect_stream"] = bi("redirect_stream", func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
		from, ok := arg(args, 0).(*object.Str)
		if !ok {
			return nil, e.newExc("TypeErr", "redirect_stream requires a Str stream name")
		}
		target, ok := arg(args, 1).(object.OutputTarget)
		if !ok {
			return nil, e.newExc("TypeErr", "redirect_stream requires an OutputTarget destination")
		}
		switch from.Value {
		case "stdout":
			prev := e.Stdout
			e.Stdout = target
			return &object.RedirectGuard{Previous: prev, Restore: func(t object.OutputTarget) { e.Stdout = t }}, nil
		case "stderr":
			prev := e.Stderr
			e.Stderr = target
			return &object.RedirectGuard{Previous: prev, Restore: func(t object.OutputTarget) { e.Stderr = t }}, nil
		}
		return nil, e.newExcf("ValueErr", "unknown stream '%s'", from.Value)
	})
	mod.Bindings["get_call_depth"] = bi("get_call_depth", func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
		return object.NewInt(int64(len(e.callStack))), nil
	})
	mod.Bindings["get_depth_limits"] = bi("get_depth_limits", func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
		d := object.NewDict()
		d.Set(object.NewStr("max"), object.NewInt(int64(e.MaxCallDepth)))
		d.Set(object.NewStr("current"), object.NewInt(int64(len(e.callStack))))
		return d, nil
	})
	return mod
}

func (e *Evaluator) newStringIOModule() *object.Module {
	mod := object.NewModule("StringIO", "StringIO")
	mod.Bindings["new"] = bi("new", func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
		return object.NewStringIO(), nil
	})
	return mod
}
