package eval

import (
	"sort"
	"strings"

	"github.com/kristofer/quest/pkg/object"
)

func bi(name string, fn object.BuiltinFunc) *object.Builtin { return &object.Builtin{Name: name, Fn: fn} }

func arg(args []object.Object, i int) object.Object {
	if i < len(args) {
		return args[i]
	}
	return object.NilValue
}

// builtinMethodFor dispatches the built-in method surface of spec.md
// §4.4.6-4.4.7 for every non-struct value kind. Methods that add, reorder
// or clear elements return the receiver (DESIGN.md Open Question Decision)
// to support chaining; array pop/shift/remove/remove_at return the removed
// element, and dict delete and set remove return a Bool.
func (e *Evaluator) builtinMethodFor(recv object.Object, name string) (*object.Builtin, bool) {
	switch r := recv.(type) {
	case *object.Array:
		return e.arrayMethod(r, name)
	case *object.Dict:
		return e.dictMethod(r, name)
	case *object.SetObj:
		return e.setMethod(r, name)
	case *object.Str:
		return e.strMethod(r, name)
	case *object.Range:
		return e.rangeMethod(r, name)
	case *object.Int:
		return e.intMethod(r, name)
	case *object.Float:
		return e.floatMethod(r, name)
	case *object.StringIO:
		return e.stringIOMethod(r, name)
	case *object.RedirectGuard:
		return e.redirectGuardMethod(r, name)
	}
	return nil, false
}

func (e *Evaluator) callCallable(fn object.Object, args ...object.Object) (object.Object, error) {
	evArgs := make([]evaluatedArg, len(args))
	for i, a := range args {
		evArgs[i] = evaluatedArg{value: a}
	}
	return e.applyCallable(fn, evArgs, 0, 0)
}

// ---------------------------------------------------------------- Array

func (e *Evaluator) arrayMethod(a *object.Array, name string) (*object.Builtin, bool) {
	switch name {
	case "push":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			a.Elements = append(a.Elements, args...)
			return a, nil
		}), true
	case "pop":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if len(a.Elements) == 0 {
				return nil, e.newExc("IndexErr", "pop from empty array")
			}
			last := a.Elements[len(a.Elements)-1]
			a.Elements = a.Elements[:len(a.Elements)-1]
			return last, nil
		}), true
	case "shift":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if len(a.Elements) == 0 {
				return nil, e.newExc("IndexErr", "shift from empty array")
			}
			first := a.Elements[0]
			a.Elements = a.Elements[1:]
			return first, nil
		}), true
	case "unshift":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			a.Elements = append(append([]object.Object{}, args...), a.Elements...)
			return a, nil
		}), true
	case "len":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewInt(int64(len(a.Elements))), nil
		}), true
	case "sort":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			var sortErr error
			sort.SliceStable(a.Elements, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				less, err := e.evalCompare(a.Elements[i], a.Elements[j], "<")
				if err != nil {
					sortErr = err
					return false
				}
				return less.IsTruthy()
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return a, nil
		}), true
	case "sorted":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			cp := append([]object.Object{}, a.Elements...)
			newArr := object.NewArray(cp)
			var sortErr error
			sort.SliceStable(newArr.Elements, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				less, err := e.evalCompare(newArr.Elements[i], newArr.Elements[j], "<")
				if err != nil {
					sortErr = err
					return false
				}
				return less.IsTruthy()
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return newArr, nil
		}), true
	case "reverse":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			for i, j := 0, len(a.Elements)-1; i < j; i, j = i+1, j-1 {
				a.Elements[i], a.Elements[j] = a.Elements[j], a.Elements[i]
			}
			return a, nil
		}), true
	case "reversed":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			n := len(a.Elements)
			out := make([]object.Object, n)
			for i, v := range a.Elements {
				out[n-1-i] = v
			}
			return object.NewArray(out), nil
		}), true
	case "clear":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			a.Elements = nil
			return a, nil
		}), true
	case "insert":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			i, ok := asInt(arg(args, 0))
			if !ok {
				return nil, e.newExc("TypeErr", "insert index must be an Int")
			}
			pos := int(i)
			if pos < 0 || pos > len(a.Elements) {
				return nil, e.newExcf("IndexErr", "insert index %d out of range", i)
			}
			a.Elements = append(a.Elements, nil)
			copy(a.Elements[pos+1:], a.Elements[pos:])
			a.Elements[pos] = arg(args, 1)
			return a, nil
		}), true
	case "remove":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			target := arg(args, 0)
			for i, v := range a.Elements {
				if e.valuesEqual(v, target) {
					a.Elements = append(a.Elements[:i], a.Elements[i+1:]...)
					return target, nil
				}
			}
			return nil, e.newExc("ValueErr", "value not found in array")
		}), true
	case "remove_at":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			i, ok := asInt(arg(args, 0))
			if !ok {
				return nil, e.newExc("TypeErr", "remove_at index must be an Int")
			}
			pos, ok := normalizeIndex(int(i), len(a.Elements))
			if !ok {
				return nil, e.newExcf("IndexErr", "index %d out of range", i)
			}
			removed := a.Elements[pos]
			a.Elements = append(a.Elements[:pos], a.Elements[pos+1:]...)
			return removed, nil
		}), true
	case "slice":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return e.arraySlice(a, args)
		}), true
	case "concat":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			other, ok := arg(args, 0).(*object.Array)
			if !ok {
				return nil, e.newExc("TypeErr", "concat requires an Array argument")
			}
			out := append(append([]object.Object{}, a.Elements...), other.Elements...)
			return object.NewArray(out), nil
		}), true
	case "map":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			out := make([]object.Object, len(a.Elements))
			for i, v := range a.Elements {
				r, err := e.callCallable(f, v)
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return object.NewArray(out), nil
		}), true
	case "filter":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			var out []object.Object
			for _, v := range a.Elements {
				r, err := e.callCallable(f, v)
				if err != nil {
					return nil, err
				}
				if r.IsTruthy() {
					out = append(out, v)
				}
			}
			return object.NewArray(out), nil
		}), true
	case "each":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			for i, v := range a.Elements {
				if _, err := e.callCallable(f, v, object.NewInt(int64(i))); err != nil {
					return nil, err
				}
			}
			return object.NilValue, nil
		}), true
	case "reduce":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			acc := arg(args, 1)
			for _, v := range a.Elements {
				r, err := e.callCallable(f, acc, v)
				if err != nil {
					return nil, err
				}
				acc = r
			}
			return acc, nil
		}), true
	case "any":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			for _, v := range a.Elements {
				r, err := e.callCallable(f, v)
				if err != nil {
					return nil, err
				}
				if r.IsTruthy() {
					return object.True, nil
				}
			}
			return object.False, nil
		}), true
	case "all":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			for _, v := range a.Elements {
				r, err := e.callCallable(f, v)
				if err != nil {
					return nil, err
				}
				if !r.IsTruthy() {
					return object.False, nil
				}
			}
			return object.True, nil
		}), true
	case "find":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			for _, v := range a.Elements {
				r, err := e.callCallable(f, v)
				if err != nil {
					return nil, err
				}
				if r.IsTruthy() {
					return v, nil
				}
			}
			return object.NilValue, nil
		}), true
	case "find_index":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			f := arg(args, 0)
			for i, v := range a.Elements {
				r, err := e.callCallable(f, v)
				if err != nil {
					return nil, err
				}
				if r.IsTruthy() {
					return object.NewInt(int64(i)), nil
				}
			}
			return object.NewInt(-1), nil
		}), true
	case "count":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			target := arg(args, 0)
			n := int64(0)
			for _, v := range a.Elements {
				if e.valuesEqual(v, target) {
					n++
				}
			}
			return object.NewInt(n), nil
		}), true
	case "contains":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			target := arg(args, 0)
			for _, v := range a.Elements {
				if e.valuesEqual(v, target) {
					return object.True, nil
				}
			}
			return object.False, nil
		}), true
	case "index_of":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			target := arg(args, 0)
			for i, v := range a.Elements {
				if e.valuesEqual(v, target) {
					return object.NewInt(int64(i)), nil
				}
			}
			return object.NewInt(-1), nil
		}), true
	case "join":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			sep := ""
			if s, ok := arg(args, 0).(*object.Str); ok {
				sep = s.Value
			}
			parts := make([]string, len(a.Elements))
			for i, v := range a.Elements {
				parts[i] = v.Display()
			}
			return object.NewStr(strings.Join(parts, sep)), nil
		}), true
	case "last":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if len(a.Elements) == 0 {
				return nil, e.newExc("IndexErr", "last on empty array")
			}
			return a.Elements[len(a.Elements)-1], nil
		}), true
	case "first":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if len(a.Elements) == 0 {
				return nil, e.newExc("IndexErr", "first on empty array")
			}
			return a.Elements[0], nil
		}), true
	case "copy":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewArray(append([]object.Object{}, a.Elements...)), nil
		}), true
	}
	return nil, false
}

func (e *Evaluator) arraySlice(a *object.Array, args []object.Object) (object.Object, error) {
	n := len(a.Elements)
	start, end := 0, n
	if len(args) > 0 {
		s, ok := asInt(args[0])
		if !ok {
			return nil, e.newExc("TypeErr", "slice start must be an Int")
		}
		start = int(s)
	}
	if len(args) > 1 {
		s, ok := asInt(args[1])
		if !ok {
			return nil, e.newExc("TypeErr", "slice end must be an Int")
		}
		end = int(s)
	}
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end || start >= n {
		return object.NewArray(nil), nil
	}
	out := make([]object.Object, end-start)
	copy(out, a.Elements[start:end])
	return object.NewArray(out), nil
}

// ----------------------------------------------------------------- Dict

func (e *Evaluator) dictMethod(d *object.Dict, name string) (*object.Builtin, bool) {
	switch name {
	case "get":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if v, ok := d.Get(arg(args, 0)); ok {
				return v, nil
			}
			if len(args) > 1 {
				return args[1], nil
			}
			return object.NilValue, nil
		}), true
	case "set":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if err := d.Set(arg(args, 0), arg(args, 1)); err != nil {
				return nil, e.newExcf("TypeErr", "unhashable dict key of kind %s", arg(args, 0).Kind())
			}
			return d, nil
		}), true
	case "delete":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NativeBool(d.Delete(arg(args, 0))), nil
		}), true
	case "has":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			_, ok := d.Get(arg(args, 0))
			return object.NativeBool(ok), nil
		}), true
	case "len":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewInt(int64(d.Len())), nil
		}), true
	case "keys":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			pairs := d.Pairs()
			out := make([]object.Object, len(pairs))
			for i, p := range pairs {
				out[i] = p.Key
			}
			return object.NewArray(out), nil
		}), true
	case "values":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			pairs := d.Pairs()
			out := make([]object.Object, len(pairs))
			for i, p := range pairs {
				out[i] = p.Value
			}
			return object.NewArray(out), nil
		}), true
	case "clear":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			for _, p := range d.Pairs() {
				d.Delete(p.Key)
			}
			return d, nil
		}), true
	}
	return nil, false
}

// ------------------------------------------------------------------ Set

func (e *Evaluator) setMethod(s *object.SetObj, name string) (*object.Builtin, bool) {
	switch name {
	case "add":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			s.Add(arg(args, 0))
			return s, nil
		}), true
	case "remove":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NativeBool(s.Remove(arg(args, 0))), nil
		}), true
	case "has":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NativeBool(s.Has(arg(args, 0))), nil
		}), true
	case "len":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewInt(int64(s.Len())), nil
		}), true
	case "to_array":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewArray(s.Members()), nil
		}), true
	}
	return nil, false
}

// ------------------------------------------------------------------ Str

func (e *Evaluator) strMethod(s *object.Str, name string) (*object.Builtin, bool) {
	switch name {
	case "len":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewInt(int64(len([]rune(s.Value)))), nil
		}), true
	case "upper":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewStr(strings.ToUpper(s.Value)), nil
		}), true
	case "lower":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewStr(strings.ToLower(s.Value)), nil
		}), true
	case "trim":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewStr(strings.TrimSpace(s.Value)), nil
		}), true
	case "split":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			sep := ""
			if a, ok := arg(args, 0).(*object.Str); ok {
				sep = a.Value
			}
			var parts []string
			if sep == "" {
				parts = strings.Fields(s.Value)
			} else {
				parts = strings.Split(s.Value, sep)
			}
			out := make([]object.Object, len(parts))
			for i, p := range parts {
				out[i] = object.NewStr(p)
			}
			return object.NewArray(out), nil
		}), true
	case "contains":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			sub, ok := arg(args, 0).(*object.Str)
			if !ok {
				return nil, e.newExc("TypeErr", "contains requires a Str argument")
			}
			return object.NativeBool(strings.Contains(s.Value, sub.Value)), nil
		}), true
	case "replace":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			from, _ := arg(args, 0).(*object.Str)
			to, _ := arg(args, 1).(*object.Str)
			if from == nil || to == nil {
				return nil, e.newExc("TypeErr", "replace requires two Str arguments")
			}
			return object.NewStr(strings.ReplaceAll(s.Value, from.Value, to.Value)), nil
		}), true
	case "starts_with":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			p, _ := arg(args, 0).(*object.Str)
			if p == nil {
				return object.False, nil
			}
			return object.NativeBool(strings.HasPrefix(s.Value, p.Value)), nil
		}), true
	case "ends_with":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			p, _ := arg(args, 0).(*object.Str)
			if p == nil {
				return object.False, nil
			}
			return object.NativeBool(strings.HasSuffix(s.Value, p.Value)), nil
		}), true
	case "to_array":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			runes := []rune(s.Value)
			out := make([]object.Object, len(runes))
			for i, r := range runes {
				out[i] = object.NewStr(string(r))
			}
			return object.NewArray(out), nil
		}), true
	}
	return nil, false
}

// ---------------------------------------------------------------- Range

func (e *Evaluator) rangeMethod(r *object.Range, name string) (*object.Builtin, bool) {
	switch name {
	case "to_array":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewArray(r.Values()), nil
		}), true
	case "contains":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			i, ok := asInt(arg(args, 0))
			if !ok {
				return object.False, nil
			}
			return object.NativeBool(r.Contains(i)), nil
		}), true
	}
	return nil, false
}

// ----------------------------------------------------------- Int / Float

func (e *Evaluator) intMethod(i *object.Int, name string) (*object.Builtin, bool) {
	switch name {
	case "to_float":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewFloat(float64(i.Value)), nil
		}), true
	case "abs":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if i.Value < 0 {
				return object.NewInt(-i.Value), nil
			}
			return i, nil
		}), true
	}
	return nil, false
}

func (e *Evaluator) floatMethod(f *object.Float, name string) (*object.Builtin, bool) {
	switch name {
	case "to_int":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewInt(int64(f.Value)), nil
		}), true
	case "abs":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if f.Value < 0 {
				return object.NewFloat(-f.Value), nil
			}
			return f, nil
		}), true
	}
	return nil, false
}

// ------------------------------------------------------------- StringIO

func (e *Evaluator) stringIOMethod(s *object.StringIO, name string) (*object.Builtin, bool) {
	switch name {
	case "get_value":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewStr(s.String()), nil
		}), true
	case "write":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			v := arg(args, 0)
			_, err := s.WriteString(v.Display())
			if err != nil {
				return nil, e.newExcf("IOErr", "%s", err.Error())
			}
			return object.NilValue, nil
		}), true
	case "_enter":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return s, nil
		}), true
	case "_exit":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NilValue, nil
		}), true
	}
	return nil, false
}

// --------------------------------------------------------- RedirectGuard

func (e *Evaluator) redirectGuardMethod(g *object.RedirectGuard, name string) (*object.Builtin, bool) {
	switch name {
	case "restore":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			g.Exit()
			return object.NilValue, nil
		}), true
	case "is_active":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NativeBool(g.Restore != nil), nil
		}), true
	case "_enter":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return g, nil
		}), true
	case "_exit":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			g.Exit()
			return object.NilValue, nil
		}), true
	}
	return nil, false
}

// --------------------------------------------------------------- Struct

// structBuiltinMethod implements the `struct.update(...)`/`.is(Type)`/
// `.does(Trait)` surface (SPEC_FULL.md §5 supplemented features), dispatched
// the same way as other built-in collection methods (spec.md §4.4.6 style).
func (e *Evaluator) structBuiltinMethod(s *object.Struct, name string) (*object.Builtin, bool) {
	switch name {
	case "update":
		return bi(name, func(args []object.Object, kwargs map[string]object.Object) (object.Object, error) {
			out := object.NewStruct(s.TypeOf)
			for k, v := range s.Fields {
				out.Fields[k] = v
			}
			for k, v := range kwargs {
				if _, ok := out.Fields[k]; !ok {
					return nil, e.attrErr(s.TypeOf.Name, k)
				}
				out.Fields[k] = v
			}
			return out, nil
		}), true
	case "is":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			t, ok := arg(args, 0).(*object.Type)
			if !ok {
				return object.False, nil
			}
			return object.NativeBool(s.Is(t.Name)), nil
		}), true
	case "does":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			t, ok := arg(args, 0).(*object.Trait)
			if !ok {
				return object.False, nil
			}
			return object.NativeBool(s.Does(t.Name)), nil
		}), true
	}
	return nil, false
}

// exceptionBuiltinMethod implements `.message()`/`.kind()`/`.stack()`/
// `.cause()` (spec.md §4.5.2, SPEC_FULL.md §5 cause() accessor).
func (e *Evaluator) exceptionBuiltinMethod(exc *object.Exception, name string) (*object.Builtin, bool) {
	switch name {
	case "message":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewStr(exc.Message), nil
		}), true
	case "kind":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewStr(exc.ExcKind), nil
		}), true
	case "stack":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			out := make([]object.Object, len(exc.Stack))
			for i, fr := range exc.Stack {
				out[i] = object.NewStr(fr.String())
			}
			return object.NewArray(out), nil
		}), true
	case "cause":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			if exc.Cause == nil {
				return object.NilValue, nil
			}
			return exc.Cause, nil
		}), true
	case "stack_trace":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			return object.NewStr(exc.PrettyTrace()), nil
		}), true
	case "is_a":
		return bi(name, func(args []object.Object, _ map[string]object.Object) (object.Object, error) {
			k, ok := arg(args, 0).(*object.Str)
			if !ok {
				return object.False, nil
			}
			return object.NativeBool(exc.IsA(k.Value)), nil
		}), true
	}
	return nil, false
}
