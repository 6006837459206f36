package eval

import (
	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
)

func (e *Evaluator) evalAssign(n *ast.AssignExpr, env *scope.Scope) (object.Object, error) {
	rhs, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}

	switch target := n.Target.(type) {
	case *ast.Identifier:
		val := rhs
		if n.Op != "=" {
			cur, ok := env.Get(target.Name)
			if !ok {
				return nil, e.newExcf("NameErr", "undefined name '%s'", target.Name)
			}
			val, err = e.applyCompound(cur, rhs, n.Op)
			if err != nil {
				return nil, err
			}
		}
		if err := env.Assign(target.Name, val); err != nil {
			return nil, e.translateScopeErr(err)
		}
		return val, nil

	case *ast.IndexExpr:
		recv, err := e.Eval(target.Receiver, env)
		if err != nil {
			return nil, err
		}
		idx, err := e.Eval(target.Index, env)
		if err != nil {
			return nil, err
		}
		val := rhs
		if n.Op != "=" {
			cur, err := e.indexGet(recv, idx)
			if err != nil {
				return nil, err
			}
			val, err = e.applyCompound(cur, rhs, n.Op)
			if err != nil {
				return nil, err
			}
		}
		if err := e.indexSet(recv, idx, val); err != nil {
			return nil, err
		}
		return val, nil

	case *ast.MemberExpr:
		recv, err := e.Eval(target.Receiver, env)
		if err != nil {
			return nil, err
		}
		s, ok := recv.(*object.Struct)
		if !ok {
			return nil, e.newExcf("TypeErr", "cannot assign field '%s' on %s", target.Name, recv.Kind())
		}
		val := rhs
		if n.Op != "=" {
			cur, ok := s.Fields[target.Name]
			if !ok {
				return nil, e.attrErr(s.TypeOf.Name, target.Name)
			}
			val, err = e.applyCompound(cur, rhs, n.Op)
			if err != nil {
				return nil, err
			}
		}
		s.Fields[target.Name] = val
		return val, nil
	}
	return nil, e.newExcf("RuntimeErr", "invalid assignment target %T", n.Target)
}

func (e *Evaluator) translateScopeErr(err error) *object.Exception {
	switch err.(type) {
	case *scope.ErrConstAssign:
		return e.newExcf("TypeErr", "%s", err.Error())
	default:
		return e.newExcf("NameErr", "%s", err.Error())
	}
}

func (e *Evaluator) applyCompound(cur, rhs object.Object, op string) (object.Object, error) {
	switch op {
	case "+=":
		return e.evalAdd(cur, rhs)
	case "-=":
		return e.evalArith(cur, rhs, "-")
	case "*=":
		return e.evalArith(cur, rhs, "*")
	case "/=":
		return e.evalDivide(cur, rhs)
	case "%=":
		return e.evalModulo(cur, rhs)
	}
	return nil, e.newExcf("RuntimeErr", "unknown compound operator %q", op)
}

func (e *Evaluator) evalIndexGet(n *ast.IndexExpr, env *scope.Scope) (object.Object, error) {
	recv, err := e.Eval(n.Receiver, env)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	return e.indexGet(recv, idx)
}

func normalizeIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

func (e *Evaluator) indexGet(recv, idx object.Object) (object.Object, error) {
	switch coll := recv.(type) {
	case *object.Array:
		i, ok := asInt(idx)
		if !ok {
			return nil, e.newExc("TypeErr", "array index must be an Int")
		}
		pos, ok := normalizeIndex(int(i), len(coll.Elements))
		if !ok {
			return nil, e.newExcf("IndexErr", "array index %d out of range", i)
		}
		return coll.Elements[pos], nil
	case *object.Str:
		i, ok := asInt(idx)
		if !ok {
			return nil, e.newExc("TypeErr", "string index must be an Int")
		}
		runes := []rune(coll.Value)
		pos, ok := normalizeIndex(int(i), len(runes))
		if !ok {
			return nil, e.newExcf("IndexErr", "string index %d out of range", i)
		}
		return object.NewStr(string(runes[pos])), nil
	case *object.Bytes:
		i, ok := asInt(idx)
		if !ok {
			return nil, e.newExc("TypeErr", "bytes index must be an Int")
		}
		pos, ok := normalizeIndex(int(i), len(coll.Value))
		if !ok {
			return nil, e.newExcf("IndexErr", "bytes index %d out of range", i)
		}
		return object.NewInt(int64(coll.Value[pos])), nil
	case *object.Dict:
		v, ok := coll.Get(idx)
		if !ok {
			return nil, e.newExcf("KeyErr", "key %s not present", idx.Inspect())
		}
		return v, nil
	}
	return nil, e.newExcf("TypeErr", "%s does not support indexing", recv.Kind())
}

func (e *Evaluator) indexSet(recv, idx, val object.Object) error {
	switch coll := recv.(type) {
	case *object.Array:
		i, ok := asInt(idx)
		if !ok {
			return e.newExc("TypeErr", "array index must be an Int")
		}
		pos, ok := normalizeIndex(int(i), len(coll.Elements))
		if !ok {
			return e.newExcf("IndexErr", "array index %d out of range", i)
		}
		coll.Elements[pos] = val
		return nil
	case *object.Dict:
		if err := coll.Set(idx, val); err != nil {
			return e.newExcf("TypeErr", "unhashable dict key of kind %s", idx.Kind())
		}
		return nil
	case *object.Str, *object.Bytes:
		return e.newExcf("TypeErr", "%s is immutable; indexed assignment is not allowed", recv.Kind())
	}
	return e.newExcf("TypeErr", "%s does not support indexed assignment", recv.Kind())
}
