package object

import (
	"strings"

	"github.com/kristofer/quest/pkg/ast"
)

// BuiltinFunc is a Go-implemented Quest function (stdlib surface, built-in
// collection/struct methods).
type BuiltinFunc func(args []Object, kwargs map[string]Object) (Object, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (b *Builtin) Kind() Kind      { return BUILTIN_FUN }
func (b *Builtin) Display() string { return "<builtin fun " + b.Name + ">" }
func (b *Builtin) Inspect() string { return b.Display() }
func (b *Builtin) IsTruthy() bool  { return true }

// Frame is the minimal surface pkg/object needs from pkg/scope.Scope to
// store a closure without importing pkg/scope (pkg/scope already imports
// pkg/object for stored values, so the dependency only runs one way).
type Frame interface {
	Get(name string) (Object, bool)
}

// UserFun is a Quest-source function value: its Closure is the defining
// scope itself, a live reference to that frame chain. No binding is left out
// of the capture; function values in the chain are reachable too.
// Body/Params reference the parser's AST directly — the tree is immutable
// after parsing, so sharing it across every call is safe.
type UserFun struct {
	Name    string
	Params  []ast.Param
	Body    *ast.BlockStmt
	Closure Frame
	Doc     string
	// IsStatic marks a `fun self.m()` class/static method, dispatched
	// without an implicit receiver binding (spec.md §3.5).
	IsStatic bool
	// ModuleBinding, when non-nil, gives this function direct access to its
	// owning module's members in place of its captured scope chain (spec.md
	// §3.4/§9 "module scope binding bypasses the scope chain" — the device
	// that lets sibling module functions call each other without the
	// function closing over its own defining scope and cycling through
	// itself).
	ModuleBinding *Module
}

func (f *UserFun) Kind() Kind { return USER_FUN }
func (f *UserFun) Display() string {
	if f.Name != "" {
		return "<fun " + f.Name + ">"
	}
	return "<lambda>"
}
func (f *UserFun) Inspect() string { return f.Display() }
func (f *UserFun) IsTruthy() bool  { return true }

// Signature renders `name(a, b = 1, *rest)` for error messages and
// introspection (`fun.signature()` style debugging).
func (f *UserFun) Signature() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		switch {
		case p.Variadic:
			parts[i] = "*" + p.Name
		case p.Kwargs:
			parts[i] = "**" + p.Name
		case p.Default != nil:
			parts[i] = p.Name + " = ..."
		default:
			parts[i] = p.Name
		}
	}
	name := f.Name
	if name == "" {
		name = "<lambda>"
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// BoundMethod pairs a UserFun with the receiver it was looked up on, so a
// later call supplies `self` implicitly (spec.md §4.4.5 dispatch).
type BoundMethod struct {
	Receiver Object
	Method   *UserFun
}

func (m *BoundMethod) Kind() Kind      { return BOUND_METHOD }
func (m *BoundMethod) Display() string { return "<bound method " + m.Method.Name + ">" }
func (m *BoundMethod) Inspect() string { return m.Display() }
func (m *BoundMethod) IsTruthy() bool  { return true }
