// Package scope implements Quest's frame-chain environment model (spec.md
// §3.2/§4.3): an ordered stack of mutable binding frames searched innermost-
// first, with const bindings, a module cache keyed by resolved path, and
// Push/WithSharedBase for creating child frames. The evaluator enters
// blocks and calls with Push.
package scope

import (
	"github.com/kristofer/quest/pkg/object"
)

type binding struct {
	value object.Object
	isConst bool
}

// Scope is one frame of the chain: its own binding table plus a pointer to
// the enclosing frame. The root scope has a nil Parent; pkg/eval holds
// builtins in a root scope and runs each script or module in a child of it.
type Scope struct {
	vars   map[string]*binding
	Parent *Scope
	// modules is a Module cache keyed by resolved path (CacheModule/
	// LookupModule), shared across the whole chain via the root scope.
	// pkg/eval's `use` caches loaded modules in its own map, not here.
	modules map[string]*object.Module
}

// New creates a root scope with no parent.
func New() *Scope {
	return &Scope{vars: make(map[string]*binding), modules: make(map[string]*object.Module)}
}

// Push creates a new child frame for entering a block/call/loop iteration.
func (s *Scope) Push() *Scope {
	return &Scope{vars: make(map[string]*binding), Parent: s}
}

// WithSharedBase creates a new frame whose Parent is s and which holds a
// direct reference to the root's module cache.
func (s *Scope) WithSharedBase() *Scope {
	child := s.Push()
	child.modules = s.moduleRoot().modules
	return child
}

func (s *Scope) moduleRoot() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// ErrRedeclared is returned by Declare when name already has a binding in
// this exact frame. Shadowing a name from an enclosing frame is unaffected —
// only same-frame redeclaration is rejected (spec.md §3.2/§4.3/§7).
type ErrRedeclared struct{ Name string }

func (e *ErrRedeclared) Error() string { return "'" + e.Name + "' is already declared in this scope" }

// Declare introduces a new binding in this frame (not a parent). Declaring a
// name that already exists in this exact frame is a redeclaration error;
// declaring a name that merely shadows one in an enclosing frame is fine —
// that's ordinary block-scoped `let` shadowing.
func (s *Scope) Declare(name string, value object.Object, isConst bool) error {
	if _, exists := s.vars[name]; exists {
		return &ErrRedeclared{Name: name}
	}
	s.vars[name] = &binding{value: value, isConst: isConst}
	return nil
}

// Get searches this frame then each enclosing frame in turn.
func (s *Scope) Get(name string) (object.Object, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.vars[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// ErrConstAssign is returned by Assign/Delete when name is bound const in
// the frame that owns it.
type ErrConstAssign struct{ Name string }

func (e *ErrConstAssign) Error() string { return "cannot assign to const '" + e.Name + "'" }

// ErrUndefined is returned by Assign/Delete when name has no binding in the
// chain.
type ErrUndefined struct{ Name string }

func (e *ErrUndefined) Error() string { return "undefined name '" + e.Name + "'" }

// Assign rebinds an existing name in whichever frame declared it (Quest has
// no implicit global creation on assignment — every name must first exist
// via `let`/`const`, a function parameter, or a loop variable).
func (s *Scope) Assign(name string, value object.Object) error {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.vars[name]; ok {
			if b.isConst {
				return &ErrConstAssign{Name: name}
			}
			b.value = value
			return nil
		}
	}
	return &ErrUndefined{Name: name}
}

// Delete removes a binding (the `del` statement). Deleting a const binding
// is a NameErr surfaced as ErrConstAssign, per DESIGN.md's Open Question
// decision.
func (s *Scope) Delete(name string) error {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.vars[name]; ok {
			if b.isConst {
				return &ErrConstAssign{Name: name}
			}
			delete(cur.vars, name)
			return nil
		}
	}
	return &ErrUndefined{Name: name}
}

// IsConst reports whether name, if bound anywhere in the chain, is const.
func (s *Scope) IsConst(name string) bool {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.vars[name]; ok {
			return b.isConst
		}
	}
	return false
}

// CacheModule records a loaded module under its resolved path.
func (s *Scope) CacheModule(path string, m *object.Module) {
	s.moduleRoot().modules[path] = m
}

// LookupModule returns a previously loaded module for path, if cached.
func (s *Scope) LookupModule(path string) (*object.Module, bool) {
	m, ok := s.moduleRoot().modules[path]
	return m, ok
}

// Names returns every name bound directly in this frame (not parents) —
// used for module member listing (`use "x" { a, b }` and reflection).
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	return names
}
