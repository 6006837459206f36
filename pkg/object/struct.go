package object

import (
	"strings"
	"unsafe"

	"github.com/kristofer/quest/pkg/ast"
)

// Trait is a named set of required method signatures a Type can declare it
// `impl`-ements (spec.md §3.5). Traits carry no state or default method
// bodies in this implementation — a Type must supply every required method
// itself, checked when the type declaration is executed.
type Trait struct {
	Name     string
	Required []string
}

func (t *Trait) Kind() Kind      { return TRAIT }
func (t *Trait) Display() string { return "<trait " + t.Name + ">" }
func (t *Trait) Inspect() string { return t.Display() }
func (t *Trait) IsTruthy() bool  { return true }

// FieldSpec is one declared field of a Type: name, optional type
// annotation, default-value expression, and visibility.
type FieldSpec struct {
	Name     string
	TypeName string
	Default  ast.Expression
	Pub      bool
}

// Type is a user-defined class: field layout, instance methods, static
// methods, and the traits it implements. Types are registered once in the
// defining scope and referenced by every Struct instance built from them.
type Type struct {
	Name    string
	Fields  []FieldSpec
	Methods map[string]*UserFun // instance methods, keyed by name
	Statics map[string]*UserFun // `fun self.m()` class methods
	Traits  []*Trait

	// DefiningScope is the scope the type was declared in, consulted when
	// evaluating a field's default-value expression at construction time.
	// It holds a Frame rather than a concrete scope type to avoid a
	// dependency cycle with package scope.
	DefiningScope Frame
}

func NewType(name string) *Type {
	return &Type{Name: name, Methods: make(map[string]*UserFun), Statics: make(map[string]*UserFun)}
}

func (t *Type) Kind() Kind      { return TYPE }
func (t *Type) Display() string { return "<type " + t.Name + ">" }
func (t *Type) Inspect() string { return t.Display() }
func (t *Type) IsTruthy() bool  { return true }

// Does reports whether this type declares the given trait by name.
func (t *Type) Does(traitName string) bool {
	for _, tr := range t.Traits {
		if tr.Name == traitName {
			return true
		}
	}
	return false
}

// Struct is an instance of a user-defined Type: a mutable, shared-reference
// field bag plus a back-pointer to its Type for method dispatch and `is`/
// `does` checks (spec.md §3.5, §4.4.5 dispatch order).
type Struct struct {
	TypeOf *Type
	Fields map[string]Object
}

func NewStruct(t *Type) *Struct {
	return &Struct{TypeOf: t, Fields: make(map[string]Object)}
}

func (s *Struct) Kind() Kind { return STRUCT }
func (s *Struct) Display() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.TypeOf.Fields {
		if v, ok := s.Fields[f.Name]; ok {
			parts = append(parts, f.Name+": "+v.Inspect())
		}
	}
	return s.TypeOf.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (s *Struct) Inspect() string { return s.Display() }
func (s *Struct) IsTruthy() bool  { return true }
func (s *Struct) ID() uintptr     { return uintptr(unsafe.Pointer(s)) }

// Is reports whether this instance's type is exactly the named type (not a
// trait); structural inheritance is out of scope, matching spec.md's
// "no classical inheritance, only trait composition" design choice.
func (s *Struct) Is(typeName string) bool { return s.TypeOf.Name == typeName }

// Does delegates to the owning Type's trait list.
func (s *Struct) Does(traitName string) bool { return s.TypeOf.Does(traitName) }
