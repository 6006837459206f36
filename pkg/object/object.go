// Package object implements Quest's tagged-variant value model (spec.md
// §3.1-§3.5): every runtime value is an Object, switch-dispatched on Kind
// the way pkg/eval needs to route arithmetic, comparison, and method calls.
// Container kinds (Array, Dict, Set, Struct) are always held and passed by
// pointer so that aliasing one binding mutates every other binding sharing
// the same container (the "container sharing invariant").
package object

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tags the dynamic type of an Object.
type Kind int

const (
	NIL Kind = iota
	BOOL
	INT
	FLOAT
	BIGINT
	DECIMAL
	STR
	BYTES
	UUID
	ARRAY
	DICT
	SET
	RANGE
	BUILTIN_FUN
	USER_FUN
	BOUND_METHOD
	STRUCT
	TYPE
	TRAIT
	MODULE
	EXCEPTION
	STRINGIO
	REDIRECT_GUARD
	SYSTEM_STREAM
)

func (k Kind) String() string {
	names := [...]string{
		"Nil", "Bool", "Int", "Float", "BigInt", "Decimal", "Str", "Bytes",
		"Uuid", "Array", "Dict", "Set", "Range", "Fun", "Fun", "Fun",
		"Struct", "Type", "Trait", "Module", "Exception", "StringIO",
		"RedirectGuard", "SystemStream",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Object is implemented by every Quest runtime value.
type Object interface {
	Kind() Kind
	// Display is the `puts`/string-conversion rendering: bare for Str,
	// unquoted and human-oriented for everything else.
	Display() string
	// Inspect is the debug/`repr`-style rendering: quoted strings, bracketed
	// containers, type-tagged wrapper values.
	Inspect() string
	IsTruthy() bool
}

// Equaler is implemented by kinds with value-based equality (`==`).
// pkg/eval's valuesEqual compares Array/Dict/Set/Struct values element by
// element and any other kind without EqualsObj by identity.
type Equaler interface {
	EqualsObj(other Object) bool
}

// Hashable is implemented by kinds usable as Dict keys / Set members.
type Hashable interface {
	HashKey() string
}

// Identified is implemented by kinds with a stable identity distinct from
// their value (used by `id()`).
type Identified interface {
	ID() uintptr
}

// ---------------------------------------------------------------- Nil/Bool

type Nil struct{}

var NilValue = &Nil{}

func (*Nil) Kind() Kind         { return NIL }
func (*Nil) Display() string    { return "nil" }
func (*Nil) Inspect() string    { return "nil" }
func (*Nil) IsTruthy() bool     { return false }
func (*Nil) HashKey() string    { return "nil:" }
func (n *Nil) EqualsObj(o Object) bool {
	_, ok := o.(*Nil)
	return ok
}

type Bool struct{ Value bool }

var (
	True  = &Bool{Value: true}
	False = &Bool{Value: false}
)

func NativeBool(v bool) *Bool {
	if v {
		return True
	}
	return False
}

func (b *Bool) Kind() Kind      { return BOOL }
func (b *Bool) Display() string { return fmt.Sprintf("%t", b.Value) }
func (b *Bool) Inspect() string { return b.Display() }
func (b *Bool) IsTruthy() bool  { return b.Value }
func (b *Bool) HashKey() string { return fmt.Sprintf("bool:%t", b.Value) }
func (b *Bool) EqualsObj(o Object) bool {
	other, ok := o.(*Bool)
	return ok && other.Value == b.Value
}

// -------------------------------------------------------------- Numerics

type Int struct{ Value int64 }

func NewInt(v int64) *Int { return &Int{Value: v} }

func (i *Int) Kind() Kind      { return INT }
func (i *Int) Display() string { return fmt.Sprintf("%d", i.Value) }
func (i *Int) Inspect() string { return i.Display() }
func (i *Int) IsTruthy() bool  { return i.Value != 0 }
func (i *Int) HashKey() string { return fmt.Sprintf("int:%d", i.Value) }
func (i *Int) EqualsObj(o Object) bool {
	switch other := o.(type) {
	case *Int:
		return other.Value == i.Value
	case *Float:
		return other.Value == float64(i.Value)
	}
	return false
}

type Float struct{ Value float64 }

func NewFloat(v float64) *Float { return &Float{Value: v} }

func (f *Float) Kind() Kind      { return FLOAT }
func (f *Float) Display() string { return humanize.Ftoa(f.Value) }
func (f *Float) Inspect() string { return f.Display() }
func (f *Float) IsTruthy() bool  { return f.Value != 0 }
func (f *Float) HashKey() string { return fmt.Sprintf("float:%v", f.Value) }
func (f *Float) EqualsObj(o Object) bool {
	switch other := o.(type) {
	case *Float:
		return other.Value == f.Value
	case *Int:
		return float64(other.Value) == f.Value
	}
	return false
}

// BigInt is Quest's arbitrary-precision integer kind, backed by stdlib
// math/big: no ecosystem library in the retrieved corpus supersedes it for
// this, so the stdlib-justification rule's exception applies (DESIGN.md).
type BigInt struct{ Value *big.Int }

func NewBigInt(v *big.Int) *BigInt { return &BigInt{Value: v} }

func (b *BigInt) Kind() Kind      { return BIGINT }
func (b *BigInt) Display() string { return b.Value.String() }
func (b *BigInt) Inspect() string { return b.Value.String() + "n" }
func (b *BigInt) IsTruthy() bool  { return b.Value.Sign() != 0 }
func (b *BigInt) HashKey() string { return "bigint:" + b.Value.String() }
func (b *BigInt) EqualsObj(o Object) bool {
	other, ok := o.(*BigInt)
	return ok && other.Value.Cmp(b.Value) == 0
}

// Decimal is Quest's fixed-point arbitrary-precision kind, for values where
// binary float error is unacceptable (money, measurements).
type Decimal struct{ Value decimal.Decimal }

func NewDecimal(v decimal.Decimal) *Decimal { return &Decimal{Value: v} }

func (d *Decimal) Kind() Kind      { return DECIMAL }
func (d *Decimal) Display() string { return d.Value.String() }
func (d *Decimal) Inspect() string { return d.Value.String() + "d" }
func (d *Decimal) IsTruthy() bool  { return !d.Value.IsZero() }
func (d *Decimal) HashKey() string { return "decimal:" + d.Value.String() }
func (d *Decimal) EqualsObj(o Object) bool {
	other, ok := o.(*Decimal)
	return ok && other.Value.Equal(d.Value)
}

// --------------------------------------------------------------- Str/Bytes

type Str struct{ Value string }

func NewStr(v string) *Str { return &Str{Value: v} }

func (s *Str) Kind() Kind      { return STR }
func (s *Str) Display() string { return s.Value }
func (s *Str) Inspect() string { return `"` + strings.ReplaceAll(s.Value, `"`, `\"`) + `"` }
func (s *Str) IsTruthy() bool  { return s.Value != "" }
func (s *Str) HashKey() string { return "str:" + s.Value }
func (s *Str) EqualsObj(o Object) bool {
	other, ok := o.(*Str)
	return ok && other.Value == s.Value
}

type Bytes struct{ Value []byte }

func NewBytes(v []byte) *Bytes { return &Bytes{Value: v} }

func (b *Bytes) Kind() Kind      { return BYTES }
func (b *Bytes) Display() string { return string(b.Value) }
func (b *Bytes) Inspect() string {
	return fmt.Sprintf("Bytes(%s)", humanize.Bytes(uint64(len(b.Value))))
}
func (b *Bytes) IsTruthy() bool  { return len(b.Value) != 0 }
func (b *Bytes) HashKey() string { return "bytes:" + string(b.Value) }
func (b *Bytes) EqualsObj(o Object) bool {
	other, ok := o.(*Bytes)
	return ok && string(other.Value) == string(b.Value)
}

// Uuid wraps google/uuid.UUID as a first-class Quest value.
type Uuid struct{ Value uuid.UUID }

func NewUuid(v uuid.UUID) *Uuid { return &Uuid{Value: v} }

func (u *Uuid) Kind() Kind      { return UUID }
func (u *Uuid) Display() string { return u.Value.String() }
func (u *Uuid) Inspect() string { return "Uuid(" + u.Value.String() + ")" }
func (u *Uuid) IsTruthy() bool  { return true }
func (u *Uuid) HashKey() string { return "uuid:" + u.Value.String() }
func (u *Uuid) EqualsObj(o Object) bool {
	other, ok := o.(*Uuid)
	return ok && other.Value == u.Value
}
