package object

import (
	"fmt"
	"strings"
	"unsafe"
)

// Array is Quest's ordered, mutable, shared-reference collection. Every
// binding that holds an *Array holds the same backing slice header's owner;
// eval never copies an *Array on assignment, only on an explicit `.copy()`.
type Array struct {
	Elements []Object
}

func NewArray(elems []Object) *Array { return &Array{Elements: elems} }

func (a *Array) Kind() Kind { return ARRAY }
func (a *Array) Display() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) Inspect() string { return a.Display() }
func (a *Array) IsTruthy() bool  { return len(a.Elements) > 0 }
func (a *Array) ID() uintptr     { return uintptr(unsafe.Pointer(a)) }

// DictPair preserves insertion order alongside the lookup map, matching the
// "Dict iterates in insertion order" invariant.
type DictPair struct {
	Key   Object
	Value Object
}

// Dict is Quest's ordered hash map. Keys must be Hashable; insertion order
// is preserved for iteration regardless of hash bucket order.
type Dict struct {
	pairs map[string]*DictPair
	order []string
}

func NewDict() *Dict { return &Dict{pairs: make(map[string]*DictPair)} }

func (d *Dict) Kind() Kind { return DICT }
func (d *Dict) Display() string {
	parts := make([]string, 0, len(d.order))
	for _, k := range d.order {
		p := d.pairs[k]
		parts = append(parts, p.Key.Inspect()+": "+p.Value.Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (d *Dict) Inspect() string { return d.Display() }
func (d *Dict) IsTruthy() bool  { return len(d.order) > 0 }
func (d *Dict) ID() uintptr     { return uintptr(unsafe.Pointer(d)) }

func (d *Dict) Set(key, value Object) error {
	h, ok := key.(Hashable)
	if !ok {
		return fmt.Errorf("unhashable key of kind %s", key.Kind())
	}
	hk := h.HashKey()
	if _, exists := d.pairs[hk]; !exists {
		d.order = append(d.order, hk)
	}
	d.pairs[hk] = &DictPair{Key: key, Value: value}
	return nil
}

func (d *Dict) Get(key Object) (Object, bool) {
	h, ok := key.(Hashable)
	if !ok {
		return nil, false
	}
	p, ok := d.pairs[h.HashKey()]
	if !ok {
		return nil, false
	}
	return p.Value, true
}

func (d *Dict) Delete(key Object) bool {
	h, ok := key.(Hashable)
	if !ok {
		return false
	}
	hk := h.HashKey()
	if _, exists := d.pairs[hk]; !exists {
		return false
	}
	delete(d.pairs, hk)
	for i, k := range d.order {
		if k == hk {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

func (d *Dict) Len() int { return len(d.order) }

// Pairs returns the pairs in insertion order.
func (d *Dict) Pairs() []*DictPair {
	out := make([]*DictPair, len(d.order))
	for i, k := range d.order {
		out[i] = d.pairs[k]
	}
	return out
}

// Set (the Quest kind, unordered unique collection) is named SetObj in Go
// to avoid colliding with Dict.Set the method.
type SetObj struct {
	members map[string]Object
	order   []string
}

func NewSet() *SetObj { return &SetObj{members: make(map[string]Object)} }

func (s *SetObj) Kind() Kind { return SET }
func (s *SetObj) Display() string {
	parts := make([]string, 0, len(s.order))
	for _, k := range s.order {
		parts = append(parts, s.members[k].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (s *SetObj) Inspect() string { return s.Display() }
func (s *SetObj) IsTruthy() bool  { return len(s.order) > 0 }
func (s *SetObj) ID() uintptr     { return uintptr(unsafe.Pointer(s)) }

func (s *SetObj) Add(v Object) bool {
	h, ok := v.(Hashable)
	if !ok {
		return false
	}
	hk := h.HashKey()
	if _, exists := s.members[hk]; exists {
		return false
	}
	s.members[hk] = v
	s.order = append(s.order, hk)
	return true
}

func (s *SetObj) Has(v Object) bool {
	h, ok := v.(Hashable)
	if !ok {
		return false
	}
	_, exists := s.members[h.HashKey()]
	return exists
}

func (s *SetObj) Remove(v Object) bool {
	h, ok := v.(Hashable)
	if !ok {
		return false
	}
	hk := h.HashKey()
	if _, exists := s.members[hk]; !exists {
		return false
	}
	delete(s.members, hk)
	for i, k := range s.order {
		if k == hk {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *SetObj) Len() int { return len(s.order) }

func (s *SetObj) Members() []Object {
	out := make([]Object, len(s.order))
	for i, k := range s.order {
		out[i] = s.members[k]
	}
	return out
}

// Range is `start to/until end [step s]` as a value. Contains tests
// membership arithmetically; Values materializes every element, which is
// what eval's for-loop iterates over.
type Range struct {
	Start, End, Step int64
	Inclusive        bool
}

func NewRange(start, end, step int64, inclusive bool) *Range {
	return &Range{Start: start, End: end, Step: step, Inclusive: inclusive}
}

func (r *Range) Kind() Kind { return RANGE }
func (r *Range) Display() string {
	op := "until"
	if r.Inclusive {
		op = "to"
	}
	if r.Step != 1 {
		return fmt.Sprintf("%d %s %d step %d", r.Start, op, r.End, r.Step)
	}
	return fmt.Sprintf("%d %s %d", r.Start, op, r.End)
}
func (r *Range) Inspect() string { return r.Display() }
func (r *Range) IsTruthy() bool  { return true }

// Contains reports whether v lies within the range, honoring Step direction.
func (r *Range) Contains(v int64) bool {
	if r.Step > 0 {
		if v < r.Start || (r.Inclusive && v > r.End) || (!r.Inclusive && v >= r.End) {
			return false
		}
		return (v-r.Start)%r.Step == 0
	}
	if r.Step < 0 {
		if v > r.Start || (r.Inclusive && v < r.End) || (!r.Inclusive && v <= r.End) {
			return false
		}
		return (r.Start-v)%(-r.Step) == 0
	}
	return false
}

// Values materializes the range into a slice of Int values; used by
// `.to_array()` and by iteration contexts that need random access.
func (r *Range) Values() []Object {
	var out []Object
	if r.Step == 0 {
		return out
	}
	if r.Step > 0 {
		for v := r.Start; (r.Inclusive && v <= r.End) || (!r.Inclusive && v < r.End); v += r.Step {
			out = append(out, NewInt(v))
		}
		return out
	}
	for v := r.Start; (r.Inclusive && v >= r.End) || (!r.Inclusive && v > r.End); v += r.Step {
		out = append(out, NewInt(v))
	}
	return out
}
