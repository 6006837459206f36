package object

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntEqualsFloatCrossKind(t *testing.T) {
	i := NewInt(3)
	f := NewFloat(3.0)
	assert.True(t, i.EqualsObj(f))
	assert.True(t, f.EqualsObj(i))
}

func TestTruthiness(t *testing.T) {
	assert.False(t, NilValue.IsTruthy())
	assert.False(t, False.IsTruthy())
	assert.False(t, NewInt(0).IsTruthy())
	assert.False(t, NewStr("").IsTruthy())
	assert.True(t, NewStr("x").IsTruthy())
	assert.True(t, NewArray([]Object{NewInt(1)}).IsTruthy())
	assert.False(t, NewArray(nil).IsTruthy())
}

func TestDictPreservesInsertionOrder(t *testing.T) {
	d := NewDict()
	require.NoError(t, d.Set(NewStr("b"), NewInt(2)))
	require.NoError(t, d.Set(NewStr("a"), NewInt(1)))
	pairs := d.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "b", pairs[0].Key.(*Str).Value)
	assert.Equal(t, "a", pairs[1].Key.(*Str).Value)
}

func TestDictDeleteRemovesFromOrder(t *testing.T) {
	d := NewDict()
	require.NoError(t, d.Set(NewStr("a"), NewInt(1)))
	require.NoError(t, d.Set(NewStr("b"), NewInt(2)))
	assert.True(t, d.Delete(NewStr("a")))
	assert.Equal(t, 1, d.Len())
	_, ok := d.Get(NewStr("a"))
	assert.False(t, ok)
}

func TestArraySharedReferenceSemantics(t *testing.T) {
	// Two "bindings" of the same *Array must observe each other's mutation —
	// the container-sharing invariant.
	a := NewArray([]Object{NewInt(1)})
	alias := a
	alias.Elements = append(alias.Elements, NewInt(2))
	assert.Len(t, a.Elements, 2)
}

func TestRangeContainsRespectsStepAndInclusivity(t *testing.T) {
	r := NewRange(0, 10, 2, false)
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(8))
	assert.False(t, r.Contains(10))
	assert.False(t, r.Contains(3))

	inc := NewRange(0, 10, 2, true)
	assert.True(t, inc.Contains(10))
}

func TestBigIntInspectHasTrailingN(t *testing.T) {
	n := new(big.Int)
	n.SetString("123456789012345678901234567890", 10)
	b := NewBigInt(n)
	assert.Equal(t, "123456789012345678901234567890n", b.Inspect())
	assert.Equal(t, "123456789012345678901234567890", b.Display())
}

func TestDecimalEquality(t *testing.T) {
	a := NewDecimal(decimal.RequireFromString("1.50"))
	b := NewDecimal(decimal.RequireFromString("1.5"))
	assert.True(t, a.EqualsObj(b))
}

func TestStructIsAndDoes(t *testing.T) {
	trait := &Trait{Name: "Greet", Required: []string{"hello"}}
	ty := NewType("Person")
	ty.Traits = append(ty.Traits, trait)
	s := NewStruct(ty)
	assert.True(t, s.Is("Person"))
	assert.False(t, s.Is("Animal"))
	assert.True(t, s.Does("Greet"))
}

func TestExceptionIsARoot(t *testing.T) {
	e := NewException("ValueErr", "bad value")
	assert.True(t, e.IsA("ValueErr"))
	assert.True(t, e.IsA("Exception"))
	assert.False(t, e.IsA("TypeErr"))
}

func TestStringIORedirectCaptures(t *testing.T) {
	sio := NewStringIO()
	_, err := sio.WriteString("hello ")
	require.NoError(t, err)
	_, err = sio.WriteString("world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", sio.String())
}
