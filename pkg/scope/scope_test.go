package scope

import (
	"testing"

	"github.com/kristofer/quest/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndGet(t *testing.T) {
	s := New()
	s.Declare("x", object.NewInt(1), false)
	v, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*object.Int).Value)
}

func TestGetSearchesParentChain(t *testing.T) {
	root := New()
	root.Declare("x", object.NewInt(1), false)
	child := root.Push()
	grandchild := child.Push()
	v, ok := grandchild.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*object.Int).Value)
}

func TestDeclareInChildShadowsParent(t *testing.T) {
	root := New()
	root.Declare("x", object.NewInt(1), false)
	child := root.Push()
	child.Declare("x", object.NewInt(2), false)

	v, _ := child.Get("x")
	assert.Equal(t, int64(2), v.(*object.Int).Value)
	v, _ = root.Get("x")
	assert.Equal(t, int64(1), v.(*object.Int).Value)
}

func TestAssignRebindsOwningFrame(t *testing.T) {
	root := New()
	root.Declare("x", object.NewInt(1), false)
	child := root.Push()

	err := child.Assign("x", object.NewInt(99))
	require.NoError(t, err)

	v, _ := root.Get("x")
	assert.Equal(t, int64(99), v.(*object.Int).Value)
}

func TestAssignUndefinedNameIsError(t *testing.T) {
	s := New()
	err := s.Assign("nope", object.NewInt(1))
	require.Error(t, err)
	var undef *ErrUndefined
	assert.ErrorAs(t, err, &undef)
}

func TestAssignToConstIsError(t *testing.T) {
	s := New()
	s.Declare("PI", object.NewFloat(3.14), true)
	err := s.Assign("PI", object.NewFloat(3.0))
	require.Error(t, err)
	var constErr *ErrConstAssign
	assert.ErrorAs(t, err, &constErr)
}

func TestDeleteConstIsError(t *testing.T) {
	s := New()
	s.Declare("PI", object.NewFloat(3.14), true)
	err := s.Delete("PI")
	require.Error(t, err)
	var constErr *ErrConstAssign
	assert.ErrorAs(t, err, &constErr)
}

func TestDeleteRemovesBinding(t *testing.T) {
	s := New()
	s.Declare("x", object.NewInt(1), false)
	require.NoError(t, s.Delete("x"))
	_, ok := s.Get("x")
	assert.False(t, ok)
}

func TestModuleCacheSharedAcrossChain(t *testing.T) {
	root := New()
	m := object.NewModule("math", "math.quest")
	child := root.Push()
	grandchild := child.WithSharedBase()

	grandchild.CacheModule("math.quest", m)

	got, ok := root.LookupModule("math.quest")
	require.True(t, ok)
	assert.Same(t, m, got)
}

func TestFrameSatisfiesObjectFrameInterface(t *testing.T) {
	var _ object.Frame = New()
}

func TestIsConstChecksWholeChain(t *testing.T) {
	root := New()
	root.Declare("PI", object.NewFloat(3.14), true)
	child := root.Push()
	assert.True(t, child.IsConst("PI"))
	assert.False(t, child.IsConst("undefined_name"))
}
