package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func worldPosition(m mgl32.Mat4) mgl32.Vec3 {
	return common.TransformPoint(&m, mgl32.Vec3{})
}

func requireVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	require.InDeltaSlice(t, want[:], got[:], tolerance, "want %v got %v", want, got)
}

func TestRootLeafUsesIdentityParent(t *testing.T) {
	h := NewHierarchy()
	leaf := NewNode(WithPosition(4, 5, 6))

	requireVecNear(t, mgl32.Vec3{4, 5, 6}, worldPosition(h.WorldMatrix(leaf)))
	require.Equal(t, mgl32.Ident4(), h.Current())
}

func TestTwoLevelHierarchy(t *testing.T) {
	h := NewHierarchy()
	group := NewNode(WithPosition(1, 0, 0))
	leaf := NewNode(WithPosition(0, 2, 0))

	var got mgl32.Mat4
	err := h.Scope(group, func(ambient mgl32.Mat4) error {
		requireVecNear(t, mgl32.Vec3{1, 0, 0}, worldPosition(ambient))
		got = h.WorldMatrix(leaf)
		return nil
	})
	require.NoError(t, err)
	requireVecNear(t, mgl32.Vec3{1, 2, 0}, worldPosition(got))
	require.Zero(t, h.Depth())
}

func TestThreeLevelChainMatchesReference(t *testing.T) {
	h := NewHierarchy()
	outer := NewNode(WithPosition(1, 0, 0), WithRotation(0, 1.2, 0), WithScale(2, 2, 2))
	middle := NewNode(WithPosition(0, 3, 0), WithRotation(0.4, 0, 0))
	leaf := NewNode(WithPosition(0, 0, 1), WithRotation(0, 0, 0.9), WithScale(1, 0.5, 1))

	var a, b, c mgl32.Mat4
	common.Compose(&a, outer.Position(), outer.Rotation(), outer.Scale())
	common.Compose(&b, middle.Position(), middle.Rotation(), middle.Scale())
	common.Compose(&c, leaf.Position(), leaf.Rotation(), leaf.Scale())
	want := a.Mul4(b).Mul4(c)
	reversed := c.Mul4(b).Mul4(a)
	var diff float64
	for i := range want {
		diff = max(diff, math.Abs(float64(want[i]-reversed[i])))
	}
	require.Greater(t, diff, tolerance, "reference must be order sensitive")

	var got mgl32.Mat4
	require.NoError(t, h.Scope(outer, func(mgl32.Mat4) error {
		return h.Scope(middle, func(mgl32.Mat4) error {
			got = h.WorldMatrix(leaf)
			return nil
		})
	}))
	require.InDeltaSlice(t, want[:], got[:], tolerance, "want %v\n got %v", want, got)
}

func TestScopeRestoresOnError(t *testing.T) {
	h := NewHierarchy()
	group := NewNode(WithPosition(1, 0, 0))
	boom := errors.New("boom")

	err := h.Scope(group, func(mgl32.Mat4) error {
		require.Equal(t, 1, h.Depth())
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, h.Depth())
	require.Equal(t, mgl32.Ident4(), h.Current())
}

func TestScopeRestoresOnPanic(t *testing.T) {
	h := NewHierarchy()
	group := NewNode(WithPosition(1, 0, 0))

	require.Panics(t, func() {
		_ = h.Scope(group, func(mgl32.Mat4) error {
			panic("draw failed")
		})
	})
	require.Zero(t, h.Depth())
}

func TestScopeClosesScopesLeftOpenByBody(t *testing.T) {
	h := NewHierarchy()
	outer := NewNode()
	inner := NewNode(WithPosition(0, 1, 0))

	require.NoError(t, h.Scope(outer, func(mgl32.Mat4) error {
		return h.Enter(inner)
	}))
	require.Zero(t, h.Depth())
}

func TestEnterRejectsCycles(t *testing.T) {
	h := NewHierarchy()
	a := NewNode()
	b := NewNode()

	err := h.Scope(a, func(mgl32.Mat4) error {
		return h.Scope(b, func(mgl32.Mat4) error {
			return h.Scope(a, func(mgl32.Mat4) error {
				t.Fatal("cyclic scope body must not run")
				return nil
			})
		})
	})
	require.ErrorIs(t, err, ErrCyclicNesting)
	require.Zero(t, h.Depth())
}

func TestEnterExit(t *testing.T) {
	h := NewHierarchy(WithStackCapacity(1))
	require.ErrorIs(t, h.Exit(), ErrUnbalancedExit)
	require.ErrorIs(t, h.Enter(nil), ErrNilNode)

	require.NoError(t, h.Enter(NewNode(WithPosition(1, 0, 0))))
	require.NoError(t, h.Enter(NewNode(WithPosition(0, 1, 0))))
	requireVecNear(t, mgl32.Vec3{1, 1, 0}, worldPosition(h.Current()))

	require.NoError(t, h.Exit())
	requireVecNear(t, mgl32.Vec3{1, 0, 0}, worldPosition(h.Current()))

	h.Reset()
	require.Zero(t, h.Depth())
}

func TestWorldMatrixCachesUntilChanged(t *testing.T) {
	n := NewNode(WithPosition(1, 2, 3)).(*node)
	parent := mgl32.Translate3D(10, 0, 0)

	require.True(t, n.Dirty())
	first := n.WorldMatrix(&parent)
	require.Equal(t, uint64(1), n.recomputes)
	require.False(t, n.Dirty())

	require.Equal(t, first, n.WorldMatrix(&parent))
	require.Equal(t, uint64(1), n.recomputes)

	n.SetPosition(1, 2, 3)
	n.WorldMatrix(&parent)
	require.Equal(t, uint64(1), n.recomputes, "same values must not recompute")

	n.SetRotation(0, 1, 0)
	n.WorldMatrix(&parent)
	require.Equal(t, uint64(2), n.recomputes)

	moved := mgl32.Translate3D(20, 0, 0)
	got := n.WorldMatrix(&moved)
	require.Equal(t, uint64(3), n.recomputes, "parent change must recompute")
	require.InDelta(t, 21, worldPosition(got)[0], tolerance)

	n.SetScale(2, 2, 2)
	n.WorldMatrix(&moved)
	require.Equal(t, uint64(4), n.recomputes)
}

func TestRepeatedScopesKeepStackBounded(t *testing.T) {
	h := NewHierarchy()
	group := NewNode(WithPosition(1, 0, 0))
	leaf := NewNode(WithPosition(0, 5, 0))

	var first mgl32.Mat4
	for i := range 1000 {
		leaf.SetPosition(0, float32(i), 0)
		require.NoError(t, h.Scope(group, func(mgl32.Mat4) error {
			first = h.WorldMatrix(leaf)
			return nil
		}))
	}
	requireVecNear(t, mgl32.Vec3{1, 999, 0}, worldPosition(first))
	require.Zero(t, h.Depth())
	require.Equal(t, defaultStackCapacity, cap(h.(*hierarchy).stack))
}
