package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func requireMatEqual(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	require.InDeltaSlice(t, want[:], got[:], tolerance, "want %v\n got %v", want, got)
}

func TestComposeTranslationOnly(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 2, 3}, {-4.5, 0.25, 100}}
	for _, p := range positions {
		var m mgl32.Mat4
		Compose(&m, p, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
		requireMatEqual(t, mgl32.Translate3D(p[0], p[1], p[2]), m)
	}
}

func TestComposeMatchesTRSReference(t *testing.T) {
	pos := mgl32.Vec3{3, -1, 2}
	rot := mgl32.Vec3{0.3, -1.1, 0.7}
	scl := mgl32.Vec3{2, 0.5, 1.5}

	want := mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DX(rot[0])).
		Mul4(mgl32.HomogRotate3DZ(rot[2])).
		Mul4(mgl32.Scale3D(scl[0], scl[1], scl[2]))

	var got mgl32.Mat4
	Compose(&got, pos, rot, scl)
	requireMatEqual(t, want, got)
}

func TestMultiplyAppliesRightOperandFirst(t *testing.T) {
	a := mgl32.Translate3D(1, 0, 0)
	b := mgl32.Scale3D(2, 2, 2)

	var out mgl32.Mat4
	Multiply(&out, &a, &b)

	p := TransformPoint(&out, mgl32.Vec3{1, 1, 1})
	require.InDelta(t, 3, p[0], tolerance)
	require.InDelta(t, 2, p[1], tolerance)
	require.InDelta(t, 2, p[2], tolerance)
}

func TestMultiplyAliasedOutput(t *testing.T) {
	a := mgl32.Translate3D(1, 2, 3)
	b := mgl32.HomogRotate3DZ(math.Pi / 2)
	want := a.Mul4(b)

	Multiply(&a, &a, &b)
	requireMatEqual(t, want, a)
}

func TestInvert(t *testing.T) {
	var m, inv, product mgl32.Mat4
	Compose(&m, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.2, 0.4, 0.6}, mgl32.Vec3{2, 3, 4})

	require.NotNil(t, Invert(&inv, &m))
	Multiply(&product, &m, &inv)
	ident := mgl32.Ident4()
	require.InDeltaSlice(t, ident[:], product[:], 1e-4)
}

func TestInvertSingularReturnsNil(t *testing.T) {
	singular := mgl32.Scale3D(1, 0, 1)
	out := mgl32.Translate3D(9, 9, 9)

	require.Nil(t, Invert(&out, &singular))
	requireMatEqual(t, mgl32.Translate3D(9, 9, 9), out)
}

func TestTranspose(t *testing.T) {
	m := mgl32.Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	Transpose(&m, &m)
	require.Equal(t, mgl32.Mat4{1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15, 4, 8, 12, 16}, m)
}

func TestTransformPointPerspectiveDivide(t *testing.T) {
	m := mgl32.Ident4()
	m[15] = 2
	p := TransformPoint(&m, mgl32.Vec3{2, 4, 6})
	require.InDelta(t, 1, p[0], tolerance)
	require.InDelta(t, 2, p[1], tolerance)
	require.InDelta(t, 3, p[2], tolerance)
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := mgl32.Translate3D(10, 20, 30).Mul4(mgl32.HomogRotate3DZ(math.Pi / 2))
	d := TransformDirection(&m, mgl32.Vec3{1, 0, 0})
	require.InDelta(t, 0, d[0], tolerance)
	require.InDelta(t, 1, d[1], tolerance)
	require.InDelta(t, 0, d[2], tolerance)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view mgl32.Mat4
	eye := mgl32.Vec3{0, 0, 5}
	LookAt(&view, eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	p := TransformPoint(&view, eye)
	require.InDelta(t, 0, p.Len(), tolerance)

	target := TransformPoint(&view, mgl32.Vec3{})
	require.InDelta(t, -5, target[2], tolerance)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj mgl32.Mat4
	Perspective(&proj, math.Pi/2, 1, 1, 10)

	near := TransformPoint(&proj, mgl32.Vec3{0, 0, -1})
	far := TransformPoint(&proj, mgl32.Vec3{0, 0, -10})
	require.InDelta(t, 0, near[2], tolerance)
	require.InDelta(t, 1, far[2], tolerance)
}
