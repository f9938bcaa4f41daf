package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SingularEpsilon is the determinant magnitude at or below which a matrix is treated as singular by Invert.
const SingularEpsilon = 1e-12

// Identity resets a 4x4 matrix to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - out: destination matrix
//
// Returns:
//   - *mgl32.Mat4: out, for chaining
func Identity(out *mgl32.Mat4) *mgl32.Mat4 {
	*out = mgl32.Ident4()
	return out
}

// Compose builds the local-to-parent matrix from position, Euler rotation, and scale.
// Scale is applied first, then rotation, then translation (M = T * R * S for column vectors).
// The rotation order is Y * X * Z (yaw-pitch-roll) and is used everywhere in the engine.
//
// Parameters:
//   - out: destination matrix
//   - position: translation in parent space
//   - rotation: rotation angles in radians around X, Y and Z
//   - scale: scale factors along each axis
//
// Returns:
//   - *mgl32.Mat4: out, for chaining
func Compose(out *mgl32.Mat4, position, rotation, scale mgl32.Vec3) *mgl32.Mat4 {
	cx := float32(math.Cos(float64(rotation[0])))
	sx := float32(math.Sin(float64(rotation[0])))
	cy := float32(math.Cos(float64(rotation[1])))
	sy := float32(math.Sin(float64(rotation[1])))
	cz := float32(math.Cos(float64(rotation[2])))
	sz := float32(math.Sin(float64(rotation[2])))

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scale[0]
	out[1] = (cx * sz) * scale[0]
	out[2] = (-sy*cz + cy*sx*sz) * scale[0]
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scale[1]
	out[5] = (cx * cz) * scale[1]
	out[6] = (sy*sz + cy*sx*cz) * scale[1]
	out[7] = 0

	out[8] = (sy * cx) * scale[2]
	out[9] = (-sx) * scale[2]
	out[10] = (cy * cx) * scale[2]
	out[11] = 0

	out[12] = position[0]
	out[13] = position[1]
	out[14] = position[2]
	out[15] = 1
	return out
}

// Multiply stores a * b in out. Applying the result to a point is the same as applying b first, then a.
// out may alias a or b.
//
// Parameters:
//   - out: destination matrix
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - *mgl32.Mat4: out, for chaining
func Multiply(out, a, b *mgl32.Mat4) *mgl32.Mat4 {
	*out = a.Mul4(*b)
	return out
}

// Invert stores the inverse of m in out.
// If m is singular (|det| <= SingularEpsilon) out is left unchanged and nil is returned;
// callers pick their own fallback, such as skipping the draw.
//
// Parameters:
//   - out: destination matrix
//   - m: source matrix
//
// Returns:
//   - *mgl32.Mat4: out, or nil if m is singular
func Invert(out, m *mgl32.Mat4) *mgl32.Mat4 {
	det := m.Det()
	if math.Abs(float64(det)) <= SingularEpsilon {
		return nil
	}
	*out = m.Inv()
	return out
}

// Transpose stores the transpose of m in out. out may alias m.
//
// Parameters:
//   - out: destination matrix
//   - m: source matrix
//
// Returns:
//   - *mgl32.Mat4: out, for chaining
func Transpose(out, m *mgl32.Mat4) *mgl32.Mat4 {
	*out = m.Transpose()
	return out
}

// TransformPoint applies the full 4x4 matrix to p (w = 1) and performs the perspective divide.
// The divide is skipped when w is zero.
//
// Parameters:
//   - m: the transform
//   - p: the point
//
// Returns:
//   - mgl32.Vec3: the transformed point
func TransformPoint(m *mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] == 0 || v[3] == 1 {
		return v.Vec3()
	}
	inv := 1 / v[3]
	return mgl32.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// TransformDirection applies the upper 3x3 of m to d, ignoring translation.
//
// Parameters:
//   - m: the transform
//   - d: the direction
//
// Returns:
//   - mgl32.Vec3: the transformed direction (not normalized)
func TransformDirection(m *mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mat3().Mul3x1(d)
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space depth range [0, 1].
//
// Parameters:
//   - out: destination matrix
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - *mgl32.Mat4: out, for chaining
func Perspective(out *mgl32.Mat4, fovY, aspect, near, far float32) *mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
	return out
}

// LookAt creates a view matrix that transforms world coordinates into camera space.
//
// Parameters:
//   - out: destination matrix
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - *mgl32.Mat4: out, for chaining
func LookAt(out *mgl32.Mat4, eye, center, up mgl32.Vec3) *mgl32.Mat4 {
	z := eye.Sub(center)
	if z.Len() == 0 {
		z = mgl32.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() == 0 {
		x = mgl32.Vec3{1, 0, 0}
	}
	x = x.Normalize()

	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
	return out
}
