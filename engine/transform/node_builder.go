package transform

import "github.com/go-gl/mathgl/mgl32"

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithID sets the ID of the Node.
//
// Parameters:
//   - id: identifier for the node
//
// Returns:
//   - NodeBuilderOption: functional option to set the ID
func WithID(id uint64) NodeBuilderOption {
	return func(n *node) {
		n.id = id
	}
}

// WithPosition sets the initial local position of the Node.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - NodeBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial local Euler rotation of the Node in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) NodeBuilderOption {
	return func(n *node) {
		n.rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithScale sets the initial local scale of the Node.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - NodeBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = mgl32.Vec3{sx, sy, sz}
	}
}
