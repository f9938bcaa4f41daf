package transform

import (
	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/go-gl/mathgl/mgl32"
)

// identity is the ambient transform used when no parent is installed.
var identity = mgl32.Ident4()

type node struct {
	id uint64

	position mgl32.Vec3
	rotation mgl32.Vec3 // Euler angles in radians, composed as Ry * Rx * Rz
	scale    mgl32.Vec3

	// cache state
	world        mgl32.Mat4
	lastPosition mgl32.Vec3
	lastRotation mgl32.Vec3
	lastScale    mgl32.Vec3
	lastParent   mgl32.Mat4
	cached       bool
	dirty        bool

	recomputes uint64
}

// Node is a transform in the scene hierarchy: a local position, rotation and scale plus a
// cached world matrix.
//
// The cached world matrix is reused as long as the local TRS values and the parent transform
// it was composed against are unchanged. Any difference in either triggers a recompute.
type Node interface {
	// ID returns the node's identifier.
	//
	// Returns:
	//   - uint64: the node ID
	ID() uint64

	// Position returns the local translation.
	//
	// Returns:
	//   - mgl32.Vec3: position in parent space
	Position() mgl32.Vec3

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation around X, Y and Z
	Rotation() mgl32.Vec3

	// Scale returns the local scale.
	//
	// Returns:
	//   - mgl32.Vec3: scale factors
	Scale() mgl32.Vec3

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the local Euler rotation.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles in radians
	SetRotation(rx, ry, rz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// Dirty reports whether a local setter ran since the world matrix was last computed.
	//
	// Returns:
	//   - bool: true if the local TRS was touched
	Dirty() bool

	// WorldMatrix returns parent * localTRS, recomputing only when the local values or the
	// parent differ from those the cache was built with. A nil parent is treated as identity.
	//
	// Parameters:
	//   - parent: the ambient parent transform, or nil for the root
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix(parent *mgl32.Mat4) mgl32.Mat4
}

var _ Node = &node{}

// NewNode creates a Node at the origin with unit scale, configured with the given options.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{
		scale: mgl32.Vec3{1, 1, 1},
		dirty: true,
	}
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *node) ID() uint64 {
	return n.id
}

func (n *node) Position() mgl32.Vec3 {
	return n.position
}

func (n *node) Rotation() mgl32.Vec3 {
	return n.rotation
}

func (n *node) Scale() mgl32.Vec3 {
	return n.scale
}

func (n *node) SetPosition(x, y, z float32) {
	n.position = mgl32.Vec3{x, y, z}
	n.dirty = true
}

func (n *node) SetRotation(rx, ry, rz float32) {
	n.rotation = mgl32.Vec3{rx, ry, rz}
	n.dirty = true
}

func (n *node) SetScale(sx, sy, sz float32) {
	n.scale = mgl32.Vec3{sx, sy, sz}
	n.dirty = true
}

func (n *node) Dirty() bool {
	return n.dirty
}

func (n *node) WorldMatrix(parent *mgl32.Mat4) mgl32.Mat4 {
	if parent == nil {
		parent = &identity
	}
	if n.cached &&
		n.position == n.lastPosition &&
		n.rotation == n.lastRotation &&
		n.scale == n.lastScale &&
		*parent == n.lastParent {
		n.dirty = false
		return n.world
	}

	var local mgl32.Mat4
	common.Compose(&local, n.position, n.rotation, n.scale)
	common.Multiply(&n.world, parent, &local)

	n.lastPosition = n.position
	n.lastRotation = n.rotation
	n.lastScale = n.scale
	n.lastParent = *parent
	n.cached = true
	n.dirty = false
	n.recomputes++
	return n.world
}
