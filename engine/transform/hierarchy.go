package transform

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrCyclicNesting is returned when a group is entered while it is already on the ambient stack.
	ErrCyclicNesting = errors.New("transform: group is already an ancestor of the current scope")

	// ErrUnbalancedExit is returned by Exit when no scope is open.
	ErrUnbalancedExit = errors.New("transform: exit without matching enter")

	// ErrNilNode is returned when a nil Node is entered.
	ErrNilNode = errors.New("transform: nil node")
)

// defaultStackCapacity is the nesting depth pre-allocated for the ambient stack.
const defaultStackCapacity = 16

type hierarchy struct {
	// stack[i] is the world matrix installed by groups[i].
	stack  []mgl32.Mat4
	groups []Node

	stackCapacity int
}

// Hierarchy tracks the ambient parent transform while nested grouping scopes are traversed.
//
// Entering a group composes the group's world matrix against the current ambient transform and
// installs it for descendants; leaving restores the previous one. With no scope open the ambient
// transform is identity. Scope keeps enter/exit balanced even when the body returns an error or panics.
type Hierarchy interface {
	// Current returns the ambient parent transform, identity at the root.
	//
	// Returns:
	//   - mgl32.Mat4: the ambient transform
	Current() mgl32.Mat4

	// Depth returns the number of open scopes.
	//
	// Returns:
	//   - int: nesting depth
	Depth() int

	// Enter computes the group's world matrix and installs it as the ambient transform.
	// Every successful Enter must be paired with Exit; prefer Scope.
	//
	// Parameters:
	//   - group: the grouping node
	//
	// Returns:
	//   - error: ErrCyclicNesting if group is already open, ErrNilNode if group is nil
	Enter(group Node) error

	// Exit restores the ambient transform that was active before the matching Enter.
	//
	// Returns:
	//   - error: ErrUnbalancedExit if no scope is open
	Exit() error

	// Scope enters group, runs fn with the group's world matrix as the explicit ambient transform,
	// and exits again. Scopes left open by fn are closed as well.
	//
	// Parameters:
	//   - group: the grouping node
	//   - fn: the body rendering the group's descendants
	//
	// Returns:
	//   - error: the Enter error, or the error returned by fn
	Scope(group Node, fn func(ambient mgl32.Mat4) error) error

	// WorldMatrix returns the leaf's world matrix composed against the current ambient transform.
	//
	// Parameters:
	//   - leaf: the node
	//
	// Returns:
	//   - mgl32.Mat4: ambient * localTRS
	WorldMatrix(leaf Node) mgl32.Mat4

	// Reset closes every open scope.
	Reset()
}

var _ Hierarchy = &hierarchy{}

// NewHierarchy creates an empty Hierarchy.
//
// Parameters:
//   - options: functional options to configure the hierarchy
//
// Returns:
//   - Hierarchy: the newly created hierarchy
func NewHierarchy(options ...HierarchyBuilderOption) Hierarchy {
	h := &hierarchy{
		stackCapacity: defaultStackCapacity,
	}
	for _, option := range options {
		option(h)
	}
	h.stack = make([]mgl32.Mat4, 0, h.stackCapacity)
	h.groups = make([]Node, 0, h.stackCapacity)
	return h
}

func (h *hierarchy) Current() mgl32.Mat4 {
	if len(h.stack) == 0 {
		return identity
	}
	return h.stack[len(h.stack)-1]
}

func (h *hierarchy) Depth() int {
	return len(h.stack)
}

func (h *hierarchy) Enter(group Node) error {
	if group == nil {
		return ErrNilNode
	}
	for _, open := range h.groups {
		if open == group {
			return ErrCyclicNesting
		}
	}
	parent := h.currentRef()
	world := group.WorldMatrix(parent)
	h.stack = append(h.stack, world)
	h.groups = append(h.groups, group)
	return nil
}

func (h *hierarchy) Exit() error {
	if len(h.stack) == 0 {
		return ErrUnbalancedExit
	}
	h.unwindTo(len(h.stack) - 1)
	return nil
}

func (h *hierarchy) Scope(group Node, fn func(ambient mgl32.Mat4) error) error {
	if err := h.Enter(group); err != nil {
		return err
	}
	base := len(h.stack) - 1
	defer h.unwindTo(base)
	return fn(h.stack[base])
}

func (h *hierarchy) WorldMatrix(leaf Node) mgl32.Mat4 {
	return leaf.WorldMatrix(h.currentRef())
}

func (h *hierarchy) Reset() {
	h.unwindTo(0)
}

// currentRef returns a pointer to the ambient transform without copying it.
func (h *hierarchy) currentRef() *mgl32.Mat4 {
	if len(h.stack) == 0 {
		return &identity
	}
	return &h.stack[len(h.stack)-1]
}

// unwindTo pops scopes until depth remain.
func (h *hierarchy) unwindTo(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(h.stack) {
		return
	}
	clear(h.groups[depth:])
	h.stack = h.stack[:depth]
	h.groups = h.groups[:depth]
}
