package matrix_pool

import "github.com/go-gl/mathgl/mgl32"

// DefaultCapacity is the number of slots pre-allocated by NewMatrixPool when no capacity option is given.
const DefaultCapacity = 64

// MatrixPool is an arena of scratch 4x4 matrices reclaimed in bulk once per frame.
//
// Acquire hands out the next unused slot; Reset rewinds the arena so the slots are handed out
// again. A matrix returned by Acquire is only valid until the next Reset: anything that must
// outlive the frame has to be copied into owned storage with Clone.
//
// MatrixPool is not safe for concurrent use. It is owned by a single canvas and reset by its tick.
type MatrixPool interface {
	// Acquire returns the next unused scratch matrix. Its contents are undefined until written.
	// When every slot is in use the pool grows by one slot; it never shrinks.
	//
	// Returns:
	//   - *mgl32.Mat4: a scratch matrix valid until the next Reset
	Acquire() *mgl32.Mat4

	// Reset rewinds the allocation index to zero. Must be called exactly once per tick,
	// before anything acquires a matrix for that frame.
	Reset()

	// Clone copies a scratch matrix into owned storage that survives Reset.
	//
	// Parameters:
	//   - m: the matrix to copy
	//
	// Returns:
	//   - mgl32.Mat4: an owned copy
	Clone(m *mgl32.Mat4) mgl32.Mat4

	// InUse returns the number of slots handed out since the last Reset.
	//
	// Returns:
	//   - int: slots in use
	InUse() int

	// Capacity returns the number of slots currently backing the pool.
	//
	// Returns:
	//   - int: backing slot count
	Capacity() int
}

type matrixPool struct {
	slots []*mgl32.Mat4
	next  int

	initialCapacity int
}

var _ MatrixPool = &matrixPool{}

// NewMatrixPool creates a MatrixPool with its backing store pre-allocated.
//
// Parameters:
//   - options: functional options to configure the pool
//
// Returns:
//   - MatrixPool: the newly created pool
func NewMatrixPool(options ...MatrixPoolBuilderOption) MatrixPool {
	p := &matrixPool{
		initialCapacity: DefaultCapacity,
	}
	for _, opt := range options {
		opt(p)
	}

	// One contiguous block; each slot points into it so growing never moves handed-out matrices.
	block := make([]mgl32.Mat4, p.initialCapacity)
	p.slots = make([]*mgl32.Mat4, p.initialCapacity)
	for i := range block {
		p.slots[i] = &block[i]
	}
	return p
}

func (p *matrixPool) Acquire() *mgl32.Mat4 {
	if p.next == len(p.slots) {
		p.slots = append(p.slots, new(mgl32.Mat4))
	}
	m := p.slots[p.next]
	p.next++
	return m
}

func (p *matrixPool) Reset() {
	p.next = 0
}

func (p *matrixPool) Clone(m *mgl32.Mat4) mgl32.Mat4 {
	return *m
}

func (p *matrixPool) InUse() int {
	return p.next
}

func (p *matrixPool) Capacity() int {
	return len(p.slots)
}
