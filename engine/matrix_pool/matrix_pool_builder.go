package matrix_pool

// MatrixPoolBuilderOption is a functional option for configuring a MatrixPool during construction.
type MatrixPoolBuilderOption func(*matrixPool)

// WithCapacity sets the number of slots pre-allocated by the pool.
// Values <= 0 are treated as DefaultCapacity.
//
// Parameters:
//   - capacity: initial slot count
//
// Returns:
//   - MatrixPoolBuilderOption: option function to apply
func WithCapacity(capacity int) MatrixPoolBuilderOption {
	return func(p *matrixPool) {
		if capacity <= 0 {
			capacity = DefaultCapacity
		}
		p.initialCapacity = capacity
	}
}
