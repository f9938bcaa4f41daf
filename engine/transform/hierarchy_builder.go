package transform

// HierarchyBuilderOption is a functional option for configuring a Hierarchy during construction.
type HierarchyBuilderOption func(h *hierarchy)

// WithStackCapacity pre-allocates room for the given nesting depth.
// Deeper nesting still works but grows the stack once.
//
// Parameters:
//   - depth: expected maximum nesting depth
//
// Returns:
//   - HierarchyBuilderOption: option function to apply
func WithStackCapacity(depth int) HierarchyBuilderOption {
	return func(h *hierarchy) {
		if depth > 0 {
			h.stackCapacity = depth
		}
	}
}
