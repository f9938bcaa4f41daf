package scheduler

// SchedulerBuilderOption is a functional option for configuring a Scheduler during construction.
type SchedulerBuilderOption func(*scheduler)

// WithCapacity pre-allocates room for the given number of callbacks.
//
// Parameters:
//   - capacity: expected callback count
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithCapacity(capacity int) SchedulerBuilderOption {
	return func(s *scheduler) {
		if capacity > 0 {
			s.slots = make([]slot, 0, capacity)
			s.sorted = make([]entry, 0, capacity)
		}
	}
}
