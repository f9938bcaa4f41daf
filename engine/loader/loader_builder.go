package loader

import "time"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers is an option builder that sets the maximum number of concurrent load workers.
//
// Parameters:
//   - n: the worker count, ignored if <= 0
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithQueueSize is an option builder that sets the task queue length of the worker pool.
//
// Parameters:
//   - n: the queue length, ignored if <= 0
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue size option to a loader
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithIdleTimeout is an option builder that sets how long an idle worker lingers before exiting.
//
// Parameters:
//   - d: the idle timeout
//
// Returns:
//   - LoaderBuilderOption: a function that applies the idle timeout option to a loader
func WithIdleTimeout(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		l.idleTimeout = d
	}
}

// WithLogErrors is an option builder that toggles logging of failed loads.
//
// Parameters:
//   - enabled: whether failures are logged when applied
//
// Returns:
//   - LoaderBuilderOption: a function that applies the log option to a loader
func WithLogErrors(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.logErrors = enabled
	}
}
