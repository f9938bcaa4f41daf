package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval is an option builder that sets the length of a reporting window.
//
// Parameters:
//   - d: the window length, ignored if <= 0
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval option to a profiler
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogging is an option builder that toggles the log line written per reporting window.
//
// Parameters:
//   - enabled: whether to log
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logging option to a profiler
func WithLogging(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logEnabled = enabled
	}
}

// WithClock is an option builder that replaces the wall clock used to close reporting windows.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the clock option to a profiler
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}
