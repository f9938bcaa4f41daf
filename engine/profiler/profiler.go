package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
)

// Stats is one reporting window of profiler output.
type Stats struct {
	FPS         float64
	FrameCount  uint64
	MaxDelta    float64
	Callbacks   int
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks tick rate, frame timing and memory statistics for a canvas.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	maxDelta       float64
	logEnabled     bool
	now            func() time.Time
	last           Stats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		logEnabled:     true,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per canvas tick, after the scheduled callbacks ran.
// Computes statistics when the update interval has elapsed.
// Statistics include: ticks per second, the largest delta time in the window, the number of
// scheduled callbacks, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - state: the frame state after the tick
//   - callbacks: number of callbacks the scheduler holds
//
// Returns:
//   - bool: true if a reporting window closed this tick, false otherwise
func (p *Profiler) Tick(state frame.State, callbacks int) bool {
	p.frameCount++
	p.maxDelta = max(p.maxDelta, state.DeltaTime)

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.last = Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		FrameCount:  state.FrameCount,
		MaxDelta:    p.maxDelta,
		Callbacks:   callbacks,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     gcCount,
		LastPauseUs: lastPauseUs,
		MaxPauseUs:  maxPauseUs,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	if p.logEnabled {
		s := p.last
		log.Printf("[Profiler] FPS: %.2f | Frame: %d | Max dt: %.4f s | Callbacks: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			s.FPS, s.FrameCount, s.MaxDelta, s.Callbacks, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
	}

	p.frameCount = 0
	p.maxDelta = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the statistics of the most recently closed reporting window.
//
// Returns:
//   - Stats: the last window, zero before the first one closes
func (p *Profiler) Last() Stats {
	return p.last
}
