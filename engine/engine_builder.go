package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/canvas"
	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/Carmen-Shannon/oxy-frame/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithCanvas sets a pre-built canvas for the engine to drive. Canvas options and profiling
// settings are then ignored.
//
// Parameters:
//   - c: the canvas
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCanvas(c canvas.Canvas) EngineBuilderOption {
	return func(e *engine) {
		e.canvas = c
	}
}

// WithCanvasOptions adds options for the canvas the engine builds when none is supplied.
//
// Parameters:
//   - options: canvas options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCanvasOptions(options ...canvas.CanvasBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.canvasOptions = append(e.canvasOptions, options...)
	}
}

// WithWindow sets the host window. Without a window the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithDevice sets the device installed into the canvas when Run starts.
// Devices that implement Present are presented after every tick.
//
// Parameters:
//   - d: the device, usually a renderer.Renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDevice(d frame.Device) EngineBuilderOption {
	return func(e *engine) {
		e.device = d
	}
}

// WithCamera sets a camera that is attached to the canvas for the duration of Run.
// Scroll events zoom its controller, if it has one.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, the built canvas logs profiler stats
//   - interval: length of a reporting window, 1s if <= 0
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool, interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
		if interval > 0 {
			e.profileInterval = interval
		}
	}
}

// WithCPUProfile writes a pprof CPU profile into dir for the duration of Run.
//
// Parameters:
//   - dir: output directory, empty to disable
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCPUProfile(dir string) EngineBuilderOption {
	return func(e *engine) {
		e.cpuProfileDir = dir
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}
