package canvas

import (
	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/Carmen-Shannon/oxy-frame/engine/loader"
	"github.com/Carmen-Shannon/oxy-frame/engine/profiler"
)

// CanvasBuilderOption is a functional option for configuring a Canvas via NewCanvas.
type CanvasBuilderOption func(*canvas)

// WithDevice is an option builder that sets the device the canvas drives.
//
// Parameters:
//   - d: the device
//
// Returns:
//   - CanvasBuilderOption: a function that applies the device option to a canvas
func WithDevice(d frame.Device) CanvasBuilderOption {
	return func(c *canvas) {
		c.device = d
	}
}

// WithAutoClear is an option builder that toggles clearing the render target at the start of each tick.
// Enabled by default.
//
// Parameters:
//   - enabled: whether to clear
//
// Returns:
//   - CanvasBuilderOption: a function that applies the auto-clear option to a canvas
func WithAutoClear(enabled bool) CanvasBuilderOption {
	return func(c *canvas) {
		c.autoClear = enabled
	}
}

// WithClearColor is an option builder that sets the auto-clear color. Defaults to opaque black.
//
// Parameters:
//   - r, g, b, a: the clear color components
//
// Returns:
//   - CanvasBuilderOption: a function that applies the clear color option to a canvas
func WithClearColor(r, g, b, a float64) CanvasBuilderOption {
	return func(c *canvas) {
		c.clearColor = [4]float64{r, g, b, a}
	}
}

// WithClearDepth is an option builder that sets the auto-clear depth value. Defaults to 1.
//
// Parameters:
//   - depth: the depth clear value
//
// Returns:
//   - CanvasBuilderOption: a function that applies the clear depth option to a canvas
func WithClearDepth(depth float32) CanvasBuilderOption {
	return func(c *canvas) {
		c.clearDepth = depth
	}
}

// WithFrameCallback is an option builder that sets the function called at the end of every tick.
//
// Parameters:
//   - fn: the frame callback
//
// Returns:
//   - CanvasBuilderOption: a function that applies the frame callback option to a canvas
func WithFrameCallback(fn FrameCallback) CanvasBuilderOption {
	return func(c *canvas) {
		c.onFrame = fn
	}
}

// WithMatrixPoolCapacity is an option builder that sets the initial number of scratch matrices.
//
// Parameters:
//   - n: initial pool capacity
//
// Returns:
//   - CanvasBuilderOption: a function that applies the capacity option to a canvas
func WithMatrixPoolCapacity(n int) CanvasBuilderOption {
	return func(c *canvas) {
		c.poolCapacity = n
	}
}

// WithViewport is an option builder that sets the initial viewport.
//
// Parameters:
//   - width, height: size in canvas pixels
//   - pixelRatio: device pixels per canvas pixel
//
// Returns:
//   - CanvasBuilderOption: a function that applies the viewport option to a canvas
func WithViewport(width, height, pixelRatio float32) CanvasBuilderOption {
	return func(c *canvas) {
		c.viewport = frame.NewViewport(width, height, pixelRatio)
	}
}

// WithProfiler is an option builder that attaches a profiler ticked after every frame.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - CanvasBuilderOption: a function that applies the profiler option to a canvas
func WithProfiler(p *profiler.Profiler) CanvasBuilderOption {
	return func(c *canvas) {
		c.profiler = p
	}
}

// WithLoaderOptions is an option builder that forwards options to the canvas's loader.
//
// Parameters:
//   - options: loader options
//
// Returns:
//   - CanvasBuilderOption: a function that applies the loader options to a canvas
func WithLoaderOptions(options ...loader.LoaderBuilderOption) CanvasBuilderOption {
	return func(c *canvas) {
		c.loaderOptions = append(c.loaderOptions, options...)
	}
}

// WithLogErrors is an option builder that toggles logging of tick faults and load failures.
// Faults are recorded in LastError and LoadErrors either way.
//
// Parameters:
//   - enabled: whether to log
//
// Returns:
//   - CanvasBuilderOption: a function that applies the logging option to a canvas
func WithLogErrors(enabled bool) CanvasBuilderOption {
	return func(c *canvas) {
		c.logErrors = enabled
	}
}
