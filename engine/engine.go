package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/canvas"
	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/Carmen-Shannon/oxy-frame/engine/profiler"
	"github.com/Carmen-Shannon/oxy-frame/engine/window"

	"github.com/pkg/profile"
)

// ErrAlreadyRunning is returned by Run when the engine is already running or has finished.
var ErrAlreadyRunning = errors.New("engine already ran")

// defaultHeadlessRate is the tick interval used without a window or frame limit.
const defaultHeadlessRate = time.Second / 60

// presenter is implemented by devices that show the frame after the tick, such as renderer.Renderer.
type presenter interface {
	Present()
}

// engine implements the Engine interface.
// Drives one canvas from the window's message loop, or from a ticker when headless.
type engine struct {
	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	device frame.Device
	camera camera.Camera

	canvas        canvas.Canvas
	canvasOptions []canvas.CanvasBuilderOption

	profilingEnabled bool
	profileInterval  time.Duration
	cpuProfileDir    string

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	start            time.Time
	lastTick         time.Time
}

// Engine is the main entry point for an application.
// It owns a canvas, feeds it window events and calls its Tick once per host frame.
type Engine interface {
	// Canvas returns the driven canvas.
	//
	// Returns:
	//   - canvas.Canvas: the canvas instance
	Canvas() canvas.Canvas

	// Window returns the host window, or nil when headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default). Headless engines tick at 60Hz when uncapped.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run installs the device, attaches the camera and ticks the canvas until the window closes,
	// Quit is called or ctx is done. The canvas is destroyed on return.
	// With a window, Run must be called from the goroutine that created the window.
	//
	// Parameters:
	//   - ctx: cancels the loop when done
	//
	// Returns:
	//   - error: ErrAlreadyRunning on a second call, or an error installing the device
	Run(ctx context.Context) error

	// Quit stops the loop after the current tick.
	// Safe to call multiple times and from any goroutine; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// When no canvas is supplied one is built from the canvas options, with a profiler if profiling is enabled.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:     make(chan struct{}),
		profileInterval: time.Second,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.canvas == nil {
		opts := e.canvasOptions
		if e.profilingEnabled {
			opts = append(opts, canvas.WithProfiler(profiler.NewProfiler(profiler.WithInterval(e.profileInterval))))
		}
		e.canvas = canvas.NewCanvas(opts...)
	}

	return e
}

func (e *engine) Canvas() canvas.Canvas {
	return e.canvas
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if e.cpuProfileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(e.cpuProfileDir), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	if e.device != nil {
		if err := e.canvas.SetDevice(e.device); err != nil {
			return err
		}
	}
	defer e.canvas.Destroy()

	if e.window != nil {
		e.bindWindow()
	}
	if e.camera != nil {
		e.camera.Attach(e.canvas)
		defer e.camera.Detach()
	}

	e.start = time.Now()
	e.lastTick = e.start
	log.Printf("[Engine] running canvas %s", e.canvas.ID())

	if e.window != nil {
		e.runWindowed(ctx)
	} else {
		e.runHeadless(ctx)
	}

	log.Printf("[Engine] stopped after %d frames", e.canvas.Frame().FrameCount)
	return nil
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// bindWindow routes window events into the canvas and sets the initial viewport.
func (e *engine) bindWindow() {
	w := e.window
	c := e.canvas

	resize := func(width, height int) {
		scale := w.ContentScale()
		if scale <= 0 {
			scale = 1
		}
		c.SetViewport(float32(width)/scale, float32(height)/scale, scale)
		if d := c.Device(); d != nil {
			d.Resize(width, height)
		}
	}
	resize(w.Width(), w.Height())

	w.SetResizeCallback(resize)
	w.SetMouseMoveCallback(c.UpdateMousePosition)
	w.SetMouseButtonsCallback(c.UpdateMouseButtons)
	w.SetCursorEnterCallback(c.SetMouseOver)
	w.SetScrollCallback(func(delta float32) {
		if e.camera == nil || e.camera.Controller() == nil {
			return
		}
		e.camera.Controller().Zoom(delta)
	})
}

// runWindowed ticks from the window's message loop until it closes.
func (e *engine) runWindowed(ctx context.Context) {
	e.window.SetUpdateCallback(func() {
		if e.stopping(ctx) {
			e.window.RequestClose()
			return
		}
		e.tick()
		e.limit()
	})
	e.window.ProcessMessages()
	e.window.SetUpdateCallback(nil)
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] closing window: %v", err)
	}
}

// runHeadless ticks on a ticker until Quit or ctx is done.
func (e *engine) runHeadless(ctx context.Context) {
	rate := e.renderFrameLimit
	if rate <= 0 {
		rate = defaultHeadlessRate
	}
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.quitChannel:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick advances the canvas with seconds since Run started and presents the frame.
// Faults are logged and kept by the canvas. A panic that escapes the canvas is logged and stops the loop.
func (e *engine) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] panic in frame %d: %v", e.canvas.Frame().FrameCount, r)
			e.Quit()
		}
	}()
	e.lastTick = time.Now()
	_ = e.canvas.Tick(e.lastTick.Sub(e.start).Seconds())
	if p, ok := e.canvas.Device().(presenter); ok {
		p.Present()
	}
}

// limit sleeps out the rest of the frame when a frame limit is set.
func (e *engine) limit() {
	if e.renderFrameLimit <= 0 {
		return
	}
	if remaining := e.renderFrameLimit - time.Since(e.lastTick); remaining > 0 {
		time.Sleep(remaining)
	}
}

func (e *engine) stopping(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}
