package canvas

import (
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/loader"
	"github.com/Carmen-Shannon/oxy-frame/engine/matrix_pool"
	"github.com/Carmen-Shannon/oxy-frame/engine/profiler"
	"github.com/Carmen-Shannon/oxy-frame/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-frame/engine/transform"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ErrDestroyed is returned by operations that cannot be performed after Destroy.
var ErrDestroyed = errors.New("canvas destroyed")

// FrameCallback is invoked once per tick after the scheduled callbacks.
type FrameCallback func(ctx frame.Context)

// canvas is the implementation of the Canvas interface.
type canvas struct {
	id uuid.UUID

	device    frame.Device
	destroyed bool

	state    frame.State
	lastTime float64
	viewport frame.Viewport
	mouse    frame.Mouse

	scene    frame.SceneState
	hasScene bool

	autoClear  bool
	clearColor [4]float64
	clearDepth float32

	poolCapacity  int
	loaderOptions []loader.LoaderBuilderOption

	pool      matrix_pool.MatrixPool
	hierarchy transform.Hierarchy
	scheduler scheduler.Scheduler
	lights    light.Registry
	loader    loader.Loader
	profiler  *profiler.Profiler

	onFrame   FrameCallback
	logErrors bool
	lastErr   error
}

// Canvas is the per-session frame state container. It owns the matrix pool, the transform
// hierarchy, the render scheduler, the light registry and the asynchronous loader of one
// device session, and advances all of them once per Tick.
//
// A Canvas is single-threaded: every method must be called from the goroutine that calls Tick.
type Canvas interface {
	// ID returns the session identifier used in log lines.
	//
	// Returns:
	//   - uuid.UUID: the canvas ID
	ID() uuid.UUID

	// Tick advances the frame by one step.
	// It updates the frame timing, resets the matrix pool and hierarchy, applies finished loads,
	// optionally clears the render target, runs every scheduled callback in priority order and
	// finally calls the frame callback. Tick is a no-op while no device is set.
	//
	// Parameters:
	//   - time: the timestamp of this tick in seconds
	//
	// Returns:
	//   - error: the combined callback and device faults of this tick, or nil
	Tick(time float64) error

	// Reset zeroes the frame timing: time, delta time, frame count and the last tick time.
	Reset()

	// Frame returns the current frame timing.
	//
	// Returns:
	//   - frame.State: the frame state
	Frame() frame.State

	// Context returns the snapshot that the current tick hands to callbacks.
	//
	// Returns:
	//   - frame.Context: the frame context
	Context() frame.Context

	// SetDevice installs the device driven by Tick. Passing nil pauses ticking.
	//
	// Parameters:
	//   - d: the device
	//
	// Returns:
	//   - error: ErrDestroyed if the canvas has been destroyed
	SetDevice(d frame.Device) error

	// Device returns the current device, or nil.
	//
	// Returns:
	//   - frame.Device: the device
	Device() frame.Device

	// Ready reports whether the canvas has a device and has not been destroyed.
	//
	// Returns:
	//   - bool: true if Tick will run
	Ready() bool

	// SetViewport updates the drawable size and recomputes the aspect ratio and the
	// normalized mouse coordinates.
	//
	// Parameters:
	//   - width, height: size in canvas pixels
	//   - pixelRatio: device pixels per canvas pixel
	SetViewport(width, height, pixelRatio float32)

	// Viewport returns the current viewport.
	//
	// Returns:
	//   - frame.Viewport: the viewport
	Viewport() frame.Viewport

	// UpdateMousePosition records the pointer position in canvas-local pixels.
	//
	// Parameters:
	//   - x, y: canvas-local pointer position
	UpdateMousePosition(x, y float32)

	// UpdateMouseButtons records the pressed-button bitmask.
	//
	// Parameters:
	//   - buttons: the bitmask, bit 0 for the primary button
	UpdateMouseButtons(buttons uint32)

	// SetMouseOver records whether the pointer is over the canvas.
	//
	// Parameters:
	//   - over: true while the pointer is inside
	SetMouseOver(over bool)

	// Mouse returns the current pointer state.
	//
	// Returns:
	//   - frame.Mouse: the mouse state
	Mouse() frame.Mouse

	// SetScene installs the camera-provided matrices.
	//
	// Parameters:
	//   - s: the scene state
	SetScene(s frame.SceneState)

	// ClearScene removes the camera-provided matrices.
	ClearScene()

	// Scene returns the camera-provided matrices.
	//
	// Returns:
	//   - frame.SceneState: the scene state
	//   - bool: false if no camera is attached
	Scene() (frame.SceneState, bool)

	// Register schedules fn to run every tick. See scheduler.Scheduler.Register.
	//
	// Parameters:
	//   - fn: the callback
	//   - priority: lower runs first
	//
	// Returns:
	//   - scheduler.Token: the handle for Unregister
	Register(fn scheduler.Callback, priority int) scheduler.Token

	// Unregister removes a scheduled callback. Unknown tokens are ignored.
	//
	// Parameters:
	//   - token: the handle returned by Register
	Unregister(token scheduler.Token)

	// WorldMatrix returns the world matrix of node under the hierarchy's current ambient transform.
	//
	// Parameters:
	//   - node: the leaf node
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix(node transform.Node) mgl32.Mat4

	Scheduler() scheduler.Scheduler
	Hierarchy() transform.Hierarchy

	// Pool returns the scratch matrix pool. Its slots are reclaimed at the start of every tick,
	// so matrices acquired inside a callback are valid until the next Tick.
	Pool() matrix_pool.MatrixPool
	Lights() light.Registry
	Loader() loader.Loader

	// LastError returns the most recent tick fault, or nil.
	//
	// Returns:
	//   - error: the last fault
	LastError() error

	// LoadErrors returns the asynchronous load failures applied so far.
	//
	// Returns:
	//   - []error: the load failures
	LoadErrors() []error

	// Destroy releases the device, clears the scheduler and the light registry and closes the loader.
	// Loads still in flight complete into nothing. Safe to call more than once.
	Destroy()

	// Destroyed reports whether Destroy has been called.
	//
	// Returns:
	//   - bool: true after Destroy
	Destroyed() bool
}

var _ Canvas = &canvas{}

// NewCanvas creates a new Canvas with the provided options.
// Without WithDevice the canvas is created idle and Tick does nothing until SetDevice.
//
// Parameters:
//   - options: variadic list of CanvasBuilderOption functions to configure the canvas
//
// Returns:
//   - Canvas: the newly created canvas
func NewCanvas(options ...CanvasBuilderOption) Canvas {
	c := &canvas{
		id:           uuid.New(),
		autoClear:    true,
		clearColor:   [4]float64{0, 0, 0, 1},
		clearDepth:   1.0,
		poolCapacity: matrix_pool.DefaultCapacity,
		viewport:     frame.NewViewport(0, 0, 1),
		logErrors:    true,
	}
	for _, opt := range options {
		opt(c)
	}

	c.pool = matrix_pool.NewMatrixPool(matrix_pool.WithCapacity(c.poolCapacity))
	c.hierarchy = transform.NewHierarchy()
	c.scheduler = scheduler.NewScheduler()
	c.lights = light.NewRegistry()
	c.loader = loader.NewLoader(append([]loader.LoaderBuilderOption{loader.WithLogErrors(c.logErrors)}, c.loaderOptions...)...)
	return c
}

func (c *canvas) ID() uuid.UUID {
	return c.id
}

func (c *canvas) Tick(time float64) error {
	if c.device == nil || c.destroyed {
		return nil
	}

	c.state.DeltaTime = time - c.lastTime
	c.state.Time = time
	c.lastTime = time
	c.state.FrameCount++

	c.pool.Reset()
	c.hierarchy.Reset()
	c.loader.Apply()

	var errs []error
	if c.autoClear {
		if err := c.clear(); err != nil {
			errs = append(errs, err)
		}
	}

	ctx := c.Context()
	if err := c.scheduler.ExecuteAll(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := c.frameCallback(ctx); err != nil {
		errs = append(errs, err)
	}

	if c.profiler != nil {
		c.profiler.Tick(c.state, c.scheduler.Len())
	}

	if len(errs) == 0 {
		return nil
	}
	err := errors.Join(errs...)
	c.lastErr = err
	if c.logErrors {
		log.Printf("[Canvas %s] frame %d: %v", c.id, c.state.FrameCount, err)
	}
	return err
}

// frameCallback runs onFrame, converting a panic into an error.
func (c *canvas) frameCallback(ctx frame.Context) (err error) {
	if c.onFrame == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame callback: panic: %v", r)
		}
	}()
	c.onFrame(ctx)
	return nil
}

// clear opens and immediately closes a render pass so the device clears its targets.
func (c *canvas) clear() error {
	if err := c.device.BeginRenderPass(c.clearColor, c.clearDepth); err != nil {
		return fmt.Errorf("auto-clear: %w", err)
	}
	if err := c.device.EndRenderPass(); err != nil {
		return fmt.Errorf("auto-clear: %w", err)
	}
	return nil
}

func (c *canvas) Reset() {
	c.state = frame.State{}
	c.lastTime = 0
}

func (c *canvas) Frame() frame.State {
	return c.state
}

func (c *canvas) Context() frame.Context {
	return frame.Context{
		Time:       c.state.Time,
		DeltaTime:  c.state.DeltaTime,
		FrameCount: c.state.FrameCount,
		Device:     c.device,
		Viewport:   c.viewport,
		Mouse:      c.mouse,
	}
}

func (c *canvas) SetDevice(d frame.Device) error {
	if c.destroyed {
		return ErrDestroyed
	}
	c.device = d
	return nil
}

func (c *canvas) Device() frame.Device {
	return c.device
}

func (c *canvas) Ready() bool {
	return c.device != nil && !c.destroyed
}

func (c *canvas) SetViewport(width, height, pixelRatio float32) {
	c.viewport = frame.NewViewport(width, height, pixelRatio)
	c.mouse.Normalize(width, height)
}

func (c *canvas) Viewport() frame.Viewport {
	return c.viewport
}

func (c *canvas) UpdateMousePosition(x, y float32) {
	c.mouse.X, c.mouse.Y = x, y
	c.mouse.Normalize(c.viewport.Width, c.viewport.Height)
}

func (c *canvas) UpdateMouseButtons(buttons uint32) {
	c.mouse.Buttons = buttons
	c.mouse.Refresh()
}

func (c *canvas) SetMouseOver(over bool) {
	c.mouse.IsOver = over
	c.mouse.Refresh()
}

func (c *canvas) Mouse() frame.Mouse {
	return c.mouse
}

func (c *canvas) SetScene(s frame.SceneState) {
	c.scene = s
	c.hasScene = true
}

func (c *canvas) ClearScene() {
	c.scene = frame.SceneState{}
	c.hasScene = false
}

func (c *canvas) Scene() (frame.SceneState, bool) {
	return c.scene, c.hasScene
}

func (c *canvas) Register(fn scheduler.Callback, priority int) scheduler.Token {
	return c.scheduler.Register(fn, priority)
}

func (c *canvas) Unregister(token scheduler.Token) {
	c.scheduler.Unregister(token)
}

func (c *canvas) WorldMatrix(node transform.Node) mgl32.Mat4 {
	return c.hierarchy.WorldMatrix(node)
}

func (c *canvas) Scheduler() scheduler.Scheduler {
	return c.scheduler
}

func (c *canvas) Hierarchy() transform.Hierarchy {
	return c.hierarchy
}

func (c *canvas) Pool() matrix_pool.MatrixPool {
	return c.pool
}

func (c *canvas) Lights() light.Registry {
	return c.lights
}

func (c *canvas) Loader() loader.Loader {
	return c.loader
}

func (c *canvas) LastError() error {
	return c.lastErr
}

func (c *canvas) LoadErrors() []error {
	return c.loader.Errors()
}

func (c *canvas) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.loader.Close()
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	c.scheduler.Clear()
	c.lights.Clear()
	c.hierarchy.Reset()
	c.ClearScene()
	if c.logErrors {
		log.Printf("[Canvas %s] destroyed after %d frames", c.id, c.state.FrameCount)
	}
}

func (c *canvas) Destroyed() bool {
	return c.destroyed
}
