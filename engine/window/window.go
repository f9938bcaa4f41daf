package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and pointer event handling for a canvas.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in framebuffer pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetMouseMoveCallback sets the callback for pointer movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer position in window coordinates
	SetMouseMoveCallback(callback func(x, y float32))

	// SetMouseButtonsCallback sets the callback fired whenever a mouse button is pressed or released.
	//
	// Parameters:
	//   - callback: function receiving the pressed-button bitmask (bit 0 = left, 1 = right, 2 = middle)
	SetMouseButtonsCallback(callback func(buttons uint32))

	// SetCursorEnterCallback sets the callback for the pointer entering or leaving the window.
	//
	// Parameters:
	//   - callback: function receiving true on enter and false on leave
	SetCursorEnterCallback(callback func(entered bool))

	// SurfaceDescriptor returns the platform surface descriptor for WebGPU surface creation.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open.
	//
	// Returns:
	//   - bool: true until the window is closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// ProcessMessages runs the message loop until the window closes, calling the update
	// callback once per iteration. Must be called from the goroutine that created the window.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// ContentScale returns framebuffer pixels per window coordinate.
	//
	// Returns:
	//   - float32: the content scale, 1 on standard displays
	ContentScale() float32
}

type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	width  int
	height int
	scale  float32

	closeOnEscape bool
	buttons       uint32

	internalWindow any

	onUpdate       func()
	onResize       func(width, height int)
	onScroll       func(delta float32)
	onMouseMove    func(x, y float32)
	onMouseButtons func(buttons uint32)
	onCursorEnter  func(entered bool)
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a platform window.
// Locks the calling goroutine to its OS thread; ProcessMessages must run on the same goroutine.
//
// Parameters:
//   - options: variadic list of WindowBuilderOption functions to configure the window
//
// Returns:
//   - Window: the newly created window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:         "oxy-frame",
		maxWidth:      -1,
		maxHeight:     -1,
		minWidth:      320,
		minHeight:     200,
		width:         1280,
		height:        720,
		scale:         1,
		closeOnEscape: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetMouseButtonsCallback(callback func(buttons uint32)) {
	w.onMouseButtons = callback
}

func (w *engineWindow) SetCursorEnterCallback(callback func(entered bool)) {
	w.onCursorEnter = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) ContentScale() float32 {
	return w.scale
}

// setButton records a button transition and notifies the buttons callback.
// Buttons past bit 31 are ignored.
func (w *engineWindow) setButton(button int, pressed bool) {
	next := applyButton(w.buttons, button, pressed)
	if next == w.buttons {
		return
	}
	w.buttons = next
	if w.onMouseButtons != nil {
		w.onMouseButtons(next)
	}
}

func applyButton(mask uint32, button int, pressed bool) uint32 {
	if button < 0 || button > 31 {
		return mask
	}
	if pressed {
		return mask | 1<<uint(button)
	}
	return mask &^ (1 << uint(button))
}
