// Package frame holds the plain per-frame state records shared between the canvas and its collaborators.
package frame

import "github.com/go-gl/mathgl/mgl32"

// Device is the GPU capability a canvas drives each tick.
// The canvas only needs a liveness check (non-nil) and the ability to open and close the
// auto-clear render pass; everything else about the device belongs to its owner.
type Device interface {
	// BeginRenderPass starts a render pass that clears the color and depth targets.
	//
	// Parameters:
	//   - clearColor: RGBA clear color
	//   - clearDepth: depth clear value (typically 1.0)
	//
	// Returns:
	//   - error: error if the pass could not be started
	BeginRenderPass(clearColor [4]float64, clearDepth float32) error

	// EndRenderPass finishes the pass opened by BeginRenderPass and submits it.
	//
	// Returns:
	//   - error: error if the pass could not be finished
	EndRenderPass() error

	// Resize reconfigures the render targets to the given pixel size.
	//
	// Parameters:
	//   - width, height: new framebuffer size in pixels
	Resize(width, height int)

	// Release frees the device's GPU resources. The device must not be used afterwards.
	Release()
}

// State tracks frame timing.
type State struct {
	// Time is the timestamp passed to the most recent tick.
	Time float64
	// DeltaTime is Time minus the previous tick's timestamp.
	DeltaTime float64
	// FrameCount is the number of ticks since creation or the last reset.
	FrameCount uint64
}

// Viewport describes the drawable area of the canvas.
type Viewport struct {
	Width      float32
	Height     float32
	PixelRatio float32
	// Aspect is Width / Height, or 0 while Height is 0.
	Aspect float32
}

// NewViewport builds a Viewport and derives its aspect ratio.
//
// Parameters:
//   - width, height: size in canvas pixels
//   - pixelRatio: device pixels per canvas pixel
//
// Returns:
//   - Viewport: the viewport with Aspect filled in
func NewViewport(width, height, pixelRatio float32) Viewport {
	v := Viewport{Width: width, Height: height, PixelRatio: pixelRatio}
	if height != 0 {
		v.Aspect = width / height
	}
	return v
}

// Mouse describes the pointer relative to the canvas.
type Mouse struct {
	// X and Y are canvas-local pixel coordinates.
	X, Y float32
	// NormalizedX is in [-1, 1] from left to right.
	NormalizedX float32
	// NormalizedY is in [-1, 1] from bottom to top.
	NormalizedY float32
	// Buttons is the pressed-button bitmask.
	Buttons uint32
	IsOver  bool
	// IsDragging is Buttons > 0 while the pointer is over the canvas.
	IsDragging bool
}

// Normalize recomputes the normalized coordinates for the given viewport size.
// A zero-sized axis leaves its normalized coordinate at 0.
//
// Parameters:
//   - width, height: viewport size in canvas pixels
func (m *Mouse) Normalize(width, height float32) {
	m.NormalizedX, m.NormalizedY = 0, 0
	if width != 0 {
		m.NormalizedX = (m.X/width)*2 - 1
	}
	if height != 0 {
		m.NormalizedY = -((m.Y/height)*2 - 1)
	}
}

// Refresh recomputes IsDragging from Buttons and IsOver.
func (m *Mouse) Refresh() {
	m.IsDragging = m.Buttons > 0 && m.IsOver
}

// SceneState holds the active camera's matrices. It is set by a camera collaborator and
// cleared when that collaborator detaches.
type SceneState struct {
	ProjectionMatrix mgl32.Mat4
	ViewMatrix       mgl32.Mat4
	CameraPosition   mgl32.Vec3
}

// Context is the per-tick snapshot handed to scheduled callbacks and the frame callback.
type Context struct {
	Time       float64
	DeltaTime  float64
	FrameCount uint64
	Device     Device
	Viewport   Viewport
	Mouse      Mouse
}
