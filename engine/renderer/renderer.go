package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-frame/engine/frame"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is anything that can back a WebGPU surface, typically a window.Window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

type renderer struct {
	backendType          RendererBackendType
	backend              rendererBackend
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	released             bool
}

// Renderer is the GPU device a canvas drives. It satisfies frame.Device: each tick the canvas
// opens and closes a clearing render pass, and the owner calls Present once the tick is done.
//
// A Renderer is not safe for concurrent use; it belongs to the goroutine that ticks its canvas.
type Renderer interface {
	frame.Device

	// Present shows the surface image acquired by the frame's first render pass.
	// It does nothing if no pass ran this frame.
	Present()

	// SetPresentMode sets the present mode used by the next Resize.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// CreateUniformBuffer allocates a uniform buffer that can be written with WriteBuffer.
	//
	// Parameters:
	//   - label: debug label
	//   - size: size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer
	//   - error: error if allocation fails
	CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error)

	// WriteBuffer queues a write of data into buf at offset.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - offset: byte offset into buf
	//   - data: the bytes to write
	//
	// Returns:
	//   - error: error if the write is rejected
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error

	// Device returns the underlying WebGPU device.
	Device() *wgpu.Device

	// Queue returns the device's queue.
	Queue() *wgpu.Queue

	// SurfaceFormat returns the texture format of the configured surface.
	SurfaceFormat() wgpu.TextureFormat
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface source and configures the surface to its size.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - source: the surface source, usually the window
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: error if the GPU could not be initialized
func NewRenderer(backendType RendererBackendType, source SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		backendType: backendType,
		presentMode: PresentModeVSync,
		msaa:        MSAAOff,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(source.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, fmt.Errorf("init wgpu backend: %w", err)
		}
		r.backend = b
	}

	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(source.Width(), source.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	return r, nil
}

func (r *renderer) BeginRenderPass(clearColor [4]float64, clearDepth float32) error {
	return r.backend.BeginRenderPass(clearColor, clearDepth)
}

func (r *renderer) EndRenderPass() error {
	return r.backend.EndRenderPass()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	if r.released {
		return
	}
	// A failed reconfigure leaves the surface unconfigured; the next pass reports it.
	_ = r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Release() {
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
}

func (r *renderer) CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return r.backend.CreateUniformBuffer(label, size)
}

func (r *renderer) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error {
	return r.backend.WriteBuffer(buf, offset, data)
}

func (r *renderer) Device() *wgpu.Device {
	return r.backend.Device()
}

func (r *renderer) Queue() *wgpu.Queue {
	return r.backend.Queue()
}

func (r *renderer) SurfaceFormat() wgpu.TextureFormat {
	return r.backend.SurfaceFormat()
}
