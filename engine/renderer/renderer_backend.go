package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// rendererBackend is the GPU-API-specific half of the Renderer.
type rendererBackend interface {
	ConfigureSurface(width, height int) error
	SetPresentMode(mode PresentMode)
	BeginRenderPass(clearColor [4]float64, clearDepth float32) error
	EndRenderPass() error
	Present()
	CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error)
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	SurfaceFormat() wgpu.TextureFormat
	Release()
}
