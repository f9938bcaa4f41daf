package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// errSurfaceNotConfigured is returned when a pass is requested before ConfigureSurface.
var errSurfaceNotConfigured = errors.New("surface not configured")

type wgpuRendererBackendImpl struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	configured    bool

	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount

	// Surface image held from the first pass of a frame until Present.
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter, device and queue.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("nil surface descriptor")
	}

	b := &wgpuRendererBackendImpl{
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Canvas Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()
	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		// Minimized window; keep the previous configuration.
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)

	if count > 1 {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		b.msaaTexture = tex
		if b.msaaTextureView, err = tex.CreateView(nil); err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	b.depthTexture = depth
	if b.depthTextureView, err = depth.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	b.configured = true
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) BeginRenderPass(clearColor [4]float64, clearDepth float32) error {
	if !b.configured {
		return errSurfaceNotConfigured
	}
	if b.framePass != nil {
		return errors.New("render pass already open")
	}

	if b.frameSurface == nil {
		surfaceTexture, err := b.surface.GetCurrentTexture()
		if err != nil {
			return fmt.Errorf("acquire surface texture: %w", err)
		}
		view, err := surfaceTexture.CreateView(nil)
		if err != nil {
			surfaceTexture.Release()
			return fmt.Errorf("create surface view: %w", err)
		}
		b.frameSurface = surfaceTexture
		b.frameView = view
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	color := wgpu.RenderPassColorAttachment{
		View:    b.frameView,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: clearColor[0], G: clearColor[1], B: clearColor[2], A: clearColor[3],
		},
	}
	if b.sampleCount > 1 {
		color.View = b.msaaTextureView
		color.ResolveTarget = b.frameView
		color.StoreOp = wgpu.StoreOpDiscard
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: clearDepth,
		},
	})
	return nil
}

func (b *wgpuRendererBackendImpl) EndRenderPass() error {
	if b.framePass == nil {
		return errors.New("no render pass open")
	}
	b.framePass.End()
	b.framePass = nil

	encoder := b.frameEncoder
	b.frameEncoder = nil
	defer encoder.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	defer commandBuffer.Release()
	b.queue.Submit(commandBuffer)
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.frameView.Release()
	b.frameSurface.Release()
	b.frameView = nil
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error {
	return b.queue.WriteBuffer(buf, offset, data)
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	return b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) Release() {
	if b.framePass != nil {
		b.framePass.End()
		b.framePass = nil
	}
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
	b.releaseTargets()
	b.configured = false

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// releaseTargets frees the size-dependent MSAA and depth targets.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}
