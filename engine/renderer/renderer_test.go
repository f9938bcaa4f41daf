package renderer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls    []string
	released int
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.calls = append(f.calls, "configure")
	return nil
}
func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.calls = append(f.calls, "present-mode") }
func (f *fakeBackend) BeginRenderPass(clearColor [4]float64, clearDepth float32) error {
	f.calls = append(f.calls, "begin")
	return nil
}
func (f *fakeBackend) EndRenderPass() error {
	f.calls = append(f.calls, "end")
	return errors.New("lost")
}
func (f *fakeBackend) Present() { f.calls = append(f.calls, "present") }
func (f *fakeBackend) CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return nil, nil
}
func (f *fakeBackend) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error { return nil }
func (f *fakeBackend) Device() *wgpu.Device                                            { return nil }
func (f *fakeBackend) Queue() *wgpu.Queue                                              { return nil }
func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat                               { return wgpu.TextureFormatBGRA8Unorm }
func (f *fakeBackend) Release()                                                        { f.released++ }

func TestRendererDelegatesToBackend(t *testing.T) {
	fb := &fakeBackend{}
	r := &renderer{backend: fb}

	require.NoError(t, r.BeginRenderPass([4]float64{0, 0, 0, 1}, 1))
	require.Error(t, r.EndRenderPass())
	r.Present()
	r.Resize(800, 600)
	require.Equal(t, []string{"begin", "end", "present", "configure"}, fb.calls)

	r.Release()
	r.Release()
	r.Resize(10, 10)
	require.Equal(t, 1, fb.released)
	require.Len(t, fb.calls, 4)
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{}
	WithPresentMode(PresentModeUncapped)(r)
	WithMSAA(0)(r)
	WithForceSoftwareRenderer(true)(r)

	require.Equal(t, PresentModeUncapped, r.presentMode)
	require.Equal(t, MSAAOff, r.msaa)
	require.True(t, r.forceFallbackAdapter)
}
