package canvas

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/loader"
	"github.com/Carmen-Shannon/oxy-frame/engine/matrix_pool"
	"github.com/Carmen-Shannon/oxy-frame/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-frame/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type stubDevice struct {
	calls    []string
	released int
	beginErr error
}

func (d *stubDevice) BeginRenderPass(clearColor [4]float64, clearDepth float32) error {
	d.calls = append(d.calls, "begin")
	return d.beginErr
}

func (d *stubDevice) EndRenderPass() error {
	d.calls = append(d.calls, "end")
	return nil
}

func (d *stubDevice) Resize(width, height int) {}

func (d *stubDevice) Release() { d.released++ }

func newTestCanvas(options ...CanvasBuilderOption) (Canvas, *stubDevice) {
	dev := &stubDevice{}
	opts := append([]CanvasBuilderOption{WithDevice(dev), WithLogErrors(false)}, options...)
	return NewCanvas(opts...), dev
}

func TestTickTiming(t *testing.T) {
	c, _ := newTestCanvas()

	require.NoError(t, c.Tick(1.0))
	require.Equal(t, uint64(1), c.Frame().FrameCount)

	require.NoError(t, c.Tick(1.25))
	s := c.Frame()
	require.Equal(t, 1.25, s.Time)
	require.Equal(t, 0.25, s.DeltaTime)
	require.Equal(t, uint64(2), s.FrameCount)

	c.Reset()
	require.Equal(t, frame.State{}, c.Frame())

	require.NoError(t, c.Tick(0.5))
	require.Equal(t, 0.5, c.Frame().DeltaTime)
	require.Equal(t, uint64(1), c.Frame().FrameCount)
}

func TestTickWithoutDeviceIsNoop(t *testing.T) {
	c := NewCanvas(WithLogErrors(false))
	ran := false
	c.Register(func(frame.Context) error { ran = true; return nil }, 0)

	require.False(t, c.Ready())
	require.NoError(t, c.Tick(1))
	require.False(t, ran)
	require.Zero(t, c.Frame().FrameCount)

	dev := &stubDevice{}
	require.NoError(t, c.SetDevice(dev))
	require.NoError(t, c.Tick(2))
	require.True(t, ran)
}

func TestTickOrder(t *testing.T) {
	var order []string
	c, dev := newTestCanvas(WithFrameCallback(func(ctx frame.Context) {
		order = append(order, "frame")
		require.Equal(t, uint64(1), ctx.FrameCount)
	}))
	c.Register(func(ctx frame.Context) error {
		order = append(order, "scheduled")
		require.Equal(t, []string{"begin", "end"}, dev.calls)
		require.Same(t, dev, ctx.Device)
		return nil
	}, 0)

	require.NoError(t, c.Tick(1))
	require.Equal(t, []string{"scheduled", "frame"}, order)
}

func TestAutoClearDisabled(t *testing.T) {
	c, dev := newTestCanvas(WithAutoClear(false))
	require.NoError(t, c.Tick(1))
	require.Empty(t, dev.calls)
}

func TestTickResetsPool(t *testing.T) {
	c, _ := newTestCanvas()
	c.Register(func(frame.Context) error {
		c.Pool().Acquire()
		c.Pool().Acquire()
		return nil
	}, 0)

	require.NoError(t, c.Tick(1))
	require.Equal(t, 2, c.Pool().InUse())
	require.NoError(t, c.Tick(2))
	require.Equal(t, 2, c.Pool().InUse())
}

func TestTickFaultsAreReported(t *testing.T) {
	boom := errors.New("boom")
	c, dev := newTestCanvas()
	dev.beginErr = errors.New("lost surface")
	second := false
	c.Register(func(frame.Context) error { return boom }, 0)
	c.Register(func(frame.Context) error { second = true; return nil }, 1)

	err := c.Tick(1)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, dev.beginErr)
	require.True(t, second)
	require.Equal(t, err, c.LastError())
}

func TestFrameCallbackPanicIsReported(t *testing.T) {
	c, _ := newTestCanvas(WithFrameCallback(func(frame.Context) { panic("frame callback broke") }))
	ran := false
	c.Register(func(frame.Context) error { ran = true; return nil }, 0)

	var err error
	require.NotPanics(t, func() { err = c.Tick(1) })
	require.ErrorContains(t, err, "frame callback broke")
	require.True(t, ran)
	require.Equal(t, err, c.LastError())

	require.NotPanics(t, func() { _ = c.Tick(2) })
	require.Equal(t, uint64(2), c.Frame().FrameCount)
}

func TestMouseNormalization(t *testing.T) {
	c, _ := newTestCanvas(WithViewport(800, 600, 2))

	c.UpdateMousePosition(0, 0)
	m := c.Mouse()
	require.Equal(t, float32(-1), m.NormalizedX)
	require.Equal(t, float32(1), m.NormalizedY)

	c.UpdateMousePosition(800, 600)
	m = c.Mouse()
	require.Equal(t, float32(1), m.NormalizedX)
	require.Equal(t, float32(-1), m.NormalizedY)

	c.SetViewport(1600, 1200, 1)
	require.Equal(t, float32(0), c.Mouse().NormalizedX)
	require.Equal(t, float32(4)/3, c.Viewport().Aspect)
}

func TestMouseDragging(t *testing.T) {
	c, _ := newTestCanvas()
	c.UpdateMouseButtons(1)
	require.False(t, c.Mouse().IsDragging)
	c.SetMouseOver(true)
	require.True(t, c.Mouse().IsDragging)
	c.UpdateMouseButtons(0)
	require.False(t, c.Mouse().IsDragging)
}

func TestSceneState(t *testing.T) {
	c, _ := newTestCanvas()
	_, ok := c.Scene()
	require.False(t, ok)

	s := frame.SceneState{ViewMatrix: mgl32.Translate3D(0, 0, -5), CameraPosition: mgl32.Vec3{0, 0, 5}}
	c.SetScene(s)
	got, ok := c.Scene()
	require.True(t, ok)
	require.Equal(t, s, got)

	c.ClearScene()
	_, ok = c.Scene()
	require.False(t, ok)
}

func TestWorldMatrixUsesHierarchy(t *testing.T) {
	c, _ := newTestCanvas()
	group := transform.NewNode(transform.WithPosition(1, 0, 0))
	leaf := transform.NewNode(transform.WithPosition(0, 2, 0))

	var pos mgl32.Vec3
	c.Register(func(frame.Context) error {
		return c.Hierarchy().Scope(group, func(mgl32.Mat4) error {
			m := c.WorldMatrix(leaf)
			pos = m.Col(3).Vec3()
			return nil
		})
	}, 0)

	require.NoError(t, c.Tick(1))
	require.Equal(t, mgl32.Vec3{1, 2, 0}, pos)
}

func TestWorldMatrixOutsideTickLeavesPoolUntouched(t *testing.T) {
	c := NewCanvas(WithLogErrors(false))
	group := transform.NewNode(transform.WithPosition(1, 0, 0))
	leaf := transform.NewNode()

	for i := range 500 {
		leaf.SetPosition(0, float32(i), 0)
		require.NoError(t, c.Hierarchy().Scope(group, func(mgl32.Mat4) error {
			c.WorldMatrix(leaf)
			return nil
		}))
	}
	require.Zero(t, c.Pool().InUse())
	require.Equal(t, matrix_pool.DefaultCapacity, c.Pool().Capacity())
}

func TestDestroy(t *testing.T) {
	c, dev := newTestCanvas()
	c.Register(func(frame.Context) error { return nil }, 0)
	c.Lights().Add(light.NewDescriptor(light.KindPoint))

	release := make(chan struct{})
	h := c.Loader().Load("late", func() (any, error) {
		<-release
		return "texture", nil
	}, nil)

	c.Destroy()
	c.Destroy()

	require.Equal(t, 1, dev.released)
	require.Nil(t, c.Device())
	require.False(t, c.Ready())
	require.True(t, c.Destroyed())
	require.Zero(t, c.Scheduler().Len())
	require.Zero(t, c.Lights().Len())
	require.ErrorIs(t, c.SetDevice(&stubDevice{}), ErrDestroyed)

	close(release)
	c.Loader().Wait()
	require.NoError(t, c.Tick(5))
	require.Zero(t, c.Loader().Apply())
	require.False(t, h.Ready())
}

func TestLoadCompletionVisibleNextTick(t *testing.T) {
	c, _ := newTestCanvas(WithLoaderOptions(loader.WithWorkers(1)))
	boom := errors.New("missing file")

	ok := c.Loader().Load("ok", func() (any, error) { return 7, nil }, nil)
	bad := c.Loader().Load("bad", func() (any, error) { return nil, boom }, nil)
	c.Loader().Wait()

	require.False(t, ok.Ready())
	var seen []bool
	c.Register(func(frame.Context) error {
		seen = append(seen, ok.Ready())
		return nil
	}, 0)

	require.NoError(t, c.Tick(1))
	require.Equal(t, []bool{true}, seen)
	require.Equal(t, 7, ok.Value())
	require.ErrorIs(t, bad.Err(), boom)
	require.Len(t, c.LoadErrors(), 1)
	require.NoError(t, c.LastError())
}

func TestPanickingOnLoadDoesNotHaltTick(t *testing.T) {
	c, _ := newTestCanvas(WithLoaderOptions(loader.WithWorkers(1), loader.WithLogErrors(false)))

	bad := c.Loader().Load("a", func() (any, error) { return 1, nil }, func(loader.Handle) { panic("bad onLoad") })
	good := c.Loader().Load("b", func() (any, error) { return 2, nil }, nil)
	c.Loader().Wait()

	ran := false
	c.Register(func(frame.Context) error { ran = true; return nil }, 0)

	require.NotPanics(t, func() { require.NoError(t, c.Tick(1)) })
	require.True(t, ran)
	require.True(t, good.Ready())
	require.Equal(t, 2, good.Value())
	require.ErrorContains(t, bad.Err(), "bad onLoad")
	require.Len(t, c.LoadErrors(), 1)
}

func TestUnregisterThroughCanvas(t *testing.T) {
	c, _ := newTestCanvas()
	calls := 0
	tok := c.Register(func(frame.Context) error { calls++; return nil }, 0)
	require.NoError(t, c.Tick(1))
	c.Unregister(tok)
	c.Unregister(tok)
	c.Unregister(scheduler.Token{})
	require.NoError(t, c.Tick(2))
	require.Equal(t, 1, calls)
}
