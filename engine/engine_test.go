package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/canvas"
	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type presentingDevice struct {
	passes   int
	presents int
	released int
}

func (d *presentingDevice) BeginRenderPass(clearColor [4]float64, clearDepth float32) error {
	d.passes++
	return nil
}

func (d *presentingDevice) EndRenderPass() error { return nil }

func (d *presentingDevice) Resize(width, height int) {}

func (d *presentingDevice) Release() { d.released++ }

func (d *presentingDevice) Present() { d.presents++ }

type panickingDevice struct{ presentingDevice }

func (d *panickingDevice) BeginRenderPass(clearColor [4]float64, clearDepth float32) error {
	panic("device lost")
}

func TestHeadlessRunUntilQuit(t *testing.T) {
	dev := &presentingDevice{}
	c := canvas.NewCanvas(canvas.WithLogErrors(false))
	e := NewEngine(WithCanvas(c), WithDevice(dev), WithRenderFrameLimit(500))

	ticks := 0
	c.Register(func(ctx frame.Context) error {
		ticks++
		require.Equal(t, uint64(ticks), ctx.FrameCount)
		if ticks == 3 {
			e.Quit()
			e.Quit()
		}
		return nil
	}, 0)

	require.NoError(t, e.Run(context.Background()))
	require.GreaterOrEqual(t, ticks, 3)
	require.Equal(t, ticks, dev.presents)
	require.Equal(t, ticks, dev.passes)
	require.True(t, c.Destroyed())
	require.Equal(t, 1, dev.released)

	require.ErrorIs(t, e.Run(context.Background()), ErrAlreadyRunning)
}

func TestPanicStopsLoop(t *testing.T) {
	dev := &panickingDevice{}
	e := NewEngine(WithDevice(dev), WithCanvasOptions(canvas.WithLogErrors(false)), WithRenderFrameLimit(500))

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after a panic")
	}
	require.True(t, e.Canvas().Destroyed())
	require.GreaterOrEqual(t, e.Canvas().Frame().FrameCount, uint64(1))
	require.Zero(t, dev.presents)
}

func TestHeadlessRunStopsOnContext(t *testing.T) {
	e := NewEngine(WithDevice(&presentingDevice{}), WithCanvasOptions(canvas.WithLogErrors(false)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after the context was cancelled")
	}
	require.True(t, e.Canvas().Destroyed())
	require.Greater(t, e.Canvas().Frame().FrameCount, uint64(0))
}

func TestRunAttachesCamera(t *testing.T) {
	c := canvas.NewCanvas(canvas.WithLogErrors(false), canvas.WithViewport(800, 600, 1))
	cam := camera.NewCamera(camera.WithPosition(0, 0, 5))
	e := NewEngine(WithCanvas(c), WithDevice(&presentingDevice{}), WithCamera(cam))

	var seen frame.SceneState
	var ok bool
	c.Register(func(ctx frame.Context) error {
		seen, ok = c.Scene()
		e.Quit()
		return nil
	}, 0)

	require.NoError(t, e.Run(context.Background()))
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{0, 0, 5}, seen.CameraPosition)
	require.False(t, cam.Attached())
}

func TestRenderFrameLimit(t *testing.T) {
	e := NewEngine().(*engine)

	e.SetRenderFrameLimit(100)
	require.Equal(t, 10*time.Millisecond, e.renderFrameLimit)

	e.SetRenderFrameLimit(0)
	require.Zero(t, e.renderFrameLimit)

	e.SetRenderFrameLimit(-5)
	require.Zero(t, e.renderFrameLimit)
}

func TestBuiltCanvasGetsProfiler(t *testing.T) {
	e := NewEngine(WithProfiling(true, 0)).(*engine)
	require.Equal(t, time.Second, e.profileInterval)
	require.NotNil(t, e.Canvas())
	require.Nil(t, e.Window())
}
