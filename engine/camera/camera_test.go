package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/Carmen-Shannon/oxy-frame/engine/scheduler"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type stubTarget struct {
	viewport frame.Viewport
	scene    *frame.SceneState
	sched    scheduler.Scheduler
}

func newStubTarget(w, h float32) *stubTarget {
	return &stubTarget{viewport: frame.NewViewport(w, h, 1), sched: scheduler.NewScheduler()}
}

func (s *stubTarget) SetScene(st frame.SceneState) { s.scene = &st }
func (s *stubTarget) ClearScene()                  { s.scene = nil }
func (s *stubTarget) Viewport() frame.Viewport     { return s.viewport }
func (s *stubTarget) Register(fn scheduler.Callback, priority int) scheduler.Token {
	return s.sched.Register(fn, priority)
}
func (s *stubTarget) Unregister(token scheduler.Token) { s.sched.Unregister(token) }

func vecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	require.InDeltaSlice(t, want[:], got[:], 1e-4, "want %v got %v", want, got)
}

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	c := NewCamera(WithPosition(0, 2, 8), WithTarget(0, 2, 0))
	view := c.ViewMatrix()
	vecNear(t, mgl32.Vec3{0, 0, 0}, view.Mul4x1(mgl32.Vec4{0, 2, 8, 1}).Vec3())
	vecNear(t, mgl32.Vec3{0, 0, -8}, view.Mul4x1(mgl32.Vec4{0, 2, 0, 1}).Vec3())

	want := c.ProjectionMatrix().Mul4(view)
	got := c.ViewProjectionMatrix()
	require.InDeltaSlice(t, want[:], got[:], 1e-5)
}

func TestAttachPublishesAndFollowsViewport(t *testing.T) {
	target := newStubTarget(1600, 900)
	c := NewCamera()
	c.Attach(target)

	require.True(t, c.Attached())
	require.NotNil(t, target.scene)
	require.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)
	require.Equal(t, c.SceneState(), *target.scene)
	require.Equal(t, 1, target.sched.Len())

	ctx := frame.Context{Viewport: frame.NewViewport(400, 400, 1)}
	require.NoError(t, target.sched.ExecuteAll(ctx))
	require.Equal(t, float32(1), c.Aspect())
	require.Equal(t, c.ProjectionMatrix(), target.scene.ProjectionMatrix)

	c.Detach()
	c.Detach()
	require.Nil(t, target.scene)
	require.Zero(t, target.sched.Len())
	require.False(t, c.Attached())
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(2))
	c.SetAspect(0)
	require.Equal(t, float32(2), c.Aspect())
}

func TestControllerDrivesCamera(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(10), WithElevation(0), WithOrbitTarget(1, 0, 0))
	c := NewCamera(WithController(ctrl))
	vecNear(t, mgl32.Vec3{1, 0, 10}, c.Position())
	vecNear(t, mgl32.Vec3{1, 0, 0}, c.Target())

	ctrl.SetAzimuth(math.Pi / 2)
	c.Update()
	vecNear(t, mgl32.Vec3{11, 0, 0}, c.Position())
}

func TestOrbitClampsAndZoom(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(5), WithRadiusBounds(2, 8), WithElevationBounds(-0.5, 0.5), WithZoomSpeed(1))
	ctrl.Zoom(10)
	require.Equal(t, float32(2), ctrl.Radius())
	ctrl.Zoom(-100)
	require.Equal(t, float32(8), ctrl.Radius())

	ctrl.Orbit(0.25, 3)
	require.Equal(t, float32(0.5), ctrl.Elevation())
	require.Equal(t, float32(0.25), ctrl.Azimuth())
}

func TestPanMovesTargetAlongRight(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(10), WithElevation(0), WithPanSpeed(2))
	ctrl.Pan(1, 0)
	vecNear(t, mgl32.Vec3{2, 0, 0}, ctrl.Target())
	vecNear(t, mgl32.Vec3{2, 0, 10}, ctrl.Position())
}

func TestHandleMouseOrbitsWhileDragging(t *testing.T) {
	ctrl := NewOrbitController(WithMouseSensitivity(0.01), WithElevation(0))

	m := frame.Mouse{X: 100, Y: 100, Buttons: 1, IsOver: true}
	m.Refresh()
	require.False(t, ctrl.HandleMouse(m))

	m.X = 110
	require.True(t, ctrl.HandleMouse(m))
	require.InDelta(t, -0.1, ctrl.Azimuth(), 1e-6)

	m.Buttons = 0
	m.Refresh()
	require.False(t, ctrl.HandleMouse(m))
	require.InDelta(t, -0.1, ctrl.Azimuth(), 1e-6)
}

func TestGPUCameraUniform(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))
	u := NewGPUCameraUniform(c.SceneState())
	vp := c.ViewProjectionMatrix()
	require.InDeltaSlice(t, vp[:], u.ViewProj[:], 1e-5)

	buf := make([]byte, GPUCameraUniformSize)
	u.MarshalTo(buf)
	require.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
	require.Contains(t, GPUCameraUniformSource, "view_proj")
}
