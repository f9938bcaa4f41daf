package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
	"github.com/Carmen-Shannon/oxy-frame/engine/scheduler"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPriority is the scheduler priority of an attached camera's update callback.
// It runs ahead of ordinary draw callbacks so they see this tick's matrices.
const DefaultPriority = math.MinInt32 / 2

// SceneTarget is the part of a canvas a camera attaches to.
type SceneTarget interface {
	SetScene(s frame.SceneState)
	ClearScene()
	Viewport() frame.Viewport
	Register(fn scheduler.Callback, priority int) scheduler.Token
	Unregister(token scheduler.Token)
}

type cameraImpl struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller Controller
	priority   int

	attached SceneTarget
	token    scheduler.Token
}

// Camera is a perspective camera that publishes its matrices to a canvas as the scene state.
// While attached it refreshes once per tick: the aspect follows the canvas viewport and the
// optional controller is fed the canvas mouse.
type Camera interface {
	// Position returns the eye position.
	Position() mgl32.Vec3

	// Target returns the point the camera looks at.
	Target() mgl32.Vec3

	// Up returns the up vector.
	Up() mgl32.Vec3

	Fov() float32
	Aspect() float32
	Near() float32
	Far() float32

	// ViewMatrix returns the world-to-camera matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection matrix (WebGPU depth range).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// SceneState returns the matrices in the form a canvas stores them.
	//
	// Returns:
	//   - frame.SceneState: the scene state
	SceneState() frame.SceneState

	// Controller returns the attached controller, or nil.
	Controller() Controller

	SetPosition(x, y, z float32)
	SetTarget(x, y, z float32)
	SetUp(x, y, z float32)
	SetFov(fov float32)

	// SetAspect sets the aspect ratio. Values <= 0 are ignored.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	SetNear(near float32)
	SetFar(far float32)
	SetController(ctrl Controller)

	// Update recomputes the matrices, taking the eye and target from the controller when one is set.
	Update()

	// Attach publishes this camera's matrices to target and keeps them current every tick.
	// A camera attached elsewhere is detached first.
	//
	// Parameters:
	//   - target: the canvas to drive
	Attach(target SceneTarget)

	// Detach stops the per-tick refresh and clears the target's scene state.
	Detach()

	// Attached reports whether the camera is attached to a canvas.
	Attached() bool
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the provided options and computes its initial matrices.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position: mgl32.Vec3{0, 0, 5},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      45.0 * (math.Pi / 180.0), // radians
		aspect:   1.0,
		near:     0.1,
		far:      100.0,
		priority: DefaultPriority,
	}
	for _, option := range options {
		option(c)
	}
	c.Update()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SceneState() frame.SceneState {
	return frame.SceneState{
		ProjectionMatrix: c.projectionMatrix,
		ViewMatrix:       c.viewMatrix,
		CameraPosition:   c.position,
	}
}

func (c *cameraImpl) Controller() Controller {
	return c.controller
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.position = mgl32.Vec3{x, y, z}
	c.Update()
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.target = mgl32.Vec3{x, y, z}
	c.Update()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.up = mgl32.Vec3{x, y, z}
	c.Update()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.Update()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.Update()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.Update()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.Update()
}

func (c *cameraImpl) SetController(ctrl Controller) {
	c.controller = ctrl
	c.Update()
}

func (c *cameraImpl) Update() {
	if c.controller != nil {
		c.position = c.controller.Position()
		c.target = c.controller.Target()
	}
	common.LookAt(&c.viewMatrix, c.position, c.target, c.up)
	common.Perspective(&c.projectionMatrix, c.fov, c.aspect, c.near, c.far)
	common.Multiply(&c.viewProjectionMatrix, &c.projectionMatrix, &c.viewMatrix)
	if c.attached != nil {
		c.attached.SetScene(c.SceneState())
	}
}

func (c *cameraImpl) Attach(target SceneTarget) {
	if c.attached != nil {
		c.Detach()
	}
	c.attached = target
	if a := target.Viewport().Aspect; a > 0 {
		c.aspect = a
	}
	c.token = target.Register(c.refresh, c.priority)
	c.Update()
}

func (c *cameraImpl) Detach() {
	if c.attached == nil {
		return
	}
	c.attached.Unregister(c.token)
	c.attached.ClearScene()
	c.attached = nil
	c.token = scheduler.Token{}
}

func (c *cameraImpl) Attached() bool {
	return c.attached != nil
}

// refresh is the per-tick callback registered by Attach.
func (c *cameraImpl) refresh(ctx frame.Context) error {
	if a := ctx.Viewport.Aspect; a > 0 {
		c.aspect = a
	}
	if c.controller != nil {
		c.controller.HandleMouse(ctx.Mouse)
	}
	c.Update()
	return nil
}
