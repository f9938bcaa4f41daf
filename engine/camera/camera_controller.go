package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-frame/engine/frame"

	"github.com/go-gl/mathgl/mgl32"
)

// Controller positions a camera on a sphere around a target point.
// Orbit and zoom change the spherical coordinates; Pan moves the target and the eye together
// along the camera's local axes.
type Controller interface {
	// Position returns the eye position derived from the spherical coordinates.
	Position() mgl32.Vec3

	// Target returns the orbit pivot.
	Target() mgl32.Vec3

	SetTarget(x, y, z float32)

	Radius() float32

	// SetRadius sets the distance from the target, clamped to the radius bounds.
	SetRadius(radius float32)

	Azimuth() float32
	SetAzimuth(azimuth float32)

	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	SetElevation(elevation float32)

	// Orbit rotates around the target.
	//
	// Parameters:
	//   - dAzimuth: horizontal change in radians
	//   - dElevation: vertical change in radians
	Orbit(dAzimuth, dElevation float32)

	// Zoom moves towards the target by delta * zoom speed.
	//
	// Parameters:
	//   - delta: zoom steps, positive moves closer
	Zoom(delta float32)

	// Pan translates the eye and the target along the camera's right and up axes.
	//
	// Parameters:
	//   - right: distance along the right axis, before pan speed
	//   - up: distance along the up axis, before pan speed
	Pan(right, up float32)

	// HandleMouse orbits by the pointer movement since the previous call while the canvas reports a drag.
	//
	// Parameters:
	//   - m: the canvas mouse state
	//
	// Returns:
	//   - bool: true if the camera moved
	HandleMouse(m frame.Mouse) bool
}

type orbitController struct {
	target mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32

	dragging bool
	lastX    float32
	lastY    float32
}

var _ Controller = &orbitController{}

// NewOrbitController creates an orbit Controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewOrbitController(options ...ControllerBuilderOption) Controller {
	cc := &orbitController{
		radius:    10.0,
		elevation: float32(math.Pi / 6),

		minRadius:    0.5,
		maxRadius:    1000.0,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,
		panSpeed:         1.0,
	}
	for _, option := range options {
		option(cc)
	}
	cc.radius = clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	return cc
}

func (cc *orbitController) Position() mgl32.Vec3 {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	return mgl32.Vec3{
		cc.target[0] + cc.radius*cosElev*sinAzim,
		cc.target[1] + cc.radius*sinElev,
		cc.target[2] + cc.radius*cosElev*cosAzim,
	}
}

func (cc *orbitController) Target() mgl32.Vec3 {
	return cc.target
}

func (cc *orbitController) SetTarget(x, y, z float32) {
	cc.target = mgl32.Vec3{x, y, z}
}

func (cc *orbitController) Radius() float32 {
	return cc.radius
}

func (cc *orbitController) SetRadius(radius float32) {
	cc.radius = clamp(radius, cc.minRadius, cc.maxRadius)
}

func (cc *orbitController) Azimuth() float32 {
	return cc.azimuth
}

func (cc *orbitController) SetAzimuth(azimuth float32) {
	cc.azimuth = azimuth
}

func (cc *orbitController) Elevation() float32 {
	return cc.elevation
}

func (cc *orbitController) SetElevation(elevation float32) {
	cc.elevation = clamp(elevation, cc.minElevation, cc.maxElevation)
}

func (cc *orbitController) Orbit(dAzimuth, dElevation float32) {
	cc.azimuth += dAzimuth
	cc.SetElevation(cc.elevation + dElevation)
}

func (cc *orbitController) Zoom(delta float32) {
	cc.SetRadius(cc.radius - delta*cc.zoomSpeed)
}

func (cc *orbitController) Pan(right, up float32) {
	r, u := cc.localAxes()
	offset := r.Mul(right * cc.panSpeed).Add(u.Mul(up * cc.panSpeed))
	cc.target = cc.target.Add(offset)
}

func (cc *orbitController) HandleMouse(m frame.Mouse) bool {
	if !m.IsDragging {
		cc.dragging = false
		return false
	}
	if !cc.dragging {
		cc.dragging = true
		cc.lastX, cc.lastY = m.X, m.Y
		return false
	}
	dx, dy := m.X-cc.lastX, m.Y-cc.lastY
	cc.lastX, cc.lastY = m.X, m.Y
	if dx == 0 && dy == 0 {
		return false
	}
	cc.Orbit(-dx*cc.mouseSensitivity, dy*cc.mouseSensitivity)
	return true
}

// localAxes returns the camera's right and up axes, consistent with common.LookAt.
// Both are zero if the eye and the target coincide.
func (cc *orbitController) localAxes() (right, up mgl32.Vec3) {
	backward := cc.Position().Sub(cc.target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	// cross((0,1,0), backward) has no Y component
	right = mgl32.Vec3{backward[2], 0, -backward[0]}
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	return right, up
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
