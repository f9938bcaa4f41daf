package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a Camera via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the eye position.
//
// Parameters:
//   - x, y, z: the eye position
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option to a camera
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget is an option builder that sets the point the camera looks at.
//
// Parameters:
//   - x, y, z: the target point
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option to a camera
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithUp is an option builder that sets the up vector.
//
// Parameters:
//   - x, y, z: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option to a camera
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl32.Vec3{x, y, z}
	}
}

// WithFov is an option builder that sets the vertical field of view.
//
// Parameters:
//   - fov: the field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that applies the fov option to a camera
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect is an option builder that sets the initial aspect ratio.
// An attached camera follows the canvas viewport instead.
//
// Parameters:
//   - aspect: width / height
//
// Returns:
//   - CameraBuilderOption: a function that applies the aspect option to a camera
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear is an option builder that sets the near clipping plane distance.
//
// Parameters:
//   - near: the near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the near option to a camera
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar is an option builder that sets the far clipping plane distance.
//
// Parameters:
//   - far: the far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the far option to a camera
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithController is an option builder that sets the controller that positions the camera.
//
// Parameters:
//   - ctrl: the controller
//
// Returns:
//   - CameraBuilderOption: a function that applies the controller option to a camera
func WithController(ctrl Controller) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

// WithPriority is an option builder that sets the scheduler priority of the per-tick refresh.
//
// Parameters:
//   - priority: the scheduler priority, DefaultPriority if unset
//
// Returns:
//   - CameraBuilderOption: a function that applies the priority option to a camera
func WithPriority(priority int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.priority = priority
	}
}
