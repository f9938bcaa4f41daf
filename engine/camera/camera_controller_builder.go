package camera

// ControllerBuilderOption is a functional option for configuring a Controller via NewOrbitController.
type ControllerBuilderOption func(*orbitController)

// WithOrbitTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: the pivot point
//
// Returns:
//   - ControllerBuilderOption: functional option to set the target position
func WithOrbitTarget(x, y, z float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.target[0] = x
		cc.target[1] = y
		cc.target[2] = z
	}
}

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - ControllerBuilderOption: functional option to set the radius
func WithRadius(radius float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the elevation
func WithElevation(elevation float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.elevation = elevation
	}
}

// WithRadiusBounds sets the zoom limits.
//
// Parameters:
//   - min: the closest allowed distance
//   - max: the farthest allowed distance
//
// Returns:
//   - ControllerBuilderOption: functional option to set the radius bounds
func WithRadiusBounds(min, max float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the vertical orbit limits.
//
// Parameters:
//   - min: the lowest elevation in radians
//   - max: the highest elevation in radians
//
// Returns:
//   - ControllerBuilderOption: functional option to set the elevation bounds
func WithElevationBounds(min, max float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithMouseSensitivity sets the radians of orbit per pixel of drag.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - ControllerBuilderOption: functional option to set the mouse sensitivity
func WithMouseSensitivity(sensitivity float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the distance moved per zoom step.
//
// Parameters:
//   - speed: distance per step
//
// Returns:
//   - ControllerBuilderOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the multiplier applied to Pan distances.
//
// Parameters:
//   - speed: pan multiplier
//
// Returns:
//   - ControllerBuilderOption: functional option to set the pan speed
func WithPanSpeed(speed float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.panSpeed = speed
	}
}
