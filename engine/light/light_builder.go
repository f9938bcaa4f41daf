package light

import "math"

// DescriptorBuilderOption is a function that configures a Descriptor during construction.
type DescriptorBuilderOption func(*Descriptor)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - DescriptorBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) DescriptorBuilderOption {
	return func(d *Descriptor) {
		d.Position = [3]float32{x, y, z}
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - DescriptorBuilderOption: a function that applies the direction option
func WithDirection(x, y, z float32) DescriptorBuilderOption {
	return func(d *Descriptor) {
		d.Direction = normalize3(x, y, z)
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - DescriptorBuilderOption: a function that applies the color option
func WithColor(r, g, b float32) DescriptorBuilderOption {
	return func(d *Descriptor) {
		d.Color = [3]float32{r, g, b}
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - DescriptorBuilderOption: a function that applies the intensity option
func WithIntensity(intensity float32) DescriptorBuilderOption {
	return func(d *Descriptor) {
		d.Intensity = intensity
	}
}

// WithDistance is an option builder that sets the attenuation cutoff for point and spot lights.
//
// Parameters:
//   - distance: the cutoff distance, 0 for unbounded
//
// Returns:
//   - DescriptorBuilderOption: a function that applies the distance option
func WithDistance(distance float32) DescriptorBuilderOption {
	return func(d *Descriptor) {
		d.Distance = distance
	}
}

// WithDecay is an option builder that sets the attenuation exponent.
//
// Parameters:
//   - decay: the decay exponent
//
// Returns:
//   - DescriptorBuilderOption: a function that applies the decay option
func WithDecay(decay float32) DescriptorBuilderOption {
	return func(d *Descriptor) {
		d.Decay = decay
	}
}

// WithSpotCone is an option builder that sets the spot cone half-angle in degrees and the
// penumbra fraction.
//
// Parameters:
//   - angleDeg: cone half-angle in degrees
//   - penumbra: fraction of the cone that fades out, clamped to [0, 1]
//
// Returns:
//   - DescriptorBuilderOption: a function that applies the spot cone option
func WithSpotCone(angleDeg, penumbra float32) DescriptorBuilderOption {
	return func(d *Descriptor) {
		d.Angle = float32(float64(angleDeg) * math.Pi / 180.0)
		d.Penumbra = min(max(penumbra, 0), 1)
	}
}

// normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
func normalize3(x, y, z float32) [3]float32 {
	length := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1.0 / length
	return [3]float32{x * inv, y * inv, z * inv}
}
