package light

import "math"

// Kind identifies the kind of light source.
type Kind uint32

const (
	// KindPoint represents a light that emits in all directions from a position.
	// Attenuates with distance according to Distance and Decay.
	KindPoint Kind = iota

	// KindDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun. No distance attenuation.
	KindDirectional

	// KindSpot represents a light that emits in a cone from a position along a direction.
	// The cone is shaped by Angle and softened by Penumbra.
	KindSpot

	// KindAmbient represents uniform light applied to every fragment regardless of position.
	KindAmbient
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindDirectional:
		return "directional"
	case KindSpot:
		return "spot"
	case KindAmbient:
		return "ambient"
	}
	return "unknown"
}

// Descriptor describes one light source as consumed by material shaders.
// Fields that do not apply to a kind (e.g. Angle for point lights) are ignored by the shader.
type Descriptor struct {
	Kind      Kind
	Position  [3]float32
	Direction [3]float32 // normalized
	Color     [3]float32
	Intensity float32
	// Distance is the attenuation cutoff for point and spot lights; 0 means unbounded.
	Distance float32
	// Decay is the attenuation exponent over distance.
	Decay float32
	// Angle is the spot cone half-angle in radians.
	Angle float32
	// Penumbra is the fraction of the cone, in [0, 1], that fades out towards the edge.
	Penumbra float32
}

// NewDescriptor creates a Descriptor of the specified kind with sensible defaults and any
// provided options applied.
//
// Parameters:
//   - kind: the kind of light
//   - opts: variadic list of DescriptorBuilderOption functions to configure the light
//
// Returns:
//   - Descriptor: the configured descriptor
func NewDescriptor(kind Kind, opts ...DescriptorBuilderOption) Descriptor {
	d := Descriptor{
		Kind:      kind,
		Direction: [3]float32{0, -1, 0},
		Color:     [3]float32{1, 1, 1},
		Intensity: 1.0,
		Decay:     2.0,
		Angle:     math.Pi / 3,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Update is a partial light update. Only non-nil fields are merged into the stored descriptor.
type Update struct {
	Kind      *Kind
	Position  *[3]float32
	Direction *[3]float32
	Color     *[3]float32
	Intensity *float32
	Distance  *float32
	Decay     *float32
	Angle     *float32
	Penumbra  *float32
}

// Apply merges the set fields of u into d. Direction is normalized.
//
// Parameters:
//   - d: the descriptor to update in place
func (u Update) Apply(d *Descriptor) {
	if u.Kind != nil {
		d.Kind = *u.Kind
	}
	if u.Position != nil {
		d.Position = *u.Position
	}
	if u.Direction != nil {
		d.Direction = normalize3(u.Direction[0], u.Direction[1], u.Direction[2])
	}
	if u.Color != nil {
		d.Color = *u.Color
	}
	if u.Intensity != nil {
		d.Intensity = *u.Intensity
	}
	if u.Distance != nil {
		d.Distance = *u.Distance
	}
	if u.Decay != nil {
		d.Decay = *u.Decay
	}
	if u.Angle != nil {
		d.Angle = *u.Angle
	}
	if u.Penumbra != nil {
		d.Penumbra = *u.Penumbra
	}
}
