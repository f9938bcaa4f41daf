package light

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPULightSource is the canonical WGSL definition of the Light and LightHeader structs
// and the fixed-size lights uniform. Matches the byte layout produced by Pack.
//
//go:embed assets/light.wgsl
var GPULightSource string

const (
	// GPULightHeaderSize is the size in bytes of the header written by Pack.
	GPULightHeaderSize = 16
	// GPULightSize is the size in bytes of one packed light record.
	GPULightSize = 64
	// GPULightsBufferSize is the total size written by Pack: header plus MaxActiveLights records.
	GPULightsBufferSize = GPULightHeaderSize + MaxActiveLights*GPULightSize
)

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes (std140 / WGSL uniform aligned).
type GPULight struct {
	Position  [3]float32 // offset  0
	Kind      uint32     // offset 12: 0 = point, 1 = directional, 2 = spot, 3 = ambient
	Color     [3]float32 // offset 16
	Intensity float32    // offset 28
	Direction [3]float32 // offset 32
	Distance  float32    // offset 44
	Decay     float32    // offset 48
	CosAngle  float32    // offset 52: cos(cone half-angle)
	Penumbra  float32    // offset 56
	_pad      uint32     // offset 60
}

// NewGPULight converts a Descriptor into its GPU representation.
//
// Parameters:
//   - d: the descriptor
//
// Returns:
//   - GPULight: the GPU record
func NewGPULight(d Descriptor) GPULight {
	return GPULight{
		Position:  d.Position,
		Kind:      uint32(d.Kind),
		Color:     d.Color,
		Intensity: d.Intensity,
		Direction: d.Direction,
		Distance:  d.Distance,
		Decay:     d.Decay,
		CosAngle:  float32(math.Cos(float64(d.Angle))),
		Penumbra:  d.Penumbra,
	}
}

// MarshalTo writes the 64-byte record into buf.
//
// Parameters:
//   - buf: destination, at least GPULightSize bytes
func (g *GPULight) MarshalTo(buf []byte) {
	putVec3(buf[0:12], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.Kind)
	putVec3(buf[16:28], g.Color)
	putF32(buf[28:32], g.Intensity)
	putVec3(buf[32:44], g.Direction)
	putF32(buf[44:48], g.Distance)
	putF32(buf[48:52], g.Decay)
	putF32(buf[52:56], g.CosAngle)
	putF32(buf[56:60], g.Penumbra)
	binary.LittleEndian.PutUint32(buf[60:64], 0) // padding
}

// GPULightHeader is the header at the start of the lights uniform.
// Size: 16 bytes (vec3 + u32).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: sum of ambient lights' color * intensity
	LightCount   uint32     // offset 12: number of records that follow
}

// MarshalTo writes the 16-byte header into buf.
//
// Parameters:
//   - buf: destination, at least GPULightHeaderSize bytes
func (h *GPULightHeader) MarshalTo(buf []byte) {
	putVec3(buf[0:12], h.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
}

// Pack marshals an enumerated light list into the fixed-size lights uniform layout
// (GPULightsBufferSize bytes). Lights beyond MaxActiveLights are dropped and unused record
// slots are zeroed. dst is reused when it has enough capacity.
//
// Parameters:
//   - dst: reusable destination buffer
//   - lights: the output of Registry.Enumerate
//
// Returns:
//   - []byte: the packed buffer
func Pack(dst []byte, lights []Descriptor) []byte {
	if cap(dst) < GPULightsBufferSize {
		dst = make([]byte, GPULightsBufferSize)
	}
	dst = dst[:GPULightsBufferSize]
	clear(dst)

	n := min(len(lights), MaxActiveLights)
	header := GPULightHeader{LightCount: uint32(n)}
	for i := 0; i < n; i++ {
		d := lights[i]
		if d.Kind == KindAmbient {
			for c := 0; c < 3; c++ {
				header.AmbientColor[c] += d.Color[c] * d.Intensity
			}
		}
		g := NewGPULight(d)
		off := GPULightHeaderSize + i*GPULightSize
		g.MarshalTo(dst[off : off+GPULightSize])
	}
	header.MarshalTo(dst[:GPULightHeaderSize])
	return dst
}

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func putVec3(buf []byte, v [3]float32) {
	putF32(buf[0:4], v[0])
	putF32(buf[4:8], v[1])
	putF32(buf[8:12], v[2])
}
