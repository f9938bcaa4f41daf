package camera

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine/frame"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the size in bytes of a marshaled GPUCameraUniform.
const GPUCameraUniformSize = 80

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
type GPUCameraUniform struct {
	ViewProj       mgl32.Mat4 // offset  0: combined view-projection matrix (mat4x4<f32>)
	CameraPosition mgl32.Vec3 // offset 64: world-space camera position (vec3<f32>)
	_pad           float32    // offset 76: padding to 80 bytes
}

// NewGPUCameraUniform builds the uniform from a canvas scene state.
//
// Parameters:
//   - s: the scene state
//
// Returns:
//   - GPUCameraUniform: the uniform
func NewGPUCameraUniform(s frame.SceneState) GPUCameraUniform {
	var u GPUCameraUniform
	common.Multiply(&u.ViewProj, &s.ProjectionMatrix, &s.ViewMatrix)
	u.CameraPosition = s.CameraPosition
	return u
}

// MarshalTo serializes the uniform into buf for GPU upload.
//
// Parameters:
//   - buf: destination, at least GPUCameraUniformSize bytes
func (g *GPUCameraUniform) MarshalTo(buf []byte) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[76:], 0) // _pad
}
