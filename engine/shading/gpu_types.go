package shading

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// Source is the WGSL implementation of the shader pair, with entry points
// vs_main and fs_main. Its binding layout matches the descriptors in layout.go
// and its numeric semantics match the CPU stages in this package.
//
//go:embed assets/terrain.wgsl
var Source string

const (
	// VertexEntryPoint and FragmentEntryPoint name the stages in Source.
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// GPURenderSettings is the GPU-aligned representation of the settings uniform.
// Matches the WGSL RenderSettings struct layout exactly (see Source).
// Size: 80 bytes (mat4x4 at 0, two scalars at 64 and 68, 8 bytes of trailing
// padding for 16-byte uniform alignment).
type GPURenderSettings struct {
	ViewProj    [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	HeightScale float32     // offset 64: height displacement scale (f32)
	TexSize     uint32      // offset 68: field side length in texels (u32)
	_pad        [8]byte     // offset 72: padding to 80 bytes
}

// NewGPURenderSettings converts per-draw settings into their uniform layout.
//
// Parameters:
//   - settings: the settings to convert
//
// Returns:
//   - GPURenderSettings: the GPU-aligned value
func NewGPURenderSettings(settings RenderSettings) GPURenderSettings {
	return GPURenderSettings{
		ViewProj:    settings.ViewProj,
		HeightScale: settings.HeightScale,
		TexSize:     settings.TexSize,
	}
}

// Size returns the size of the GPURenderSettings struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPURenderSettings) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPURenderSettings struct into a byte buffer suitable
// for uniform buffer upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPURenderSettings) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(g.HeightScale))
	binary.LittleEndian.PutUint32(buf[68:], g.TexSize)
	// bytes 72..80 stay zero (_pad)
	return buf
}

// GPUVertex is the GPU representation of one mesh vertex: two Float32x2
// attributes at shader locations 0 and 1, 16-byte stride.
type GPUVertex struct {
	Position [2]float32 // offset 0: footprint position (location 0)
	UV       [2]float32 // offset 8: texture coordinate (location 1)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for
// vertex buffer upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.UV[1]))
	return buf
}

// MarshalVertices serializes a vertex slice into one interleaved buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: position/uv pairs, 16 bytes per vertex
func MarshalVertices(vertices []VertexInput) []byte {
	buf := make([]byte, 0, len(vertices)*16)
	for i := range vertices {
		v := GPUVertex{Position: vertices[i].Position, UV: vertices[i].UV}
		buf = append(buf, v.Marshal()...)
	}
	return buf
}
