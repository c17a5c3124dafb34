package shading

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// copyBytesPerRowAlignment is the WebGPU texture copy row alignment in bytes.
const copyBytesPerRowAlignment = 256

// SettingsBindGroupLayout returns the layout for bind group 0: the settings
// uniform at binding 0, visible to the vertex stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 0 layout
func SettingsBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Render settings bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}

// FieldBindGroupLayout returns the layout for bind group 1: the height field
// texture at binding 0 and its sampler at binding 1, both visible to the
// vertex and fragment stages. The texture binds as filterable float so the
// fragment stage can sample it through a filtering sampler.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 1 layout
func FieldBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	texture := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	texture.Texture.SampleType = wgpu.TextureSampleTypeFloat
	texture.Texture.ViewDimension = wgpu.TextureViewDimension2D
	texture.Texture.Multisampled = false

	sampler := wgpu.BindGroupLayoutEntry{
		Binding:    1,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	sampler.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Height field bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{texture, sampler},
	}
}

// VertexLayout returns the vertex buffer layout the pipeline pairs with
// Source: two Float32x2 attributes at locations 0 and 1, 16-byte stride.
//
// Returns:
//   - wgpu.VertexBufferLayout: the vertex layout
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 16,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}

// FieldTextureDescriptor returns the descriptor for the height field texture:
// a square single-level R32Float texture bindable for sampling and writable
// by copy.
//
// Parameters:
//   - texSize: side length in texels
//
// Returns:
//   - wgpu.TextureDescriptor: the texture descriptor
func FieldTextureDescriptor(texSize uint32) wgpu.TextureDescriptor {
	return wgpu.TextureDescriptor{
		Label:     "Height field texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              texSize,
			Height:             texSize,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatR32Float,
		MipLevelCount: 1,
		SampleCount:   1,
	}
}

// FieldSamplerDescriptor returns the sampler descriptor paired with the
// height field texture: clamp-to-edge addressing, linear magnification over
// nearest minification.
//
// Returns:
//   - wgpu.SamplerDescriptor: the sampler descriptor
func FieldSamplerDescriptor() wgpu.SamplerDescriptor {
	return wgpu.SamplerDescriptor{
		Label:         "Height field sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	}
}

// PadFieldRows serializes float32 texels into an R32Float upload payload whose
// rows are padded to the 256-byte copy alignment.
//
// Parameters:
//   - texels: row-major texel values, texSize*texSize of them
//   - texSize: side length in texels
//
// Returns:
//   - []byte: the padded payload
//   - uint32: the padded bytes-per-row the copy must declare
func PadFieldRows(texels []float32, texSize uint32) ([]byte, uint32) {
	const pixelSize = 4
	unpadded := pixelSize * texSize
	padding := (copyBytesPerRowAlignment - unpadded%copyBytesPerRowAlignment) % copyBytesPerRowAlignment
	padded := unpadded + padding

	buf := make([]byte, padded*texSize)
	for y := uint32(0); y < texSize; y++ {
		row := texels[y*texSize : (y+1)*texSize]
		for x, t := range row {
			binary.LittleEndian.PutUint32(buf[y*padded+uint32(x)*pixelSize:], math.Float32bits(t))
		}
	}
	return buf, padded
}
