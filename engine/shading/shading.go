// package shading implements the terrain shader pair: a vertex stage that
// displaces a flat footprint by a height field and a fragment stage that
// visualizes the sampled height. The same semantics ship as an embedded WGSL
// asset (see Source) for hosts that run the stages on a GPU.
package shading

import (
	"sync"

	"github.com/chewxy/math32"

	"terrainview/common"
	"terrainview/engine/heightmap"
)

// RenderSettings is the per-draw uniform state shared by every stage
// invocation. It is immutable for the duration of a draw.
type RenderSettings struct {
	// ViewProj is the combined view-projection matrix, column-major.
	ViewProj [16]float32

	// HeightScale scales the raw height sample into world units.
	HeightScale float32

	// TexSize is the height field's side length in texels. It is trusted to
	// match the bound field; a mismatch is a host misconfiguration and is not
	// detected here.
	TexSize uint32
}

// IdentitySettings returns settings with an identity view-projection matrix,
// unit height scale, and the given texture size.
//
// Parameters:
//   - texSize: side length of the height field in texels
//
// Returns:
//   - RenderSettings: the default settings
func IdentitySettings(texSize uint32) RenderSettings {
	s := RenderSettings{HeightScale: 1, TexSize: texSize}
	common.Identity(s.ViewProj[:])
	return s
}

// VertexInput is one mesh vertex: a 2D footprint position (world x, z) and a
// normalized texture coordinate.
type VertexInput struct {
	Position [2]float32
	UV       [2]float32
}

// VertexOutput is the vertex stage result: a homogeneous clip-space position
// for the rasterizer and the UV forwarded for interpolation.
type VertexOutput struct {
	ClipPosition [4]float32
	UV           [2]float32
}

// FragmentColor is an RGBA fragment stage result.
type FragmentColor [4]float32

// TexelIndex maps a normalized texture coordinate component to a texel index
// in [0, texSize-1], used for the vertex stage's unfiltered load. The floor
// result is clamped in the signed domain: coordinates below zero index texel
// zero, and coordinates at or past 1.0 index the last texel.
//
// Parameters:
//   - uv: a single texture coordinate component, nominally in [0, 1]
//   - texSize: side length of the field in texels (must be > 0)
//
// Returns:
//   - uint32: the clamped texel index
func TexelIndex(uv float32, texSize uint32) uint32 {
	res := int64(math32.Floor(uv * float32(texSize)))
	if res < 0 {
		return 0
	}
	if res >= int64(texSize) {
		return texSize - 1
	}
	return uint32(res)
}

// programImpl carries the per-draw bindings both stages read: the uniform
// settings, the bound height field, and its sampler.
type programImpl struct {
	mu *sync.Mutex

	settings RenderSettings
	field    *heightmap.Field
	sampler  heightmap.Sampler
}

// Program is the shader pair plus its bound resources. Stage invocations are
// pure functions of their inputs and the bindings; the bindings themselves are
// read-only during a draw and only replaced between draws.
type Program interface {
	// Settings returns the current per-draw settings.
	//
	// Returns:
	//   - RenderSettings: the bound settings
	Settings() RenderSettings

	// Field returns the bound height field.
	//
	// Returns:
	//   - *heightmap.Field: the bound field
	Field() *heightmap.Field

	// Sampler returns the sampler paired with the field for the fragment stage.
	//
	// Returns:
	//   - heightmap.Sampler: the bound sampler
	Sampler() heightmap.Sampler

	// SetSettings replaces the per-draw settings. Call between draws, not
	// while stage invocations for the previous draw are in flight.
	//
	// Parameters:
	//   - settings: the new settings
	SetSettings(settings RenderSettings)

	// VertexStage displaces one mesh vertex by the height field and transforms
	// it to clip space. The height texel is read with an unfiltered load so
	// displacement is a single definite texel regardless of sampler filtering;
	// no perspective divide is performed.
	//
	// Parameters:
	//   - in: the vertex to process
	//
	// Returns:
	//   - VertexOutput: clip-space position and pass-through UV
	VertexStage(in VertexInput) VertexOutput

	// FragmentStage produces the color for one covered fragment from its
	// interpolated UV: a filtered sample of the height field in the red
	// channel, green and blue zero, alpha one.
	//
	// Parameters:
	//   - uv: the rasterizer-interpolated texture coordinate
	//
	// Returns:
	//   - FragmentColor: the fragment color
	FragmentStage(uv [2]float32) FragmentColor
}

var _ Program = &programImpl{}

// NewProgram creates a Program bound to a height field. Settings default to
// an identity view-projection, height scale 1, and the field's own texel size;
// the sampler defaults to linear magnification (see heightmap.NewSampler).
//
// Parameters:
//   - field: the height field to bind (must not be nil)
//   - options: functional options to configure the program
//
// Returns:
//   - Program: the newly created program
func NewProgram(field *heightmap.Field, options ...ProgramBuilderOption) Program {
	if field == nil {
		panic("shading: NewProgram requires a non-nil field")
	}

	p := &programImpl{
		mu:       &sync.Mutex{},
		settings: IdentitySettings(field.TexSize()),
		field:    field,
		sampler:  heightmap.NewSampler(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *programImpl) Settings() RenderSettings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

func (p *programImpl) Field() *heightmap.Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.field
}

func (p *programImpl) Sampler() heightmap.Sampler {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sampler
}

func (p *programImpl) SetSettings(settings RenderSettings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = settings
}

func (p *programImpl) VertexStage(in VertexInput) VertexOutput {
	p.mu.Lock()
	settings := p.settings
	field := p.field
	p.mu.Unlock()

	texX := TexelIndex(in.UV[0], settings.TexSize)
	texY := TexelIndex(in.UV[1], settings.TexSize)
	height := field.At(texX, texY) * settings.HeightScale

	// The 2D input supplies the horizontal plane: input x -> world x,
	// input y -> world z, sampled height -> world y.
	clip := common.TransformVec4(settings.ViewProj[:], in.Position[0], height, in.Position[1], 1)

	return VertexOutput{ClipPosition: clip, UV: in.UV}
}

func (p *programImpl) FragmentStage(uv [2]float32) FragmentColor {
	p.mu.Lock()
	field := p.field
	sampler := p.sampler
	p.mu.Unlock()

	s := sampler.Sample(field, uv[0], uv[1])
	return FragmentColor{s, 0, 0, 1}
}
