package shading

import (
	"terrainview/engine/heightmap"
)

type ProgramBuilderOption func(*programImpl)

// WithSettings sets the program's per-draw settings.
//
// Parameters:
//   - settings: the settings to bind
//
// Returns:
//   - ProgramBuilderOption: a function that sets the settings
func WithSettings(settings RenderSettings) ProgramBuilderOption {
	return func(p *programImpl) {
		p.settings = settings
	}
}

// WithViewProj sets only the view-projection matrix, keeping the rest of the
// settings at their current values.
//
// Parameters:
//   - viewProj: column-major view-projection matrix
//
// Returns:
//   - ProgramBuilderOption: a function that sets the matrix
func WithViewProj(viewProj [16]float32) ProgramBuilderOption {
	return func(p *programImpl) {
		p.settings.ViewProj = viewProj
	}
}

// WithHeightScale sets the height displacement scale.
//
// Parameters:
//   - scale: world units per unit of sampled height
//
// Returns:
//   - ProgramBuilderOption: a function that sets the scale
func WithHeightScale(scale float32) ProgramBuilderOption {
	return func(p *programImpl) {
		p.settings.HeightScale = scale
	}
}

// WithSampler sets the sampler the fragment stage reads the field through.
//
// Parameters:
//   - sampler: the sampler to bind
//
// Returns:
//   - ProgramBuilderOption: a function that sets the sampler
func WithSampler(sampler heightmap.Sampler) ProgramBuilderOption {
	return func(p *programImpl) {
		p.sampler = sampler
	}
}
