package heightmap

import (
	"github.com/chewxy/math32"
)

// FilterMode selects how a sampler blends texels.
type FilterMode int

const (
	// FilterNearest reads the single nearest texel.
	FilterNearest FilterMode = iota

	// FilterLinear blends the 2x2 texel neighborhood bilinearly.
	FilterLinear
)

// Sampler holds the filtering configuration for filtered field reads.
// Addressing is always clamp-to-edge. The zero value is a nearest sampler.
type Sampler struct {
	// MagFilter is the filter applied when sampling; there is no mip chain so
	// it is the only filter that affects the result.
	MagFilter FilterMode

	// MinFilter is carried for the host sampler descriptor; a single-level
	// field never minifies through it on the CPU path.
	MinFilter FilterMode
}

// NewSampler returns the sampler configuration a terrain draw uses:
// linear magnification over a nearest minification filter.
//
// Returns:
//   - Sampler: the default sampler
func NewSampler() Sampler {
	return Sampler{MagFilter: FilterLinear, MinFilter: FilterNearest}
}

// Sample performs a filtered read of the field at normalized coordinates
// (u, v), distinct from the raw load Field.At performs. Texel centers sit at
// (i+0.5)/TexSize and coordinates outside [0, 1] clamp to the edge texels.
//
// Parameters:
//   - f: the field to sample
//   - u, v: normalized texture coordinates
//
// Returns:
//   - float32: the filtered value
func (s Sampler) Sample(f *Field, u, v float32) float32 {
	size := f.TexSize()

	if s.MagFilter == FilterNearest {
		return f.At(nearestTexel(u, size), nearestTexel(v, size))
	}

	x := u*float32(size) - 0.5
	y := v*float32(size) - 0.5

	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0

	ix0 := clampTexel(int64(x0), size)
	iy0 := clampTexel(int64(y0), size)
	ix1 := clampTexel(int64(x0)+1, size)
	iy1 := clampTexel(int64(y0)+1, size)

	top := f.At(ix0, iy0)*(1-fx) + f.At(ix1, iy0)*fx
	bot := f.At(ix0, iy1)*(1-fx) + f.At(ix1, iy1)*fx
	return top*(1-fy) + bot*fy
}

// nearestTexel maps a normalized coordinate to the nearest texel index with
// clamp-to-edge addressing.
func nearestTexel(uv float32, size uint32) uint32 {
	return clampTexel(int64(math32.Floor(uv*float32(size))), size)
}

// clampTexel clamps a signed texel index into [0, size-1].
func clampTexel(i int64, size uint32) uint32 {
	if i < 0 {
		return 0
	}
	if i >= int64(size) {
		return size - 1
	}
	return uint32(i)
}
