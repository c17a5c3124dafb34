// package noise provides the height sources a terrain field is baked from.
// Sources produce values nominally in [-1, 1]; the heightmap bake normalizes
// them into [0, 1] texel space.
package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"

	"terrainview/common"
)

// Source defines the interface for a 2D height source.
type Source interface {
	// Sample evaluates the source at the given coordinates.
	//
	// Parameters:
	//   - x, y: sample coordinates in source space
	//   - seed: per-call seed for stateless sources; pre-seeded sources ignore it
	//
	// Returns:
	//   - float32: the sampled value, nominally in [-1, 1]
	Sample(x, y float32, seed uint32) float32
}

// Cosine is a deterministic test source producing smooth ripples:
// cos(x)*0.5 + cos(y)*0.5.
type Cosine struct{}

var _ Source = Cosine{}

func (Cosine) Sample(x, y float32, _ uint32) float32 {
	return math32.Cos(x)*0.5 + math32.Cos(y)*0.5
}

const (
	// perlinDetailWeight and perlinZoneWeight blend the high-frequency detail
	// octaves against the low-frequency zone octaves.
	perlinDetailWeight = 0.7
	perlinZoneWeight   = 0.3

	zoneFrequency = 0.15
)

// Perlin layers two seeded perlin generators: a high-frequency detail band and
// a low-frequency zone band. The generator seed is fixed at construction; the
// per-call seed argument is ignored.
type Perlin struct {
	detail *perlin.Perlin
	zone   *perlin.Perlin
}

var _ Source = &Perlin{}

// NewPerlin creates a layered perlin source from a seed.
//
// Parameters:
//   - seed: generator seed; the zone band derives its own seed from it
//
// Returns:
//   - *Perlin: the newly created source
func NewPerlin(seed int64) *Perlin {
	return &Perlin{
		detail: perlin.NewPerlin(1.5, 2.0, 4, seed),
		zone:   perlin.NewPerlin(2.5, 3.0, 4, seed+1),
	}
}

func (p *Perlin) Sample(x, y float32, _ uint32) float32 {
	d := float32(p.detail.Noise2D(float64(x), float64(y)))
	z := float32(p.zone.Noise2D(float64(x)*zoneFrequency, float64(y)*zoneFrequency))
	return common.Clamp(d*perlinDetailWeight+z*perlinZoneWeight, -1, 1)
}
