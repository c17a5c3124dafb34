// package heightmap provides the baked height field a terrain draw samples,
// along with the CPU-side sampler semantics a host pairs with it.
package heightmap

import (
	"image"
	"image/color"

	"terrainview/common"
)

// Field is a square grid of float32 height texels. It is read-only after bake;
// texel coordinates are trusted the way a texel load trusts them, so callers
// clamp before indexing.
type Field struct {
	texSize uint32
	texels  []float32
}

// NewField creates a Field from raw texel data. The data is used directly, not
// copied, and must hold texSize*texSize values.
//
// Parameters:
//   - texSize: side length of the square grid in texels
//   - texels: row-major texel values, typically in [0, 1]
//
// Returns:
//   - *Field: the newly created field
func NewField(texSize uint32, texels []float32) *Field {
	if uint32(len(texels)) != texSize*texSize {
		panic("heightmap: texel count does not match texSize")
	}
	return &Field{texSize: texSize, texels: texels}
}

// TexSize returns the side length of the field in texels.
//
// Returns:
//   - uint32: the side length
func (f *Field) TexSize() uint32 {
	return f.texSize
}

// At performs an unfiltered texel load at (x, y), the CPU analogue of a
// level-0 textureLoad. Coordinates are not validated.
//
// Parameters:
//   - x, y: texel coordinates in [0, TexSize-1]
//
// Returns:
//   - float32: the texel value
func (f *Field) At(x, y uint32) float32 {
	return f.texels[y*f.texSize+x]
}

// Texels returns the underlying row-major texel slice. The slice shares memory
// with the field; treat it as read-only.
//
// Returns:
//   - []float32: the texel data
func (f *Field) Texels() []float32 {
	return f.texels
}

// Image renders the field as a grayscale image, one pixel per texel, mapping
// texel value 0 to black and 1 to white.
//
// Returns:
//   - *image.Gray: the rendered image
func (f *Field) Image() *image.Gray {
	size := int(f.texSize)
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := common.Clamp(f.texels[y*size+x], 0, 1)
			img.SetGray(x, y, color.Gray{Y: uint8(v * 255)})
		}
	}
	return img
}
