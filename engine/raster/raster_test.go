package raster

import (
	"testing"

	"terrainview/engine/heightmap"
	"terrainview/engine/mesh"
	"terrainview/engine/shading"
)

// topDownViewProj maps world (x, y, z) to clip (x, z, y, 1): the footprint
// plane fills clip space and the displaced height becomes the depth.
func topDownViewProj() [16]float32 {
	var m [16]float32
	m[0] = 1  // world x -> clip x
	m[6] = 1  // world y (height) -> clip z
	m[9] = 1  // world z -> clip y
	m[15] = 1 // w = 1
	return m
}

// fullscreenQuad builds a quad covering clip space under topDownViewProj,
// wound counter-clockwise, with every vertex carrying the same UV.
func fullscreenQuad(uv [2]float32) *mesh.Grid {
	return &mesh.Grid{
		Vertices: []shading.VertexInput{
			{Position: [2]float32{-1, -1}, UV: uv},
			{Position: [2]float32{1, -1}, UV: uv},
			{Position: [2]float32{1, 1}, UV: uv},
			{Position: [2]float32{-1, 1}, UV: uv},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

func constantField(texSize uint32, value float32) *heightmap.Field {
	texels := make([]float32, texSize*texSize)
	for i := range texels {
		texels[i] = value
	}
	return heightmap.NewField(texSize, texels)
}

func TestDrawFillsCoveredPixelsWithHeightColor(t *testing.T) {
	p := shading.NewProgram(constantField(4, 0.6), shading.WithViewProj(topDownViewProj()))
	r := NewRasterizer(WithSize(64, 64), WithWorkers(2))

	if err := r.Draw(p, fullscreenQuad([2]float32{0.5, 0.5})); err != nil {
		t.Fatal(err)
	}

	img := r.Image()
	for _, pt := range [][2]int{{32, 32}, {1, 1}, {62, 62}, {1, 62}} {
		c := img.RGBAAt(pt[0], pt[1])
		if c.R != 153 || c.G != 0 || c.B != 0 || c.A != 255 {
			t.Errorf("pixel %v = %v, want R=153 G=0 B=0 A=255", pt, c)
		}
	}
}

func TestDrawCullsBackFaces(t *testing.T) {
	p := shading.NewProgram(constantField(4, 1), shading.WithViewProj(topDownViewProj()))
	r := NewRasterizer(WithSize(16, 16), WithWorkers(1))

	grid := fullscreenQuad([2]float32{0.5, 0.5})
	// Reverse the winding: every triangle becomes a back face.
	grid.Indices = []uint32{2, 1, 0, 0, 3, 2}

	if err := r.Draw(p, grid); err != nil {
		t.Fatal(err)
	}

	bg := r.Image().RGBAAt(8, 8)
	if bg.R != 26 || bg.G != 51 || bg.B != 77 {
		t.Errorf("center pixel = %v, want the clear color", bg)
	}
}

func TestDrawDropsTrianglesBehindCamera(t *testing.T) {
	// A matrix producing w = -1 for every vertex: nothing rasterizes.
	var m [16]float32
	m[0], m[6], m[9] = 1, 1, 1
	m[15] = -1

	p := shading.NewProgram(constantField(4, 1), shading.WithViewProj(m))
	r := NewRasterizer(WithSize(16, 16), WithWorkers(1))

	if err := r.Draw(p, fullscreenQuad([2]float32{0.5, 0.5})); err != nil {
		t.Fatal(err)
	}

	bg := r.Image().RGBAAt(8, 8)
	if bg.R != 26 || bg.G != 51 || bg.B != 77 {
		t.Errorf("center pixel = %v, want the clear color", bg)
	}
}

func TestDrawDepthTest(t *testing.T) {
	// Texels encode both the depth (via displacement) and the color, so the
	// quad sampling the 0.2 texel sits nearer than the one sampling 0.8.
	field := heightmap.NewField(2, []float32{0.2, 0.8, 0.2, 0.8})
	p := shading.NewProgram(field, shading.WithViewProj(topDownViewProj()), shading.WithHeightScale(1))

	near := fullscreenQuad([2]float32{0.25, 0.25}) // texel (0, 0): 0.2
	far := fullscreenQuad([2]float32{0.75, 0.25})  // texel (1, 0): 0.8

	grid := &mesh.Grid{}
	grid.Vertices = append(grid.Vertices, far.Vertices...)
	grid.Vertices = append(grid.Vertices, near.Vertices...)
	grid.Indices = append(grid.Indices, far.Indices...)
	for _, idx := range near.Indices {
		grid.Indices = append(grid.Indices, idx+4)
	}

	r := NewRasterizer(WithSize(16, 16), WithWorkers(2))
	if err := r.Draw(p, grid); err != nil {
		t.Fatal(err)
	}

	c := r.Image().RGBAAt(8, 8)
	if c.R != 51 {
		t.Errorf("center red = %d, want 51 (the nearer quad)", c.R)
	}

	// Reversed draw order must not change the visible surface.
	r2 := NewRasterizer(WithSize(16, 16), WithWorkers(2))
	grid2 := &mesh.Grid{}
	grid2.Vertices = append(grid2.Vertices, near.Vertices...)
	grid2.Vertices = append(grid2.Vertices, far.Vertices...)
	grid2.Indices = append(grid2.Indices, near.Indices...)
	for _, idx := range far.Indices {
		grid2.Indices = append(grid2.Indices, idx+4)
	}
	if err := r2.Draw(p, grid2); err != nil {
		t.Fatal(err)
	}
	if c2 := r2.Image().RGBAAt(8, 8); c2.R != 51 {
		t.Errorf("center red = %d after reversed order, want 51", c2.R)
	}
}

func TestDrawSmoothsCheckerboardAcrossFragments(t *testing.T) {
	// The fragment stage samples with filtering, so a checkerboard field
	// produces intermediate reds between texel centers even though each
	// vertex displacement reads a single definite texel.
	field := heightmap.NewField(2, []float32{0, 1, 1, 0})
	p := shading.NewProgram(field, shading.WithViewProj(topDownViewProj()), shading.WithHeightScale(0))

	// Interpolated UVs sweep the field across the quad.
	grid := &mesh.Grid{
		Vertices: []shading.VertexInput{
			{Position: [2]float32{-1, -1}, UV: [2]float32{0, 0}},
			{Position: [2]float32{1, -1}, UV: [2]float32{1, 0}},
			{Position: [2]float32{1, 1}, UV: [2]float32{1, 1}},
			{Position: [2]float32{-1, 1}, UV: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}

	r := NewRasterizer(WithSize(64, 64), WithWorkers(2))
	if err := r.Draw(p, grid); err != nil {
		t.Fatal(err)
	}

	c := r.Image().RGBAAt(32, 32)
	if c.R < 100 || c.R > 155 {
		t.Errorf("center red = %d, want an intermediate blend near 128", c.R)
	}
}

func TestDrawRejectsBadInput(t *testing.T) {
	p := shading.NewProgram(constantField(2, 0))
	r := NewRasterizer(WithSize(8, 8))

	if err := r.Draw(nil, fullscreenQuad([2]float32{0, 0})); err == nil {
		t.Error("expected error for nil program")
	}
	if err := r.Draw(p, nil); err == nil {
		t.Error("expected error for nil grid")
	}
	if err := r.Draw(p, &mesh.Grid{
		Vertices: []shading.VertexInput{{}},
		Indices:  []uint32{0, 0},
	}); err == nil {
		t.Error("expected error for a truncated index stream")
	}
}
