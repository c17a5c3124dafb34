// package mesh generates the flat terrain footprint the vertex stage
// displaces: a Delaunay-triangulated point grid with UVs derived from the
// footprint coordinates.
package mesh

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"

	"terrainview/common"
	"terrainview/engine/shading"
)

// Grid is a triangulated terrain footprint: interleaved vertices and a
// uint32 triangle-list index stream.
type Grid struct {
	Vertices []shading.VertexInput
	Indices  []uint32
}

// GenerateGrid builds a square footprint of side length size: a full border
// ring plus ceil((size-2)*density) inner points per axis, triangulated with
// Delaunay. UVs are position/(size-1), so border vertices span [0, 1].
//
// Parameters:
//   - size: side length of the footprint in grid units (must be >= 2)
//   - density: inner point density relative to the grid resolution
//
// Returns:
//   - *Grid: the triangulated footprint
//   - error: non-nil when the point set cannot be triangulated
func GenerateGrid(size uint32, density float32) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("mesh: grid size %d is below the minimum of 2", size)
	}

	var points []delaunay.Point

	// Border ring: top and bottom rows, then the left and right columns
	// without the corners already added.
	for i := uint32(0); i < size; i++ {
		points = append(points,
			delaunay.Point{X: float64(i), Y: 0},
			delaunay.Point{X: float64(i), Y: float64(size) - 1},
		)
	}
	for i := uint32(1); i < size-1; i++ {
		points = append(points,
			delaunay.Point{X: 0, Y: float64(i)},
			delaunay.Point{X: float64(size) - 1, Y: float64(i)},
		)
	}

	innerSize := size - 2
	numInner := uint32(math.Ceil(float64(innerSize) * float64(density)))
	for i := uint32(0); i < numInner; i++ {
		for j := uint32(0); j < numInner; j++ {
			ti := float64(i+1) / (float64(size) - 1)
			tj := float64(j+1) / (float64(size) - 1)
			points = append(points, delaunay.Point{
				X: ti * float64(size+1),
				Y: tj * float64(size+1),
			})
		}
	}

	triangulation, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("mesh: triangulating %d grid points: %w", len(points), err)
	}

	indices := make([]uint32, len(triangulation.Triangles))
	for i, idx := range triangulation.Triangles {
		indices[i] = uint32(idx)
	}

	invExtent := 1 / (float32(size) - 1)
	vertices := make([]shading.VertexInput, len(points))
	for i, p := range points {
		x := float32(p.X)
		y := float32(p.Y)
		vertices[i] = shading.VertexInput{
			Position: [2]float32{x, y},
			UV:       [2]float32{x * invExtent, y * invExtent},
		}
	}

	return &Grid{Vertices: vertices, Indices: indices}, nil
}

// VertexBytes serializes the interleaved vertex stream for host upload.
//
// Returns:
//   - []byte: position/uv pairs, 16 bytes per vertex
func (g *Grid) VertexBytes() []byte {
	return shading.MarshalVertices(g.Vertices)
}

// IndexBytes returns the index stream as a byte view for host upload.
// The returned slice shares memory with the grid.
//
// Returns:
//   - []byte: the index stream bytes
func (g *Grid) IndexBytes() []byte {
	return common.SliceToBytes(g.Indices)
}
