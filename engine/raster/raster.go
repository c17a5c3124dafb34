// package raster evaluates the terrain shader pair the way the fixed GPU
// pipeline would, CPU-side: vertex stage per mesh vertex, triangle setup with
// back-face culling, perspective-correct interpolation with a depth test, and
// the fragment stage per covered pixel. It exists for offline previews and for
// exercising the stages end to end; it is not a GPU host.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"

	"terrainview/common"
	"terrainview/engine/mesh"
	"terrainview/engine/shading"
)

type rasterizerImpl struct {
	mu *sync.Mutex

	width  int
	height int

	clearColor [4]float32
	workers    int

	color *image.RGBA
	depth []float32

	// Per-draw coverage buffers: the rasterization pass records which pixels a
	// front-facing triangle covers and their interpolated UVs, then the
	// fragment pass shades them in parallel (each pixel written by exactly one
	// worker, so the passes need no locking).
	covered []bool
	fragUV  [][2]float32
}

// Rasterizer defines the interface for the software terrain preview pipeline.
type Rasterizer interface {
	// Size returns the framebuffer dimensions in pixels.
	//
	// Returns:
	//   - width, height: the framebuffer dimensions
	Size() (width, height int)

	// Draw clears the framebuffer and renders a triangulated footprint
	// through the program's two stages. Triangles wind counter-clockwise in
	// clip space; back faces are culled. Triangles touching or crossing the
	// w=0 plane are dropped rather than clipped.
	//
	// Parameters:
	//   - program: the shader pair with its bound field, sampler, and settings
	//   - grid: the footprint to render
	//
	// Returns:
	//   - error: non-nil when the program or grid is unusable
	Draw(program shading.Program, grid *mesh.Grid) error

	// Image returns the framebuffer. The returned image shares memory with
	// the rasterizer and is overwritten by the next Draw.
	//
	// Returns:
	//   - *image.RGBA: the framebuffer
	Image() *image.RGBA
}

var _ Rasterizer = &rasterizerImpl{}

// NewRasterizer creates a Rasterizer with a 800x600 framebuffer and the
// terrain clear color (0.1, 0.2, 0.3, 1.0).
//
// Parameters:
//   - options: functional options to configure the rasterizer
//
// Returns:
//   - Rasterizer: the newly created rasterizer
func NewRasterizer(options ...RasterizerBuilderOption) Rasterizer {
	r := &rasterizerImpl{
		mu:         &sync.Mutex{},
		width:      800,
		height:     600,
		clearColor: [4]float32{0.1, 0.2, 0.3, 1.0},
		workers:    max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(r)
	}

	r.color = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.depth = make([]float32, r.width*r.height)
	r.covered = make([]bool, r.width*r.height)
	r.fragUV = make([][2]float32, r.width*r.height)
	return r
}

func (r *rasterizerImpl) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *rasterizerImpl) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.color
}

func (r *rasterizerImpl) Draw(program shading.Program, grid *mesh.Grid) error {
	if program == nil {
		return fmt.Errorf("raster: Draw requires a non-nil program")
	}
	if grid == nil || len(grid.Vertices) == 0 {
		return fmt.Errorf("raster: Draw requires a non-empty grid")
	}
	if len(grid.Indices)%3 != 0 {
		return fmt.Errorf("raster: index count %d is not a multiple of 3", len(grid.Indices))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clear()

	outputs := make([]shading.VertexOutput, len(grid.Vertices))
	for i, v := range grid.Vertices {
		outputs[i] = program.VertexStage(v)
	}

	for i := 0; i+2 < len(grid.Indices); i += 3 {
		r.rasterizeTriangle(
			outputs[grid.Indices[i]],
			outputs[grid.Indices[i+1]],
			outputs[grid.Indices[i+2]],
		)
	}

	r.shadeFragments(program)
	return nil
}

// clear resets the color, depth, and coverage buffers.
// Caller must hold the mutex.
func (r *rasterizerImpl) clear() {
	bg := toRGBA(shading.FragmentColor(r.clearColor))
	for i := range r.depth {
		r.depth[i] = math32.Inf(1)
		r.covered[i] = false
		r.color.SetRGBA(i%r.width, i/r.width, bg)
	}
}

// screenVertex is one triangle corner after the perspective divide and
// viewport transform.
type screenVertex struct {
	x, y float32 // pixel coordinates
	z    float32 // NDC depth in [0, 1]
	invW float32
	uv   [2]float32
}

// rasterizeTriangle records depth-tested coverage and interpolated UVs for one
// triangle. Caller must hold the mutex.
func (r *rasterizerImpl) rasterizeTriangle(v0, v1, v2 shading.VertexOutput) {
	// No near-plane clipping: drop triangles that touch or cross w=0.
	if v0.ClipPosition[3] <= 0 || v1.ClipPosition[3] <= 0 || v2.ClipPosition[3] <= 0 {
		return
	}

	s0 := r.toScreen(v0)
	s1 := r.toScreen(v1)
	s2 := r.toScreen(v2)

	// Counter-clockwise front faces wind clockwise in screen space because
	// the viewport transform flips y, so front faces have negative area here.
	area := edge(s0, s1, s2)
	if area >= 0 {
		return
	}
	invArea := 1 / area

	minX := max(int(math32.Floor(min3(s0.x, s1.x, s2.x))), 0)
	maxX := min(int(math32.Ceil(max3(s0.x, s1.x, s2.x))), r.width-1)
	minY := max(int(math32.Floor(min3(s0.y, s1.y, s2.y))), 0)
	maxY := min(int(math32.Ceil(max3(s0.y, s1.y, s2.y))), r.height-1)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			p := screenVertex{x: float32(px) + 0.5, y: float32(py) + 0.5}

			b0 := edge(s1, s2, p) * invArea
			b1 := edge(s2, s0, p) * invArea
			b2 := edge(s0, s1, p) * invArea
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			// NDC depth interpolates linearly in screen space.
			depth := b0*s0.z + b1*s1.z + b2*s2.z
			idx := py*r.width + px
			if depth >= r.depth[idx] {
				continue
			}

			// Perspective-correct UV: interpolate uv/w and 1/w, then divide.
			invW := b0*s0.invW + b1*s1.invW + b2*s2.invW
			u := (b0*s0.uv[0]*s0.invW + b1*s1.uv[0]*s1.invW + b2*s2.uv[0]*s2.invW) / invW
			v := (b0*s0.uv[1]*s0.invW + b1*s1.uv[1]*s1.invW + b2*s2.uv[1]*s2.invW) / invW

			r.depth[idx] = depth
			r.covered[idx] = true
			r.fragUV[idx] = [2]float32{u, v}
		}
	}
}

// shadeFragments runs the fragment stage for every covered pixel, one row per
// pool task. Caller must hold the mutex.
func (r *rasterizerImpl) shadeFragments(program shading.Program) {
	pool := worker.NewDynamicWorkerPool(r.workers, r.height, 1*time.Second)
	var wg sync.WaitGroup
	for py := 0; py < r.height; py++ {
		wg.Add(1)
		yCap := py
		pool.SubmitTask(worker.Task{
			ID: yCap,
			Do: func() (any, error) {
				defer wg.Done()
				base := yCap * r.width
				for px := 0; px < r.width; px++ {
					if !r.covered[base+px] {
						continue
					}
					c := program.FragmentStage(r.fragUV[base+px])
					r.color.SetRGBA(px, yCap, toRGBA(c))
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// toScreen applies the perspective divide and viewport transform.
// Caller must hold the mutex.
func (r *rasterizerImpl) toScreen(v shading.VertexOutput) screenVertex {
	invW := 1 / v.ClipPosition[3]
	return screenVertex{
		x:    (v.ClipPosition[0]*invW + 1) * 0.5 * float32(r.width),
		y:    (1 - v.ClipPosition[1]*invW) * 0.5 * float32(r.height),
		z:    v.ClipPosition[2] * invW,
		invW: invW,
		uv:   v.UV,
	}
}

// edge is the signed parallelogram area of (b-a) x (c-a).
func edge(a, b, c screenVertex) float32 {
	return (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
}

func toRGBA(c shading.FragmentColor) color.RGBA {
	return color.RGBA{
		R: floatToByte(c[0]),
		G: floatToByte(c[1]),
		B: floatToByte(c[2]),
		A: floatToByte(c[3]),
	}
}

func floatToByte(v float32) uint8 {
	return uint8(common.Clamp(v, 0, 1)*255 + 0.5)
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}
