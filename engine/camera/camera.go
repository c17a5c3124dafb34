// package camera produces the view-projection matrix a terrain draw binds:
// a free-look camera described by an eye position and yaw/pitch angles.
package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"terrainview/common"
)

// pitchLimit bounds the look pitch just short of straight up/down.
const pitchLimit = 3.14 / 2.0

type cameraImpl struct {
	mu *sync.Mutex

	eye [3]float32
	up  [3]float32

	yaw   float32
	pitch float32

	aspect float32
	fov    float32
	near   float32
	far    float32
}

// Camera defines the interface for the free-look camera. It holds an eye
// position plus yaw/pitch orientation and derives view and projection
// matrices on demand; clip depth uses the [0, 1] WebGPU convention.
type Camera interface {
	// Eye returns the camera position in world space.
	//
	// Returns:
	//   - x, y, z: eye position components
	Eye() (x, y, z float32)

	// Yaw returns the yaw angle in radians.
	//
	// Returns:
	//   - float32: the yaw angle
	Yaw() float32

	// Pitch returns the pitch angle in radians.
	//
	// Returns:
	//   - float32: the pitch angle
	Pitch() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Direction returns the full view direction derived from yaw and pitch.
	//
	// Returns:
	//   - x, y, z: unit view direction components
	Direction() (x, y, z float32)

	// Forward returns the yaw-only movement direction, flat in the world
	// plane regardless of pitch.
	//
	// Returns:
	//   - x, y, z: forward direction components
	Forward() (x, y, z float32)

	// Move translates the eye along the movement basis: the flat forward
	// direction, the right vector (forward cross up, normalized), and the
	// normalized up vector.
	//
	// Parameters:
	//   - forward, right, up: signed distances along each basis vector
	Move(forward, right, up float32)

	// Look adjusts yaw and pitch, clamping pitch short of vertical.
	//
	// Parameters:
	//   - dyaw, dpitch: angle deltas in radians
	Look(dyaw, dpitch float32)

	// SetAspect sets the aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// ViewProjectionMatrix computes the combined view-projection matrix as
	// 16 floats (column-major): a look-to view from the eye along Direction,
	// multiplied by a perspective projection with [0, 1] clip depth.
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the world origin height 1, looking along
// +X with a 45 degree vertical field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		eye:    [3]float32{0, 1, 0},
		up:     [3]float32{0, 1, 0},
		aspect: 1.0,
		fov:    common.Radians(45),
		near:   0.01,
		far:    1000.0,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Eye() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye[0], c.eye[1], c.eye[2]
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Direction() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction()
}

func (c *cameraImpl) Forward() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward()
}

func (c *cameraImpl) Move(forward, right, up float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fx, fy, fz := c.forward()
	rx, ry, rz := common.Cross3(fx, fy, fz, c.up[0], c.up[1], c.up[2])
	rx, ry, rz = common.Normalize3(rx, ry, rz)
	ux, uy, uz := common.Normalize3(c.up[0], c.up[1], c.up[2])

	c.eye[0] += fx*forward + rx*right + ux*up
	c.eye[1] += fy*forward + ry*right + uy*up
	c.eye[2] += fz*forward + rz*right + uz*up
}

func (c *cameraImpl) Look(dyaw, dpitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.yaw += dyaw
	c.pitch = common.Clamp(c.pitch+dpitch, -pitchLimit, pitchLimit)
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	dx, dy, dz := c.direction()

	var view, proj, viewProj [16]float32
	common.LookTo(view[:],
		c.eye[0], c.eye[1], c.eye[2],
		dx, dy, dz,
		c.up[0], c.up[1], c.up[2],
	)
	common.Perspective(proj[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(viewProj[:], proj[:], view[:])
	return viewProj
}

// direction derives the unit view direction from yaw and pitch.
// Caller must hold the mutex.
func (c *cameraImpl) direction() (x, y, z float32) {
	return math32.Cos(c.yaw) * math32.Cos(c.pitch),
		math32.Sin(c.pitch),
		math32.Sin(c.yaw) * math32.Cos(c.pitch)
}

// forward derives the yaw-only movement direction.
// Caller must hold the mutex.
func (c *cameraImpl) forward() (x, y, z float32) {
	return math32.Cos(c.yaw), 0, math32.Sin(c.yaw)
}
