package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"terrainview/common"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func approx3(ax, ay, az, bx, by, bz float32) bool {
	return approx(ax, bx) && approx(ay, by) && approx(az, bz)
}

func TestDirection(t *testing.T) {
	tests := []struct {
		yaw, pitch float32
		dx, dy, dz float32
	}{
		{0, 0, 1, 0, 0},
		{math32.Pi / 2, 0, 0, 0, 1},
		{0, math32.Pi / 4, math32.Sqrt2 / 2, math32.Sqrt2 / 2, 0},
	}

	for _, test := range tests {
		c := NewCamera(WithYaw(test.yaw), WithPitch(test.pitch))
		dx, dy, dz := c.Direction()
		if !approx3(dx, dy, dz, test.dx, test.dy, test.dz) {
			t.Errorf("Direction(yaw=%v, pitch=%v) = (%v, %v, %v), want (%v, %v, %v)",
				test.yaw, test.pitch, dx, dy, dz, test.dx, test.dy, test.dz)
		}
	}
}

func TestForwardIgnoresPitch(t *testing.T) {
	c := NewCamera(WithYaw(math32.Pi/2), WithPitch(1.2))
	fx, fy, fz := c.Forward()
	if !approx3(fx, fy, fz, 0, 0, 1) {
		t.Errorf("Forward = (%v, %v, %v), want (0, 0, 1)", fx, fy, fz)
	}
}

func TestMove(t *testing.T) {
	c := NewCamera(WithEye(0, 1, 0), WithYaw(0))

	// Forward is +X at yaw 0, so right = forward cross up = +Z.
	c.Move(2, 3, 4)

	x, y, z := c.Eye()
	if !approx3(x, y, z, 2, 5, 3) {
		t.Errorf("eye = (%v, %v, %v), want (2, 5, 3)", x, y, z)
	}
}

func TestLookClampsPitch(t *testing.T) {
	c := NewCamera()

	c.Look(0, 10)
	if got := c.Pitch(); !approx(got, pitchLimit) {
		t.Errorf("pitch = %v, want clamp at %v", got, float32(pitchLimit))
	}

	c.Look(0, -20)
	if got := c.Pitch(); !approx(got, -pitchLimit) {
		t.Errorf("pitch = %v, want clamp at %v", got, float32(-pitchLimit))
	}

	c.Look(1.5, 0)
	if got := c.Yaw(); !approx(got, 1.5) {
		t.Errorf("yaw = %v, want 1.5 (unclamped)", got)
	}
}

func TestViewProjectionCentersViewedPoint(t *testing.T) {
	// Camera at origin looking along +X: a point ahead on the view axis
	// projects to the center of clip space with positive w.
	c := NewCamera(WithEye(0, 0, 0), WithYaw(0), WithPitch(0))

	m := c.ViewProjectionMatrix()
	clip := common.TransformVec4(m[:], 10, 0, 0, 1)

	if !approx(clip[0], 0) || !approx(clip[1], 0) {
		t.Errorf("clip xy = (%v, %v), want (0, 0)", clip[0], clip[1])
	}
	if clip[3] <= 0 {
		t.Errorf("clip w = %v, want > 0", clip[3])
	}
	// Depth lands inside the [0, 1] range after the perspective divide.
	depth := clip[2] / clip[3]
	if depth < 0 || depth > 1 {
		t.Errorf("ndc depth = %v, want within [0, 1]", depth)
	}
}

func TestViewProjectionDeterministic(t *testing.T) {
	c := NewCamera(WithEye(1, 2, 3), WithYaw(0.5), WithPitch(-0.25), WithAspect(16.0/9.0))
	if c.ViewProjectionMatrix() != c.ViewProjectionMatrix() {
		t.Error("repeated matrix computations should be bit-identical")
	}
}
