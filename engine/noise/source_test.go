package noise

import (
	"testing"

	"github.com/chewxy/math32"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func TestCosineSample(t *testing.T) {
	tests := []struct {
		x, y float32
		want float32
	}{
		{0, 0, 1},
		{math32.Pi, 0, 0},
		{math32.Pi, math32.Pi, -1},
		{math32.Pi / 2, math32.Pi / 2, 0},
	}

	src := Cosine{}
	for _, test := range tests {
		got := src.Sample(test.x, test.y, 0)
		if !approx(got, test.want) {
			t.Errorf("Sample(%v, %v) = %v, want %v", test.x, test.y, got, test.want)
		}
	}
}

func TestCosineIgnoresSeed(t *testing.T) {
	src := Cosine{}
	if src.Sample(1.5, 2.5, 0) != src.Sample(1.5, 2.5, 42) {
		t.Error("cosine source should not depend on the seed argument")
	}
}

func TestPerlinRange(t *testing.T) {
	src := NewPerlin(7)
	for x := float32(0); x < 10; x += 0.37 {
		for y := float32(0); y < 10; y += 0.41 {
			s := src.Sample(x, y, 0)
			if s < -1 || s > 1 {
				t.Fatalf("Sample(%v, %v) = %v outside [-1, 1]", x, y, s)
			}
		}
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a := NewPerlin(3)
	b := NewPerlin(3)
	for x := float32(0); x < 5; x += 0.73 {
		if a.Sample(x, x*0.5, 0) != b.Sample(x, x*0.5, 0) {
			t.Fatalf("same seed produced different samples at x=%v", x)
		}
	}

	c := NewPerlin(4)
	same := true
	for x := float32(0.1); x < 5; x += 0.73 {
		if a.Sample(x, x*0.5, 0) != c.Sample(x, x*0.5, 0) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical samples")
	}
}
