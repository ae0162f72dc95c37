package core

import (
	"math"
	"testing"
)

func TestSpawnRay_OffsetsToCorrectSide(t *testing.T) {
	p := NewVec3(1.5, 0, -3)
	n := NewVec3(0, 1, 0)

	tests := []struct {
		name    string
		dir     Vec3
		aboveUp bool
	}{
		{"Leaving along normal", NewVec3(0.3, 1, 0), true},
		{"Entering against normal", NewVec3(0.3, -1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := SpawnRay(p, n, tt.dir)
			if math.Abs(ray.Direction.Length()-1) > 1e-12 {
				t.Errorf("Expected normalized direction, got length %f", ray.Direction.Length())
			}
			if tt.aboveUp && ray.Origin.Y <= p.Y {
				t.Errorf("Expected origin above surface, got %f", ray.Origin.Y)
			}
			if !tt.aboveUp && ray.Origin.Y >= p.Y {
				t.Errorf("Expected origin below surface, got %f", ray.Origin.Y)
			}
		})
	}
}

func TestNextFloat(t *testing.T) {
	values := []float64{0, -0.0, 1, -1, 1e-300, 12345.678}
	for _, v := range values {
		if up := NextFloatUp(v); !(up > v) {
			t.Errorf("NextFloatUp(%g) = %g, not greater", v, up)
		}
		if down := NextFloatDown(v); !(down < v) {
			t.Errorf("NextFloatDown(%g) = %g, not smaller", v, down)
		}
	}
}
