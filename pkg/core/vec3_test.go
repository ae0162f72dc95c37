package core

import (
	"math"
	"testing"
)

func vecAlmostEqual(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Min", a.Min(b), NewVec3(1, -5, 3)},
		{"Max", a.Max(b), NewVec3(4, 2, 6)},
		{"Abs", b.Abs(), NewVec3(4, 5, 6)},
		{"DivideVec by zero", a.DivideVec(NewVec3(1, 0, 3)), NewVec3(1, 0, 1)},
		{"Lerp midpoint", a.Lerp(b, 0.5), NewVec3(2.5, -1.5, 4.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecAlmostEqual(tt.got, tt.expected, 1e-12) {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 12).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("Normalizing zero vector should return zero, got %v", zero)
	}
}

func TestVec3_Luminance(t *testing.T) {
	white := NewVec3(1, 1, 1)
	if math.Abs(white.Luminance()-1.0) > 1e-9 {
		t.Errorf("Expected white luminance 1.0, got %f", white.Luminance())
	}
}

func TestONB_RoundTrip(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, 0, -1),
		NewVec3(1, 0, 0),
		NewVec3(0.3, -0.8, 0.2).Normalize(),
	}

	for _, n := range normals {
		onb := NewONB(n)
		if math.Abs(onb.U.Dot(onb.V)) > 1e-9 || math.Abs(onb.U.Dot(onb.W)) > 1e-9 || math.Abs(onb.V.Dot(onb.W)) > 1e-9 {
			t.Errorf("Basis for %v is not orthogonal: %+v", n, onb)
		}

		world := NewVec3(0.2, -0.4, 0.7)
		back := onb.ToWorld(onb.ToLocal(world))
		if !vecAlmostEqual(world, back, 1e-9) {
			t.Errorf("Round trip for %v: expected %v, got %v", n, world, back)
		}
	}
}
