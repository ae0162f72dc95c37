package geometry

import (
	"math"
	"testing"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func assertVec3Near(t *testing.T, name string, got, want core.Vec3, tolerance float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tolerance ||
		math.Abs(got.Y-want.Y) > tolerance ||
		math.Abs(got.Z-want.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}
