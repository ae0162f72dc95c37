package geometry

import (
	"math"
	"testing"

	"github.com/horenderer/pathtracer/pkg/core"
)

func TestQuad_Hit_BasicIntersection(t *testing.T) {
	// 1x1 quad in the XZ plane at y=0
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial)

	ray := core.NewRay(core.NewVec3(0.25, 1, 0.75), core.NewVec3(0, -1, 0))
	hit, isHit := quad.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	assertVec3Near(t, "point", hit.Point, core.NewVec3(0.25, 0, 0.75), 1e-9)

	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected UV (0.25, 0.75), got %v", hit.UV)
	}

	// Normal of X × Z is -Y, so a ray from above hits the back face
	if hit.FrontFace {
		t.Error("Expected back face hit from above")
	}
	assertVec3Near(t, "normal", hit.Normal, core.NewVec3(0, 1, 0), 1e-12)
}

func TestQuad_Hit_OutsideBounds(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial)

	tests := []struct {
		name      string
		rayOrigin core.Vec3
		rayDir    core.Vec3
	}{
		{"outside X bounds (negative)", core.NewVec3(-0.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside X bounds (positive)", core.NewVec3(1.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (negative)", core.NewVec3(0.5, 1, -0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (positive)", core.NewVec3(0.5, 1, 1.5), core.NewVec3(0, -1, 0)},
		{"parallel to plane", core.NewVec3(0.5, 1, 0.5), core.NewVec3(1, 0, 0)},
		{"pointing away", core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDir)
			if hit, isHit := quad.Hit(ray, 0.001, 1000.0); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestQuad_Hit_Edge(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial)

	// A ray landing exactly on the shared edge must not slip through
	ray := core.NewRay(core.NewVec3(1, 1, 0.5), core.NewVec3(0, -1, 0))
	if _, isHit := quad.Hit(ray, 0.001, 1000); !isHit {
		t.Error("Expected hit on the quad edge")
	}
}

func TestQuad_AreaAndBoundingBox(t *testing.T) {
	quad := NewQuad(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 3), testMaterial)

	if math.Abs(quad.Area()-6) > 1e-12 {
		t.Errorf("Expected area 6, got %f", quad.Area())
	}

	box := quad.BoundingBox()
	if box.Max.Y-box.Min.Y < core.AABBPadding {
		t.Errorf("Expected flat quad box to be padded, got thickness %g", box.Max.Y-box.Min.Y)
	}
	assertVec3Near(t, "point at center", quad.PointAt(0.5, 0.5), core.NewVec3(0, 2, 0.5), 1e-12)
}
