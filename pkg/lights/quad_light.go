package lights

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
)

// minLightCosine rejects samples that see the light edge-on
const minLightCosine = 1e-8

// QuadLight represents a one-sided rectangular area light
type QuadLight struct {
	*geometry.Quad // Embed quad for hit testing
}

// NewQuadLight creates a new quad light. It emits on the side its normal (u × v) faces.
func NewQuadLight(corner, u, v core.Vec3, material material.Material) *QuadLight {
	return &QuadLight{Quad: geometry.NewQuad(corner, u, v, material)}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// Shape returns the underlying quad
func (ql *QuadLight) Shape() geometry.Shape {
	return ql.Quad
}

// Sample picks a point uniformly on the quad and converts the area pdf to solid angle
func (ql *QuadLight) Sample(point core.Vec3, u core.Vec2) LightSample {
	samplePoint := ql.PointAt(u.X, u.Y)

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	sample := LightSample{
		Point:     samplePoint,
		Normal:    ql.Normal,
		Direction: direction,
		Distance:  distance,
	}

	cosTheta := -ql.Normal.Dot(direction)
	if math.Abs(cosTheta) < minLightCosine {
		return sample
	}
	sample.PDF = distance * distance / (ql.Area() * math.Abs(cosTheta))

	// Only the front face emits
	if cosTheta > 0 {
		sample.Radiance = ql.Material.Emit(u.X, u.Y)
	}
	return sample
}

// Evaluate returns the pdf and radiance for a ray that hit the quad
func (ql *QuadLight) Evaluate(ray core.Ray, hit *material.HitRecord) (float64, core.Vec3) {
	if hit == nil {
		return 0, core.Vec3{}
	}

	direction := ray.Direction.Normalize()
	cosTheta := -ql.Normal.Dot(direction)
	if math.Abs(cosTheta) < minLightCosine {
		return 0, core.Vec3{}
	}

	distance := hit.T * ray.Direction.Length()
	pdf := distance * distance / (ql.Area() * math.Abs(cosTheta))
	if cosTheta < 0 {
		return pdf, core.Vec3{}
	}
	return pdf, ql.Material.Emit(hit.UV.X, hit.UV.Y)
}

// Power is the luminance of the emission at the quad center times area times π
func (ql *QuadLight) Power() float64 {
	return ql.Material.Emit(0.5, 0.5).Luminance() * ql.Area() * math.Pi
}
