package lights

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
)

type LightType string

const (
	LightTypeArea     LightType = "area"
	LightTypeInfinite LightType = "infinite"
)

// Light interface for emitters that can be sampled for direct lighting.
// Radiance of area lights comes from the emissive material of their shape.
type Light interface {
	Type() LightType

	// Sample picks a point on the light as seen from a shading point.
	// The returned direction points FROM the shading point TO the light and the
	// pdf is with respect to solid angle at the shading point.
	Sample(point core.Vec3, u core.Vec2) LightSample

	// Evaluate returns the solid-angle pdf that Sample would have produced for
	// this ray, and the radiance carried back along it. hit is the ray's
	// intersection with the light's shape, or nil for rays that escaped the scene.
	Evaluate(ray core.Ray, hit *material.HitRecord) (float64, core.Vec3)

	// Power estimates total emitted power for light selection
	Power() float64

	// Shape returns the intersectable geometry, or nil for lights at infinity
	Shape() geometry.Shape
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3 // Point on the light source
	Normal    core.Vec3 // Normal at the light sample point
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light; +Inf for lights at infinity
	Radiance  core.Vec3 // Emitted radiance toward the shading point
	PDF       float64   // Solid-angle probability density of this sample
}

// OK reports whether the sample can contribute
func (s LightSample) OK() bool {
	return s.PDF > 0 && !s.Radiance.IsZero()
}
