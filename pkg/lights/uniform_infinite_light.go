package lights

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
)

// infiniteLight holds the scene bounds shared by lights at infinity
type infiniteLight struct {
	worldCenter core.Vec3 // Finite scene center from the BVH
	worldRadius float64   // Finite scene radius from the BVH
}

// Preprocess implements the geometry.Preprocessor interface - sets world bounds from the scene
func (il *infiniteLight) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	il.worldCenter = worldCenter
	il.worldRadius = worldRadius
	return nil
}

func (il *infiniteLight) Type() LightType {
	return LightTypeInfinite
}

func (il *infiniteLight) Shape() geometry.Shape {
	return nil
}

// sample draws a uniform direction and places the light point outside the scene
func (il *infiniteLight) sample(point core.Vec3, u core.Vec2, radiance func(core.Vec3) core.Vec3) LightSample {
	direction := core.SampleUniformSphere(u)
	return LightSample{
		Point:     point.Add(direction.Multiply(2 * math.Max(il.worldRadius, 1))),
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  math.Inf(1),
		Radiance:  radiance(direction),
		PDF:       core.UniformSpherePDF,
	}
}

// power scales an average radiance by the flux through the scene's bounding disk
func (il *infiniteLight) power(averageRadiance core.Vec3) float64 {
	return 4 * math.Pi * math.Pi * il.worldRadius * il.worldRadius * averageRadiance.Luminance()
}

// UniformInfiniteLight represents constant radiance arriving from every direction
type UniformInfiniteLight struct {
	infiniteLight
	Emission core.Vec3
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{Emission: emission}
}

func (uil *UniformInfiniteLight) radiance(core.Vec3) core.Vec3 {
	return uil.Emission
}

// Sample draws a uniform direction on the sphere
func (uil *UniformInfiniteLight) Sample(point core.Vec3, u core.Vec2) LightSample {
	return uil.sample(point, u, uil.radiance)
}

// Evaluate returns the radiance of an escaped ray
func (uil *UniformInfiniteLight) Evaluate(ray core.Ray, hit *material.HitRecord) (float64, core.Vec3) {
	return core.UniformSpherePDF, uil.Emission
}

// Power is only meaningful after Preprocess has supplied the scene bounds
func (uil *UniformInfiniteLight) Power() float64 {
	return uil.power(uil.Emission)
}

// GradientInfiniteLight blends two colors by the vertical component of the direction
type GradientInfiniteLight struct {
	infiniteLight
	TopColor    core.Vec3
	BottomColor core.Vec3
}

// NewGradientInfiniteLight creates a new gradient infinite light
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) *GradientInfiniteLight {
	return &GradientInfiniteLight{TopColor: topColor, BottomColor: bottomColor}
}

func (gil *GradientInfiniteLight) radiance(direction core.Vec3) core.Vec3 {
	return Gradient(gil.TopColor, gil.BottomColor, direction)
}

// Sample draws a uniform direction on the sphere
func (gil *GradientInfiniteLight) Sample(point core.Vec3, u core.Vec2) LightSample {
	return gil.sample(point, u, gil.radiance)
}

// Evaluate returns the gradient radiance for an escaped ray
func (gil *GradientInfiniteLight) Evaluate(ray core.Ray, hit *material.HitRecord) (float64, core.Vec3) {
	return core.UniformSpherePDF, gil.radiance(ray.Direction.Normalize())
}

// Power uses the mean of the two colors, which is the exact sphere average of a linear blend
func (gil *GradientInfiniteLight) Power() float64 {
	return gil.power(gil.TopColor.Add(gil.BottomColor).Multiply(0.5))
}

// Gradient maps direction.Y from [-1,1] to a blend of bottom and top
func Gradient(top, bottom, direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Y + 1.0)
	return bottom.Multiply(1.0 - t).Add(top.Multiply(t))
}
