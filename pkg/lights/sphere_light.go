package lights

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
)

// SphereLight represents a spherical area light emitting outward
type SphereLight struct {
	*geometry.Sphere // Embed sphere for hit testing
}

// NewSphereLight creates a new spherical light
func NewSphereLight(center core.Vec3, radius float64, material material.Material) *SphereLight {
	return &SphereLight{Sphere: geometry.NewSphere(center, radius, material)}
}

func (sl *SphereLight) Type() LightType {
	return LightTypeArea
}

// Shape returns the underlying sphere
func (sl *SphereLight) Shape() geometry.Shape {
	return sl.Sphere
}

func (sl *SphereLight) area() float64 {
	return 4 * math.Pi * sl.Radius * sl.Radius
}

// cosThetaMax returns the cosine of the cone the sphere subtends from point,
// or false if the point is inside the sphere
func (sl *SphereLight) cosThetaMax(point core.Vec3) (float64, bool) {
	distanceSquared := sl.Center.Subtract(point).LengthSquared()
	radiusSquared := sl.Radius * sl.Radius
	if distanceSquared <= radiusSquared {
		return 0, false
	}
	sinThetaMaxSquared := radiusSquared / distanceSquared
	return math.Sqrt(math.Max(0, 1-sinThetaMaxSquared)), true
}

// Sample draws a direction in the cone subtended by the sphere, or a uniform
// point on the surface when the shading point is inside
func (sl *SphereLight) Sample(point core.Vec3, u core.Vec2) LightSample {
	cosMax, outside := sl.cosThetaMax(point)
	if !outside {
		return sl.sampleUniform(point, u)
	}

	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()
	frame := core.NewONB(toCenter.Multiply(1.0 / distanceToCenter))

	local := core.SampleUniformCone(u, cosMax)
	direction := frame.ToWorld(local)

	// Distance to the near intersection along the sampled direction
	cosTheta := local.Z
	sinThetaSquared := math.Max(0, 1-cosTheta*cosTheta)
	distance := distanceToCenter*cosTheta -
		math.Sqrt(math.Max(0, sl.Radius*sl.Radius-distanceToCenter*distanceToCenter*sinThetaSquared))

	samplePoint := point.Add(direction.Multiply(distance))
	normal := samplePoint.Subtract(sl.Center).Multiply(1.0 / sl.Radius)
	uv := geometry.SphereUV(normal)

	return LightSample{
		Point:     samplePoint,
		Normal:    normal,
		Direction: direction,
		Distance:  distance,
		Radiance:  sl.Material.Emit(uv.X, uv.Y),
		PDF:       core.UniformConePDF(cosMax),
	}
}

// sampleUniform samples the whole sphere surface by area
func (sl *SphereLight) sampleUniform(point core.Vec3, u core.Vec2) LightSample {
	normal := core.SampleUniformSphere(u)
	samplePoint := sl.Center.Add(normal.Multiply(sl.Radius))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	cosTheta := math.Abs(normal.Dot(direction))
	if cosTheta < minLightCosine {
		return LightSample{}
	}

	// Seen from inside, the surface faces away and does not emit
	return LightSample{
		Point:     samplePoint,
		Normal:    normal,
		Direction: direction,
		Distance:  distance,
		PDF:       distance * distance / (sl.area() * cosTheta),
	}
}

// Evaluate returns the pdf and radiance for a ray that hit the sphere
func (sl *SphereLight) Evaluate(ray core.Ray, hit *material.HitRecord) (float64, core.Vec3) {
	if hit == nil {
		return 0, core.Vec3{}
	}

	cosMax, outside := sl.cosThetaMax(ray.Origin)
	if !outside {
		direction := ray.Direction.Normalize()
		cosTheta := math.Abs(hit.Normal.Dot(direction))
		if cosTheta < minLightCosine {
			return 0, core.Vec3{}
		}
		distance := hit.T * ray.Direction.Length()
		return distance * distance / (sl.area() * cosTheta), core.Vec3{}
	}

	if !hit.FrontFace {
		return core.UniformConePDF(cosMax), core.Vec3{}
	}
	return core.UniformConePDF(cosMax), sl.Material.Emit(hit.UV.X, hit.UV.Y)
}

// Power is the luminance of the emission times area times π
func (sl *SphereLight) Power() float64 {
	return sl.Material.Emit(0.5, 0.5).Luminance() * sl.area() * math.Pi
}
