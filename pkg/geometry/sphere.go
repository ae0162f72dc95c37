package geometry

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root that lies in the acceptable range
	root := (-halfB - sqrtD) / a
	if root < tMin || tMax < root {
		root = (-halfB + sqrtD) / a
		if root < tMin || tMax < root {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    point,
		UV:       SphereUV(outwardNormal),
		Material: s.Material,
		Source:   s,
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// SphereUV maps a point on the unit sphere to texture coordinates.
// u wraps around the Y axis starting at -X, v runs from the south pole to the north pole.
func SphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
