package geometry

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

// quadEdgeTolerance admits hits that land a hair outside the parametric [0,1] range
const quadEdgeTolerance = 1e-9

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · p = D
	W        core.Vec3         // Cached vector for planar coordinates
	area     float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		D:        normal.Dot(corner),
		W:        cross.Multiply(1.0 / cross.Dot(cross)),
		area:     cross.Length(),
	}
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.area
}

// PointAt returns the point at planar coordinates (alpha, beta) in [0,1]²
func (q *Quad) PointAt(alpha, beta float64) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(alpha)).Add(q.V.Multiply(beta))
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	if alpha < -quadEdgeTolerance || alpha > 1+quadEdgeTolerance ||
		beta < -quadEdgeTolerance || beta > 1+quadEdgeTolerance {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		UV:       core.NewVec2(clamp01(alpha), clamp01(beta)),
		Material: q.Material,
		Source:   q,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}

// BoundingBox returns the padded box around the four corners
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
