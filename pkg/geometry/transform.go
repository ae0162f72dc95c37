package geometry

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

// Translate moves a shape by a fixed offset
type Translate struct {
	Object Shape
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so that it appears moved by offset
func NewTranslate(object Shape, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit intersects the ray moved into object space
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	local := core.NewRay(ray.Origin.Subtract(tr.Offset), ray.Direction)
	hit, ok := tr.Object.Hit(local, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the translated bounding box
func (tr *Translate) BoundingBox() core.AABB {
	return tr.bbox
}

// Rotate turns a shape about one coordinate axis through the origin
type Rotate struct {
	Object Shape
	Axis   int // 0=X, 1=Y, 2=Z
	sin    float64
	cos    float64
	bbox   core.AABB
}

// NewRotateX rotates object about the X axis by degrees
func NewRotateX(object Shape, degrees float64) *Rotate {
	return newRotate(object, 0, degrees)
}

// NewRotateY rotates object about the Y axis by degrees
func NewRotateY(object Shape, degrees float64) *Rotate {
	return newRotate(object, 1, degrees)
}

// NewRotateZ rotates object about the Z axis by degrees
func NewRotateZ(object Shape, degrees float64) *Rotate {
	return newRotate(object, 2, degrees)
}

func newRotate(object Shape, axis int, degrees float64) *Rotate {
	radians := degrees * math.Pi / 180
	r := &Rotate{
		Object: object,
		Axis:   axis,
		sin:    math.Sin(radians),
		cos:    math.Cos(radians),
	}

	corners := object.BoundingBox().Corners()
	for i := range corners {
		corners[i] = r.toWorld(corners[i])
	}
	r.bbox = core.NewAABBFromPoints(corners[:]...)
	return r
}

// rotate applies a rotation with the given sine and cosine about r.Axis
func (r *Rotate) rotate(v core.Vec3, sin float64) core.Vec3 {
	switch r.Axis {
	case 0:
		return core.NewVec3(v.X, r.cos*v.Y-sin*v.Z, sin*v.Y+r.cos*v.Z)
	case 1:
		return core.NewVec3(r.cos*v.X+sin*v.Z, v.Y, -sin*v.X+r.cos*v.Z)
	default:
		return core.NewVec3(r.cos*v.X-sin*v.Y, sin*v.X+r.cos*v.Y, v.Z)
	}
}

func (r *Rotate) toWorld(v core.Vec3) core.Vec3 {
	return r.rotate(v, r.sin)
}

func (r *Rotate) toObject(v core.Vec3) core.Vec3 {
	return r.rotate(v, -r.sin)
}

// Hit intersects the ray rotated into object space
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	local := core.NewRay(r.toObject(ray.Origin), r.toObject(ray.Direction))
	hit, ok := r.Object.Hit(local, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box around the rotated corners
func (r *Rotate) BoundingBox() core.AABB {
	return r.bbox
}

// Scale stretches a shape by per-axis factors about the origin
type Scale struct {
	Object  Shape
	Factors core.Vec3
	bbox    core.AABB
}

// NewScale wraps object scaled by factors. Zero factors are not supported.
func NewScale(object Shape, factors core.Vec3) *Scale {
	corners := object.BoundingBox().Corners()
	for i := range corners {
		corners[i] = corners[i].MultiplyVec(factors)
	}
	return &Scale{
		Object:  object,
		Factors: factors,
		bbox:    core.NewAABBFromPoints(corners[:]...),
	}
}

// NewUniformScale wraps object scaled by the same factor on every axis
func NewUniformScale(object Shape, factor float64) *Scale {
	return NewScale(object, core.NewVec3(factor, factor, factor))
}

// Hit intersects the ray in object space. The direction is scaled without
// renormalizing so the ray parameter t is the same in both spaces.
func (s *Scale) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	local := core.NewRay(ray.Origin.DivideVec(s.Factors), ray.Direction.DivideVec(s.Factors))
	hit, ok := s.Object.Hit(local, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.MultiplyVec(s.Factors)
	hit.Normal = hit.Normal.DivideVec(s.Factors).Normalize()
	return hit, true
}

// BoundingBox returns the box around the scaled corners
func (s *Scale) BoundingBox() core.AABB {
	return s.bbox
}
