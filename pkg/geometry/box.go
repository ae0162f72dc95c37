package geometry

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

// Box is an axis-aligned box built from six outward-facing quads.
// Wrap it in Rotate or Translate to orient it.
type Box struct {
	Center     core.Vec3         // Center point of the box
	Dimensions core.Vec3         // Full extent along each axis
	Material   material.Material // Material for all faces
	faces      [6]*Quad
	bbox       core.AABB
}

// NewBox creates a box with the given center and full dimensions
func NewBox(center, dimensions core.Vec3, material material.Material) *Box {
	box := &Box{
		Center:     center,
		Dimensions: dimensions,
		Material:   material,
	}
	box.generateFaces()
	return box
}

// generateFaces creates the 6 quad faces of the box
func (b *Box) generateFaces() {
	half := b.Dimensions.Abs().Multiply(0.5)
	lo := b.Center.Subtract(half)
	hi := b.Center.Add(half)

	dx := core.NewVec3(hi.X-lo.X, 0, 0)
	dy := core.NewVec3(0, hi.Y-lo.Y, 0)
	dz := core.NewVec3(0, 0, hi.Z-lo.Z)

	b.faces = [6]*Quad{
		NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dx, dy, b.Material),         // front (+Z)
		NewQuad(core.NewVec3(hi.X, lo.Y, lo.Z), dx.Negate(), dy, b.Material), // back (-Z)
		NewQuad(core.NewVec3(hi.X, lo.Y, hi.Z), dz.Negate(), dy, b.Material), // right (+X)
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dz, dy, b.Material),          // left (-X)
		NewQuad(core.NewVec3(lo.X, hi.Y, lo.Z), dz, dx, b.Material),          // top (+Y)
		NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dz.Negate(), dx, b.Material), // bottom (-Y)
	}

	b.bbox = core.NewAABB(lo, hi)
}

// Faces returns the six quads making up the box
func (b *Box) Faces() [6]*Quad {
	return b.faces
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestT); isHit {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}
