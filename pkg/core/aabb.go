package core

import "math"

// AABBPadding is the minimum extent of a bounding box along any axis
const AABBPadding = 1e-4

// AABB represents an axis-aligned bounding box. Boxes built with NewAABB are
// padded so that no axis is thinner than AABBPadding.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a padded AABB spanning the two corner points in any order
func NewAABB(a, b Vec3) AABB {
	box := AABB{Min: a.Min(b), Max: a.Max(b)}
	return box.pad()
}

// NewAABBFromPoints creates a padded AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo := points[0]
	hi := points[0]
	for _, point := range points[1:] {
		lo = lo.Min(point)
		hi = hi.Max(point)
	}

	return NewAABB(lo, hi)
}

// pad widens every axis narrower than AABBPadding, keeping it centered
func (aabb AABB) pad() AABB {
	padAxis := func(lo, hi float64) (float64, float64) {
		if hi-lo >= AABBPadding {
			return lo, hi
		}
		lo = 0.5*(lo+hi) - AABBPadding/2
		hi = lo + AABBPadding
		// Rounding can leave hi-lo a few ulps short of the padding
		for hi-lo < AABBPadding {
			hi = NextFloatUp(hi)
		}
		return lo, hi
	}
	aabb.Min.X, aabb.Max.X = padAxis(aabb.Min.X, aabb.Max.X)
	aabb.Min.Y, aabb.Max.Y = padAxis(aabb.Min.Y, aabb.Max.Y)
	aabb.Min.Z, aabb.Max.Z = padAxis(aabb.Min.Z, aabb.Max.Z)
	return aabb
}

// Hit tests if a ray intersects with this AABB using the slab method.
// The interval is tightened per axis and the test fails once it is empty.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo := aabb.Min.Axis(axis)
		hi := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Parallel to this slab: inside or never
		if direction == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t0 := (lo - origin) * invDirection
		t1 := (hi - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Translate returns the box moved by offset, padded again since the move can round an axis thinner
func (aabb AABB) Translate(offset Vec3) AABB {
	moved := AABB{Min: aabb.Min.Add(offset), Max: aabb.Max.Add(offset)}
	return moved.pad()
}

// Corners returns the eight corners of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		corners[i] = Vec3{
			X: pick(i&1 != 0, aabb.Max.X, aabb.Min.X),
			Y: pick(i&2 != 0, aabb.Max.Y, aabb.Min.Y),
			Z: pick(i&4 != 0, aabb.Max.Z, aabb.Min.Z),
		}
	}
	return corners
}

// BoundingSphere returns the center and radius of a sphere enclosing the box
func (aabb AABB) BoundingSphere() (Vec3, float64) {
	center := aabb.Center()
	return center, math.Sqrt(aabb.Max.Subtract(center).LengthSquared())
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
