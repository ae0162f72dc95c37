package core

import "math"

// RayEpsilon is the minimum parametric distance accepted for spawned rays
const RayEpsilon = 1e-6

// originErrorScale bounds the floating-point error of a computed hit point relative to its magnitude
const originErrorScale = 1e-7

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// PointError returns a conservative per-axis error bound for a computed surface point
func PointError(p Vec3) Vec3 {
	abs := p.Abs()
	return Vec3{
		X: originErrorScale * (1 + abs.X),
		Y: originErrorScale * (1 + abs.Y),
		Z: originErrorScale * (1 + abs.Z),
	}
}

// OffsetRayOrigin pushes p off the surface along n, toward the side dir leaves on,
// far enough that the error box around p is cleared.
func OffsetRayOrigin(p, pError, n, dir Vec3) Vec3 {
	d := n.Abs().Dot(pError)
	offset := n.Multiply(d)
	if dir.Dot(n) < 0 {
		offset = offset.Negate()
	}
	po := p.Add(offset)

	round := func(v, o float64) float64 {
		if o > 0 {
			return NextFloatUp(v)
		}
		if o < 0 {
			return NextFloatDown(v)
		}
		return v
	}
	return Vec3{
		X: round(po.X, offset.X),
		Y: round(po.Y, offset.Y),
		Z: round(po.Z, offset.Z),
	}
}

// SpawnRay creates a ray leaving a surface point with a normalized direction
func SpawnRay(p, n, dir Vec3) Ray {
	dir = dir.Normalize()
	return Ray{Origin: OffsetRayOrigin(p, PointError(p), n, dir), Direction: dir}
}

// NextFloatUp returns the next representable float64 above v
func NextFloatUp(v float64) float64 {
	if math.IsInf(v, 1) {
		return v
	}
	if v == 0 {
		v = 0 // turn -0 into +0
	}
	return math.Nextafter(v, math.Inf(1))
}

// NextFloatDown returns the next representable float64 below v
func NextFloatDown(v float64) float64 {
	if math.IsInf(v, -1) {
		return v
	}
	if v == 0 {
		v = math.Copysign(0, -1)
	}
	return math.Nextafter(v, math.Inf(-1))
}
