// Package medium implements participating media as intersectable shapes whose
// hits are scattering events inside a volume.
package medium

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
)

// exitEpsilon separates the boundary entry from the exit search
const exitEpsilon = 1e-4

// minFreeFlightSample keeps the exponential sample finite
const minFreeFlightSample = 1e-8

// Homogeneous is a constant-density volume bounded by a closed convex shape
type Homogeneous struct {
	Boundary geometry.Shape
	SigmaT   core.Vec3         // Extinction coefficient per channel
	Phase    material.Material // Phase function used at scattering events
	density  float64
}

// NewHomogeneous creates a gray medium with the given density
func NewHomogeneous(boundary geometry.Shape, density float64, phase material.Material) *Homogeneous {
	return &Homogeneous{
		Boundary: boundary,
		SigmaT:   core.NewVec3(density, density, density),
		Phase:    phase,
		density:  density,
	}
}

// NewHomogeneousRGB creates a medium with per-channel extinction. Free-flight
// sampling uses the luminance of sigmaT as a single density.
func NewHomogeneousRGB(boundary geometry.Shape, sigmaT core.Vec3, phase material.Material) *Homogeneous {
	return &Homogeneous{
		Boundary: boundary,
		SigmaT:   sigmaT,
		Phase:    phase,
		density:  sigmaT.Luminance(),
	}
}

// NewHomogeneousScattering creates a medium from scattering and absorption coefficients
func NewHomogeneousScattering(boundary geometry.Shape, sigmaS, sigmaA core.Vec3, phase material.Material) *Homogeneous {
	return NewHomogeneousRGB(boundary, sigmaS.Add(sigmaA), phase)
}

// Density returns the scalar extinction used for free-flight sampling
func (m *Homogeneous) Density() float64 {
	return m.density
}

// Hit reports a scattering event if a sampled free-flight distance ends inside
// the boundary within [tMin, tMax]. The distance is drawn from a hash of the
// ray, so the same ray always scatters at the same place.
func (m *Homogeneous) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if m.density <= 0 {
		return nil, false
	}

	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+exitEpsilon, math.Inf(1))
	if !ok {
		return nil, false
	}

	tEnter := math.Max(entry.T, tMin)
	tExit := math.Min(exit.T, tMax)
	if tEnter >= tExit {
		return nil, false
	}
	if tEnter < 0 {
		tEnter = 0
	}

	rayLength := ray.Direction.Length()
	if rayLength == 0 {
		return nil, false
	}
	distanceInside := (tExit - tEnter) * rayLength

	u := math.Max(rayHash(ray), minFreeFlightSample)
	hitDistance := -math.Log(u) / m.density
	if hitDistance > distanceInside {
		return nil, false
	}

	t := tEnter + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0),
		FrontFace: true,
		Material:  m.Phase,
		Source:    m,
	}, true
}

// BoundingBox returns the boundary's box
func (m *Homogeneous) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}

// rayHash maps a ray to a uniform value in [0, 1)
func rayHash(ray core.Ray) float64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range [6]float64{
		ray.Origin.X, ray.Origin.Y, ray.Origin.Z,
		ray.Direction.X, ray.Direction.Y, ray.Direction.Z,
	} {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	x := h.Sum64()
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	// Top 53 bits give an exact float64 in [0, 1)
	return float64(x>>11) / (1 << 53)
}
