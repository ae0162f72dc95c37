package material

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// Material describes how a surface or volume scatters and emits light.
//
// Directions passed in and returned are unit vectors in world space. The hit
// normal always faces the side the incoming ray arrived from.
type Material interface {
	// Sample draws an outgoing direction. A zero PDF means the path stops here.
	Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample

	// Evaluate returns the pdf and BSDF value for a given outgoing direction
	Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3)

	// IsDelta reports a specular lobe that light sampling can never hit
	IsDelta() bool

	// IsVolumetric reports a phase function rather than a surface BSDF
	IsVolumetric() bool

	// Emit returns emitted radiance at texture coordinates (u, v)
	Emit(u, v float64) core.Vec3
}

// BSDFSample is the result of sampling a material.
//
// For surface materials Value is the BSDF f without the cosine term. For delta
// and volumetric materials Value is the full path weight with cosine and pdf folded in.
type BSDFSample struct {
	Direction core.Vec3
	PDF       float64
	Value     core.Vec3
}

// OK reports whether the sample produced a usable direction
func (s BSDFSample) OK() bool {
	return s.PDF > 0
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Shading normal, facing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray approached from the outward side
	UV        core.Vec2 // Texture coordinates
	Material  Material  // Material of the hit object
	Source    any       // Primitive that produced the hit
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// noEmission is embedded by materials that never emit light
type noEmission struct{}

func (noEmission) Emit(u, v float64) core.Vec3 { return core.Vec3{} }

// viewDirection returns the unit direction back toward the ray origin
func viewDirection(rayIn core.Ray) core.Vec3 {
	return rayIn.Direction.Normalize().Negate()
}

// orFallback returns dir, or n when dir is degenerate
func orFallback(dir, n core.Vec3) core.Vec3 {
	if dir.NearZero() {
		return n
	}
	return dir.Normalize()
}
