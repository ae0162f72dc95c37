package material

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// Glass is a perfectly smooth dielectric with delta reflection and transmission
type Glass struct {
	noEmission
	Albedo Texture
	IOR    float64
}

// NewGlass creates a clear glass material
func NewGlass(ior float64) *Glass {
	return &Glass{Albedo: NewSolidColor(core.NewVec3(1, 1, 1)), IOR: ior}
}

// NewTintedGlass creates a glass material that filters light by albedo
func NewTintedGlass(albedo Texture, ior float64) *Glass {
	return &Glass{Albedo: albedo, IOR: ior}
}

// Sample reflects with probability F and refracts otherwise.
// Value is the path weight; PDF is the discrete probability of the chosen branch.
func (g *Glass) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	v := viewDirection(rayIn)
	n := hit.Normal
	eta := relativeEta(g.IOR, hit)
	cosThetaI := v.Dot(n)
	fresnel := FresnelDielectric(cosThetaI, eta)
	tint := g.Albedo.GetColor(hit.UV.X, hit.UV.Y)

	if sampler.Get1D() < fresnel {
		return BSDFSample{Direction: orFallback(Reflect(v, n), n), PDF: fresnel, Value: tint}
	}

	t, ok := Refract(v, n, eta)
	if !ok {
		// Unreachable in exact arithmetic since F = 1 under total internal reflection
		return BSDFSample{Direction: orFallback(Reflect(v, n), n), PDF: 1, Value: tint}
	}
	return BSDFSample{Direction: t, PDF: 1 - fresnel, Value: tint.Multiply(1 / (eta * eta))}
}

// Evaluate is zero; a delta lobe has no density at an arbitrary direction
func (g *Glass) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	return 0, core.Vec3{}
}

func (g *Glass) IsDelta() bool      { return true }
func (g *Glass) IsVolumetric() bool { return false }
