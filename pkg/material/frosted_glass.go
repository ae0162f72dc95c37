package material

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// FrostedGlass is a rough dielectric that both reflects and transmits
// through a GGX microsurface (Walter et al. 2007).
type FrostedGlass struct {
	noEmission
	Albedo    Texture // Tint applied to both lobes
	Roughness Texture // Surface roughness in the first channel
	IOR       float64 // Index of refraction of the interior
}

// NewFrostedGlass creates a rough glass material
func NewFrostedGlass(albedo, roughness Texture, ior float64) *FrostedGlass {
	return &FrostedGlass{Albedo: albedo, Roughness: roughness, IOR: ior}
}

// Sample picks reflection or transmission at a visible microfacet with probability F
func (g *FrostedGlass) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	frame := core.NewONB(hit.Normal)
	v := frame.ToLocal(viewDirection(rayIn))
	if v.Z <= 0 {
		return BSDFSample{}
	}

	eta := relativeEta(g.IOR, hit)
	ax, ay := roughnessToAlpha(scalar(g.Roughness, hit.UV), 0)
	h := core.SampleGGXVNDF(v, ax, ay, sampler.Get2D())
	fresnel := FresnelDielectric(v.Dot(h), eta)

	var l core.Vec3
	if sampler.Get1D() < fresnel {
		l = Reflect(v, h)
		if l.Z <= 0 {
			return BSDFSample{}
		}
	} else {
		t, ok := Refract(v, h, eta)
		if !ok {
			// Total internal reflection
			t = Reflect(v, h)
			if t.Z <= 0 {
				return BSDFSample{}
			}
		} else if t.Z >= 0 {
			return BSDFSample{}
		}
		l = t
	}

	wo := frame.ToWorld(l).Normalize()
	pdf, value := g.Evaluate(rayIn, hit, wo)
	return BSDFSample{Direction: wo, PDF: pdf, Value: value}
}

// Evaluate returns the BRDF or BTDF value and the pdf of sampling wo
func (g *FrostedGlass) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	frame := core.NewONB(hit.Normal)
	v := frame.ToLocal(viewDirection(rayIn))
	l := frame.ToLocal(wo)
	if v.Z <= 0 || l.Z == 0 {
		return 0, core.Vec3{}
	}

	eta := relativeEta(g.IOR, hit)
	reflect := l.Z > 0

	// Generalized half vector, oriented to the view side
	var h core.Vec3
	if reflect {
		h = v.Add(l)
	} else {
		h = v.Add(l.Multiply(eta))
	}
	if h.NearZero() {
		return 0, core.Vec3{}
	}
	h = h.Normalize()
	if h.Z < 0 {
		h = h.Negate()
	}

	// Discard backfacing microfacets
	vh := v.Dot(h)
	lh := l.Dot(h)
	if vh*v.Z <= 0 || lh*l.Z <= 0 {
		return 0, core.Vec3{}
	}

	ax, ay := roughnessToAlpha(scalar(g.Roughness, hit.UV), 0)
	d := DistributionGGX(h, ax, ay)
	g1v := SmithG1(v, ax, ay)
	g1l := SmithG1(l, ax, ay)
	fresnel := FresnelDielectric(vh, eta)
	tint := g.Albedo.GetColor(hit.UV.X, hit.UV.Y)
	vnPDF := visibleNormalPDF(v, h, ax, ay)

	if reflect {
		f := d * g1v * g1l * fresnel / (4 * v.Z * l.Z)
		pdf := vnPDF / (4 * vh) * fresnel
		return pdf, tint.Multiply(f)
	}

	denom := lh + vh/eta
	denom *= denom
	if denom < 1e-12 {
		return 0, core.Vec3{}
	}

	// Radiance is compressed by 1/eta² when entering a denser medium
	f := (1 - fresnel) * d * g1v * g1l * math.Abs(lh*vh) / (math.Abs(l.Z) * v.Z * denom) / (eta * eta)
	pdf := vnPDF * math.Abs(lh) / denom * (1 - fresnel)
	return pdf, tint.Multiply(f)
}

func (g *FrostedGlass) IsDelta() bool      { return false }
func (g *FrostedGlass) IsVolumetric() bool { return false }
